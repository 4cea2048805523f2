// Package event broadcasts change notifications between the store and the views that derive from it.
package event

import "sync"

type Topic string

const (
	// SavedPhrasesChanged fires after the saved-phrase collection was written by this process.
	SavedPhrasesChanged Topic = "saved_phrases_changed"
	// SyncCodeChanged fires after the local sync code was set or cleared.
	SyncCodeChanged Topic = "sync_code_changed"
	// StorageChanged fires when another process rewrote a storage key.
	StorageChanged Topic = "storage_changed"
)

type Event struct {
	Topic Topic
	// Key is the storage key involved, when there is one.
	Key string
}

const subscriberBuffer = 8

type subscriber struct {
	topics map[Topic]bool
	ch     chan Event
}

// Bus is a process-wide publish/subscribe hub. The zero value is ready to use.
type Bus struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[int]*subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe returns a channel receiving events of the given topics (all topics when none are given)
// and a function that unsubscribes and closes the channel.
func (b *Bus) Subscribe(topics ...Topic) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subscribers == nil {
		b.subscribers = make(map[int]*subscriber)
	}
	id := b.nextID
	b.nextID++

	sub := &subscriber{
		topics: make(map[Topic]bool, len(topics)),
		ch:     make(chan Event, subscriberBuffer),
	}
	for _, topic := range topics {
		sub.topics[topic] = true
	}
	b.subscribers[id] = sub

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subscribers, id)
			close(sub.ch)
		})
	}
}

// Publish delivers the event without blocking. A subscriber with a full buffer already has
// refreshes pending, so the event is dropped for it.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subscribers {
		if len(sub.topics) > 0 && !sub.topics[e.Topic] {
			continue
		}
		select {
		case sub.ch <- e:
		default:
		}
	}
}
