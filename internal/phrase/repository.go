package phrase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/at-ishikawa/phrasebook/internal/event"
	"github.com/at-ishikawa/phrasebook/internal/storage"
)

// Repository keeps the collection of phrases the user saved.
type Repository interface {
	// Load never fails: an absent or unreadable collection is empty.
	Load(ctx context.Context) []Phrase
	Save(ctx context.Context, candidate Phrase) (SaveResult, error)
	// Merge overlays incoming onto the saved collection; incoming wins on the same key.
	Merge(ctx context.Context, incoming []Phrase) ([]Phrase, error)
	Export(ctx context.Context) []Phrase
}

type SaveResult struct {
	Phrases []Phrase
	// Phrase is the normalized candidate.
	Phrase Phrase
	// Added is false when a phrase with the same key was already saved.
	Added bool
}

// StoreRepository keeps the collection as one JSON array under storage.KeySavedPhrases.
// Writes from other processes are not coordinated: the last writer wins.
type StoreRepository struct {
	store storage.Store
	bus   *event.Bus
	now   func() time.Time

	mu sync.Mutex
}

func NewStoreRepository(store storage.Store, bus *event.Bus) *StoreRepository {
	return &StoreRepository{
		store: store,
		bus:   bus,
		now:   time.Now,
	}
}

func (r *StoreRepository) Load(ctx context.Context) []Phrase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *StoreRepository) load(ctx context.Context) []Phrase {
	var phrases []Phrase
	if err := storage.GetJSON(ctx, r.store, storage.KeySavedPhrases, &phrases); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("saved phrases are unreadable, starting empty", "error", err)
		}
		return []Phrase{}
	}
	if phrases == nil {
		return []Phrase{}
	}
	return phrases
}

func (r *StoreRepository) Save(ctx context.Context, candidate Phrase) (SaveResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	phrases := r.load(ctx)
	normalized, err := Normalize(candidate, r.now())
	if err != nil {
		return SaveResult{Phrases: phrases, Phrase: normalized}, err
	}

	key := normalized.Key()
	for _, p := range phrases {
		if p.Key() == key {
			return SaveResult{Phrases: phrases, Phrase: normalized}, nil
		}
	}

	updated := make([]Phrase, 0, len(phrases)+1)
	updated = append(updated, normalized)
	updated = append(updated, phrases...)
	if err := r.persist(ctx, updated); err != nil {
		return SaveResult{Phrases: phrases, Phrase: normalized}, err
	}
	slog.Debug("phrase saved", "english", normalized.English, "category", normalized.Category)
	return SaveResult{Phrases: updated, Phrase: normalized, Added: true}, nil
}

func (r *StoreRepository) Merge(ctx context.Context, incoming []Phrase) ([]Phrase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.load(ctx)
	merged := make([]Phrase, 0, len(current)+len(incoming))
	index := make(map[Key]int, len(current)+len(incoming))
	put := func(p Phrase) {
		key := p.Key()
		if i, ok := index[key]; ok {
			merged[i] = p
			return
		}
		index[key] = len(merged)
		merged = append(merged, p)
	}

	for _, p := range current {
		put(p)
	}
	for _, p := range incoming {
		p = trimmed(p)
		if p.Arabic == "" || p.English == "" {
			continue
		}
		put(p)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt > merged[j].CreatedAt
	})
	if err := r.persist(ctx, merged); err != nil {
		return current, err
	}
	slog.Debug("phrases merged", "incoming", len(incoming), "total", len(merged))
	return merged, nil
}

func (r *StoreRepository) Export(ctx context.Context) []Phrase {
	return r.Load(ctx)
}

func (r *StoreRepository) persist(ctx context.Context, phrases []Phrase) error {
	if err := storage.SetJSON(ctx, r.store, storage.KeySavedPhrases, phrases); err != nil {
		return fmt.Errorf("storage.SetJSON > %w", err)
	}
	r.bus.Publish(event.Event{Topic: event.SavedPhrasesChanged, Key: storage.KeySavedPhrases})
	return nil
}
