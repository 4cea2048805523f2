package datasync

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/at-ishikawa/phrasebook/internal/event"
	"github.com/at-ishikawa/phrasebook/internal/storage"
)

const (
	codeAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeSegments      = 3
	codeSegmentLength = 4
)

// GenerateCode returns a code such as "A3KQ-9XLF-P2M8".
// The code is easy to share, not secret: anyone who knows it can read and overwrite the synced phrases.
func GenerateCode(r *rand.Rand) string {
	segments := make([]string, codeSegments)
	for i := range segments {
		var b strings.Builder
		for range codeSegmentLength {
			b.WriteByte(codeAlphabet[r.Intn(len(codeAlphabet))])
		}
		segments[i] = b.String()
	}
	return strings.Join(segments, "-")
}

// CodeStore keeps the sync code of this device.
type CodeStore struct {
	store storage.Store
	bus   *event.Bus
}

func NewCodeStore(store storage.Store, bus *event.Bus) *CodeStore {
	return &CodeStore{
		store: store,
		bus:   bus,
	}
}

// Get returns the saved code, or an empty string when there is none.
func (s *CodeStore) Get(ctx context.Context) (string, error) {
	value, err := s.store.Get(ctx, storage.KeySyncCode)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("store.Get > %w", err)
	}
	return strings.TrimSpace(string(value)), nil
}

func (s *CodeStore) Set(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrNoSyncCode
	}
	if err := s.store.Set(ctx, storage.KeySyncCode, []byte(code)); err != nil {
		return fmt.Errorf("store.Set > %w", err)
	}
	s.bus.Publish(event.Event{Topic: event.SyncCodeChanged, Key: storage.KeySyncCode})
	return nil
}

func (s *CodeStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, storage.KeySyncCode); err != nil {
		return fmt.Errorf("store.Delete > %w", err)
	}
	s.bus.Publish(event.Event{Topic: event.SyncCodeChanged, Key: storage.KeySyncCode})
	return nil
}
