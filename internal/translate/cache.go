package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/at-ishikawa/phrasebook/internal/storage"
)

type cacheEntry struct {
	Value     Result `json:"value"`
	Timestamp int64  `json:"ts"`
}

// Cache remembers text translations in storage.KeyTranslateCache. Entries never expire.
type Cache struct {
	store storage.Store
	now   func() time.Time

	mu sync.Mutex
}

func NewCache(store storage.Store) *Cache {
	return &Cache{
		store: store,
		now:   time.Now,
	}
}

// CacheKey is the direction and the trimmed, lowercased text, e.g. "en_to_ar::thank you".
func CacheKey(direction Direction, text string) string {
	return string(direction) + "::" + strings.ToLower(strings.TrimSpace(text))
}

func (c *Cache) Get(ctx context.Context, direction Direction, text string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.read(ctx)[CacheKey(direction, text)]
	return entry.Value, ok
}

func (c *Cache) Set(ctx context.Context, direction Direction, text string, value Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.read(ctx)
	entries[CacheKey(direction, text)] = cacheEntry{
		Value:     value,
		Timestamp: c.now().UnixMilli(),
	}
	if err := storage.SetJSON(ctx, c.store, storage.KeyTranslateCache, entries); err != nil {
		return fmt.Errorf("storage.SetJSON > %w", err)
	}
	return nil
}

// read returns an empty cache when the stored one is missing or malformed.
func (c *Cache) read(ctx context.Context) map[string]cacheEntry {
	var entries map[string]cacheEntry
	if err := storage.GetJSON(ctx, c.store, storage.KeyTranslateCache, &entries); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("translation cache is unreadable, starting empty", "error", err)
		}
		return make(map[string]cacheEntry)
	}
	if entries == nil {
		entries = make(map[string]cacheEntry)
	}
	return entries
}
