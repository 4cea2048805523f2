// Package storage provides the durable key-value storage the phrasebook keeps its state in.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the values the client keeps.
const (
	KeySavedPhrases   = "saved_phrases"
	KeySyncCode       = "sync_code"
	KeyTranslateCache = "translate_cache"
	KeyImageUsage     = "image_usage"
)

var ErrNotFound = errors.New("storage: key not found")

// Store reads and replaces whole values by key. A Set is atomic from the reader's point of view.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetJSON decodes the value stored under key into v.
func GetJSON(ctx context.Context, store Store, key string, v any) error {
	contents, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(contents, v); err != nil {
		return fmt.Errorf("json.Unmarshal(%s) > %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, store Store, key string, v any) error {
	contents, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json.Marshal(%s) > %w", key, err)
	}
	return store.Set(ctx, key, contents)
}
