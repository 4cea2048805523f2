package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/at-ishikawa/phrasebook/internal/event"
)

// Watcher reports values another process wrote into a FileStore directory.
type Watcher struct {
	store   *FileStore
	bus     *event.Bus
	watcher *fsnotify.Watcher
}

func NewWatcher(store *FileStore, bus *event.Bus) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify.NewWatcher > %w", err)
	}
	if err := watcher.Add(store.Dir()); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watcher.Add(%s) > %w", store.Dir(), err)
	}
	return &Watcher{
		store:   store,
		bus:     bus,
		watcher: watcher,
	}, nil
}

// Run blocks until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(e)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("storage watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(e fsnotify.Event) {
	if !e.Has(fsnotify.Create) && !e.Has(fsnotify.Write) && !e.Has(fsnotify.Remove) && !e.Has(fsnotify.Rename) {
		return
	}
	key, ok := w.store.keyFromPath(e.Name)
	if !ok {
		return
	}

	contents, err := os.ReadFile(e.Name)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Debug("read changed storage file", "path", e.Name, "error", err)
		return
	}
	if err == nil && w.store.isOwnWrite(key, contents) {
		return
	}
	slog.Debug("storage changed externally", "key", key)
	w.bus.Publish(event.Event{Topic: event.StorageChanged, Key: key})
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
