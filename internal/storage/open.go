package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/phrasebook/internal/config"
	"github.com/at-ishikawa/phrasebook/internal/database"
	"github.com/at-ishikawa/phrasebook/internal/event"
)

// Open returns the store selected by cfg.Storage.Driver.
// For the file driver with watching enabled, external changes are published on bus until ctx is done.
func Open(ctx context.Context, cfg *config.Config, bus *event.Bus) (Store, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "file", "":
		store, err := NewFileStore(cfg.Storage.Directory)
		if err != nil {
			return nil, fmt.Errorf("NewFileStore > %w", err)
		}
		if !cfg.Storage.Watch || bus == nil {
			return store, nil
		}
		watcher, err := NewWatcher(store, bus)
		if err != nil {
			slog.Warn("storage changes from other processes will not be detected", "error", err)
			return store, nil
		}
		go func() {
			defer func() {
				_ = watcher.Close()
			}()
			if err := watcher.Run(ctx); err != nil {
				slog.Warn("storage watcher stopped", "error", err)
			}
		}()
		return store, nil
	case "sqlite3", "mysql", "postgres":
		db, err := database.Open(cfg.Storage.Driver, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database.Open > %w", err)
		}
		if err := database.Migrate(db, cfg.Storage.Driver); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("database.Migrate > %w", err)
		}
		return NewSQLStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}
