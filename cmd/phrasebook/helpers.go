package main

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/phrasebook/internal/config"
	"github.com/at-ishikawa/phrasebook/internal/event"
	"github.com/at-ishikawa/phrasebook/internal/phrase"
	"github.com/at-ishikawa/phrasebook/internal/storage"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// application holds what every command needs: the corpus and the saved collection on top of storage.
type application struct {
	cfg        *config.Config
	bus        *event.Bus
	store      storage.Store
	repository *phrase.StoreRepository
	corpus     []phrase.Category
}

func newApplication(ctx context.Context) (*application, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	corpus, err := phrase.LoadCorpus(cfg.Corpus.File)
	if err != nil {
		return nil, fmt.Errorf("phrase.LoadCorpus() > %w", err)
	}

	bus := event.NewBus()
	store, err := storage.Open(ctx, cfg, bus)
	if err != nil {
		return nil, fmt.Errorf("storage.Open() > %w", err)
	}
	return &application{
		cfg:        cfg,
		bus:        bus,
		store:      store,
		repository: phrase.NewStoreRepository(store, bus),
		corpus:     corpus,
	}, nil
}

// deck is the combined category list, read fresh on every call.
func (app *application) deck(ctx context.Context) ([]phrase.Category, error) {
	return phrase.Combine(app.corpus, app.repository.Load(ctx)), nil
}

func (app *application) Close() error {
	return app.store.Close()
}
