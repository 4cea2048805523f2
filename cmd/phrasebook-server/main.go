package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/phrasebook/internal/bootstrap"
	"github.com/at-ishikawa/phrasebook/internal/config"
	"github.com/at-ishikawa/phrasebook/internal/inference/openai"
	"github.com/at-ishikawa/phrasebook/internal/server"
	"github.com/at-ishikawa/phrasebook/internal/storage"
)

var (
	configFile string
	envFile    string
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "phrasebook-server",
		Short:         "Translation and sync backend for the phrasebook",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := godotenv.Load(envFile); err != nil {
		slog.Warn("no .env file found, using environment variables", "path", envFile)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	if cfg.OpenAI.APIKey == "" {
		return errors.New("OPENAI_API_KEY is not set")
	}

	app := bootstrap.New()

	// Sync data is the only thing the server stores; nothing needs watching.
	cfg.Storage.Watch = false
	store, err := storage.Open(ctx, cfg, nil)
	if err != nil {
		return fmt.Errorf("storage.Open() > %w", err)
	}
	app.AddShutdownHook(func(context.Context) error {
		return store.Close()
	})

	openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.RetryAttempts)
	app.AddShutdownHook(func(context.Context) error {
		return openaiClient.Close()
	})

	s, err := server.New(cfg.Server, openaiClient, store)
	if err != nil {
		return fmt.Errorf("server.New() > %w", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: h2c.NewHandler(s.Handler(), &http2.Server{}),
	}
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Info("starting server",
			"addr", srv.Addr,
			"storage", cfg.Storage.Driver,
			"model", openaiClient.GetModel(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
