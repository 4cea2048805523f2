package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	debug      bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "phrasebook",
		Short:         "Arabic phrasebook with flashcards, quizzes and sync",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(debug)
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default is ./config.yml or $HOME/.config/phrasebook/config.yml)")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newCategoriesCommand())
	rootCmd.AddCommand(newPhrasesCommand())
	rootCmd.AddCommand(newSaveCommand())
	rootCmd.AddCommand(newTranslateCommand())
	rootCmd.AddCommand(newFlashcardsCommand())
	rootCmd.AddCommand(newQuizCommand())
	rootCmd.AddCommand(newSyncCommand())
	rootCmd.AddCommand(newExportCommand())
	return rootCmd
}

func setupLogger(debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}))
	slog.SetDefault(logger)
}
