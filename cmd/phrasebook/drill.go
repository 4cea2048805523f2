package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/phrasebook/internal/cli"
	"github.com/at-ishikawa/phrasebook/internal/flashcard"
	"github.com/at-ishikawa/phrasebook/internal/phrase"
	"github.com/at-ishikawa/phrasebook/internal/quiz"
)

func newFlashcardsCommand() *cobra.Command {
	mode := ModeRandom
	var category string
	command := &cobra.Command{
		Use:   "flashcards",
		Short: "Drill phrases with flashcards: Arabic on the front, English on the back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := newApplication(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close()
			}()

			flashcardCLI, err := cli.NewFlashcardCLI(ctx, app.deck, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("cli.NewFlashcardCLI() > %w", err)
			}
			unsubscribe := flashcardCLI.Watch(app.bus)
			defer unsubscribe()

			if category != "" {
				name, err := resolveCategory(ctx, app, category)
				if err != nil {
					return err
				}
				if err := flashcardCLI.SelectCategory(name); err != nil {
					return err
				}
			}
			flashcardMode := flashcard.ModeRandom
			if mode == ModeCategory {
				flashcardMode = flashcard.ModeByCategory
			}
			if err := flashcardCLI.SetMode(flashcardMode); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Flashcards: Enter to flip, n/p to move, s to shuffle, m to switch mode, c <category> to pick a category, q to quit.")
			return flashcardCLI.Run(ctx, flashcardCLI)
		},
	}
	flags := command.Flags()
	flags.Var(&mode, "mode", "Deck mode. Options: random, category")
	flags.StringVar(&category, "category", "", "Category to drill in category mode, by name or slug")
	return command
}

func newQuizCommand() *cobra.Command {
	mode := ModeRandom
	count := CountFlag(10)
	direction := QuizDirectionFlag(quiz.DirectionMix)
	var category string
	command := &cobra.Command{
		Use:   "quiz",
		Short: "Multiple-choice quiz over the phrasebook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := newApplication(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close()
			}()

			settings := quiz.Settings{
				Mode:      quiz.ModeRandom,
				Count:     int(count),
				Direction: quiz.Direction(direction),
			}
			if mode == ModeCategory {
				if category == "" {
					return fmt.Errorf("--category is required in category mode")
				}
				name, err := resolveCategory(ctx, app, category)
				if err != nil {
					return err
				}
				settings.Mode = quiz.ModeByCategory
				settings.Category = name
			}

			quizCLI, err := cli.NewQuizCLI(app.deck, settings, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("cli.NewQuizCLI() > %w", err)
			}
			return quizCLI.Run(ctx, quizCLI)
		},
	}
	flags := command.Flags()
	flags.Var(&mode, "mode", "Quiz mode. Options: random, category")
	flags.Var(&count, "count", "Number of questions in random mode. Options: 10, 25, 50, all")
	flags.Var(&direction, "direction", "Question direction. Options: en_to_ar, ar_to_en, mix")
	flags.StringVar(&category, "category", "", "Category to quiz on in category mode, by name or slug")
	return command
}

// resolveCategory returns the name of the category matching a name or slug.
func resolveCategory(ctx context.Context, app *application, nameOrSlug string) (string, error) {
	categories, err := app.deck(ctx)
	if err != nil {
		return "", err
	}
	category, ok := phrase.FindCategory(categories, nameOrSlug)
	if !ok {
		return "", fmt.Errorf("category %q not found", nameOrSlug)
	}
	return category.Category, nil
}
