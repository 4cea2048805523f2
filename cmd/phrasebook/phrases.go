package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/phrasebook/internal/phrase"
)

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories of the corpus and the saved phrases",
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

			categories, err := app.deck(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range categories {
				fmt.Fprintf(out, "%s %s (%d) [%s]\n", phrase.CategoryEmoji(c.Category), c.Category, len(c.Phrases), phrase.Slugify(c.Category))
			}
			return nil
		},
	}
}

func newPhrasesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "phrases <category>",
		Short: "Show the phrases of a category, by name or slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := newApplication(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close()
			}()

			categories, err := app.deck(ctx)
			if err != nil {
				return err
			}
			category, ok := phrase.FindCategory(categories, args[0])
			if !ok {
				return fmt.Errorf("category %q not found", args[0])
			}
			printCategory(cmd.OutOrStdout(), category)
			return nil
		},
	}
}

func printCategory(out io.Writer, category phrase.Category) {
	fmt.Fprintf(out, "%s %s\n", phrase.CategoryEmoji(category.Category), category.Category)
	if len(category.Phrases) == 0 {
		fmt.Fprintln(out, "  No phrases yet.")
		return
	}
	for _, p := range category.Phrases {
		printPhrase(out, p)
	}
}

func printPhrase(out io.Writer, p phrase.Phrase) {
	fmt.Fprintf(out, "  %s\n", p.Arabic)
	if p.Transliteration != "" {
		fmt.Fprintf(out, "    %s\n", p.Transliteration)
	}
	fmt.Fprintf(out, "    %s\n", p.English)
}

func newSaveCommand() *cobra.Command {
	var candidate phrase.Phrase
	command := &cobra.Command{
		Use:   "save",
		Short: "Save a phrase to your collection",
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
			return savePhrase(cmd, app, candidate)
		},
	}
	flags := command.Flags()
	flags.StringVar(&candidate.Arabic, "arabic", "", "Arabic text")
	flags.StringVar(&candidate.English, "english", "", "English meaning")
	flags.StringVar(&candidate.Transliteration, "translit", "", "Transliteration of the Arabic")
	flags.StringVar(&candidate.Category, "category", phrase.DefaultCategory, "Category to save the phrase under")
	return command
}

func savePhrase(cmd *cobra.Command, app *application, candidate phrase.Phrase) error {
	result, err := app.repository.Save(cmd.Context(), candidate)
	if errors.Is(err, phrase.ErrMissingText) {
		return fmt.Errorf("cannot save: %w", err)
	}
	if err != nil {
		return fmt.Errorf("repository.Save() > %w", err)
	}

	out := cmd.OutOrStdout()
	if !result.Added {
		fmt.Fprintf(out, "Already saved in %s\n", result.Phrase.Category)
		return nil
	}
	fmt.Fprintf(out, "Saved to %s %s\n", phrase.CategoryEmoji(result.Phrase.Category), result.Phrase.Category)
	return nil
}
