package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/phrasebook/internal/phrase"
	"github.com/at-ishikawa/phrasebook/internal/suggest"
	"github.com/at-ishikawa/phrasebook/internal/translate"
)

func newTranslateCommand() *cobra.Command {
	translateCommand := &cobra.Command{
		Use:   "translate",
		Short: "Translate between English and Arabic through the phrasebook server",
	}

	direction := DirectionFlag(translate.DirectionEnToAr)
	var save bool
	var category string
	flags := translateCommand.PersistentFlags()
	flags.Var(&direction, "direction", "Translation direction. Options: en_to_ar, ar_to_en")
	flags.BoolVar(&save, "save", false, "Save the translation to your collection")
	flags.StringVar(&category, "category", "", "Category to save under instead of the suggested one")

	translateCommand.AddCommand(&cobra.Command{
		Use:   "text <text>...",
		Short: "Translate text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, save, category, func(translator *translate.Translator) (translate.Translation, error) {
				return translator.Text(cmd.Context(), strings.Join(args, " "), translate.Direction(direction))
			})
		},
	})
	translateCommand.AddCommand(&cobra.Command{
		Use:   "image <file>",
		Short: "Translate the text in a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contents, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("os.ReadFile(%s) > %w", args[0], err)
			}
			return runTranslate(cmd, save, category, func(translator *translate.Translator) (translate.Translation, error) {
				translation, err := translator.Image(cmd.Context(), args[0], contents, translate.Direction(direction))
				if err == nil {
					usage, limit := translator.Usage(cmd.Context())
					fmt.Fprintf(cmd.OutOrStdout(), "Image translations this month: %d/%d\n", usage.Used, limit)
				}
				return translation, err
			})
		},
	})
	return translateCommand
}

func runTranslate(cmd *cobra.Command, save bool, category string, do func(*translate.Translator) (translate.Translation, error)) error {
	ctx := cmd.Context()
	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = app.Close()
	}()

	client := translate.NewHTTPClient(app.cfg.Translator.BaseURL)
	defer func() {
		_ = client.Close()
	}()
	translator := translate.NewTranslator(
		client,
		translate.NewCache(app.store),
		translate.NewQuota(app.store, app.cfg.Translator.ImageMonthlyLimit),
		suggest.NewSuggester(app.corpus),
	)

	translation, err := do(translator)
	switch {
	case errors.Is(err, translate.ErrEmptyText),
		errors.Is(err, translate.ErrNotImage),
		errors.Is(err, translate.ErrQuotaExceeded):
		return err
	case err != nil:
		return fmt.Errorf("translation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	printTranslation(out, translation)
	if !save {
		return nil
	}
	if category == "" {
		category = translation.SuggestedCategory
	}
	return savePhrase(cmd, app, translation.Phrase(category))
}

func printTranslation(out io.Writer, translation translate.Translation) {
	fmt.Fprintf(out, "Arabic: %s\n", translation.Arabic)
	if translation.Transliteration != "" {
		fmt.Fprintf(out, "Transliteration: %s\n", translation.Transliteration)
	}
	fmt.Fprintf(out, "English: %s\n", translation.English)
	fmt.Fprintf(out, "Suggested category: %s %s\n", phrase.CategoryEmoji(translation.SuggestedCategory), translation.SuggestedCategory)
	if translation.Cached {
		fmt.Fprintln(out, "(from cache)")
	}
}
