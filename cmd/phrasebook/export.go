package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/phrasebook/internal/assets"
	"github.com/at-ishikawa/phrasebook/internal/pdf"
)

const exportFileName = "phrasebook.md"

func newExportCommand() *cobra.Command {
	var generatePDF bool
	var title string
	command := &cobra.Command{
		Use:   "export",
		Short: "Write the phrasebook, saved phrases included, as markdown and optionally PDF",
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
			tmpl, err := assets.ParsePhrasebookTemplate(app.cfg.Templates.PhrasebookTemplate)
			if err != nil {
				return fmt.Errorf("assets.ParsePhrasebookTemplate() > %w", err)
			}
			var buf bytes.Buffer
			if err := assets.WritePhrasebook(&buf, tmpl, assets.NewPhrasebookTemplate(title, categories, time.Now())); err != nil {
				return fmt.Errorf("assets.WritePhrasebook() > %w", err)
			}

			outputDir := app.cfg.Outputs.Directory
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("os.MkdirAll(%s) > %w", outputDir, err)
			}
			markdownPath := filepath.Join(outputDir, exportFileName)
			if err := os.WriteFile(markdownPath, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("os.WriteFile(%s) > %w", markdownPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Markdown written to %s\n", markdownPath)

			if !generatePDF {
				return nil
			}
			pdfPath, err := pdf.ConvertMarkdownToPDF(markdownPath)
			if err != nil {
				return fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", pdfPath)
			return nil
		},
	}
	flags := command.Flags()
	flags.BoolVar(&generatePDF, "pdf", false, "Also convert the markdown to PDF")
	flags.StringVar(&title, "title", "Arabic Phrasebook", "Title of the exported phrasebook")
	return command
}
