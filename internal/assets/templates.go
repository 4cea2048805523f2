// Package assets holds the embedded templates the phrasebook is exported with.
package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/at-ishikawa/phrasebook/internal/phrase"
)

//go:embed templates/phrasebook.md.go.tmpl
var fallbackPhrasebookTemplate string

const fallbackPhrasebookTemplateName = "phrasebook.md.go.tmpl"

type PhrasebookTemplate struct {
	Title       string
	GeneratedAt string
	PhraseCount int
	Categories  []PhrasebookCategory
}

type PhrasebookCategory struct {
	Name    string
	Emoji   string
	Phrases []phrase.Phrase
}

// NewPhrasebookTemplate lays the combined categories out for the template.
func NewPhrasebookTemplate(title string, categories []phrase.Category, now time.Time) PhrasebookTemplate {
	data := PhrasebookTemplate{
		Title:       title,
		GeneratedAt: now.Format("2006-01-02"),
		Categories:  make([]PhrasebookCategory, 0, len(categories)),
	}
	for _, category := range categories {
		data.PhraseCount += len(category.Phrases)
		data.Categories = append(data.Categories, PhrasebookCategory{
			Name:    category.Category,
			Emoji:   phrase.CategoryEmoji(category.Category),
			Phrases: category.Phrases,
		})
	}
	return data
}

// ParsePhrasebookTemplate reads templatePath, falling back to the embedded template
// when the path is empty, missing or does not parse.
func ParsePhrasebookTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, fallbackPhrasebookTemplateName, fallbackPhrasebookTemplate)
}

func WritePhrasebook(w io.Writer, tmpl *template.Template, data PhrasebookTemplate) error {
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("tmpl.Execute > %w", err)
	}
	return nil
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
		"cell": markdownCell,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// markdownCell keeps a value on one table row.
func markdownCell(value string) string {
	if value == "" {
		return "-"
	}
	value = strings.ReplaceAll(value, "|", `\|`)
	return strings.Join(strings.Fields(value), " ")
}
