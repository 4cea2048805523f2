// Package phrase provides the phrase data model, the bundled corpus and the saved-phrase repository.
package phrase

import (
	"errors"
	"strings"
	"time"
)

const (
	// DefaultCategory is where a phrase without a category is saved.
	DefaultCategory = "Saved"
	// OtherCategory always exists as a fallback destination.
	OtherCategory = "Other"
	// UnknownSource is the provenance of a phrase saved without a source tag.
	UnknownSource = "unknown"
	// TranslatorSource tags phrases saved from a translation result.
	TranslatorSource = "translator"

	// TimestampLayout formats CreatedAt. Fixed width, so timestamps order lexically.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

var ErrMissingText = errors.New("a phrase needs both arabic and english text")

type Phrase struct {
	Arabic          string `json:"arabic" yaml:"arabic"`
	English         string `json:"english" yaml:"english"`
	Transliteration string `json:"transliteration,omitempty" yaml:"transliteration,omitempty"`
	Category        string `json:"category,omitempty" yaml:"category,omitempty"`
	CreatedAt       string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	Source          string `json:"source,omitempty" yaml:"source,omitempty"`
}

// Key identifies a phrase for deduplication and merging.
type Key struct {
	Arabic   string
	English  string
	Category string
}

func (p Phrase) Key() Key {
	return Key{
		Arabic:   strings.TrimSpace(p.Arabic),
		English:  strings.ToLower(strings.TrimSpace(p.English)),
		Category: categoryName(p.Category),
	}
}

// Normalize trims every field and fills the defaults a saved phrase needs.
// CreatedAt is set from now only when it is empty.
func Normalize(p Phrase, now time.Time) (Phrase, error) {
	normalized := trimmed(p)
	if normalized.Arabic == "" || normalized.English == "" {
		return normalized, ErrMissingText
	}
	if normalized.CreatedAt == "" {
		normalized.CreatedAt = FormatTimestamp(now)
	}
	if normalized.Source == "" {
		normalized.Source = UnknownSource
	}
	return normalized, nil
}

// trimmed trims all fields and defaults the category, leaving CreatedAt and Source untouched when empty.
func trimmed(p Phrase) Phrase {
	return Phrase{
		Arabic:          strings.TrimSpace(p.Arabic),
		English:         strings.TrimSpace(p.English),
		Transliteration: strings.TrimSpace(p.Transliteration),
		Category:        categoryName(p.Category),
		CreatedAt:       strings.TrimSpace(p.CreatedAt),
		Source:          strings.TrimSpace(p.Source),
	}
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func categoryName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return DefaultCategory
}

// display strips a phrase down to what a category listing shows.
func (p Phrase) display() Phrase {
	return Phrase{
		Arabic:          p.Arabic,
		English:         p.English,
		Transliteration: p.Transliteration,
		Source:          p.Source,
	}
}
