// Package suggest picks the corpus category a new phrase most likely belongs to.
package suggest

import (
	"strings"
	"unicode"

	"github.com/at-ishikawa/phrasebook/internal/phrase"
)

const (
	englishWeight = 2
	arabicWeight  = 1
	// MinScore is the lowest score that still counts as a match.
	MinScore = 3
)

type Candidate struct {
	English string
	Arabic  string
}

// Tokenize lowercases s, replaces everything except letters, digits and whitespace with spaces and splits it.
// Combining marks are dropped so that vocalized Arabic words stay whole.
func Tokenize(s string) []string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.Is(unicode.Mn, r):
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsSpace(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.FieldsFunc(b.String(), unicode.IsSpace)
}

type tokenizedPhrase struct {
	english []string
	arabic  []string
}

type tokenizedCategory struct {
	name    string
	phrases []tokenizedPhrase
}

// Suggester scores candidates against a static corpus. It is safe for concurrent use.
type Suggester struct {
	categories []tokenizedCategory
}

// NewSuggester tokenizes the corpus once. The corpus must not change afterwards.
func NewSuggester(corpus []phrase.Category) *Suggester {
	categories := make([]tokenizedCategory, 0, len(corpus))
	for _, c := range corpus {
		tc := tokenizedCategory{
			name:    c.Category,
			phrases: make([]tokenizedPhrase, 0, len(c.Phrases)),
		}
		for _, p := range c.Phrases {
			tc.phrases = append(tc.phrases, tokenizedPhrase{
				english: Tokenize(p.English),
				arabic:  Tokenize(p.Arabic),
			})
		}
		categories = append(categories, tc)
	}
	return &Suggester{categories: categories}
}

// Suggest returns the best scoring category, or phrase.DefaultCategory when nothing reaches MinScore.
// A phrase token counts every time it occurs in the phrase; ties keep the earlier category.
func (s *Suggester) Suggest(candidate Candidate) string {
	english := tokenSet(candidate.English)
	arabic := tokenSet(candidate.Arabic)

	bestCategory := phrase.DefaultCategory
	bestScore := 0
	for _, c := range s.categories {
		score := 0
		for _, p := range c.phrases {
			score += englishWeight * countIn(p.english, english)
			score += arabicWeight * countIn(p.arabic, arabic)
		}
		if score > bestScore {
			bestCategory = c.name
			bestScore = score
		}
	}

	if bestScore < MinScore {
		return phrase.DefaultCategory
	}
	return bestCategory
}

func tokenSet(s string) map[string]struct{} {
	tokens := Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

func countIn(tokens []string, set map[string]struct{}) int {
	count := 0
	for _, token := range tokens {
		if _, ok := set[token]; ok {
			count++
		}
	}
	return count
}
