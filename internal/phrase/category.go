package phrase

import (
	"regexp"
	"strings"
)

type Category struct {
	Category string   `json:"category" yaml:"category"`
	Phrases  []Phrase `json:"phrases" yaml:"phrases"`
}

// Card is a phrase flattened out of its category for flashcards and quizzes.
type Card struct {
	Phrase
	Category     string
	CategorySlug string
}

// Combine merges the static corpus with the saved collection into the category list the views show.
// Saved phrases are prepended to a corpus category of the same name, other saved categories are appended,
// and the Saved and Other categories always exist. The result shares no slices with its inputs.
func Combine(corpus []Category, saved []Phrase) []Category {
	var savedOrder []string
	savedByCategory := make(map[string][]Phrase)
	for _, p := range saved {
		name := categoryName(p.Category)
		if _, ok := savedByCategory[name]; !ok {
			savedOrder = append(savedOrder, name)
		}
		savedByCategory[name] = append(savedByCategory[name], p.display())
	}

	var order []string
	byName := make(map[string]Category)
	set := func(c Category) {
		if _, ok := byName[c.Category]; !ok {
			order = append(order, c.Category)
		}
		byName[c.Category] = c
	}

	for _, c := range NormalizeCorpus(corpus) {
		set(Category{
			Category: c.Category,
			Phrases:  append([]Phrase{}, c.Phrases...),
		})
	}
	for _, name := range []string{DefaultCategory, OtherCategory} {
		if _, ok := byName[name]; !ok {
			set(Category{Category: name, Phrases: []Phrase{}})
		}
	}

	for _, name := range savedOrder {
		items := savedByCategory[name]
		existing, ok := byName[name]
		if !ok {
			set(Category{Category: name, Phrases: items})
			continue
		}
		existing.Phrases = append(items, existing.Phrases...)
		set(existing)
	}

	result := make([]Category, 0, len(order))
	for _, name := range order {
		result = append(result, byName[name])
	}
	return result
}

// NormalizeCorpus drops categories without a name and replaces missing phrase lists with empty ones.
func NormalizeCorpus(corpus []Category) []Category {
	result := make([]Category, 0, len(corpus))
	for _, c := range corpus {
		name := strings.TrimSpace(c.Category)
		if name == "" {
			continue
		}
		phrases := c.Phrases
		if phrases == nil {
			phrases = []Phrase{}
		}
		result = append(result, Category{Category: name, Phrases: phrases})
	}
	return result
}

// Flatten lists every phrase of every category, tagged with its category.
func Flatten(categories []Category) []Card {
	var cards []Card
	for _, c := range categories {
		slug := Slugify(c.Category)
		for _, p := range c.Phrases {
			cards = append(cards, Card{
				Phrase:       p,
				Category:     c.Category,
				CategorySlug: slug,
			})
		}
	}
	return cards
}

// FilterCards keeps the cards of one category.
func FilterCards(cards []Card, category string) []Card {
	var result []Card
	for _, card := range cards {
		if card.Category == category {
			result = append(result, card)
		}
	}
	return result
}

// CategoryNames returns unique category names in list order.
func CategoryNames(categories []Category) []string {
	seen := make(map[string]bool, len(categories))
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if seen[c.Category] {
			continue
		}
		seen[c.Category] = true
		names = append(names, c.Category)
	}
	return names
}

// FindCategory looks a category up by its exact name or by its slug.
func FindCategory(categories []Category, nameOrSlug string) (Category, bool) {
	for _, c := range categories {
		if c.Category == nameOrSlug || Slugify(c.Category) == nameOrSlug {
			return c, true
		}
	}
	return Category{}, false
}

var nonSlugRunes = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a category name into a URL-safe identifier, e.g. "Money & Shopping" -> "money-and-shopping".
func Slugify(name string) string {
	slug := strings.TrimSpace(strings.ToLower(name))
	slug = strings.ReplaceAll(slug, "&", "and")
	slug = nonSlugRunes.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
