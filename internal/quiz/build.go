package quiz

import (
	"math/rand"

	"github.com/at-ishikawa/phrasebook/internal/phrase"
)

// buildQuestions samples the questions for settings from the combined phrase set.
func buildQuestions(r *rand.Rand, categories []phrase.Category, settings Settings) []Question {
	deck := phrase.Flatten(categories)
	if settings.Mode == ModeByCategory {
		deck = phrase.FilterCards(deck, settings.Category)
	}
	if len(deck) == 0 {
		return []Question{}
	}

	count := len(deck)
	if settings.Mode == ModeRandom && settings.Count != CountAll {
		count = settings.Count
	}
	picked := sample(r, deck, count)

	arabicPool := valuePool(deck, func(c phrase.Card) string { return c.Arabic })
	englishPool := valuePool(deck, func(c phrase.Card) string { return c.English })

	questions := make([]Question, 0, len(picked))
	for _, card := range picked {
		direction := settings.Direction
		if direction == DirectionMix {
			direction = DirectionEnToAr
			if r.Intn(2) == 1 {
				direction = DirectionArToEn
			}
		}

		if direction == DirectionEnToAr {
			correct := orMissing(card.Arabic)
			values := options(r, correct, arabicPool)
			opts := make([]Option, 0, len(values))
			for _, value := range values {
				opts = append(opts, Option{Value: value, Label: arabicLabel(deck, value)})
			}
			questions = append(questions, Question{
				ID:           card.CategorySlug + "-" + card.English + "-" + card.Arabic,
				Direction:    DirectionEnToAr,
				PromptTop:    "Choose the correct Arabic:",
				PromptMain:   orMissing(card.English),
				PromptSub:    prefixed("Category: ", card.Category),
				CorrectValue: correct,
				Options:      opts,
			})
			continue
		}

		correct := orMissing(card.English)
		values := options(r, correct, englishPool)
		opts := make([]Option, 0, len(values))
		for _, value := range values {
			opts = append(opts, Option{Value: value, Label: value})
		}
		questions = append(questions, Question{
			ID:           card.CategorySlug + "-" + card.Arabic + "-" + card.English,
			Direction:    DirectionArToEn,
			PromptTop:    "Choose the correct English meaning:",
			PromptMain:   orMissing(card.Arabic),
			PromptSub:    prefixed("Transliteration: ", card.Transliteration),
			CorrectValue: correct,
			Options:      opts,
		})
	}
	return questions
}

// options returns the correct value and up to OptionCount-1 distractors in random order.
func options(r *rand.Rand, correct string, pool []string) []string {
	distractors := make([]string, 0, len(pool))
	for _, value := range pool {
		if value != correct {
			distractors = append(distractors, value)
		}
	}
	values := append([]string{correct}, sample(r, distractors, OptionCount-1)...)
	shuffle(r, values)
	return values
}

// valuePool collects the distinct non-empty values of a field across the deck.
func valuePool(deck []phrase.Card, field func(phrase.Card) string) []string {
	seen := make(map[string]bool, len(deck))
	pool := make([]string, 0, len(deck))
	for _, card := range deck {
		value := field(card)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		pool = append(pool, value)
	}
	return pool
}

func arabicLabel(deck []phrase.Card, arabic string) string {
	for _, card := range deck {
		if card.Arabic != arabic {
			continue
		}
		if card.Transliteration != "" {
			return arabic + " · " + card.Transliteration
		}
		break
	}
	return arabic
}

// sample returns n distinct elements of items, or all of them in random order when n is larger.
func sample[T any](r *rand.Rand, items []T, n int) []T {
	shuffled := append([]T(nil), items...)
	shuffle(r, shuffled)
	return shuffled[:min(n, len(shuffled))]
}

func shuffle[T any](r *rand.Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func orMissing(value string) string {
	if value == "" {
		return missingValue
	}
	return value
}

func prefixed(prefix, value string) string {
	if value == "" {
		return ""
	}
	return prefix + value
}
