package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/phrasebook/internal/phrase"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "english punctuation", input: "Where's the bathroom?", want: []string{"where", "s", "the", "bathroom"}},
		{name: "mixed case and digits", input: "Gate 12, PLEASE", want: []string{"gate", "12", "please"}},
		{name: "arabic", input: "أين الحمام؟", want: []string{"أين", "الحمام"}},
		{name: "arabic with harakat", input: "شُكْرًا جَزِيلًا", want: []string{"شكرا", "جزيلا"}},
		{name: "arabic-indic digits", input: "غرفة ١٢", want: []string{"غرفة", "١٢"}},
		{name: "empty", input: "  ...  ", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggester_Suggest(t *testing.T) {
	corpus := []phrase.Category{
		{Category: "Greetings", Phrases: []phrase.Phrase{
			{Arabic: "صباح الخير", English: "Good morning"},
			{Arabic: "مساء الخير", English: "Good evening"},
		}},
		{Category: "Food - Drinks", Phrases: []phrase.Phrase{
			{Arabic: "ماء", English: "Water"},
			{Arabic: "قهوة من فضلك", English: "Coffee please"},
			{Arabic: "شاي من فضلك", English: "Tea please"},
		}},
		{Category: "Airport", Phrases: []phrase.Phrase{
			{Arabic: "أين البوابة", English: "Where is the gate"},
		}},
	}
	suggester := NewSuggester(corpus)

	tests := []struct {
		name      string
		candidate Candidate
		want      string
	}{
		{
			name:      "english overlap",
			candidate: Candidate{English: "good night"},
			want:      "Greetings",
		},
		{
			name:      "english token repeated across phrases",
			candidate: Candidate{English: "Juice, please!"},
			want:      "Food - Drinks",
		},
		{
			name:      "arabic only overlap",
			candidate: Candidate{Arabic: "عصير من فضلك"},
			want:      "Food - Drinks",
		},
		{
			name:      "below threshold",
			candidate: Candidate{English: "water bottle"},
			want:      phrase.DefaultCategory,
		},
		{
			name:      "no overlap",
			candidate: Candidate{English: "my passport is lost", Arabic: "ضاع جوازي"},
			want:      phrase.DefaultCategory,
		},
		{
			name:      "tie keeps the first category",
			candidate: Candidate{English: "good please"},
			want:      "Greetings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, suggester.Suggest(tt.candidate))
		})
	}
}

func TestSuggester_EmbeddedCorpus(t *testing.T) {
	corpus, err := phrase.LoadCorpus("")
	require.NoError(t, err)

	suggester := NewSuggester(corpus)
	assert.Equal(t, phrase.DefaultCategory, suggester.Suggest(Candidate{English: "zzz", Arabic: "ززز"}))
}
