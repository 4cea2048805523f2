package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/phrasebook/internal/phrase"
	"github.com/at-ishikawa/phrasebook/internal/quiz"
)

func newTestQuizCLI(t *testing.T, categories []phrase.Category, settings quiz.Settings) (*QuizCLI, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	q, err := NewQuizCLI(staticLoader(categories), settings, strings.NewReader(""), &out, quiz.WithRand(rand.New(rand.NewSource(7))))
	require.NoError(t, err)
	return q, &out
}

func setInput(cli *InteractiveCLI, input string) {
	cli.stdinReader = bufio.NewReader(strings.NewReader(input))
}

// optionNumber returns the 1-based number of the correct, or of a wrong, option of the current question.
func optionNumber(t *testing.T, q *QuizCLI, correct bool) string {
	t.Helper()
	question, ok := q.session.Current()
	require.True(t, ok)
	for i, option := range question.Options {
		if (option.Value == question.CorrectValue) == correct {
			return fmt.Sprint(i + 1)
		}
	}
	t.Fatal("no such option")
	return ""
}

func TestNewQuizCLI_InvalidSettings(t *testing.T) {
	_, err := NewQuizCLI(staticLoader(nil), quiz.Settings{Mode: quiz.ModeRandom, Count: 7, Direction: quiz.DirectionMix}, nil, nil)
	assert.Error(t, err)
}

func TestQuizCLI_Session(t *testing.T) {
	ctx := context.Background()
	q, out := newTestQuizCLI(t, testCategories(), quiz.Settings{
		Mode:      quiz.ModeRandom,
		Count:     quiz.CountAll,
		Direction: quiz.DirectionEnToAr,
	})

	require.NoError(t, q.Session(ctx))
	assert.Equal(t, quiz.StageActive, q.session.Stage())
	assert.Contains(t, out.String(), "Starting a quiz with 3 questions")

	setInput(q.InteractiveCLI, "9\nabc\n" + optionNumber(t, q, true) + "\n")
	require.NoError(t, q.Session(ctx))
	assert.Contains(t, out.String(), "Question 1 of 3   ✅ Correct: 0")
	assert.Contains(t, out.String(), "Choose the correct Arabic:")
	assert.Contains(t, out.String(), "Please enter a number between 1 and 3.")
	assert.Contains(t, out.String(), "Correct!")

	setInput(q.InteractiveCLI, optionNumber(t, q, false) + "\n")
	require.NoError(t, q.Session(ctx))
	assert.Contains(t, out.String(), "Wrong. The answer is ")

	setInput(q.InteractiveCLI, optionNumber(t, q, true) + "\n")
	require.NoError(t, q.Session(ctx))
	assert.Equal(t, quiz.StageResults, q.session.Stage())

	setInput(q.InteractiveCLI, "r\n")
	require.NoError(t, q.Session(ctx))
	assert.Contains(t, out.String(), "📊 Quiz Results")
	assert.Contains(t, out.String(), "You got 2 out of 3 correct.")
	assert.Contains(t, out.String(), "Review:\n  2. ")
	assert.Equal(t, quiz.StageSetup, q.session.Stage())

	require.NoError(t, q.Session(ctx))
	setInput(q.InteractiveCLI, "q\n")
	assert.ErrorIs(t, q.Session(ctx), errEnd)
}

func TestQuizCLI_PerfectScore(t *testing.T) {
	ctx := context.Background()
	q, out := newTestQuizCLI(t, testCategories(), quiz.Settings{
		Mode:      quiz.ModeByCategory,
		Category:  "Greetings",
		Direction: quiz.DirectionArToEn,
	})

	require.NoError(t, q.Session(ctx))
	for q.session.Stage() == quiz.StageActive {
		setInput(q.InteractiveCLI, optionNumber(t, q, true) + "\n")
		require.NoError(t, q.Session(ctx))
	}

	setInput(q.InteractiveCLI, "q\n")
	assert.ErrorIs(t, q.Session(ctx), errEnd)
	assert.Contains(t, out.String(), "🎆 Perfect Score!")
	assert.Contains(t, out.String(), "You got 2 out of 2 correct.")
	assert.NotContains(t, out.String(), "Review:")
}

func TestQuizCLI_Run(t *testing.T) {
	t.Run("empty deck", func(t *testing.T) {
		var out bytes.Buffer
		q, err := NewQuizCLI(staticLoader(nil), quiz.Settings{Mode: quiz.ModeRandom, Count: 10, Direction: quiz.DirectionMix}, strings.NewReader(""), &out)
		require.NoError(t, err)

		require.NoError(t, q.Run(context.Background(), q))
		assert.Contains(t, out.String(), "No phrases to quiz on.")
	})

	t.Run("quit mid-quiz", func(t *testing.T) {
		var out bytes.Buffer
		q, err := NewQuizCLI(staticLoader(testCategories()), quiz.Settings{Mode: quiz.ModeRandom, Count: 10, Direction: quiz.DirectionMix}, strings.NewReader("q\n"), &out)
		require.NoError(t, err)

		require.NoError(t, q.Run(context.Background(), q))
		assert.Contains(t, out.String(), "Question 1 of 3")
	})
}
