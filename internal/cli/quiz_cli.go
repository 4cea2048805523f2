package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/at-ishikawa/phrasebook/internal/quiz"
)

// QuizCLI runs multiple-choice quizzes with fixed settings until the user quits.
type QuizCLI struct {
	*InteractiveCLI
	session  *quiz.Session
	load     DeckLoader
	settings quiz.Settings
}

func NewQuizCLI(load DeckLoader, settings quiz.Settings, stdin io.Reader, stdout io.Writer, opts ...quiz.SessionOption) (*QuizCLI, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &QuizCLI{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		session:        quiz.NewSession(opts...),
		load:           load,
		settings:       settings,
	}, nil
}

func (q *QuizCLI) Session(ctx context.Context) error {
	switch q.session.Stage() {
	case quiz.StageSetup:
		return q.start(ctx)
	case quiz.StageActive:
		return q.ask()
	case quiz.StageResults:
		return q.results()
	}
	return fmt.Errorf("unknown quiz stage: %v", q.session.Stage())
}

func (q *QuizCLI) start(ctx context.Context) error {
	categories, err := q.load(ctx)
	if err != nil {
		return fmt.Errorf("load > %w", err)
	}
	if err := q.session.Start(categories, q.settings); err != nil {
		return fmt.Errorf("session.Start > %w", err)
	}
	_, total := q.session.Progress()
	if total == 0 {
		q.println("No phrases to quiz on. Save some phrases or pick another category.")
		return errEnd
	}
	q.printf("Starting a quiz with %d questions\n", total)
	return nil
}

func (q *QuizCLI) ask() error {
	question, ok := q.session.Current()
	if !ok {
		return errEnd
	}
	current, total := q.session.Progress()
	result := q.session.Result()

	q.printf("\nQuestion %d of %d   ✅ Correct: %d\n", current, total, result.Correct)
	q.faint.Fprintln(q.stdoutWriter, question.PromptTop)
	q.bold.Fprintf(q.stdoutWriter, "  %s\n", question.PromptMain)
	if question.PromptSub != "" {
		q.italic.Fprintf(q.stdoutWriter, "  %s\n", question.PromptSub)
	}
	for i, option := range question.Options {
		q.printf("  %d) %s\n", i+1, option.Label)
	}

	for {
		q.faint.Fprintf(q.stdoutWriter, "Answer [1-%d], [r]estart or [q]uit: ", len(question.Options))
		input, err := q.readLine()
		if err != nil {
			return err
		}
		switch strings.ToLower(input) {
		case "q", "quit", "exit":
			return errEnd
		case "r", "restart":
			q.session.Restart()
			return nil
		}

		number, err := strconv.Atoi(input)
		if err != nil || number < 1 || number > len(question.Options) {
			q.printf("Please enter a number between 1 and %d.\n", len(question.Options))
			continue
		}

		record, err := q.session.Choose(question.Options[number-1].Value)
		if err != nil {
			return fmt.Errorf("session.Choose > %w", err)
		}
		if record.IsCorrect {
			q.green.Fprintln(q.stdoutWriter, "Correct!")
		} else {
			q.red.Fprint(q.stdoutWriter, "Wrong. ")
			q.printf("The answer is %s\n", labelOf(question, record.Correct))
		}
		return q.session.Next()
	}
}

func (q *QuizCLI) results() error {
	result := q.session.Result()
	if result.Perfect && result.Total > 0 {
		q.bold.Fprintln(q.stdoutWriter, "\n🎆 Perfect Score!")
	} else {
		q.bold.Fprintln(q.stdoutWriter, "\n📊 Quiz Results")
	}
	q.printf("You got %d out of %d correct.\n", result.Correct, result.Total)
	if result.Perfect && result.Total > 0 {
		q.println("May your memory be as sticky as honey on a warm spoon 🍯🧠")
	}

	var missed []quiz.AnswerRecord
	for _, answer := range q.session.Answers() {
		if !answer.IsCorrect {
			missed = append(missed, answer)
		}
	}
	if len(missed) > 0 {
		q.println("\nReview:")
		for _, answer := range missed {
			q.printf("  %d. %s → %s (you chose %s)\n", answer.Index+1, answer.Prompt, answer.Correct, answer.Chosen)
		}
	}

	q.faint.Fprint(q.stdoutWriter, "\n[r]estart or [q]uit: ")
	input, err := q.readLine()
	if err != nil {
		return err
	}
	if strings.EqualFold(input, "r") || strings.EqualFold(input, "restart") {
		q.session.Restart()
		return nil
	}
	return errEnd
}

func labelOf(question quiz.Question, value string) string {
	for _, option := range question.Options {
		if option.Value == value {
			return option.Label
		}
	}
	return value
}
