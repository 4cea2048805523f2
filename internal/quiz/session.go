package quiz

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/at-ishikawa/phrasebook/internal/phrase"
)

type SessionOption func(*Session)

func WithRand(r *rand.Rand) SessionOption {
	return func(s *Session) {
		s.rand = r
	}
}

// Session walks through setup, the questions and the results of one quiz.
// It is not safe for concurrent use.
type Session struct {
	rand *rand.Rand

	stage     Stage
	settings  Settings
	questions []Question
	index     int
	locked    bool
	chosen    string
	correct   int
	answers   []AnswerRecord
	perfect   bool
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Start builds the questions and makes the quiz active.
// An empty deck still starts the quiz, with no questions; only Restart leaves that state.
func (s *Session) Start(categories []phrase.Category, settings Settings) error {
	if s.stage != StageSetup {
		return ErrNotInSetup
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	s.settings = settings
	s.questions = buildQuestions(s.rand, categories, settings)
	s.resetProgress()
	s.stage = StageActive
	return nil
}

// Choose answers the current question and locks it.
func (s *Session) Choose(value string) (AnswerRecord, error) {
	question, err := s.activeQuestion()
	if err != nil {
		return AnswerRecord{}, err
	}
	if s.locked {
		return AnswerRecord{}, ErrLocked
	}
	if !slices.ContainsFunc(question.Options, func(o Option) bool { return o.Value == value }) {
		return AnswerRecord{}, fmt.Errorf("%w: %s", ErrUnknownOption, value)
	}

	s.locked = true
	s.chosen = value
	record := AnswerRecord{
		Index:     s.index,
		Direction: question.Direction,
		Prompt:    question.PromptMain,
		Correct:   question.CorrectValue,
		Chosen:    value,
		IsCorrect: value == question.CorrectValue,
	}
	if record.IsCorrect {
		s.correct++
	}
	s.answers = append(s.answers, record)
	return record, nil
}

// Next moves to the following question, or to the results after the last one.
func (s *Session) Next() error {
	if _, err := s.activeQuestion(); err != nil {
		return err
	}
	if !s.locked {
		return ErrNotAnswered
	}
	if s.index < len(s.questions)-1 {
		s.index++
		s.locked = false
		s.chosen = ""
		return nil
	}
	s.perfect = s.correct == len(s.questions)
	s.stage = StageResults
	return nil
}

// Restart discards everything and goes back to setup.
func (s *Session) Restart() {
	s.stage = StageSetup
	s.questions = nil
	s.resetProgress()
}

func (s *Session) Stage() Stage {
	return s.stage
}

func (s *Session) Settings() Settings {
	return s.settings
}

func (s *Session) Questions() []Question {
	return slices.Clone(s.questions)
}

// Current returns the question being asked; false outside the active stage or when there are no questions.
func (s *Session) Current() (Question, bool) {
	question, err := s.activeQuestion()
	return question, err == nil
}

// Locked reports whether the current question has been answered, and with which value.
func (s *Session) Locked() (bool, string) {
	return s.locked, s.chosen
}

// Progress returns the 1-based number of the current question and the total.
func (s *Session) Progress() (int, int) {
	if len(s.questions) == 0 {
		return 0, 0
	}
	return s.index + 1, len(s.questions)
}

func (s *Session) Result() Result {
	return Result{
		Total:   len(s.questions),
		Correct: s.correct,
		Perfect: s.perfect,
	}
}

func (s *Session) Answers() []AnswerRecord {
	return slices.Clone(s.answers)
}

func (s *Session) activeQuestion() (Question, error) {
	if s.stage != StageActive {
		return Question{}, ErrNotActive
	}
	if len(s.questions) == 0 {
		return Question{}, ErrNoQuestions
	}
	return s.questions[s.index], nil
}

func (s *Session) resetProgress() {
	s.index = 0
	s.locked = false
	s.chosen = ""
	s.correct = 0
	s.answers = nil
	s.perfect = false
}
