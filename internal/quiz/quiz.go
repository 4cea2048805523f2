// Package quiz builds and runs multiple-choice quizzes over the combined phrase set.
package quiz

import (
	"errors"
	"fmt"
	"slices"
)

type Mode string

const (
	ModeRandom     Mode = "random"
	ModeByCategory Mode = "category"
)

// Direction is the way a question is asked.
type Direction string

const (
	// DirectionEnToAr shows English and asks for the Arabic.
	DirectionEnToAr Direction = "en_to_ar"
	// DirectionArToEn shows Arabic and asks for the English meaning.
	DirectionArToEn Direction = "ar_to_en"
	// DirectionMix picks one of the two per question.
	DirectionMix Direction = "mix"
)

type Stage int

const (
	StageSetup Stage = iota
	StageActive
	StageResults
)

func (s Stage) String() string {
	switch s {
	case StageSetup:
		return "setup"
	case StageActive:
		return "active"
	case StageResults:
		return "results"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

const (
	// OptionCount is the number of options a question has when the deck is large enough.
	OptionCount = 4
	// CountAll asks for every card in the deck.
	CountAll = 0

	missingValue = "-"
)

// Counts lists the question counts a random quiz can be started with.
var Counts = []int{10, 25, 50, CountAll}

var (
	ErrNotInSetup    = errors.New("the quiz has already started")
	ErrNotActive     = errors.New("the quiz is not running")
	ErrNoQuestions   = errors.New("the quiz has no questions")
	ErrLocked        = errors.New("the question has already been answered")
	ErrUnknownOption = errors.New("not one of the options")
	ErrNotAnswered   = errors.New("the question has not been answered yet")
)

// Settings are chosen during setup. Count is ignored in ModeByCategory, which always uses the whole category.
type Settings struct {
	Mode      Mode
	Category  string
	Count     int
	Direction Direction
}

func (s Settings) Validate() error {
	switch s.Mode {
	case ModeRandom:
		if !slices.Contains(Counts, s.Count) {
			return fmt.Errorf("question count must be one of 10, 25, 50 or all: %d", s.Count)
		}
	case ModeByCategory:
	default:
		return fmt.Errorf("unknown quiz mode: %q", s.Mode)
	}
	switch s.Direction {
	case DirectionEnToAr, DirectionArToEn, DirectionMix:
	default:
		return fmt.Errorf("unknown question direction: %q", s.Direction)
	}
	return nil
}

type Option struct {
	Value string
	// Label is Value, followed by the transliteration for Arabic options when one is known.
	Label string
}

type Question struct {
	ID           string
	Direction    Direction
	PromptTop    string
	PromptMain   string
	PromptSub    string
	CorrectValue string
	Options      []Option
}

// AnswerRecord is one entry of the answer log.
type AnswerRecord struct {
	Index     int
	Direction Direction
	Prompt    string
	Correct   string
	Chosen    string
	IsCorrect bool
}

type Result struct {
	Total   int
	Correct int
	Perfect bool
}
