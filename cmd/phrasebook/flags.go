package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/phrasebook/internal/quiz"
	"github.com/at-ishikawa/phrasebook/internal/translate"
)

// DirectionFlag is the translation direction of the translate commands.
type DirectionFlag translate.Direction

// Set implements pflag.Value.
func (d *DirectionFlag) Set(v string) error {
	direction, err := translate.ParseDirection(v)
	if err != nil {
		return err
	}
	*d = DirectionFlag(direction)
	return nil
}

// String implements pflag.Value.
func (d *DirectionFlag) String() string {
	if d == nil {
		return ""
	}
	return string(*d)
}

// Type implements pflag.Value.
func (d *DirectionFlag) Type() string {
	return "DirectionFlag"
}

// QuizDirectionFlag is how quiz questions are asked; it also accepts mix.
type QuizDirectionFlag quiz.Direction

// Set implements pflag.Value.
func (d *QuizDirectionFlag) Set(v string) error {
	switch direction := quiz.Direction(v); direction {
	case quiz.DirectionEnToAr, quiz.DirectionArToEn, quiz.DirectionMix:
		*d = QuizDirectionFlag(direction)
	default:
		return fmt.Errorf("invalid value %q, valid values are %q, %q or %q", v, quiz.DirectionEnToAr, quiz.DirectionArToEn, quiz.DirectionMix)
	}
	return nil
}

// String implements pflag.Value.
func (d *QuizDirectionFlag) String() string {
	if d == nil {
		return ""
	}
	return string(*d)
}

// Type implements pflag.Value.
func (d *QuizDirectionFlag) Type() string {
	return "QuizDirectionFlag"
}

// ModeFlag selects random or category mode for both flashcards and quizzes.
type ModeFlag string

const (
	ModeRandom   ModeFlag = "random"
	ModeCategory ModeFlag = "category"
)

// Set implements pflag.Value.
func (m *ModeFlag) Set(v string) error {
	switch ModeFlag(v) {
	case ModeRandom:
		*m = ModeRandom
	case ModeCategory:
		*m = ModeCategory
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, ModeRandom, ModeCategory)
	}
	return nil
}

// String implements pflag.Value.
func (m *ModeFlag) String() string {
	if m == nil {
		return ""
	}
	return string(*m)
}

// Type implements pflag.Value.
func (m *ModeFlag) Type() string {
	return "ModeFlag"
}

// CountFlag is the number of quiz questions; "all" is stored as quiz.CountAll.
type CountFlag int

// Set implements pflag.Value.
func (c *CountFlag) Set(v string) error {
	if v == "all" {
		*c = CountFlag(quiz.CountAll)
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n == quiz.CountAll {
		return fmt.Errorf("invalid value %q, valid values are 10, 25, 50 or all", v)
	}
	for _, count := range quiz.Counts {
		if n == count {
			*c = CountFlag(n)
			return nil
		}
	}
	return fmt.Errorf("invalid value %q, valid values are 10, 25, 50 or all", v)
}

// String implements pflag.Value.
func (c *CountFlag) String() string {
	if c == nil {
		return ""
	}
	if int(*c) == quiz.CountAll {
		return "all"
	}
	return strconv.Itoa(int(*c))
}

// Type implements pflag.Value.
func (c *CountFlag) Type() string {
	return "CountFlag"
}

var (
	_ pflag.Value = (*DirectionFlag)(nil)
	_ pflag.Value = (*QuizDirectionFlag)(nil)
	_ pflag.Value = (*ModeFlag)(nil)
	_ pflag.Value = (*CountFlag)(nil)
)
