// Package flashcard drives a flashcard drill over the combined phrase set.
package flashcard

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/at-ishikawa/phrasebook/internal/phrase"
)

type Mode string

const (
	ModeRandom     Mode = "random"
	ModeByCategory Mode = "category"
)

type State int

const (
	// StateIdle means no phrase set has been loaded yet.
	StateIdle State = iota
	StateViewing
)

// Face is the side of the current card on display.
type Face int

const (
	// FaceFront shows the Arabic text.
	FaceFront Face = iota
	// FaceBack shows the English text and the transliteration.
	FaceBack
)

var ErrUnknownCategory = errors.New("unknown category")

type Option func(*Session)

// WithRand replaces the random source the deck is shuffled with.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		s.rand = r
	}
}

// Session is the state of one flashcard drill. It is not safe for concurrent use.
type Session struct {
	rand *rand.Rand

	state      State
	categories []string
	cards      []phrase.Card

	mode     Mode
	selected string

	deck     []phrase.Card
	order    []int
	position int
	face     Face
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		mode: ModeRandom,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Load replaces the phrase set. The deck is rebuilt and reshuffled.
func (s *Session) Load(categories []phrase.Category) {
	s.state = StateViewing
	s.categories = phrase.CategoryNames(categories)
	s.cards = phrase.Flatten(categories)
	s.ensureSelection()
	s.rebuild()
}

func (s *Session) SetMode(mode Mode) error {
	switch mode {
	case ModeRandom, ModeByCategory:
	default:
		return fmt.Errorf("unknown flashcard mode: %q", mode)
	}
	if mode == s.mode {
		return nil
	}
	s.mode = mode
	s.ensureSelection()
	s.rebuild()
	return nil
}

// SelectCategory picks the category used in ModeByCategory.
func (s *Session) SelectCategory(name string) error {
	if !slices.Contains(s.categories, name) {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	if name == s.selected {
		return nil
	}
	s.selected = name
	if s.mode == ModeByCategory {
		s.rebuild()
	}
	return nil
}

// Shuffle reorders the current deck and goes back to its first card.
func (s *Session) Shuffle() {
	if len(s.deck) == 0 {
		return
	}
	s.reorder()
}

// Next moves to the following card. It reports false at the end of the deck.
func (s *Session) Next() bool {
	if s.position >= len(s.deck)-1 {
		return false
	}
	s.position++
	s.face = FaceFront
	return true
}

// Previous moves to the preceding card. It reports false at the start of the deck.
func (s *Session) Previous() bool {
	if s.position <= 0 {
		return false
	}
	s.position--
	s.face = FaceFront
	return true
}

func (s *Session) Flip() {
	if s.face == FaceFront {
		s.face = FaceBack
		return
	}
	s.face = FaceFront
}

// Current returns the card under the cursor; false means the deck is empty.
func (s *Session) Current() (phrase.Card, bool) {
	if len(s.deck) == 0 {
		return phrase.Card{}, false
	}
	position := min(s.position, len(s.deck)-1)
	return s.deck[s.order[position]], true
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) Face() Face {
	return s.face
}

func (s *Session) Position() int {
	return s.position
}

func (s *Session) Len() int {
	return len(s.deck)
}

func (s *Session) Categories() []string {
	return slices.Clone(s.categories)
}

func (s *Session) SelectedCategory() string {
	return s.selected
}

// ensureSelection falls back to the first category when the selected one is gone.
func (s *Session) ensureSelection() {
	if s.mode != ModeByCategory {
		return
	}
	if s.selected != "" && slices.Contains(s.categories, s.selected) {
		return
	}
	s.selected = ""
	if len(s.categories) > 0 {
		s.selected = s.categories[0]
	}
}

func (s *Session) rebuild() {
	s.deck = s.cards
	if s.mode == ModeByCategory && s.selected != "" {
		s.deck = phrase.FilterCards(s.cards, s.selected)
	}
	s.reorder()
}

// reorder draws a new Fisher-Yates permutation of the deck indices.
func (s *Session) reorder() {
	s.order = make([]int, len(s.deck))
	for i := range s.order {
		s.order[i] = i
	}
	for i := len(s.order) - 1; i > 0; i-- {
		j := s.rand.Intn(i + 1)
		s.order[i], s.order[j] = s.order[j], s.order[i]
	}
	s.position = 0
	s.face = FaceFront
}
