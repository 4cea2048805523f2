package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/phrasebook/internal/event"
	"github.com/at-ishikawa/phrasebook/internal/flashcard"
	"github.com/at-ishikawa/phrasebook/internal/phrase"
)

// FlashcardCLI drills the phrases one card at a time: the Arabic first, then the English on flip.
type FlashcardCLI struct {
	*InteractiveCLI
	session *flashcard.Session
	load    DeckLoader
	events  <-chan event.Event
}

func NewFlashcardCLI(ctx context.Context, load DeckLoader, stdin io.Reader, stdout io.Writer, opts ...flashcard.Option) (*FlashcardCLI, error) {
	session := flashcard.NewSession(opts...)
	categories, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load > %w", err)
	}
	session.Load(categories)

	return &FlashcardCLI{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		session:        session,
		load:           load,
	}, nil
}

// Watch reloads the deck before the next card whenever the saved phrases change,
// in this process or, through the storage watcher, in another one.
func (f *FlashcardCLI) Watch(bus *event.Bus) (unsubscribe func()) {
	events, unsubscribe := bus.Subscribe(event.SavedPhrasesChanged, event.StorageChanged)
	f.events = events
	return unsubscribe
}

func (f *FlashcardCLI) SetMode(mode flashcard.Mode) error {
	return f.session.SetMode(mode)
}

func (f *FlashcardCLI) SelectCategory(name string) error {
	return f.session.SelectCategory(name)
}

func (f *FlashcardCLI) CardCount() int {
	return f.session.Len()
}

func (f *FlashcardCLI) Session(ctx context.Context) error {
	f.refresh(ctx)

	f.render()
	f.faint.Fprint(f.stdoutWriter, "[Enter] flip  [n]ext  [p]revious  [s]huffle  [m]ode  [c]ategory <name>  [q]uit: ")
	input, err := f.readLine()
	if err != nil {
		return err
	}

	command, argument, _ := strings.Cut(input, " ")
	switch strings.ToLower(command) {
	case "", "f", "flip":
		f.session.Flip()
	case "n", "next":
		if !f.session.Next() {
			f.println("This is the last card.")
		}
	case "p", "prev", "previous":
		if !f.session.Previous() {
			f.println("This is the first card.")
		}
	case "s", "shuffle":
		f.session.Shuffle()
	case "m", "mode":
		next := flashcard.ModeByCategory
		if f.session.Mode() == flashcard.ModeByCategory {
			next = flashcard.ModeRandom
		}
		if err := f.session.SetMode(next); err != nil {
			return err
		}
		f.printf("Mode: %s\n", next)
	case "c", "category":
		f.selectCategory(strings.TrimSpace(argument))
	case "q", "quit", "exit":
		return errEnd
	default:
		f.printf("Unknown command: %s\n", input)
	}
	return nil
}

// refresh reloads the deck when a change was announced since the last card.
func (f *FlashcardCLI) refresh(ctx context.Context) {
	if !f.pendingChange() {
		return
	}
	categories, err := f.load(ctx)
	if err != nil {
		slog.Warn("failed to reload the phrases", "error", err)
		return
	}
	f.session.Load(categories)
	f.faint.Fprintln(f.stdoutWriter, "Phrases updated.")
}

// pendingChange drains the announced changes without blocking.
func (f *FlashcardCLI) pendingChange() bool {
	changed := false
	for {
		select {
		case _, ok := <-f.events:
			if !ok {
				f.events = nil
				return changed
			}
			changed = true
		default:
			return changed
		}
	}
}

func (f *FlashcardCLI) selectCategory(name string) {
	if name == "" {
		f.println("Categories:")
		for _, category := range f.session.Categories() {
			f.printf("  %s %s\n", phrase.CategoryEmoji(category), category)
		}
		return
	}
	if err := f.session.SelectCategory(name); err != nil {
		if errors.Is(err, flashcard.ErrUnknownCategory) {
			f.printf("No category named %q\n", name)
			return
		}
		f.printf("%v\n", err)
		return
	}
	if f.session.Mode() != flashcard.ModeByCategory {
		_ = f.session.SetMode(flashcard.ModeByCategory)
	}
}

func (f *FlashcardCLI) render() {
	card, ok := f.session.Current()
	if !ok {
		emoji := phrase.DefaultCategoryEmoji
		if f.session.Mode() == flashcard.ModeByCategory {
			emoji = phrase.CategoryEmoji(f.session.SelectedCategory())
		}
		f.printf("\n%s No cards to show.\n", emoji)
		return
	}

	f.printf("\n%s %s  (%d/%d, %s)\n", phrase.CategoryEmoji(card.Category), card.Category, f.session.Position()+1, f.session.Len(), f.session.Mode())
	if f.session.Face() == flashcard.FaceFront {
		f.bold.Fprintf(f.stdoutWriter, "  %s\n", card.Arabic)
		return
	}
	f.bold.Fprintf(f.stdoutWriter, "  %s\n", card.English)
	if card.Transliteration != "" {
		f.italic.Fprintf(f.stdoutWriter, "  %s\n", card.Transliteration)
	}
}
