package translate

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/at-ishikawa/phrasebook/internal/phrase"
	"github.com/at-ishikawa/phrasebook/internal/suggest"
)

// Translation is a translation result together with where it came from and the category it fits.
type Translation struct {
	Result
	Direction         Direction
	Cached            bool
	SuggestedCategory string
}

// Phrase returns the translation as a phrase to save in category.
func (t Translation) Phrase(category string) phrase.Phrase {
	return phrase.Phrase{
		Arabic:          t.Arabic,
		English:         t.English,
		Transliteration: t.Transliteration,
		Category:        category,
		Source:          phrase.TranslatorSource,
	}
}

// Translator looks translations up through the cache, the image quota and the client.
// Only the most recent request is answered; an older one that finishes later returns ErrStaleResponse.
type Translator struct {
	client    Client
	cache     *Cache
	quota     *Quota
	suggester *suggest.Suggester
	sequencer Sequencer
}

func NewTranslator(client Client, cache *Cache, quota *Quota, suggester *suggest.Suggester) *Translator {
	return &Translator{
		client:    client,
		cache:     cache,
		quota:     quota,
		suggester: suggester,
	}
}

func (t *Translator) Text(ctx context.Context, text string, direction Direction) (Translation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Translation{}, ErrEmptyText
	}
	token := t.sequencer.Next()

	if cached, ok := t.cache.Get(ctx, direction, text); ok {
		slog.Debug("translation cache hit", "key", CacheKey(direction, text))
		return t.translation(cached, direction, true), nil
	}

	result, err := t.client.TranslateText(ctx, text, direction)
	if err != nil {
		return Translation{}, fmt.Errorf("client.TranslateText > %w", err)
	}
	if !t.sequencer.IsLatest(token) {
		return Translation{}, ErrStaleResponse
	}
	if err := t.cache.Set(ctx, direction, text, result); err != nil {
		slog.Warn("failed to cache a translation", "error", err)
	}
	return t.translation(result, direction, false), nil
}

// Image translates the text in a photo. The monthly quota is checked before anything is uploaded.
func (t *Translator) Image(ctx context.Context, fileName string, contents []byte, direction Direction) (Translation, error) {
	if err := t.quota.Check(ctx); err != nil {
		return Translation{}, err
	}
	mime := mimetype.Detect(contents)
	if !strings.HasPrefix(mime.String(), "image/") {
		return Translation{}, fmt.Errorf("%w: %s is %s", ErrNotImage, filepath.Base(fileName), mime.String())
	}
	token := t.sequencer.Next()

	result, err := t.client.TranslateImage(ctx, Image{
		FileName:    filepath.Base(fileName),
		ContentType: mime.String(),
		Contents:    bytes.NewReader(contents),
	}, direction)
	if err != nil {
		return Translation{}, fmt.Errorf("client.TranslateImage > %w", err)
	}
	usage, err := t.quota.Increment(ctx)
	if err != nil {
		slog.Warn("failed to record image usage", "error", err)
	}
	slog.Debug("image translated", "used", usage.Used, "limit", t.quota.Limit())
	if !t.sequencer.IsLatest(token) {
		return Translation{}, ErrStaleResponse
	}
	return t.translation(result, direction, false), nil
}

func (t *Translator) Usage(ctx context.Context) (Usage, int) {
	return t.quota.Usage(ctx), t.quota.Limit()
}

func (t *Translator) translation(result Result, direction Direction, cached bool) Translation {
	return Translation{
		Result:    result,
		Direction: direction,
		Cached:    cached,
		SuggestedCategory: t.suggester.Suggest(suggest.Candidate{
			English: result.English,
			Arabic:  result.Arabic,
		}),
	}
}
