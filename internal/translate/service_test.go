package translate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_translate "github.com/at-ishikawa/phrasebook/internal/mocks/translate"
	"github.com/at-ishikawa/phrasebook/internal/phrase"
	"github.com/at-ishikawa/phrasebook/internal/storage"
	"github.com/at-ishikawa/phrasebook/internal/suggest"
	"github.com/at-ishikawa/phrasebook/internal/translate"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newTranslator(t *testing.T, limit int) (*translate.Translator, *mock_translate.MockClient, storage.Store) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock_translate.NewMockClient(ctrl)
	store := storage.NewMemoryStore()
	suggester := suggest.NewSuggester([]phrase.Category{
		{Category: "Greetings", Phrases: []phrase.Phrase{{Arabic: "صباح الخير", English: "Good morning"}}},
		{Category: "Food", Phrases: []phrase.Phrase{{Arabic: "ماء", English: "Water please"}}},
	})
	return translate.NewTranslator(client, translate.NewCache(store), translate.NewQuota(store, limit), suggester), client, store
}

func TestTranslator_Text(t *testing.T) {
	ctx := context.Background()
	translator, client, _ := newTranslator(t, 1)
	result := translate.Result{Arabic: "صباح الخير", English: "Good morning", Transliteration: "sabah al-khayr"}

	client.EXPECT().TranslateText(gomock.Any(), "Good morning", translate.DirectionEnToAr).Return(result, nil).Times(1)

	got, err := translator.Text(ctx, "  Good morning ", translate.DirectionEnToAr)
	require.NoError(t, err)
	assert.Equal(t, translate.Translation{
		Result:            result,
		Direction:         translate.DirectionEnToAr,
		SuggestedCategory: "Greetings",
	}, got)

	cached, err := translator.Text(ctx, "GOOD MORNING", translate.DirectionEnToAr)
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Equal(t, result, cached.Result)
	assert.Equal(t, "Greetings", cached.SuggestedCategory)

	p := cached.Phrase("Greetings")
	assert.Equal(t, phrase.TranslatorSource, p.Source)
	assert.Equal(t, "Greetings", p.Category)
	assert.Equal(t, "sabah al-khayr", p.Transliteration)
}

func TestTranslator_Text_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty text", func(t *testing.T) {
		translator, _, _ := newTranslator(t, 1)
		_, err := translator.Text(ctx, "   ", translate.DirectionEnToAr)
		assert.ErrorIs(t, err, translate.ErrEmptyText)
	})

	t.Run("client error is not cached", func(t *testing.T) {
		translator, client, _ := newTranslator(t, 1)
		gomock.InOrder(
			client.EXPECT().TranslateText(gomock.Any(), "water", translate.DirectionEnToAr).Return(translate.Result{}, errors.New("Request failed (500)")),
			client.EXPECT().TranslateText(gomock.Any(), "water", translate.DirectionEnToAr).Return(translate.Result{Arabic: "ماء", English: "Water"}, nil),
		)
		_, err := translator.Text(ctx, "water", translate.DirectionEnToAr)
		assert.ErrorContains(t, err, "Request failed (500)")

		got, err := translator.Text(ctx, "water", translate.DirectionEnToAr)
		require.NoError(t, err)
		assert.False(t, got.Cached)
	})

	t.Run("superseded request", func(t *testing.T) {
		translator, client, _ := newTranslator(t, 1)
		client.EXPECT().TranslateText(gomock.Any(), "first", translate.DirectionEnToAr).
			DoAndReturn(func(ctx context.Context, text string, direction translate.Direction) (translate.Result, error) {
				_, err := translator.Text(ctx, "second", direction)
				require.NoError(t, err)
				return translate.Result{English: "first"}, nil
			})
		client.EXPECT().TranslateText(gomock.Any(), "second", translate.DirectionEnToAr).Return(translate.Result{English: "second"}, nil)

		_, err := translator.Text(ctx, "first", translate.DirectionEnToAr)
		assert.ErrorIs(t, err, translate.ErrStaleResponse)
	})
}

func TestTranslator_Image(t *testing.T) {
	ctx := context.Background()
	translator, client, _ := newTranslator(t, 1)
	result := translate.Result{Arabic: "ماء", English: "Water please", Transliteration: "maa' min fadlak"}

	client.EXPECT().TranslateImage(gomock.Any(), gomock.Any(), translate.DirectionArToEn).
		DoAndReturn(func(_ context.Context, image translate.Image, _ translate.Direction) (translate.Result, error) {
			assert.Equal(t, "menu.png", image.FileName)
			assert.Equal(t, "image/png", image.ContentType)
			return result, nil
		})

	got, err := translator.Image(ctx, "/tmp/photos/menu.png", pngHeader, translate.DirectionArToEn)
	require.NoError(t, err)
	assert.Equal(t, result, got.Result)
	assert.Equal(t, "Food", got.SuggestedCategory)

	usage, limit := translator.Usage(ctx)
	assert.Equal(t, 1, usage.Used)
	assert.Equal(t, 1, limit)

	_, err = translator.Image(ctx, "menu.png", pngHeader, translate.DirectionArToEn)
	assert.ErrorIs(t, err, translate.ErrQuotaExceeded)
}

func TestTranslator_Image_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("not an image", func(t *testing.T) {
		translator, _, _ := newTranslator(t, 5)
		_, err := translator.Image(ctx, "notes.txt", []byte("just some text"), translate.DirectionEnToAr)
		assert.ErrorIs(t, err, translate.ErrNotImage)
	})

	t.Run("failed upload does not count", func(t *testing.T) {
		translator, client, _ := newTranslator(t, 5)
		client.EXPECT().TranslateImage(gomock.Any(), gomock.Any(), translate.DirectionEnToAr).Return(translate.Result{}, errors.New("Image translation failed"))

		_, err := translator.Image(ctx, "sign.png", pngHeader, translate.DirectionEnToAr)
		assert.ErrorContains(t, err, "Image translation failed")
		usage, _ := translator.Usage(ctx)
		assert.Equal(t, 0, usage.Used)
	})
}
