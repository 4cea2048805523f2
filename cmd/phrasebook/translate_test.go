package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/phrasebook/internal/inference"
	mock_inference "github.com/at-ishikawa/phrasebook/internal/mocks/inference"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestTranslateTextCommand(t *testing.T) {
	backend, client := newBackend(t)
	cfgPath := setupConfig(t, backend.URL)

	client.EXPECT().
		Translate(gomock.Any(), inference.TranslateRequest{Text: "Good morning", Direction: inference.DirectionEnToAr}).
		Return(inference.Translation{
			Arabic:          "صباح الخير",
			English:         "Good morning",
			Transliteration: "sabah al-khayr",
		}, nil).
		Times(1)

	output, err := execute(t, cfgPath, "", "translate", "text", "--save", "Good", "morning")
	require.NoError(t, err)
	assert.Equal(t, "Arabic: صباح الخير\n"+
		"Transliteration: sabah al-khayr\n"+
		"English: Good morning\n"+
		"Suggested category: 👋🏼 Greetings\n"+
		"Saved to 👋🏼 Greetings\n", output)

	output, err = execute(t, cfgPath, "", "translate", "text", "good morning ")
	require.NoError(t, err)
	assert.Contains(t, output, "(from cache)")

	output, err = execute(t, cfgPath, "", "categories")
	require.NoError(t, err)
	assert.Contains(t, output, "Greetings (3)")
}

func TestTranslateTextCommand_SaveWithCategory(t *testing.T) {
	backend, client := newBackend(t)
	cfgPath := setupConfig(t, backend.URL)

	client.EXPECT().
		Translate(gomock.Any(), inference.TranslateRequest{Text: "ماء", Direction: inference.DirectionArToEn}).
		Return(inference.Translation{Arabic: "ماء", English: "Water", Transliteration: "maa'"}, nil)

	output, err := execute(t, cfgPath, "", "translate", "text", "--direction", "ar_to_en", "--save", "--category", "Food - Drinks", "ماء")
	require.NoError(t, err)
	assert.Contains(t, output, "Suggested category: 🗂️ Saved\n")
	assert.Contains(t, output, "Saved to 🧃☕️ Food - Drinks\n")
}

func TestTranslateTextCommand_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		setupMock func(client *mock_inference.MockClient)
		wantErr   string
	}{
		{
			name:    "blank text",
			args:    []string{"translate", "text", "  "},
			wantErr: "nothing to translate",
		},
		{
			name:    "invalid direction",
			args:    []string{"translate", "text", "--direction", "mix", "Hello"},
			wantErr: "unknown direction",
		},
		{
			name: "server failure",
			args: []string{"translate", "text", "Hello"},
			setupMock: func(client *mock_inference.MockClient) {
				client.EXPECT().
					Translate(gomock.Any(), gomock.Any()).
					Return(inference.Translation{}, errors.New("upstream is down"))
			},
			wantErr: "Translation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, client := newBackend(t)
			cfgPath := setupConfig(t, backend.URL)
			if tt.setupMock != nil {
				tt.setupMock(client)
			}

			_, err := execute(t, cfgPath, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTranslateImageCommand(t *testing.T) {
	backend, client := newBackend(t)
	cfgPath := setupConfig(t, backend.URL)

	imagePath := filepath.Join(t.TempDir(), "menu.png")
	require.NoError(t, os.WriteFile(imagePath, pngHeader, 0644))
	textPath := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("not a photo"), 0644))

	client.EXPECT().
		TranslateImage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req inference.ImageTranslateRequest) (inference.Translation, error) {
			assert.Equal(t, "image/png", req.ContentType)
			assert.Equal(t, inference.DirectionEnToAr, req.Direction)
			return inference.Translation{Arabic: "قهوة", English: "Coffee", Transliteration: "qahwa"}, nil
		}).
		Times(2)

	output, err := execute(t, cfgPath, "", "translate", "image", imagePath)
	require.NoError(t, err)
	assert.Contains(t, output, "Image translations this month: 1/2\n")
	assert.Contains(t, output, "English: Coffee\n")

	_, err = execute(t, cfgPath, "", "translate", "image", textPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the file is not an image")

	output, err = execute(t, cfgPath, "", "translate", "image", imagePath)
	require.NoError(t, err)
	assert.Contains(t, output, "Image translations this month: 2/2\n")

	_, err = execute(t, cfgPath, "", "translate", "image", imagePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monthly image translation limit")
}

func TestTranslateImageCommand_MissingFile(t *testing.T) {
	cfgPath := setupConfig(t, "")

	_, err := execute(t, cfgPath, "", "translate", "image", filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "os.ReadFile")
}
