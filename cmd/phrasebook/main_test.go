package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/phrasebook/internal/config"
	mock_inference "github.com/at-ishikawa/phrasebook/internal/mocks/inference"
	"github.com/at-ishikawa/phrasebook/internal/phrase"
	"github.com/at-ishikawa/phrasebook/internal/server"
	"github.com/at-ishikawa/phrasebook/internal/storage"
	"github.com/at-ishikawa/phrasebook/internal/testutil"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{
		"categories", "phrases", "save", "translate", "flashcards", "quiz", "sync", "export",
	}, names)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

var testCorpus = []phrase.Category{
	{
		Category: "Greetings",
		Phrases: []phrase.Phrase{
			{Arabic: "صباح الخير", English: "Good morning", Transliteration: "sabah al-khayr"},
			{Arabic: "مرحبا", English: "Hello", Transliteration: "marhaba"},
		},
	},
	{
		Category: "Money & Shopping",
		Phrases: []phrase.Phrase{
			{Arabic: "بكم هذا؟", English: "How much is this?", Transliteration: "bikam hadha?"},
		},
	},
}

// newBackend serves the real API handlers in front of a mocked inference client.
func newBackend(t *testing.T) (*httptest.Server, *mock_inference.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock_inference.NewMockClient(ctrl)

	s, err := server.New(config.ServerConfig{MaxImageBytes: 1 << 20}, client, storage.NewMemoryStore())
	require.NoError(t, err)
	backend := httptest.NewServer(s.Handler())
	t.Cleanup(backend.Close)
	return backend, client
}

func setupConfig(t *testing.T, serverURL string) string {
	t.Helper()
	return testutil.SetupTestConfigWithCorpus(t, t.TempDir(), serverURL, testCorpus)
}

// execute runs the phrasebook command line with args against the config at cfgPath.
func execute(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}
