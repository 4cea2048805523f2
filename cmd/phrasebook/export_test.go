package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCommand(t *testing.T) {
	cfgPath := setupConfig(t, "")

	_, err := execute(t, cfgPath, "", "save", "--arabic", "شكرا", "--english", "Thank you | thanks", "--category", "Greetings")
	require.NoError(t, err)

	output, err := execute(t, cfgPath, "", "export", "--title", "Trip phrases")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(output, "Markdown written to "))
	markdownPath := strings.TrimSpace(strings.TrimPrefix(output, "Markdown written to "))
	assert.True(t, strings.HasSuffix(markdownPath, "phrasebook.md"))

	got, err := os.ReadFile(markdownPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "# Trip phrases\n"))
	assert.Contains(t, string(got), "## 👋🏼 Greetings\n")
	assert.Contains(t, string(got), `| شكرا | - | Thank you \| thanks |`)
	assert.Contains(t, string(got), "## 🗂️ Other\n\n_No phrases yet._\n")
}
