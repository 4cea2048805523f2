package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesCommand(t *testing.T) {
	cfgPath := setupConfig(t, "")

	output, err := execute(t, cfgPath, "", "categories")
	require.NoError(t, err)
	assert.Equal(t, "👋🏼 Greetings (2) [greetings]\n"+
		"💰🛍️ Money & Shopping (1) [money-and-shopping]\n"+
		"🗂️ Saved (0) [saved]\n"+
		"🗂️ Other (0) [other]\n", output)
}

func TestPhrasesCommand(t *testing.T) {
	tests := []struct {
		name         string
		category     string
		wantContains []string
		wantErr      string
	}{
		{
			name:     "by name",
			category: "Greetings",
			wantContains: []string{
				"👋🏼 Greetings",
				"  صباح الخير\n    sabah al-khayr\n    Good morning\n",
			},
		},
		{
			name:         "by slug",
			category:     "money-and-shopping",
			wantContains: []string{"How much is this?"},
		},
		{
			name:         "empty category",
			category:     "saved",
			wantContains: []string{"No phrases yet."},
		},
		{
			name:     "unknown category",
			category: "Weather",
			wantErr:  `category "Weather" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := setupConfig(t, "")

			output, err := execute(t, cfgPath, "", "phrases", tt.category)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestSaveCommand(t *testing.T) {
	cfgPath := setupConfig(t, "")
	args := []string{"save", "--arabic", " شكرا ", "--english", "Thank you", "--translit", "shukran", "--category", "Greetings"}

	output, err := execute(t, cfgPath, "", args...)
	require.NoError(t, err)
	assert.Equal(t, "Saved to 👋🏼 Greetings\n", output)

	output, err = execute(t, cfgPath, "", args...)
	require.NoError(t, err)
	assert.Equal(t, "Already saved in Greetings\n", output)

	output, err = execute(t, cfgPath, "", "phrases", "greetings")
	require.NoError(t, err)
	assert.Contains(t, output, "👋🏼 Greetings\n  شكرا\n    shukran\n    Thank you\n")
}

func TestSaveCommand_DefaultCategory(t *testing.T) {
	cfgPath := setupConfig(t, "")

	output, err := execute(t, cfgPath, "", "save", "--arabic", "نعم", "--english", "Yes")
	require.NoError(t, err)
	assert.Equal(t, "Saved to 🗂️ Saved\n", output)
}

func TestSaveCommand_MissingText(t *testing.T) {
	cfgPath := setupConfig(t, "")

	_, err := execute(t, cfgPath, "", "save", "--arabic", "نعم")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot save")
}

func TestCommand_InvalidConfig(t *testing.T) {
	_, err := execute(t, "/nonexistent/config.yml", "", "categories")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration")
}
