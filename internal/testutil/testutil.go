// Package testutil provides shared test helpers for creating config files and phrase fixtures.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/phrasebook/internal/phrase"
)

// SetupTestConfig creates a config file keeping everything under tmpDir, with both the
// translator and sync endpoints pointing at serverURL. Returns the path to the config file.
func SetupTestConfig(t *testing.T, tmpDir, serverURL string) string {
	t.Helper()

	for _, d := range []string{"storage", "outputs"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`storage:
  driver: file
  directory: %s
  watch: false
translator:
  base_url: %s
  image_monthly_limit: 2
sync:
  base_url: %s
  retry_attempts: 0
outputs:
  directory: %s
`,
		filepath.Join(tmpDir, "storage"),
		serverURL,
		serverURL,
		filepath.Join(tmpDir, "outputs"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithCorpus is SetupTestConfig with the corpus read from a JSON file of categories.
func SetupTestConfigWithCorpus(t *testing.T, tmpDir, serverURL string, corpus []phrase.Category) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir, serverURL)

	corpusPath := filepath.Join(tmpDir, "phrases.json")
	contents, err := json.Marshal(corpus)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(corpusPath, contents, 0644))

	f, err := os.OpenFile(cfgPath, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()
	_, err = fmt.Fprintf(f, "corpus:\n  file: %s\n", corpusPath)
	require.NoError(t, err)
	return cfgPath
}
