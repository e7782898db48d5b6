// Package testutil provides shared test helpers for creating config files and
// word list fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordtutor/internal/wordlist"
)

// SetupTestConfig creates a minimal config file, a dictionary cache directory
// and a word list for testing. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	cacheDir := filepath.Join(tmpDir, "dictionaries")
	require.NoError(t, os.MkdirAll(cacheDir, 0o755))

	wordlistPath := filepath.Join(tmpDir, "words.yaml")
	CreateWordlist(t, wordlistPath, []wordlist.Entry{
		{Word: "diet", Definition: "usual food and drink"},
		{Word: "sofa", Definition: "a long upholstered seat", Alternatives: []string{"couch", "settee"}},
		{Word: "consume"},
	})

	configContent := fmt.Sprintf(`server:
  port: 18080
dictionaries:
  rapidapi:
    cache_directory: %s
wordlist:
  path: %s
`,
		cacheDir,
		wordlistPath,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0o644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file with a fake OpenAI API key
// for tests that exercise the model path.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("openai:\n  api_key: fake-key-for-testing\n  model: gpt-4o-mini\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0o644))
	return cfgPath
}

// CreateWordlist writes a word list file with the given entries.
func CreateWordlist(t *testing.T, path string, entries []wordlist.Entry) {
	t.Helper()
	require.NoError(t, wordlist.Write(path, entries))
}
