package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`words:
  - word: sofa
    definition: a long upholstered seat
    alternatives:
      - couch
      - settee
  - word: junk food
    alternatives:
      - fast food
`), 0o644))

	list, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Len())

	entry, ok := list.Lookup("sofa")
	require.True(t, ok)
	assert.Equal(t, "a long upholstered seat", entry.Definition)
	assert.Equal(t, []string{"couch", "settee"}, entry.Alternatives)
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestList_Lookup(t *testing.T) {
	list := New([]Entry{
		{Word: "junk food", Alternatives: []string{"fast food"}},
		{Word: "sofa", Alternatives: []string{"couch"}},
		{Word: ""},
	})

	tests := []struct {
		name  string
		word  string
		found bool
	}{
		{name: "exact word", word: "sofa", found: true},
		{name: "case insensitive", word: "Sofa", found: true},
		{name: "hyphenated form of a spaced phrase", word: "junk-food", found: true},
		{name: "unknown word", word: "diet", found: false},
		{name: "empty word", word: "", found: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := list.Lookup(tt.word)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestList_Entries(t *testing.T) {
	entries := []Entry{
		{Word: "junk food"},
		{Word: "sofa"},
		{Word: "diet"},
	}
	list := New(entries)

	assert.Equal(t, entries, list.Entries())
}

func TestList_Alternatives(t *testing.T) {
	list := New([]Entry{
		{Word: "sofa", Alternatives: []string{"couch", "settee"}},
	})

	assert.Equal(t, []string{"couch", "settee"}, list.Alternatives("sofa"))
	assert.Nil(t, list.Alternatives("diet"))
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.yaml")
	entries := []Entry{
		{Word: "sofa", Definition: "a long upholstered seat", Alternatives: []string{"couch"}},
	}
	require.NoError(t, Write(path, entries))

	list, err := Load(path)
	require.NoError(t, err)
	entry, ok := list.Lookup("sofa")
	require.True(t, ok)
	assert.Equal(t, entries[0], entry)
}
