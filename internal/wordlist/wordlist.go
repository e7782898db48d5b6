// Package wordlist loads the practice word list, a YAML file mapping target
// expressions to curated definitions and accepted alternatives.
package wordlist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/wordtutor/internal/textnorm"
)

type Entry struct {
	Word         string   `yaml:"word"`
	Definition   string   `yaml:"definition,omitempty"`
	Alternatives []string `yaml:"alternatives,omitempty"`
}

type file struct {
	Words []Entry `yaml:"words"`
}

// List indexes entries by their normalized word so lookups ignore case,
// punctuation and hyphenation. File order is preserved for iteration.
type List struct {
	entries map[string]Entry
	ordered []Entry
}

func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var contents file
	if err := yaml.NewDecoder(f).Decode(&contents); err != nil {
		return nil, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	return New(contents.Words), nil
}

func New(entries []Entry) *List {
	list := &List{
		entries: make(map[string]Entry, len(entries)),
	}
	for _, entry := range entries {
		key := textnorm.Normalize(entry.Word)
		if key == "" {
			continue
		}
		if _, ok := list.entries[key]; !ok {
			list.ordered = append(list.ordered, entry)
		}
		list.entries[key] = entry
	}
	return list
}

// Entries returns the entries in file order.
func (l *List) Entries() []Entry {
	return l.ordered
}

// Lookup returns the entry for word, matching on the normalized form.
func (l *List) Lookup(word string) (Entry, bool) {
	entry, ok := l.entries[textnorm.Normalize(word)]
	return entry, ok
}

// Alternatives returns the accepted alternatives for word, or nil when the
// word is not listed.
func (l *List) Alternatives(word string) []string {
	entry, ok := l.Lookup(word)
	if !ok {
		return nil
	}
	return entry.Alternatives
}

func (l *List) Len() int {
	return len(l.entries)
}

// Write stores entries at path in the same format Load reads.
func Write(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := yaml.NewEncoder(f).Encode(file{Words: entries}); err != nil {
		return fmt.Errorf("yaml.NewEncoder().Encode() > %w", err)
	}
	return nil
}
