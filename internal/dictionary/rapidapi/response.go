// https://rapidapi.com/dpventures/api/wordsapi
package rapidapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Response struct {
	Word          string        `json:"word"`
	Syllables     Syllable      `json:"syllables"`
	Frequency     float64       `json:"frequency"`
	Pronunciation Pronunciation `json:"pronunciation"`
	Results       []Result      `json:"results"`
}

type Syllable struct {
	Count int      `json:"count"`
	List  []string `json:"list"`
}

type Pronunciation struct {
	All string `json:"all"`
}

func (p *Pronunciation) UnmarshalJSON(data []byte) error {
	// pronunciation can be either a struct or a simple string
	if len(data) > 0 && data[0] == '{' {
		var all struct {
			All string `json:"all"`
		}
		if err := json.Unmarshal(data, &all); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		p.All = all.All
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	p.All = s
	return nil
}

type Result struct {
	Definition   string   `json:"definition"`
	Derivation   []string `json:"derivation,omitempty"`
	PartOfSpeech string   `json:"partOfSpeech"`
	Synonyms     []string `json:"synonyms"`
	SimilarTo    []string `json:"similarTo,omitempty"`
	TypeOf       []string `json:"typeOf,omitempty"`
	Examples     []string `json:"examples"`
}

// BestDefinition returns the first definition in the response, or an empty
// string when the API returned no senses.
func (r Response) BestDefinition() string {
	for _, result := range r.Results {
		if result.Definition != "" {
			return result.Definition
		}
	}
	return ""
}

// Synonyms collects the synonyms across every sense, deduplicated and
// excluding the headword itself.
func (r Response) Synonyms() []string {
	seen := map[string]struct{}{
		strings.ToLower(r.Word): {},
	}
	var synonyms []string
	for _, result := range r.Results {
		for _, synonym := range result.Synonyms {
			key := strings.ToLower(synonym)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			synonyms = append(synonyms, synonym)
		}
	}
	return synonyms
}

// Describe renders the entry for terminal output.
func (r Response) Describe() string {
	builder := strings.Builder{}
	if r.Pronunciation.All != "" {
		builder.WriteString(fmt.Sprintf("%s: /%s/\n", r.Word, r.Pronunciation.All))
	} else {
		builder.WriteString(r.Word + "\n")
	}

	meanings := make([]string, 0, len(r.Results))
	for _, result := range r.Results {
		lines := make([]string, 0)
		lines = append(lines, fmt.Sprintf("[%s]: %s", result.PartOfSpeech, result.Definition))
		if len(result.Examples) > 0 {
			lines = append(lines, fmt.Sprintf("Examples: %s", strings.Join(result.Examples, ", ")))
		}
		if len(result.Synonyms) > 0 {
			lines = append(lines, fmt.Sprintf("Synonyms: %s", strings.Join(result.Synonyms, ", ")))
		}
		if len(result.SimilarTo) > 0 {
			lines = append(lines, fmt.Sprintf("Similar to: %s", strings.Join(result.SimilarTo, ", ")))
		}
		meanings = append(meanings, strings.Join(lines, "\n"))
	}
	builder.WriteString(strings.Join(meanings, "\n"+strings.Repeat("-", 50)+"\n"))

	return builder.String()
}
