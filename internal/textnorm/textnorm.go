// Package textnorm canonicalizes free text for case-, punctuation-, and
// spacing-insensitive comparison.
package textnorm

import (
	"strings"
	"unicode"
)

// Normalize lower-cases text, replaces every rune that is not a letter,
// digit, or underscore with a space, collapses whitespace runs, and trims the
// result. Hyphens count as separators so that hyphenated compounds and spaced
// phrases share one canonical form ("junk-food" == "junk food").
// It is total and idempotent; empty input yields "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			sb.WriteRune(r)
		default:
			// Punctuation, hyphens, and whitespace all become a separator.
			sb.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}

// WordCount returns the number of whitespace-delimited tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ContainsWordForm reports whether haystack uses baseWord as a whole token,
// accepting the simple inflections base+"s", base+"ed", and base+"ing".
// Bases ending in "e" also accept base+"d" and the e-dropped "ing" form
// ("consumed", "consuming" for "consume"). Irregular forms ("went" for "go")
// are intentionally not recognized.
func ContainsWordForm(haystack, baseWord string) bool {
	base := Normalize(baseWord)
	if base == "" {
		return false
	}

	candidates := []string{base, base + "s", base + "ed", base + "ing"}
	if strings.HasSuffix(base, "e") {
		candidates = append(candidates, base+"d", strings.TrimSuffix(base, "e")+"ing")
	}

	padded := " " + Normalize(haystack) + " "
	for _, candidate := range candidates {
		if strings.Contains(padded, " "+candidate+" ") {
			return true
		}
	}
	return false
}
