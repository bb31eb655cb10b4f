package tinydi

import (
	"strings"
	"unicode"
)

// Canonicalize converts an identifier into its lower-case, underscore
// separated form, e.g. "HTTPResponse" becomes "http_response".
// Upper-case runs are treated as acronyms: "UFO" becomes "ufo", while the
// last letter of a run followed by a lower-case letter starts a new word.
// A single leading capital is not an acronym, so "ICatsRepository"
// becomes "icats_repository".
func Canonicalize(name string) string {
	runes := []rune(name)
	tokens := make([]string, 0, 2)
	start := 0

	flush := func(end int) {
		if end > start {
			tokens = append(tokens, strings.ToLower(string(runes[start:end])))
		}
	}

	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			flush(i)
			start = i + 1

			continue
		}

		if i == start || !unicode.IsUpper(r) {
			continue
		}

		prev := runes[i-1]
		switch {
		case unicode.IsLower(prev) || unicode.IsDigit(prev):
			flush(i)
			start = i
		case unicode.IsUpper(prev) &&
			i+1 < len(runes) && unicode.IsLower(runes[i+1]) &&
			i-start >= 2:
			flush(i)
			start = i
		}
	}

	flush(len(runes))

	return strings.Join(tokens, "_")
}
