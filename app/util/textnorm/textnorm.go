// Package textnorm normalizes user utterances before classification:
// lowercase, punctuation stripped to spaces, whitespace collapsed.
package textnorm

import (
	"strings"
	"unicode"
)

func Normalize(message string) string {
	var builder strings.Builder
	builder.Grow(len(message))

	for _, r := range strings.ToLower(message) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(builder.String()), " ")
}

func Tokenize(normalized string) []string {
	return strings.Fields(normalized)
}
