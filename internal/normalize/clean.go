// Package normalize cleans raw job posting text and converts it into a
// canonical Markdown document with standardized section headings.
package normalize

import (
	"regexp"
	"strings"
)

// punctReplacer folds common unicode punctuation variants to ASCII-safe
// equivalents before any pattern matching runs.
var punctReplacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"•", "• ", // bullet gets a trailing space for list detection
	" ", " ", // non-breaking space
)

var (
	spaceRuns     = regexp.MustCompile(`[ \t]+`)
	blankLineRuns = regexp.MustCompile(`\n{3,}`)
)

// Clean normalizes punctuation and whitespace in raw posting text.
// Runs of spaces and tabs collapse to a single space; three or more
// consecutive newlines collapse to exactly two. Empty input yields empty
// output, and already-clean text passes through unchanged.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	// Normalize line endings (CRLF → LF)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = punctReplacer.Replace(text)
	text = spaceRuns.ReplaceAllString(text, " ")
	text = blankLineRuns.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
