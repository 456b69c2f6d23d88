package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty input", "", ""},
		{"Already clean", "Software Engineer at Acme", "Software Engineer at Acme"},
		{"Collapse space runs", "Software    Engineer", "Software Engineer"},
		{"Collapse tab runs", "Software\t\tEngineer", "Software Engineer"},
		{"Mixed spaces and tabs", "Software \t Engineer", "Software Engineer"},
		{"En dash folded", "2019–2023", "2019-2023"},
		{"Em dash folded", "Remote—US only", "Remote-US only"},
		{"Non-breaking space folded", "New York", "New York"},
		{"Bullet gets trailing space", "•Build APIs", "• Build APIs"},
		{"CRLF normalized", "line one\r\nline two", "line one\nline two"},
		{"Bare CR normalized", "line one\rline two", "line one\nline two"},
		{"Three newlines collapse to two", "para one\n\n\npara two", "para one\n\npara two"},
		{"Five newlines collapse to two", "para one\n\n\n\n\npara two", "para one\n\npara two"},
		{"Double newline preserved", "para one\n\npara two", "para one\n\npara two"},
		{"Leading and trailing whitespace trimmed", "  body  ", "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	raw := "Senior  Engineer\r\n\r\n\r\n•Ship features\t– fast always  "
	once := Clean(raw)
	assert.Equal(t, once, Clean(once), "cleaning already-clean text should be a no-op")
}
