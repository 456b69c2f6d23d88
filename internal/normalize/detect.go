package normalize

import "regexp"

// Format classifies the markup of an incoming job posting.
type Format string

// Supported input formats.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatPlain    Format = "plain"
)

var htmlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<div`),
	regexp.MustCompile(`(?i)<p`),
	regexp.MustCompile(`(?i)<ul`),
	regexp.MustCompile(`(?i)<li`),
	regexp.MustCompile(`(?i)<br`),
}

var markdownPatterns = []*regexp.Regexp{
	regexp.MustCompile(`#+\s`),
	regexp.MustCompile(`\*\*.+\*\*`),
	regexp.MustCompile(`\[.+\]\(.+\)`),
}

// DetectFormat classifies text as HTML, Markdown, or plain. The HTML check
// runs first, so text containing both HTML tags and Markdown syntax is
// classified as HTML.
func DetectFormat(text string) Format {
	for _, p := range htmlPatterns {
		if p.MatchString(text) {
			return FormatHTML
		}
	}
	for _, p := range markdownPatterns {
		if p.MatchString(text) {
			return FormatMarkdown
		}
	}
	return FormatPlain
}
