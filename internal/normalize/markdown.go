package normalize

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// headingRule rewrites a section keyword to its canonical heading.
type headingRule struct {
	pattern *regexp.Regexp
	heading string
}

// headingRules is ordered: when a word is matched by more than one rule,
// the earlier rule wins, so the same keyword always maps to the same heading.
var headingRules = []headingRule{
	{regexp.MustCompile(`(?i)\b(job description|overview|summary)\b`), "## Job Description"},
	{regexp.MustCompile(`(?i)\b(responsibilities|duties|tasks)\b`), "## Responsibilities"},
	{regexp.MustCompile(`(?i)\b(qualifications|required skills|requirements)\b`), "## Qualifications"},
	{regexp.MustCompile(`(?i)\b(preferred|nice to have)\b`), "## Preferred Qualifications"},
	{regexp.MustCompile(`(?i)\b(education)\b`), "## Education"},
	{regexp.MustCompile(`(?i)\b(experience)\b`), "## Experience"},
	{regexp.MustCompile(`(?i)\b(salary|compensation|pay)\b`), "## Compensation"},
	{regexp.MustCompile(`(?i)\b(location|work location)\b`), "## Location"},
	{regexp.MustCompile(`(?i)\b(about us|company overview)\b`), "## About Us"},
	{regexp.MustCompile(`(?i)\b(benefits|perks|what we offer)\b`), "## Benefits"},
}

// ToMarkdown converts posting text of any supported format into canonical
// Markdown. HTML input is structurally converted first; all input then gets
// the keyword-to-heading substitutions applied in rule order.
func ToMarkdown(text string) string {
	if DetectFormat(text) == FormatHTML {
		if converted := fromHTML(text); converted != "" {
			text = converted
		}
	}

	for _, rule := range headingRules {
		text = rule.pattern.ReplaceAllString(text, rule.heading)
	}

	return strings.TrimSpace(text)
}

// fromHTML strips non-content elements and converts the rest to Markdown
// with ATX headings. Returns "" when the document cannot be converted;
// callers fall back to the raw text.
func fromHTML(raw string) string {
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
		doc.Find("script, style, noscript, nav").Remove()
		if cleaned, err := doc.Html(); err == nil {
			raw = cleaned
		}
	}

	md, err := htmltomarkdown.ConvertString(raw)
	if err != nil {
		return ""
	}
	return md
}
