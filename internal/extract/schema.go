package extract

import (
	"encoding/json"
	"strings"
)

// recordSchema is the fixed shape the inference service is asked to fill in.
// It is advisory: responses with extra or missing keys are tolerated.
const recordSchema = `{
  "position_title": "string",
  "company": "string",
  "location": {"regions": ["string"], "remote_hybrid": "string"},
  "salary": {"min": "number", "max": "number", "currency": "string"},
  "employment_type": "string",
  "responsibilities": ["string"],
  "required_qualifications": {
    "education": "string",
    "experience": "string",
    "core_skills": ["string"],
    "technical_tools": ["string"],
    "soft_skills": ["string"]
  },
  "preferred_qualifications": {"skills": ["string"], "experience": "string"},
  "application_deadline": "string",
  "start_date": "string",
  "visa_sponsorship": "boolean",
  "relocation_assistance": "boolean",
  "industry_keywords": ["string"]
}`

// BuildPrompt assembles the extraction request: the schema contract, the
// heuristic hints, then the normalized Markdown document.
func BuildPrompt(heuristics map[string]any, markdown string) string {
	hints, err := json.MarshalIndent(heuristics, "", "  ")
	if err != nil {
		hints = []byte("{}")
	}

	var sb strings.Builder
	sb.WriteString("You are a precise job posting parser. Extract structured job information ")
	sb.WriteString("and return a single valid JSON object matching this schema:\n")
	sb.WriteString(recordSchema)
	sb.WriteString("\n\nHeuristic pre-extracted info:\n")
	sb.Write(hints)
	sb.WriteString("\n\nJob Description (Markdown):\n")
	sb.WriteString(markdown)
	sb.WriteString("\n")
	return sb.String()
}
