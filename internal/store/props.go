package store

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jonathan/smartcv/internal/types"
)

// maxFieldChars is the store-side limit on text fields; longer values are
// truncated before writing.
const maxFieldChars = 1900

// Placeholder values for records extracted without a company or title.
const (
	unknownCompany = "Unknown Company"
	untitledJob    = "Untitled Job"
	untitledRole   = "Untitled Role"
)

// truncate caps a string at maxFieldChars characters without splitting a rune.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxFieldChars {
		return s
	}
	return string(runes[:maxFieldChars])
}

// bulletList renders items the way the role template fields expect them.
func bulletList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return "\n• " + strings.Join(items, "\n• ")
}

// snapshotJSON serializes the full raw record, truncated to the field limit.
func snapshotJSON(raw map[string]any) string {
	data, err := json.Marshal(raw)
	if err != nil {
		return ""
	}
	return truncate(string(data))
}

func companyName(rec *types.JobRecord) string {
	if rec.Company == "" {
		return unknownCompany
	}
	return rec.Company
}

func jobTitle(rec *types.JobRecord) string {
	if rec.PositionTitle == "" {
		return untitledJob
	}
	return rec.PositionTitle
}

func roleTitle(rec *types.JobRecord) string {
	if rec.PositionTitle == "" {
		return untitledRole
	}
	return rec.PositionTitle
}

func visaPolicy(rec *types.JobRecord) string {
	if rec.VisaSponsorship {
		return "Sponsorship available"
	}
	return "No sponsorship"
}

// regions returns the posting's regions with commas stripped, defaulting to
// Global when the record carries none.
func regions(rec *types.JobRecord) []string {
	if len(rec.Location.Regions) == 0 {
		return []string{"Global"}
	}
	out := make([]string, 0, len(rec.Location.Regions))
	for _, r := range rec.Location.Regions {
		out = append(out, strings.ReplaceAll(r, ",", ""))
	}
	return out
}

// buildCompanyProps assembles the company catalog record.
func buildCompanyProps(rec *types.JobRecord, snapshot string, now time.Time) Properties {
	return Properties{
		PropName:         companyName(rec),
		"industry":       rec.IndustryKeywords,
		"visa_policy":    visaPolicy(rec),
		"last_parsed_at": now.UTC().Format(time.RFC3339),
		"parsed_json":    snapshot,
	}
}

// buildRoleProps assembles the role template record.
func buildRoleProps(rec *types.JobRecord, snapshot string, now time.Time) Properties {
	return Properties{
		PropTitle:           roleTitle(rec),
		"core_skills":       rec.RequiredQualifications.CoreSkills,
		"responsibilities":  bulletList(rec.Responsibilities),
		"experience":        rec.RequiredQualifications.Experience,
		"technical_tools":   bulletList(rec.RequiredQualifications.TechnicalTools),
		"soft_skills":       rec.RequiredQualifications.SoftSkills,
		"preferred_skills":  rec.PreferredQualifications.Skills,
		"industry_keywords": strings.Join(rec.IndustryKeywords, ", "),
		"regions":           regions(rec),
		"target_company":    companyName(rec),
		"last_parsed_at":    now.UTC().Format(time.RFC3339),
		"parsed_json":       snapshot,
	}
}

// buildJobProps assembles the job record. The posting text and the record
// snapshot are both truncated to respect store field-size limits.
func buildJobProps(rec *types.JobRecord, snapshot, jdText, sourceURL, fingerprint string, now time.Time) Properties {
	return Properties{
		PropTitle:         jobTitle(rec),
		"company":         companyName(rec),
		"description":     truncate(jdText),
		"parsed_snapshot": snapshot,
		"source_url":      sourceURL,
		PropFingerprint:   fingerprint,
		"collected_at":    now.UTC().Format("2006-01-02"),
		"status":          "Parsed",
	}
}
