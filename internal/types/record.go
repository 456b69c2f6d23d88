// Package types defines the structured job record shared across pipeline stages.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// JobRecord is the canonical structured output of the extraction pipeline.
// Field names mirror schemas/job_record.schema.json; the schema is advisory,
// so decoding tolerates extra and missing keys.
type JobRecord struct {
	PositionTitle           string         `json:"position_title,omitempty"`
	Company                 string         `json:"company,omitempty"`
	Location                Location       `json:"location,omitempty"`
	Salary                  Salary         `json:"salary,omitempty"`
	EmploymentType          string         `json:"employment_type,omitempty"`
	Responsibilities        []string       `json:"responsibilities,omitempty"`
	RequiredQualifications  Qualifications `json:"required_qualifications,omitempty"`
	PreferredQualifications Preferred      `json:"preferred_qualifications,omitempty"`
	ApplicationDeadline     string         `json:"application_deadline,omitempty"`
	StartDate               string         `json:"start_date,omitempty"`
	VisaSponsorship         bool           `json:"visa_sponsorship,omitempty"`
	RelocationAssistance    bool           `json:"relocation_assistance,omitempty"`
	IndustryKeywords        []string       `json:"industry_keywords,omitempty"`
}

// Location groups the geographic fields of a posting.
type Location struct {
	Regions      []string `json:"regions,omitempty"`
	RemoteHybrid string   `json:"remote_hybrid,omitempty"`
}

// Salary is the advertised compensation range.
type Salary struct {
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

// Qualifications groups the required qualification fields.
type Qualifications struct {
	Education      string   `json:"education,omitempty"`
	Experience     string   `json:"experience,omitempty"`
	CoreSkills     []string `json:"core_skills,omitempty"`
	TechnicalTools []string `json:"technical_tools,omitempty"`
	SoftSkills     []string `json:"soft_skills,omitempty"`
}

// Preferred groups the preferred qualification fields.
type Preferred struct {
	Skills     []string `json:"skills,omitempty"`
	Experience string   `json:"experience,omitempty"`
}

// RecordFromMap decodes a raw extraction result into its typed form.
// Keys outside the schema (heuristic floor fields, for example) are dropped
// from the typed view but remain in the raw map.
func RecordFromMap(raw map[string]any) (*JobRecord, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var rec JobRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		// Heuristic floor values can shadow schema keys with a different
		// shape (a flat "location" string, say). Fields that do decode are
		// still populated, so type mismatches are not fatal.
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
	}
	return &rec, nil
}
