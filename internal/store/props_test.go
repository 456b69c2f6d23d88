package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/smartcv/internal/types"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestTruncate(t *testing.T) {
	short := "short value"
	assert.Equal(t, short, truncate(short))

	long := strings.Repeat("a", 2500)
	got := truncate(long)
	assert.Len(t, got, maxFieldChars)

	// Multi-byte runes are not split mid-character.
	unicodeLong := strings.Repeat("é", 2500)
	assert.Equal(t, maxFieldChars, len([]rune(truncate(unicodeLong))))
}

func TestBulletList(t *testing.T) {
	assert.Equal(t, "", bulletList(nil))
	assert.Equal(t, "\n• Build APIs\n• Review code", bulletList([]string{"Build APIs", "Review code"}))
}

func TestNameDefaults(t *testing.T) {
	empty := &types.JobRecord{}
	assert.Equal(t, "Unknown Company", companyName(empty))
	assert.Equal(t, "Untitled Job", jobTitle(empty))
	assert.Equal(t, "Untitled Role", roleTitle(empty))

	rec := &types.JobRecord{Company: "Acme", PositionTitle: "Engineer"}
	assert.Equal(t, "Acme", companyName(rec))
	assert.Equal(t, "Engineer", jobTitle(rec))
	assert.Equal(t, "Engineer", roleTitle(rec))
}

func TestRegions(t *testing.T) {
	assert.Equal(t, []string{"Global"}, regions(&types.JobRecord{}))

	rec := &types.JobRecord{Location: types.Location{Regions: []string{"Austin, TX", "Remote"}}}
	assert.Equal(t, []string{"Austin TX", "Remote"}, regions(rec),
		"commas are stripped from region names")
}

func TestBuildJobProps(t *testing.T) {
	rec := &types.JobRecord{PositionTitle: "Engineer", Company: "Acme"}
	longText := strings.Repeat("x", 3000)

	props := buildJobProps(rec, `{"company":"Acme"}`, longText, "https://example.com/job", "abc123", testNow)

	assert.Equal(t, "Engineer", props[PropTitle])
	assert.Equal(t, "Acme", props["company"])
	assert.Len(t, props["description"], maxFieldChars)
	assert.Equal(t, `{"company":"Acme"}`, props["parsed_snapshot"])
	assert.Equal(t, "https://example.com/job", props["source_url"])
	assert.Equal(t, "abc123", props[PropFingerprint])
	assert.Equal(t, "2026-08-31", props["collected_at"])
	assert.Equal(t, "Parsed", props["status"])
}

func TestBuildCompanyProps(t *testing.T) {
	rec := &types.JobRecord{Company: "Acme", VisaSponsorship: true}
	props := buildCompanyProps(rec, "{}", testNow)

	assert.Equal(t, "Acme", props[PropName])
	assert.Equal(t, "Sponsorship available", props["visa_policy"])
	assert.Equal(t, "2026-08-31T12:00:00Z", props["last_parsed_at"])

	noVisa := buildCompanyProps(&types.JobRecord{Company: "Acme"}, "{}", testNow)
	assert.Equal(t, "No sponsorship", noVisa["visa_policy"])
}

func TestBuildRoleProps(t *testing.T) {
	rec := &types.JobRecord{
		PositionTitle:    "Engineer",
		Company:          "Acme",
		Responsibilities: []string{"Build", "Review"},
		RequiredQualifications: types.Qualifications{
			CoreSkills: []string{"Go"},
		},
		IndustryKeywords: []string{"fintech", "payments"},
	}

	props := buildRoleProps(rec, "{}", testNow)

	assert.Equal(t, "Engineer", props[PropTitle])
	assert.Equal(t, []string{"Go"}, props["core_skills"])
	assert.Equal(t, "\n• Build\n• Review", props["responsibilities"])
	assert.Equal(t, "fintech, payments", props["industry_keywords"])
	assert.Equal(t, "Acme", props["target_company"])
	assert.Equal(t, []string{"Global"}, props["regions"])
}
