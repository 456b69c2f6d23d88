package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSalary(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedMin int
		expectedMax int
	}{
		{"Range with thousands separators", "Pay: $80,000 - $95,000 per year", 80000, 95000},
		{"Range without second dollar sign", "Pay: $80,000 - 95,000", 80000, 95000},
		{"Range without spaces", "$100,000-$120,000", 100000, 120000},
		{"Plain digits", "$90000 - $110000", 90000, 110000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := Extract(tt.input)
			assert.Equal(t, tt.expectedMin, fields[KeySalaryMin])
			assert.Equal(t, tt.expectedMax, fields[KeySalaryMax])
			assert.Equal(t, "USD", fields[KeyCurrency])
		})
	}
}

func TestExtractNoSalary(t *testing.T) {
	fields := Extract("Competitive compensation, apply within")
	assert.NotContains(t, fields, KeySalaryMin)
	assert.NotContains(t, fields, KeySalaryMax)
	assert.NotContains(t, fields, KeyCurrency)
}

func TestExtractLocation(t *testing.T) {
	fields := Extract("Our office is in Austin, TX near downtown")
	assert.Equal(t, "Austin, TX", fields[KeyLocation])

	fields = Extract("Fully distributed team")
	assert.NotContains(t, fields, KeyLocation)
}

func TestExtractVisaSponsorship(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"No denial phrase defaults to available", "Great role for engineers", true},
		{"Explicit no sponsorship", "We offer no sponsorship for this role", false},
		{"Not offer sponsorship", "We do not offer sponsorship", false},
		{"OPT mention reads as denial", "OPT candidates welcome", false},
		{"CPT mention reads as denial", "CPT eligible", false},
		{"Case insensitive", "NO SPONSORSHIP available", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := Extract(tt.input)
			assert.Equal(t, tt.expected, fields[KeyVisaSponsorship])
		})
	}
}

func TestExtractWorkMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Lowercase remote", "This is a remote position", "Remote"},
		{"Uppercase remote", "REMOTE position", "Remote"},
		{"Hybrid", "Hybrid schedule, 2 days in office", "Hybrid"},
		{"On-site", "on-site in Denver", "On-site"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := Extract(tt.input)
			assert.Equal(t, tt.expected, fields[KeyRemoteHybrid])
		})
	}
}

func TestExtractWorkModeAbsent(t *testing.T) {
	fields := Extract("Standard office role")
	assert.NotContains(t, fields, KeyRemoteHybrid)
}
