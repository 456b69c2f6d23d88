// Package heuristics pulls directly observable fields out of posting text
// using fixed patterns, independent of any inference service.
package heuristics

import (
	"regexp"
	"strconv"
	"strings"
)

// Field keys produced by Extract. They intentionally match the keys of the
// structured extraction schema so merged records line up without remapping.
const (
	KeySalaryMin       = "salary_min"
	KeySalaryMax       = "salary_max"
	KeyCurrency        = "currency"
	KeyLocation        = "location"
	KeyVisaSponsorship = "visa_sponsorship"
	KeyRemoteHybrid    = "remote_hybrid"
)

// defaultCurrency is assumed for any salary range written with a dollar sign.
const defaultCurrency = "USD"

var (
	salaryPattern   = regexp.MustCompile(`\$([0-9,]+)\s*-\s*\$?([0-9,]+)`)
	locationPattern = regexp.MustCompile(`[A-Z][a-z]+,\s*[A-Z]{2}`)
	// Explicit denial phrases are the only observed negative signal for
	// sponsorship; absence of all of them reads as sponsorship available.
	visaDenialPattern = regexp.MustCompile(`(?i)no sponsorship|not offer sponsorship|OPT|CPT`)
	workModePattern   = regexp.MustCompile(`(?i)remote|hybrid|on-site`)
)

// Extract applies the pattern rules to posting text. It never fails: fields
// whose patterns do not match are simply absent from the result.
func Extract(text string) map[string]any {
	fields := make(map[string]any)

	if m := salaryPattern.FindStringSubmatch(text); m != nil {
		min, errMin := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		max, errMax := strconv.Atoi(strings.ReplaceAll(m[2], ",", ""))
		if errMin == nil && errMax == nil {
			fields[KeySalaryMin] = min
			fields[KeySalaryMax] = max
			fields[KeyCurrency] = defaultCurrency
		}
	}

	if loc := locationPattern.FindString(text); loc != "" {
		fields[KeyLocation] = loc
	}

	fields[KeyVisaSponsorship] = !visaDenialPattern.MatchString(text)

	if mode := workModePattern.FindString(text); mode != "" {
		fields[KeyRemoteHybrid] = titleCase(mode)
	}

	return fields
}

// titleCase uppercases the first letter and lowercases the rest, so
// "REMOTE" and "remote" both become "Remote" and "ON-SITE" becomes "On-site".
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
