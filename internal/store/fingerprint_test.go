package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	fp := Fingerprint("Acme Corp", "Backend Engineer posting text")

	assert.Len(t, fp, 16)
	assert.Regexp(t, "^[0-9a-f]{16}$", fp)
	assert.Equal(t, fp, Fingerprint("Acme Corp", "Backend Engineer posting text"),
		"identical inputs must produce identical fingerprints")
}

func TestFingerprintSensitivity(t *testing.T) {
	base := Fingerprint("Acme Corp", "posting text")

	assert.NotEqual(t, base, Fingerprint("Other Corp", "posting text"),
		"company changes the fingerprint")
	assert.NotEqual(t, base, Fingerprint("Acme Corp", "posting text v2"),
		"text changes the fingerprint")
}
