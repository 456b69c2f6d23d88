package store

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintLen is the number of hex digits kept from the digest.
const fingerprintLen = 16

// Fingerprint derives the deduplication key for a job posting from its
// company and raw text. Identical (company, text) pairs always produce
// identical values.
func Fingerprint(company, text string) string {
	sum := sha256.Sum256([]byte(company + "_" + text))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}
