package pricing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint returns a stable hex digest of the canonical request. Two
// requests that map to the same wire payload share a fingerprint, which the
// quote cache and the mock client use as a correlation key. DateEffet is part
// of the digest on purpose: a quote is only reusable within its effective day.
func Fingerprint(req *Request) string {
	payload, err := json.Marshal(req)
	if err != nil {
		// Request is a plain value type; this cannot happen outside of a
		// programming error, in which case an unshared key is the safe answer.
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
