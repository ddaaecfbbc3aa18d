package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// digestLength is the length of identity digests in hex characters.
const digestLength = 16

// digest16 computes a sha256 digest over the parts, truncated to 16
// lowercase hex characters. Each part is length-prefixed before hashing, so
// no choice of part contents can collide with a different part split. It
// backs both the dedup hash and the fallback external id for providers that
// omit record identifiers.
func digest16(parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		fmt.Fprintf(h, "%d:%s", len(part), part)
	}
	return hex.EncodeToString(h.Sum(nil))[:digestLength]
}
