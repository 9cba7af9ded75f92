package index

import (
	"crypto/sha256"
	"encoding/hex"
)

// TextHash returns a sha256 hash (hex) of raw index bytes.
func TextHash(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
