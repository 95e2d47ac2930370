package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint computes a stable hash identifying one issue across runs.
// Line numbers are excluded so unrelated edits above do not invalidate a
// baseline entry.
func Fingerprint(file, circuit, field, message string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s", file, circuit, field, message)
	return hex.EncodeToString(h.Sum(nil))
}
