package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/OpenZeppelin/compact-tools/internal/compact"
)

// Dir returns the cache directory path, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".compact-lint", "cache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Key computes a unique key filename from its inputs (e.g. version tag +
// file path + content).
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// LoadRecords returns cached extraction results for key, if present and
// decodable.
func LoadRecords(key string) ([]compact.CircuitRecord, bool) {
	dir, err := Dir()
	if err != nil {
		return nil, false
	}
	b, err := os.ReadFile(filepath.Join(dir, key))
	if err != nil {
		return nil, false
	}
	var recs []compact.CircuitRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, false
	}
	return recs, true
}

// StoreRecords persists extraction results under key. Best effort: callers
// ignore the error and re-extract next run.
func StoreRecords(key string, recs []compact.CircuitRecord) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, key), data, 0o644)
}
