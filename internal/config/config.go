package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/OpenZeppelin/compact-tools/internal/lint"
)

const FileName = ".compact-lint.json"

// IgnoreRule suppresses issues for one field, optionally scoped to a path
// prefix.
type IgnoreRule struct {
	Field  string `json:"field"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type Config struct {
	Rules  lint.Config  `json:"rules"`
	FailOn string       `json:"failOn"`
	Ignore []IgnoreRule `json:"ignore"`
}

func Default() Config {
	return Config{Rules: lint.DefaultConfig()}
}

// Load searches upwards from startDir for a .compact-lint.json and merges it
// over the defaults. Returns the config, the path it was loaded from (empty
// when none was found), and any read error.
func Load(startDir string) (Config, string, error) {
	cfg := Default()
	dir := startDir
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			b, err := os.ReadFile(candidate)
			if err != nil {
				return cfg, candidate, err
			}
			_ = json.Unmarshal(b, &cfg)
			return cfg, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached root
			break
		}
		dir = parent
	}
	return cfg, "", nil
}
