package engine

import (
	"encoding/json"
	"os"
	"time"

	"github.com/OpenZeppelin/compact-tools/internal/model"
)

type baseline struct {
	GeneratedAt  time.Time       `json:"generatedAt"`
	Fingerprints map[string]bool `json:"fingerprints"`
}

// loadBaseline accepts either a bare JSON array of fingerprints or the full
// struct form written by WriteBaseline.
func loadBaseline(path string) (baseline, error) {
	var b baseline
	if path == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	var fp []string
	if err := json.Unmarshal(data, &fp); err == nil {
		m := make(map[string]bool, len(fp))
		for _, f := range fp {
			m[f] = true
		}
		b.Fingerprints = m
		return b, nil
	}
	_ = json.Unmarshal(data, &b)
	if b.Fingerprints == nil {
		b.Fingerprints = map[string]bool{}
	}
	return b, nil
}

// filterByBaseline drops issues whose fingerprint is already accepted and
// recomputes validity per circuit.
func filterByBaseline(results []model.ValidationResult, b baseline) []model.ValidationResult {
	if len(b.Fingerprints) == 0 {
		return results
	}
	out := make([]model.ValidationResult, 0, len(results))
	for _, r := range results {
		var kept []model.ValidationIssue
		for _, is := range r.Issues {
			if is.Fingerprint != "" && b.Fingerprints[is.Fingerprint] {
				continue
			}
			kept = append(kept, is)
		}
		r.Issues = kept
		r.IsValid = len(kept) == 0
		out = append(out, r)
	}
	return out
}

// WriteBaseline records every issue fingerprint in rep so later runs report
// only new issues.
func WriteBaseline(path string, rep *model.Report) error {
	if path == "" {
		return nil
	}
	b := baseline{GeneratedAt: time.Now().UTC(), Fingerprints: map[string]bool{}}
	for _, f := range rep.Files {
		for _, r := range f.Results {
			for _, is := range r.Issues {
				if is.Fingerprint != "" {
					b.Fingerprints[is.Fingerprint] = true
				}
			}
		}
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
