package engine

import "github.com/OpenZeppelin/compact-tools/internal/model"

// CountAtOrAbove returns how many issues in rep are at or above threshold.
// Used by the CLI to decide the fail-on exit status.
func CountAtOrAbove(rep *model.Report, threshold model.Severity) int {
	n := 0
	for _, f := range rep.Files {
		for _, r := range f.Results {
			for _, is := range r.Issues {
				if model.SeverityGTE(is.Severity, threshold) {
					n++
				}
			}
		}
	}
	return n
}
