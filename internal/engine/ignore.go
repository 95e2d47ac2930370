package engine

import (
	"path/filepath"
	"strings"

	"github.com/OpenZeppelin/compact-tools/internal/config"
	"github.com/OpenZeppelin/compact-tools/internal/model"
)

// suppressionWindow is how many lines above an issue an inline marker
// may appear.
const suppressionWindow = 5

// applyIgnores drops issues matched by config ignore rules or inline
// suppression markers, then recomputes validity per circuit.
func applyIgnores(results []model.ValidationResult, content string, cfg config.Config) []model.ValidationResult {
	lines := strings.Split(content, "\n")
	out := make([]model.ValidationResult, 0, len(results))
	for _, r := range results {
		var kept []model.ValidationIssue
		for _, is := range r.Issues {
			if isIgnored(is, r.FilePath, lines, cfg) {
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

func isIgnored(is model.ValidationIssue, filePath string, lines []string, cfg config.Config) bool {
	for _, ig := range cfg.Ignore {
		if ig.Field != "" && !strings.EqualFold(ig.Field, is.Field) {
			continue
		}
		if ig.Path != "" && !strings.HasPrefix(filepath.ToSlash(filePath), filepath.ToSlash(ig.Path)) {
			continue
		}
		return true
	}
	return hasInlineSuppression(lines, is.Field, is.Line)
}

// hasInlineSuppression looks above the issue location for a marker of the
// form: // compact-lint:ignore <field>
func hasInlineSuppression(lines []string, field string, line int) bool {
	if len(lines) == 0 {
		return false
	}
	from := line - 1 - suppressionWindow
	if from < 0 {
		from = 0
	}
	to := line - 1
	if to >= len(lines) {
		to = len(lines) - 1
	}
	needle := "compact-lint:ignore " + field
	for i := from; i <= to; i++ {
		if strings.Contains(lines[i], needle) {
			return true
		}
	}
	return false
}
