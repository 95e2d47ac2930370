package util

import "strings"

// LineSnippet returns the trimmed 1-based line of content, or "" when the
// line is out of range.
func LineSnippet(content string, line int) string {
	lines := strings.Split(content, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[line-1])
}
