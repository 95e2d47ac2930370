package model

import "time"

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

func ParseSeverity(s string) Severity {
	switch s {
	case string(SeverityError):
		return SeverityError
	default:
		return SeverityWarning
	}
}

func SeverityGTE(a, b Severity) bool {
	order := map[Severity]int{SeverityWarning: 1, SeverityError: 2}
	return order[a] >= order[b]
}

// ValidationIssue is one rule violation found in a circuit's documentation.
// Field names the tag or signature element at fault (e.g. "@param", "documentation").
type ValidationIssue struct {
	Message     string   `json:"message"`
	Severity    Severity `json:"severity"`
	Line        int      `json:"line"`
	Field       string   `json:"field"`
	Snippet     string   `json:"snippet,omitempty"`
	Fingerprint string   `json:"fingerprint,omitempty"`
}

// ValidationResult holds all issues for one circuit. IsValid holds iff Issues is empty.
type ValidationResult struct {
	CircuitName string            `json:"circuitName"`
	FilePath    string            `json:"filePath"`
	Line        int               `json:"line"`
	IsValid     bool              `json:"isValid"`
	Issues      []ValidationIssue `json:"issues"`
}

// FileSummary aggregates validation results for one file.
type FileSummary struct {
	TotalCircuits      int `json:"totalCircuits"`
	ValidCircuits      int `json:"validCircuits"`
	CircuitsWithIssues int `json:"circuitsWithIssues"`
	TotalWarnings      int `json:"totalWarnings"`
	TotalErrors        int `json:"totalErrors"`
}

type CheckRequest struct {
	Path         string
	ConfigPath   string
	BaselinePath string
}

type FileReport struct {
	File    string             `json:"file"`
	Results []ValidationResult `json:"results"`
	Summary FileSummary        `json:"summary"`
}

type Report struct {
	Files   []FileReport  `json:"files"`
	Totals  FileSummary   `json:"totals"`
	Elapsed time.Duration `json:"elapsed"`
}
