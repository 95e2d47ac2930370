package lint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/OpenZeppelin/compact-tools/internal/compact"
	"github.com/OpenZeppelin/compact-tools/internal/model"
)

// Config selects which doc tags are required. The zero value requires
// nothing; DefaultConfig returns the standard rule set.
type Config struct {
	ExportedOnly       bool `json:"exportedOnly"`
	RequireTitle       bool `json:"requireTitle"`
	RequireDescription bool `json:"requireDescription"`
	RequireRemarks     bool `json:"requireRemarks"`
	RequireCircuitInfo bool `json:"requireCircuitInfo"`
	RequireParams      bool `json:"requireParams"`
	RequireThrows      bool `json:"requireThrows"`
	RequireReturns     bool `json:"requireReturns"`
}

func DefaultConfig() Config {
	return Config{
		ExportedOnly:       true,
		RequireDescription: true,
		RequireCircuitInfo: true,
		RequireParams:      true,
		RequireReturns:     true,
	}
}

// circuitInfo payload format, whitespace-tolerant around '=' and ','.
var reCircuitInfo = regexp.MustCompile(`^k\s*=\s*\d+\s*,\s*rows\s*=\s*\d+$`)

// ValidateCircuit runs the rule set over one record. Issues are collected,
// not short-circuited, with two exceptions: non-exported circuits are wholly
// exempt under ExportedOnly, and a circuit with no doc block at all yields
// exactly one "documentation" issue.
func ValidateCircuit(rec compact.CircuitRecord, filePath string, cfg Config) model.ValidationResult {
	res := model.ValidationResult{
		CircuitName: rec.Signature.Name,
		FilePath:    filePath,
		Line:        rec.Signature.DeclarationLine,
		IsValid:     true,
	}
	if cfg.ExportedOnly && !rec.Signature.IsExported {
		return res
	}
	if !rec.HasDocs {
		res.Issues = append(res.Issues, model.ValidationIssue{
			Message:  fmt.Sprintf("circuit %q has no documentation block", rec.Signature.Name),
			Severity: model.SeverityWarning,
			Line:     rec.Signature.DeclarationLine,
			Field:    "documentation",
		})
		res.IsValid = false
		return res
	}

	issue := func(field, msg string) {
		res.Issues = append(res.Issues, model.ValidationIssue{
			Message:  msg,
			Severity: model.SeverityWarning,
			Line:     rec.DocStartLine,
			Field:    field,
		})
	}
	doc := rec.Doc

	if cfg.RequireTitle && doc.Title == "" {
		issue("@title", "missing @title tag")
	}
	if cfg.RequireDescription && doc.Description == "" {
		issue("@description", "missing @description tag")
	}
	if cfg.RequireRemarks && doc.Remarks == "" {
		issue("@remarks", "missing @remarks tag")
	}
	if cfg.RequireCircuitInfo {
		if doc.CircuitInfo == "" {
			issue("@circuitInfo", "missing @circuitInfo tag")
		} else if !reCircuitInfo.MatchString(strings.TrimSpace(doc.CircuitInfo)) {
			issue("@circuitInfo", fmt.Sprintf("malformed @circuitInfo %q: expected \"k=<integer>, rows=<integer>\"", doc.CircuitInfo))
		}
	}
	if cfg.RequireParams && len(rec.Signature.Parameters) > 0 {
		documented := make(map[string]bool, len(doc.Params))
		for _, p := range doc.Params {
			documented[p.Name] = true
		}
		for _, p := range rec.Signature.Parameters {
			if !documented[p.Name] {
				issue("@param", fmt.Sprintf("missing @param for parameter %q (type: %s)", p.Name, p.Type))
			}
		}
		declared := make(map[string]bool, len(rec.Signature.Parameters))
		for _, p := range rec.Signature.Parameters {
			declared[p.Name] = true
		}
		for _, p := range doc.Params {
			if !declared[p.Name] {
				issue("@param", fmt.Sprintf("documented @param %q does not exist in signature", p.Name))
			}
		}
	}
	if cfg.RequireThrows && len(doc.Throws) == 0 {
		issue("@throws", "missing @throws tag")
	}
	if cfg.RequireReturns && doc.Returns == nil {
		issue("@returns", "missing @returns tag")
	}

	res.IsValid = len(res.Issues) == 0
	return res
}

// ValidateFile validates every record of one file, in order.
func ValidateFile(records []compact.CircuitRecord, filePath string, cfg Config) []model.ValidationResult {
	results := make([]model.ValidationResult, 0, len(records))
	for _, rec := range records {
		results = append(results, ValidateCircuit(rec, filePath, cfg))
	}
	return results
}

// Summarize folds results into per-file counts. A pure reduction:
// ValidCircuits + CircuitsWithIssues always equals TotalCircuits.
func Summarize(results []model.ValidationResult) model.FileSummary {
	var s model.FileSummary
	for _, r := range results {
		s.TotalCircuits++
		if r.IsValid {
			s.ValidCircuits++
		} else {
			s.CircuitsWithIssues++
		}
		for _, is := range r.Issues {
			switch is.Severity {
			case model.SeverityError:
				s.TotalErrors++
			default:
				s.TotalWarnings++
			}
		}
	}
	return s
}
