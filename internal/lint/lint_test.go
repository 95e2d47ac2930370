package lint

import (
	"strings"
	"testing"

	"github.com/OpenZeppelin/compact-tools/internal/compact"
	"github.com/OpenZeppelin/compact-tools/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(sig compact.CircuitSignature, doc compact.CircuitDoc, hasDocs bool) compact.CircuitRecord {
	return compact.CircuitRecord{
		Signature:    sig,
		Doc:          doc,
		HasDocs:      hasDocs,
		DocStartLine: 1,
		DocEndLine:   5,
	}
}

func exported(name string, params ...compact.ParameterSignature) compact.CircuitSignature {
	return compact.CircuitSignature{Name: name, IsExported: true, Parameters: params, ReturnType: "[]", DeclarationLine: 7}
}

func fields(issues []model.ValidationIssue) []string {
	var out []string
	for _, is := range issues {
		out = append(out, is.Field)
	}
	return out
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.ExportedOnly)
	assert.False(t, cfg.RequireTitle)
	assert.True(t, cfg.RequireDescription)
	assert.False(t, cfg.RequireRemarks)
	assert.True(t, cfg.RequireCircuitInfo)
	assert.True(t, cfg.RequireParams)
	assert.False(t, cfg.RequireThrows)
	assert.True(t, cfg.RequireReturns)
}

func TestNonExportedExempt(t *testing.T) {
	sig := compact.CircuitSignature{Name: "helper", IsExported: false, DeclarationLine: 3}
	res := ValidateCircuit(record(sig, compact.CircuitDoc{}, false), "a.compact", DefaultConfig())
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Issues)
}

func TestMissingDocumentation(t *testing.T) {
	res := ValidateCircuit(record(exported("mint"), compact.CircuitDoc{}, false), "a.compact", DefaultConfig())
	assert.False(t, res.IsValid)
	require.Len(t, res.Issues, 1, "no further checks run when documentation is wholly absent")
	is := res.Issues[0]
	assert.Equal(t, "documentation", is.Field)
	assert.Equal(t, model.SeverityWarning, is.Severity)
	assert.Equal(t, 7, is.Line)
}

func TestCircuitInfoFormat(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{value: "k=11, rows=1305", valid: true},
		{value: "k=11,rows=1305", valid: true},
		{value: "k = 11 , rows = 2", valid: true},
		{value: "k=11", valid: false},
		{value: "rows=1305", valid: false},
		{value: "k=a, rows=b", valid: false},
	}
	cfg := Config{RequireCircuitInfo: true}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			doc := compact.CircuitDoc{CircuitInfo: tt.value}
			res := ValidateCircuit(record(exported("f"), doc, true), "a.compact", cfg)
			if tt.valid {
				assert.True(t, res.IsValid)
			} else {
				require.Len(t, res.Issues, 1)
				assert.Equal(t, "@circuitInfo", res.Issues[0].Field)
				assert.Contains(t, res.Issues[0].Message, "malformed")
				assert.Contains(t, res.Issues[0].Message, tt.value)
			}
		})
	}
}

func TestCircuitInfoMissing(t *testing.T) {
	res := ValidateCircuit(record(exported("f"), compact.CircuitDoc{}, true), "a.compact", Config{RequireCircuitInfo: true})
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "@circuitInfo", res.Issues[0].Field)
	assert.Contains(t, res.Issues[0].Message, "missing")
}

func TestParamCrossCheckBothDirections(t *testing.T) {
	sig := exported("f",
		compact.ParameterSignature{Name: "a", Type: "Field"},
		compact.ParameterSignature{Name: "b", Type: "Uint<64>"},
	)
	doc := compact.CircuitDoc{Params: []compact.ParamTag{
		{Name: "a", Type: "Field"},
		{Name: "c", Type: "Field"},
	}}
	res := ValidateCircuit(record(sig, doc, true), "a.compact", Config{RequireParams: true})
	require.Len(t, res.Issues, 2)
	assert.Contains(t, res.Issues[0].Message, `missing @param for parameter "b" (type: Uint<64>)`)
	assert.Contains(t, res.Issues[1].Message, `documented @param "c" does not exist in signature`)
}

func TestParamsSkippedForZeroParameterCircuits(t *testing.T) {
	res := ValidateCircuit(record(exported("f"), compact.CircuitDoc{}, true), "a.compact", Config{RequireParams: true})
	assert.True(t, res.IsValid)
}

func TestOptionalTagRules(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		doc  compact.CircuitDoc
		want []string
	}{
		{name: "title required", cfg: Config{RequireTitle: true}, want: []string{"@title"}},
		{name: "description required", cfg: Config{RequireDescription: true}, want: []string{"@description"}},
		{name: "remarks required", cfg: Config{RequireRemarks: true}, want: []string{"@remarks"}},
		{name: "throws required", cfg: Config{RequireThrows: true}, want: []string{"@throws"}},
		{name: "returns required", cfg: Config{RequireReturns: true}, want: []string{"@returns"}},
		{
			name: "satisfied",
			cfg:  Config{RequireTitle: true, RequireThrows: true, RequireReturns: true},
			doc: compact.CircuitDoc{
				Title:   "T",
				Throws:  []compact.ThrowsTag{{Type: "E"}},
				Returns: &compact.ReturnsTag{Type: "Field"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateCircuit(record(exported("f"), tt.doc, true), "a.compact", tt.cfg)
			assert.Equal(t, tt.want, fields(res.Issues))
			assert.Equal(t, len(tt.want) == 0, res.IsValid)
		})
	}
}

func TestIssueOrderIsFixed(t *testing.T) {
	cfg := Config{
		RequireTitle:       true,
		RequireDescription: true,
		RequireRemarks:     true,
		RequireCircuitInfo: true,
		RequireParams:      true,
		RequireThrows:      true,
		RequireReturns:     true,
	}
	sig := exported("f", compact.ParameterSignature{Name: "x", Type: "Field"})
	res := ValidateCircuit(record(sig, compact.CircuitDoc{}, true), "a.compact", cfg)
	assert.Equal(t, []string{"@title", "@description", "@remarks", "@circuitInfo", "@param", "@throws", "@returns"}, fields(res.Issues))
}

func TestSummarizeInvariants(t *testing.T) {
	results := []model.ValidationResult{
		{CircuitName: "a", IsValid: true},
		{CircuitName: "b", IsValid: false, Issues: []model.ValidationIssue{
			{Severity: model.SeverityWarning},
			{Severity: model.SeverityError},
		}},
		{CircuitName: "c", IsValid: false, Issues: []model.ValidationIssue{
			{Severity: model.SeverityWarning},
		}},
	}
	s := Summarize(results)
	assert.Equal(t, 3, s.TotalCircuits)
	assert.Equal(t, s.TotalCircuits, s.ValidCircuits+s.CircuitsWithIssues)
	assert.Equal(t, 2, s.TotalWarnings)
	assert.Equal(t, 1, s.TotalErrors)
	assert.Equal(t, 3, s.TotalWarnings+s.TotalErrors)
}

func TestEndToEndTransfer(t *testing.T) {
	src := strings.Join([]string{
		"/**",
		" * @description Transfers tokens.",
		" * @circuitInfo k=11, rows=1305",
		" * @param {ContractAddress} to - the recipient",
		" * @param {Uint<64>} amount - tokens to move",
		" * @returns [] - nothing",
		" */",
		"export circuit transfer(to: ContractAddress, amount: Uint<64>): [] {",
		"}",
	}, "\n")

	recs := compact.Extract(src)
	require.Len(t, recs, 1)
	results := ValidateFile(recs, "token.compact", DefaultConfig())
	require.Len(t, results, 1)
	assert.True(t, results[0].IsValid)
	assert.Empty(t, results[0].Issues)

	s := Summarize(results)
	assert.Equal(t, model.FileSummary{TotalCircuits: 1, ValidCircuits: 1}, s)
}
