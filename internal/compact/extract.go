package compact

import (
	"regexp"
	"strings"
)

// ParameterSignature is one formal parameter, in declaration order. Type holds
// the raw type expression text, which may contain nested generic syntax such
// as Either<A, B>.
type ParameterSignature struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CircuitSignature identifies one circuit declaration. Line numbers are 1-based.
type CircuitSignature struct {
	Name            string               `json:"name"`
	IsExported      bool                 `json:"isExported"`
	Parameters      []ParameterSignature `json:"parameters"`
	ReturnType      string               `json:"returnType"`
	DeclarationLine int                  `json:"declarationLine"`
}

// CircuitRecord combines a signature with its immediately preceding doc block.
// When no block exists, HasDocs is false and both doc lines point at the line
// after the declaration.
type CircuitRecord struct {
	Signature    CircuitSignature `json:"signature"`
	RawDoc       string           `json:"rawDoc"`
	Doc          CircuitDoc       `json:"doc"`
	HasDocs      bool             `json:"hasDocs"`
	DocStartLine int              `json:"docStartLine"`
	DocEndLine   int              `json:"docEndLine"`
}

// EmptyReturnType is recorded when no return type follows the parameter list.
const EmptyReturnType = "[]"

var (
	reDeclaration   = regexp.MustCompile(`^\s*(export\s+)?(pure\s+)?circuit\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	reParamFragment = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*:\s*(.+)$`)
)

// Extract scans one file's content and returns a record per circuit
// declaration, in file order. It never fails: a declaration with an
// unparseable signature still yields a record with whatever partial
// information was recovered, so that validation can run on work-in-progress
// source.
func Extract(content string) []CircuitRecord {
	lines := strings.Split(content, "\n")
	var records []CircuitRecord
	for i, line := range lines {
		m := reDeclaration.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		sig := parseSignature(lines, i)
		sig.Name = m[3]
		sig.IsExported = strings.HasPrefix(strings.TrimSpace(m[1]), "export")
		sig.DeclarationLine = i + 1

		rec := CircuitRecord{Signature: sig}
		if start, end, ok := findDocBlock(lines, i); ok {
			rec.HasDocs = true
			rec.DocStartLine = start + 1
			rec.DocEndLine = end + 1
			rec.RawDoc = strings.Join(lines[start:end+1], "\n")
			rec.Doc = ParseDoc(rec.RawDoc)
		} else {
			rec.DocStartLine = i + 2
			rec.DocEndLine = i + 2
		}
		records = append(records, rec)
	}
	return records
}

// parseSignature accumulates lines starting at the declaration into a buffer
// until the parameter list closes and the return-type separator is present,
// then pulls parameters and return type out of the buffer. Parameter lists may
// span multiple lines.
func parseSignature(lines []string, declIdx int) CircuitSignature {
	var buf strings.Builder
	depth, opened := 0, false
	for j := declIdx; j < len(lines); j++ {
		line := lines[j]
		if j > declIdx && reDeclaration.MatchString(line) {
			break
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
		for _, r := range line {
			switch r {
			case '(':
				depth++
				opened = true
			case ')':
				depth--
			}
		}
		// The parameter list is closed; the trailing colon (or the body
		// opener, for circuits without a return type) ends accumulation.
		if opened && depth <= 0 && (strings.ContainsRune(line, ':') || strings.ContainsRune(line, '{')) {
			break
		}
	}
	header := buf.String()

	sig := CircuitSignature{ReturnType: EmptyReturnType}
	open := strings.IndexByte(header, '(')
	if open < 0 {
		return sig
	}
	closeIdx := matchingParen(header, open)
	if closeIdx < 0 {
		return sig
	}
	sig.Parameters = parseParameters(header[open+1 : closeIdx])

	rest := header[closeIdx+1:]
	if ci := strings.IndexByte(rest, ':'); ci >= 0 {
		rt := rest[ci+1:]
		if bi := strings.IndexByte(rt, '{'); bi >= 0 {
			rt = rt[:bi]
		}
		if trimmed := strings.TrimSpace(rt); trimmed != "" {
			sig.ReturnType = trimmed
		}
	}
	return sig
}

// matchingParen returns the index of the parenthesis closing the one at open,
// or -1 when the buffer ends before it closes.
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseParameters splits the raw parameter list on top-level commas only: a
// comma inside a generic argument list (Either<A, B>) is not a separator.
// Fragments that do not look like "name: type" are skipped.
func parseParameters(raw string) []ParameterSignature {
	var params []ParameterSignature
	for _, frag := range splitTopLevel(raw) {
		m := reParamFragment.FindStringSubmatch(strings.TrimSpace(frag))
		if m == nil {
			continue
		}
		params = append(params, ParameterSignature{Name: m[1], Type: strings.TrimSpace(m[2])})
	}
	return params
}

func splitTopLevel(s string) []string {
	var parts []string
	angle, start := 0, 0
	for i, r := range s {
		switch r {
		case '<':
			angle++
		case '>':
			angle--
		case ',':
			if angle == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// findDocBlock walks backward from the line above the declaration, skipping
// blanks. The nearest non-blank line must end with the block-comment closer;
// the walk then continues to the /** opener. Returned indices are 0-based and
// inclusive.
func findDocBlock(lines []string, declIdx int) (start, end int, ok bool) {
	j := declIdx - 1
	for j >= 0 && strings.TrimSpace(lines[j]) == "" {
		j--
	}
	if j < 0 || !strings.HasSuffix(strings.TrimSpace(lines[j]), "*/") {
		return 0, 0, false
	}
	end = j
	for ; j >= 0; j-- {
		if strings.HasPrefix(strings.TrimSpace(lines[j]), "/**") {
			return j, end, true
		}
	}
	return 0, 0, false
}
