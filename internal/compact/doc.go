package compact

import (
	"regexp"
	"strings"
)

// ParamTag is one @param entry: @param {Type} name - description.
type ParamTag struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ThrowsTag is one @throws entry: @throws {Type} message.
type ThrowsTag struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ReturnsTag holds an @returns entry. Type is empty when the tag omits the
// bracketed type token.
type ReturnsTag struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// CircuitDoc is the parsed form of a doc block. Single-valued tags keep the
// first occurrence; @param and @throws keep every occurrence in order.
type CircuitDoc struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Remarks     string      `json:"remarks,omitempty"`
	CircuitInfo string      `json:"circuitInfo,omitempty"`
	Params      []ParamTag  `json:"params,omitempty"`
	Throws      []ThrowsTag `json:"throws,omitempty"`
	Returns     *ReturnsTag `json:"returns,omitempty"`
}

var (
	reParamTag   = regexp.MustCompile(`^\{([^}]*)\}\s+([A-Za-z_][A-Za-z0-9_]*)\s*(?:-\s*)?(.*)$`)
	reThrowsTag  = regexp.MustCompile(`^\{([^}]*)\}\s*(?:-\s*)?(.*)$`)
	reReturnsTag = regexp.MustCompile(`^\{([^}]*)\}\s*(?:-\s*)?(.*)$`)
)

// docTags in match order. @returns precedes @return so the shorter spelling
// does not truncate the longer one.
var docTags = []struct{ marker, name string }{
	{"@circuitInfo", "@circuitInfo"},
	{"@description", "@description"},
	{"@remarks", "@remarks"},
	{"@returns", "@returns"},
	{"@return", "@returns"},
	{"@throws", "@throws"},
	{"@param", "@param"},
	{"@title", "@title"},
}

// Normalize strips the /** and */ markers, removes one leading asterisk (and
// one following space) from each line, and trims every line. Normalizing
// already-normalized text is a no-op.
func Normalize(block string) string {
	text := strings.TrimSpace(block)
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "*") {
			l = strings.TrimPrefix(l[1:], " ")
			l = strings.TrimSpace(l)
		}
		out = append(out, l)
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// ParseDoc extracts tagged fields from a raw doc block. Each tag section runs
// until the next tag marker, a blank line, or end of block; a word like
// "remarks" inside a section body never terminates it. Internal line breaks
// and repeated whitespace collapse to single spaces.
func ParseDoc(raw string) CircuitDoc {
	var doc CircuitDoc
	lines := strings.Split(Normalize(raw), "\n")
	i := 0
	for i < len(lines) {
		tag, rest := matchTag(lines[i])
		if tag == "" {
			i++
			continue
		}
		body := []string{rest}
		j := i + 1
		for j < len(lines) {
			l := lines[j]
			if l == "" {
				break
			}
			if t, _ := matchTag(l); t != "" {
				break
			}
			body = append(body, l)
			j++
		}
		text := collapse(strings.Join(body, " "))
		switch tag {
		case "@title":
			if doc.Title == "" {
				doc.Title = text
			}
		case "@description":
			if doc.Description == "" {
				doc.Description = text
			}
		case "@remarks":
			if doc.Remarks == "" {
				doc.Remarks = text
			}
		case "@circuitInfo":
			if doc.CircuitInfo == "" {
				doc.CircuitInfo = text
			}
		case "@param":
			if m := reParamTag.FindStringSubmatch(text); m != nil {
				doc.Params = append(doc.Params, ParamTag{Name: m[2], Type: m[1], Description: collapse(m[3])})
			}
		case "@throws":
			if m := reThrowsTag.FindStringSubmatch(text); m != nil {
				doc.Throws = append(doc.Throws, ThrowsTag{Type: m[1], Message: collapse(m[2])})
			}
		case "@returns":
			if doc.Returns == nil {
				ret := ReturnsTag{Description: text}
				if m := reReturnsTag.FindStringSubmatch(text); m != nil {
					ret.Type = m[1]
					ret.Description = collapse(m[2])
				}
				doc.Returns = &ret
			}
		}
		i = j
	}
	return doc
}

// matchTag reports the canonical tag a line starts with and the text after
// the marker, or ("", "") when the line opens no tag.
func matchTag(line string) (tag, rest string) {
	for _, t := range docTags {
		if !strings.HasPrefix(line, t.marker) {
			continue
		}
		after := line[len(t.marker):]
		if after != "" && !strings.HasPrefix(after, " ") && !strings.HasPrefix(after, "\t") {
			continue
		}
		return t.name, strings.TrimSpace(after)
	}
	return "", ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
