package tui

import (
	"fmt"
	"strings"

	"github.com/OpenZeppelin/compact-tools/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

type row struct {
	file    string
	circuit string
	issue   model.ValidationIssue
}

type modelT struct {
	rows   []row
	totals model.FileSummary
	cursor int
}

func initialModel(rep *model.Report) modelT {
	m := modelT{totals: rep.Totals}
	for _, f := range rep.Files {
		for _, r := range f.Results {
			for _, is := range r.Issues {
				m.rows = append(m.rows, row{file: f.File, circuit: r.CircuitName, issue: is})
			}
		}
	}
	return m
}

func (m modelT) Init() tea.Cmd { return nil }

func (m modelT) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m modelT) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Circuits: %d  valid: %d  with issues: %d\n\n",
		m.totals.TotalCircuits, m.totals.ValidCircuits, m.totals.CircuitsWithIssues)
	for i, r := range m.rows {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s:%d [%s] %s %s\n", marker, r.file, r.issue.Line, r.issue.Severity, r.circuit, r.issue.Message)
	}
	if len(m.rows) > 0 && m.cursor < len(m.rows) {
		if s := m.rows[m.cursor].issue.Snippet; s != "" {
			fmt.Fprintf(&b, "\n  %s\n", s)
		}
	}
	b.WriteString("\nq to quit\n")
	return b.String()
}

// Run launches an interactive issue browser over the report.
func Run(rep *model.Report) error {
	p := tea.NewProgram(initialModel(rep))
	_, err := p.Run()
	return err
}
