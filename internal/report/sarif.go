package report

import (
	"encoding/json"

	"github.com/OpenZeppelin/compact-tools/internal/model"
)

type sarif struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}
type sarifDriver struct {
	Name string `json:"name"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}
type sarifLoc struct {
	Physical sarifPhys `json:"physicalLocation"`
}
type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}
type sarifArt struct {
	URI string `json:"uri"`
}
type sarifRegion struct {
	StartLine int           `json:"startLine"`
	Snippet   *sarifSnippet `json:"snippet,omitempty"`
}
type sarifSnippet struct {
	Text string `json:"text"`
}

// ToSARIF renders every issue in rep as a SARIF 2.1.0 result. The rule ID is
// the documentation field at fault (e.g. "@param").
func ToSARIF(rep *model.Report) ([]byte, error) {
	var results []sarifResult
	for _, f := range rep.Files {
		for _, r := range f.Results {
			for _, is := range r.Issues {
				level := "warning"
				if is.Severity == model.SeverityError {
					level = "error"
				}
				region := sarifRegion{StartLine: is.Line}
				if is.Snippet != "" {
					region.Snippet = &sarifSnippet{Text: is.Snippet}
				}
				results = append(results, sarifResult{
					RuleID:  is.Field,
					Level:   level,
					Message: sarifMessage{Text: r.CircuitName + ": " + is.Message},
					Locations: []sarifLoc{{Physical: sarifPhys{
						ArtifactLocation: sarifArt{URI: f.File},
						Region:           region,
					}}},
				})
			}
		}
	}
	s := sarif{Version: "2.1.0", Runs: []sarifRun{{Tool: sarifTool{Driver: sarifDriver{Name: "compact-lint"}}, Results: results}}}
	return json.MarshalIndent(s, "", "  ")
}
