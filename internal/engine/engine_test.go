package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenZeppelin/compact-tools/internal/config"
	"github.com/OpenZeppelin/compact-tools/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentedCircuit = `/**
 * @description Transfers tokens.
 * @circuitInfo k=11, rows=1305
 * @param {Uint<64>} amount - tokens to move
 * @returns [] - nothing
 */
export circuit transfer(amount: Uint<64>): [] {
}
`

const undocumentedCircuit = `export circuit burn(amount: Uint<64>): [] {
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "token.compact", documentedCircuit+"\n"+undocumentedCircuit)
	writeFile(t, dir, "notes.txt", "not a contract")

	eng := New(config.Default())
	rep, err := eng.Check(context.Background(), model.CheckRequest{Path: dir})
	require.NoError(t, err)

	require.Len(t, rep.Files, 1)
	assert.Equal(t, 2, rep.Totals.TotalCircuits)
	assert.Equal(t, 1, rep.Totals.ValidCircuits)
	assert.Equal(t, 1, rep.Totals.CircuitsWithIssues)
	assert.Equal(t, 1, rep.Totals.TotalWarnings)
	assert.Equal(t, 0, rep.Totals.TotalErrors)

	var invalid *model.ValidationResult
	for i := range rep.Files[0].Results {
		if !rep.Files[0].Results[i].IsValid {
			invalid = &rep.Files[0].Results[i]
		}
	}
	require.NotNil(t, invalid)
	assert.Equal(t, "burn", invalid.CircuitName)
	require.Len(t, invalid.Issues, 1)
	assert.Equal(t, "documentation", invalid.Issues[0].Field)
	assert.Contains(t, invalid.Issues[0].Snippet, "circuit burn")
	assert.NotEmpty(t, invalid.Issues[0].Fingerprint)
}

func TestCheckSingleFilePath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "one.compact", documentedCircuit)

	eng := New(config.Default())
	rep, err := eng.Check(context.Background(), model.CheckRequest{Path: path})
	require.NoError(t, err)
	require.Len(t, rep.Files, 1)
	assert.Equal(t, 1, rep.Totals.ValidCircuits)
}

func TestCheckSkipsHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	hidden := filepath.Join(dir, ".build")
	require.NoError(t, os.MkdirAll(hidden, 0o755))
	writeFile(t, hidden, "gen.compact", undocumentedCircuit)
	writeFile(t, dir, "main.compact", documentedCircuit)

	eng := New(config.Default())
	rep, err := eng.Check(context.Background(), model.CheckRequest{Path: dir})
	require.NoError(t, err)
	require.Len(t, rep.Files, 1)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "main.compact")), rep.Files[0].File)
}

func TestInlineSuppression(t *testing.T) {
	dir := t.TempDir()
	src := "// compact-lint:ignore documentation\n" + undocumentedCircuit
	writeFile(t, dir, "token.compact", src)

	eng := New(config.Default())
	rep, err := eng.Check(context.Background(), model.CheckRequest{Path: dir})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Totals.CircuitsWithIssues)
	assert.Equal(t, 1, rep.Totals.ValidCircuits)
}

func TestConfigIgnoreRule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "token.compact", undocumentedCircuit)

	cfg := config.Default()
	cfg.Ignore = []config.IgnoreRule{{Field: "documentation", Reason: "migration in progress"}}
	eng := New(cfg)
	rep, err := eng.Check(context.Background(), model.CheckRequest{Path: dir})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Totals.CircuitsWithIssues)
}

func TestBaselineRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "token.compact", undocumentedCircuit)
	blPath := filepath.Join(dir, "baseline.json")

	eng := New(config.Default())
	first, err := eng.Check(context.Background(), model.CheckRequest{Path: dir})
	require.NoError(t, err)
	require.Equal(t, 1, first.Totals.CircuitsWithIssues)
	require.NoError(t, WriteBaseline(blPath, first))

	second, err := eng.Check(context.Background(), model.CheckRequest{Path: dir, BaselinePath: blPath})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Totals.CircuitsWithIssues)
	assert.Equal(t, 1, second.Totals.ValidCircuits)
}

func TestCheckCanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "token.compact", documentedCircuit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	eng := New(config.Default())
	_, err := eng.Check(ctx, model.CheckRequest{Path: dir})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCountAtOrAbove(t *testing.T) {
	rep := &model.Report{Files: []model.FileReport{{
		Results: []model.ValidationResult{{
			Issues: []model.ValidationIssue{
				{Severity: model.SeverityWarning},
				{Severity: model.SeverityError},
			},
		}},
	}}}
	assert.Equal(t, 2, CountAtOrAbove(rep, model.SeverityWarning))
	assert.Equal(t, 1, CountAtOrAbove(rep, model.SeverityError))
}

func TestDiscoverFilesOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.compact", documentedCircuit)
	writeFile(t, dir, "a.compact", documentedCircuit)

	files, err := discoverFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.True(t, strings.HasSuffix(files[0], "a.compact"))
	assert.True(t, strings.HasSuffix(files[1], "b.compact"))
}
