package engine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/OpenZeppelin/compact-tools/internal/cache"
	"github.com/OpenZeppelin/compact-tools/internal/compact"
	"github.com/OpenZeppelin/compact-tools/internal/config"
	"github.com/OpenZeppelin/compact-tools/internal/lint"
	"github.com/OpenZeppelin/compact-tools/internal/model"
	"github.com/OpenZeppelin/compact-tools/internal/util"
)

const sourceExt = ".compact"

type Engine struct {
	cfg config.Config
}

func New(cfg config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Check lints every .compact file under the request path. Each file is
// processed independently; one file's issues never suppress another's.
// Cancellation is honored between files only, never mid-file.
func (e *Engine) Check(ctx context.Context, req model.CheckRequest) (*model.Report, error) {
	start := time.Now()
	files, err := discoverFiles(req.Path)
	if err != nil {
		return nil, err
	}
	bl, _ := loadBaseline(req.BaselinePath)

	var rep model.Report
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fr, err := e.checkFile(path, bl)
		if err != nil {
			continue // unreadable files are skipped, not fatal
		}
		rep.Files = append(rep.Files, fr)
		rep.Totals.TotalCircuits += fr.Summary.TotalCircuits
		rep.Totals.ValidCircuits += fr.Summary.ValidCircuits
		rep.Totals.CircuitsWithIssues += fr.Summary.CircuitsWithIssues
		rep.Totals.TotalWarnings += fr.Summary.TotalWarnings
		rep.Totals.TotalErrors += fr.Summary.TotalErrors
	}
	rep.Elapsed = time.Since(start)
	return &rep, nil
}

func (e *Engine) checkFile(path string, bl baseline) (model.FileReport, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.FileReport{}, err
	}
	content := string(b)

	// Extraction is memoized by file content; the core itself keeps no state.
	abs, _ := filepath.Abs(path)
	key := cache.Key("compact-records-v1", abs, content)
	recs, ok := cache.LoadRecords(key)
	if !ok {
		recs = compact.Extract(content)
		_ = cache.StoreRecords(key, recs)
	}

	rel := filepath.ToSlash(path)
	results := lint.ValidateFile(recs, rel, e.cfg.Rules)
	for ri := range results {
		r := &results[ri]
		for ii := range r.Issues {
			is := &r.Issues[ii]
			is.Snippet = util.LineSnippet(content, is.Line)
			is.Fingerprint = util.Fingerprint(rel, r.CircuitName, is.Field, is.Message)
		}
	}
	results = applyIgnores(results, content, e.cfg)
	results = filterByBaseline(results, bl)

	return model.FileReport{File: rel, Results: results, Summary: lint.Summarize(results)}, nil
}

// discoverFiles returns the .compact files under root in walk order. A root
// that is itself a file is linted directly.
func discoverFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	var out []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(d.Name()) == sourceExt {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}
