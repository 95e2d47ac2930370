package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/OpenZeppelin/compact-tools/internal/config"
	"github.com/OpenZeppelin/compact-tools/internal/engine"
	"github.com/OpenZeppelin/compact-tools/internal/model"
	"github.com/OpenZeppelin/compact-tools/internal/report"
	"github.com/OpenZeppelin/compact-tools/internal/tui"
	"github.com/spf13/cobra"
)

func AddCommands(root *cobra.Command) {
	root.AddCommand(newCheckCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newTagsCmd())
}

func newCheckCmd() *cobra.Command {
	var (
		format        string
		outputFile    string
		sarifOut      string
		failOn        string
		useTUI        bool
		baselinePath  string
		writeBaseline string
		exportedOnly  bool
		requireTitle  bool
		requireRem    bool
		requireThrows bool
	)
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Check circuit documentation in .compact sources",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			cfg, _, err := config.Load(path)
			if err != nil {
				return err
			}
			// Flags tighten the configured rule set; they never relax it.
			if exportedOnly {
				cfg.Rules.ExportedOnly = true
			}
			if requireTitle {
				cfg.Rules.RequireTitle = true
			}
			if requireRem {
				cfg.Rules.RequireRemarks = true
			}
			if requireThrows {
				cfg.Rules.RequireThrows = true
			}
			if failOn == "" {
				failOn = cfg.FailOn
			}

			eng := engine.New(cfg)
			rep, err := eng.Check(cmd.Context(), model.CheckRequest{Path: path, BaselinePath: baselinePath})
			if err != nil {
				return err
			}

			if writeBaseline != "" {
				if err := engine.WriteBaseline(writeBaseline, rep); err != nil {
					return err
				}
			}

			if useTUI {
				return tui.Run(rep)
			}
			switch format {
			case "json":
				data, _ := json.MarshalIndent(rep, "", "  ")
				if outputFile != "" {
					return os.WriteFile(outputFile, data, 0o644)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			case "sarif":
				data, err := report.ToSARIF(rep)
				if err != nil {
					return err
				}
				if sarifOut != "" {
					return os.WriteFile(sarifOut, data, 0o644)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			default:
				printTable(cmd, rep)
			}

			if failOn != "" {
				threshold := model.ParseSeverity(failOn)
				if n := engine.CountAtOrAbove(rep, threshold); n > 0 {
					return fmt.Errorf("fail-on threshold met: %d issue(s) at %s or above", n, threshold)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table|json|sarif")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write report to file (with --format json)")
	cmd.Flags().StringVar(&sarifOut, "sarif-out", "", "Write SARIF report to file (with --format sarif)")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "Exit non-zero on issues of this severity or higher (warning|error)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Render interactive TUI output")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "Suppress issues recorded in a baseline file")
	cmd.Flags().StringVar(&writeBaseline, "write-baseline", "", "Write a baseline file with issue fingerprints")
	cmd.Flags().BoolVar(&exportedOnly, "exported-only", false, "Check exported circuits only")
	cmd.Flags().BoolVar(&requireTitle, "require-title", false, "Require a @title tag")
	cmd.Flags().BoolVar(&requireRem, "require-remarks", false, "Require a @remarks tag")
	cmd.Flags().BoolVar(&requireThrows, "require-throws", false, "Require at least one @throws tag")
	return cmd
}

func printTable(cmd *cobra.Command, rep *model.Report) {
	t := rep.Totals
	fmt.Fprintf(cmd.OutOrStdout(), "Circuits: %d  valid: %d  with issues: %d  (warnings %d, errors %d, elapsed %s)\n",
		t.TotalCircuits, t.ValidCircuits, t.CircuitsWithIssues, t.TotalWarnings, t.TotalErrors, rep.Elapsed)
	for _, f := range rep.Files {
		for _, r := range f.Results {
			for _, is := range r.Issues {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s:%d [%s] %s %s %s\n", f.File, is.Line, is.Severity, r.CircuitName, is.Field, is.Message)
			}
		}
	}
}
