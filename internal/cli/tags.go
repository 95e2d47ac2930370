package cli

import (
	"fmt"

	"github.com/OpenZeppelin/compact-tools/internal/config"
	"github.com/spf13/cobra"
)

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "tags", Short: "Show recognized documentation tags"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List doc tags and whether the current config requires them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.Load(".")
			if err != nil {
				return err
			}
			r := cfg.Rules
			rows := []struct {
				tag      string
				required bool
				desc     string
			}{
				{"@title", r.RequireTitle, "Short circuit title"},
				{"@description", r.RequireDescription, "What the circuit does"},
				{"@remarks", r.RequireRemarks, "Additional notes"},
				{"@circuitInfo", r.RequireCircuitInfo, "Proof metrics: k=<integer>, rows=<integer>"},
				{"@param", r.RequireParams, "One entry per signature parameter"},
				{"@throws", r.RequireThrows, "Failure conditions"},
				{"@returns", r.RequireReturns, "Return value"},
			}
			for _, row := range rows {
				req := "optional"
				if row.required {
					req = "required"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-13s %-9s %s\n", row.tag, req, row.desc)
			}
			return nil
		},
	})
	return cmd
}
