package app

import (
	"github.com/OpenZeppelin/compact-tools/internal/cli"
	"github.com/spf13/cobra"
)

func BuildRoot() *cobra.Command {
	root := &cobra.Command{Use: "compact-lint", Short: "Documentation linter for Compact circuits"}
	cli.AddCommands(root)
	return root
}
