package commands

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "varinsight",
	Short: "varinsight - backward data-flow analysis for C#",
	Long: `varinsight traces where a variable, parameter, field, property or method's
value comes from, by walking assignment sites, method returns, parameter
bindings, object initializers and overrides backward from a cursor position.

Commands:
  insight     Trace the backward data-flow of a symbol
  tree        Display file tree structure
  structure   Show code structure (functions, classes, imports)
  extract     Full file analysis

Use "varinsight [command] --help" for more information about a command.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	// Add subcommands
	RootCmd.AddCommand(insightCmd)
	RootCmd.AddCommand(treeCmd)
	RootCmd.AddCommand(structureCmd)
	RootCmd.AddCommand(extractCmd)
}
