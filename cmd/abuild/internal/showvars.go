package internal

import (
	"github.com/spf13/cobra"
)

var showVarsCmd = &cobra.Command{
	Use:   "show-vars",
	Short: "Print the final variable values after running the rules script",
	Long: `Show-vars runs the rules script and prints every variable with its
final value, annotating command-line overrides and directory variables.`,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, "show-vars", args)
	},
}

func init() {
	rootCmd.AddCommand(showVarsCmd)
}
