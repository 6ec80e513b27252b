package internal

import (
	"github.com/spf13/cobra"
)

var scriptfileCmd = &cobra.Command{
	Use:   "scriptfile TARGET...",
	Short: "Generate a linear shell script building the given targets",
	Long: `Scriptfile emits a plain shell script that builds the named targets in
dependency order, without any rebuild avoidance.`,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, "scriptfile", args)
	},
}

func init() {
	rootCmd.AddCommand(scriptfileCmd)
}
