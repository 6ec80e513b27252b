package internal

import (
	"github.com/spf13/cobra"
)

var ninjafileCmd = &cobra.Command{
	Use:   "ninjafile",
	Short: "Generate a build.ninja file",
	Long: `Ninjafile emits the rule graph for the ninja build system, using a
single generic rule with per-build command lines.`,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, "ninjafile", args)
	},
}

func init() {
	rootCmd.AddCommand(ninjafileCmd)
}
