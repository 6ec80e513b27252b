package internal

import (
	"github.com/spf13/cobra"
)

var makefileCmd = &cobra.Command{
	Use:   "makefile",
	Short: "Generate a classic Makefile (the default)",
	Long: `Makefile emits the rule graph as a flat Makefile: no variables, no
pattern rules, every command fully expanded, with hash-marker rules that
force a rebuild whenever a command line changes.`,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, "makefile", args)
	},
}

func init() {
	rootCmd.AddCommand(makefileCmd)
}
