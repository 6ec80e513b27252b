package internal

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "abuild [flags] [KEY=VALUE ...] [subcommand]",
	Short: "abuild turns a rules script into a standalone build artifact",
	Long: `abuild reads a rules script (Rules_build.gox by default), builds the
complete rule graph in memory, and writes it out as a flat Makefile, a
build.ninja file, or a plain shell script. All variable substitution is
baked in at generation time; the generated artifact rebuilds targets
whenever their command lines or inputs change, not just on timestamps.

Recognized arguments, anywhere on the command line:

  --in=PATH        source root (default .)
  --out=PATH       output root (default .)
  --infile=NAME    entry script (default Rules_build.gox)
  --outfile=NAME   artifact name (default per subcommand)
  --with-FOO       set WITH_FOO=1 (likewise --enable-FOO)
  --without-FOO    set WITH_FOO=0 (likewise --disable-FOO)
  KEY=VALUE        arbitrary variable override`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, "", args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
