package internal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stefanreuther/accidental-build/internal/emit"
	"github.com/stefanreuther/accidental-build/internal/loader"
	"github.com/stefanreuther/accidental-build/rules"
)

// defaultInfile is the rules script loaded from the source root.
const defaultInfile = "Rules_build.gox"

var defaultOutfiles = map[string]string{
	"makefile":   "Makefile",
	"ninjafile":  "build.ninja",
	"scriptfile": "build.sh",
}

// run is the shared driver behind every subcommand: parse the legacy
// argument surface, seed the variable store, execute the rules script,
// inject the bookkeeping rules and hand the store to the selected emitter.
// sub is empty when invoked through the root command, in which case the
// first positional argument selects the subcommand (default makefile).
func run(cmd *cobra.Command, sub string, args []string) error {
	b := rules.NewBuild()
	positional, err := b.ParseArgs(args)
	if errors.Is(err, rules.ErrHelp) {
		return cmd.Help()
	}
	if err != nil {
		return err
	}
	if sub == "" {
		sub = "makefile"
		if len(positional) > 0 {
			sub = positional[0]
			positional = positional[1:]
		}
	}
	targets := positional
	switch sub {
	case "makefile", "ninjafile", "show-vars":
		if len(targets) > 0 {
			return fmt.Errorf("unexpected argument %q", targets[0])
		}
	case "scriptfile":
		if len(targets) == 0 {
			return fmt.Errorf("scriptfile needs at least one target")
		}
	default:
		return fmt.Errorf("unknown subcommand %q", sub)
	}

	b.AddDirectoryVariable("IN", ".")
	b.AddDirectoryVariable("OUT", ".")
	b.AddDirectoryVariable("TMP", b.GetVariable("OUT"))
	b.AddVariable("INFILE", defaultInfile)
	b.AddVariable("OUTFILE", defaultOutfiles[sub])
	b.SetLoader(loader.New())

	script := rules.NormalizeFilename(b.GetVariable("IN"), b.GetVariable("INFILE"))
	if _, err := os.Stat(script); err != nil {
		return fmt.Errorf("cannot open rules script: %w", err)
	}
	if err := runScript(b, script); err != nil {
		return err
	}

	if sub == "show-vars" {
		showVars(b, os.Stdout)
		return nil
	}

	artifact := rules.NormalizeFilename(b.GetVariable("OUTFILE"))
	b.Verify(os.Stderr)
	if err := finalize(b, sub, artifact, targets); err != nil {
		return err
	}

	switch sub {
	case "makefile":
		return emit.Makefile(b.Store(), artifact)
	case "ninjafile":
		return emit.Ninja(b.Store(), artifact)
	default:
		normalized := make([]string, len(targets))
		for i, t := range targets {
			normalized[i] = rules.NormalizeFilename(t)
		}
		return emit.Script(b.Store(), artifact, normalized)
	}
}

// runScript executes the user's rules script, converting rule-model panics
// into fatal diagnostics carrying the script name.
func runScript(b *rules.Build, script string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			var rerr *rules.Error
			if e, ok := p.(*rules.Error); ok {
				rerr = e
			} else {
				rerr = &rules.Error{Msg: fmt.Sprint(p)}
			}
			err = fmt.Errorf("%s: %s", script, rerr.Msg)
		}
	}()
	b.LoadFile(script)
	return nil
}

// finalize injects the housekeeping rules (hash markers, self-rebuild,
// clean, phony collector).
func finalize(b *rules.Build, sub, artifact string, targets []string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(*rules.Error); ok {
				err = errors.New(e.Msg)
				return
			}
			panic(p)
		}
	}()
	b.Finalize(rules.FinalizeOptions{
		Artifact:      artifact,
		SelfCommand:   selfCommand(b, sub, targets),
		WithPhonyRule: sub == "makefile",
	})
	return nil
}

// selfCommand reconstructs the argv that reproduces this run, so the
// artifact can regenerate itself with the user's configuration preserved.
func selfCommand(b *rules.Build, sub string, targets []string) []string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	argv := []string{
		exe,
		"--in=" + b.GetVariable("IN"),
		"--out=" + b.GetVariable("OUT"),
		"--infile=" + b.GetVariable("INFILE"),
		"--outfile=" + b.GetVariable("OUTFILE"),
	}
	argv = append(argv, b.UserVariables()...)
	argv = append(argv, sub)
	argv = append(argv, targets...)
	return argv
}

// showVars prints the final variable table with per-variable annotations.
func showVars(b *rules.Build, w io.Writer) {
	for _, name := range b.VariableNames() {
		var notes []string
		if b.IsUserVariable(name) {
			notes = append(notes, "user-set")
		}
		if b.IsDirectoryVariable(name) {
			notes = append(notes, "directory")
		}
		line := name + "=" + b.GetVariable(name)
		if len(notes) > 0 {
			line += "  (" + strings.Join(notes, ", ") + ")"
		}
		fmt.Fprintln(w, line)
	}
}
