package emit

import (
	"bufio"
	"strings"

	"github.com/stefanreuther/accidental-build/rules"
)

// Ninja writes the store as a build.ninja file built around one generic
// rule; every build statement carries its full, already-expanded command.
// Rules with no commands map to ninja's built-in phony rule so that bare
// input-file rules never fail on a missing output.
func Ninja(st *rules.Store, path string) error {
	return writeArtifact(path, func(w *bufio.Writer) error {
		w.WriteString("# Generated by abuild - do not edit.\n")
		w.WriteString("\nrule generic\n  command = $command\n")
		for _, key := range st.Keys() {
			r := st.Rule(key)
			if !r.ClaimEmit() {
				continue
			}
			w.WriteString("\n")
			for _, c := range r.Comments {
				w.WriteString("# " + c + "\n")
			}
			targets, depfiles := partitionOutputs(r.Outputs)
			inputs := r.Inputs
			if !r.Phony {
				inputs = st.EffectiveInputs(r)
			}
			inputs = dropSwitches(inputs)

			ruleName := "generic"
			if len(r.Commands) == 0 {
				ruleName = "phony"
			}
			w.WriteString("build " + ninjaEscapeList(targets) + ": " + ruleName)
			if len(inputs) > 0 {
				w.WriteString(" " + ninjaEscapeList(inputs))
			}
			w.WriteString("\n")
			if len(r.Commands) > 0 {
				w.WriteString("  command = " + ninjaEscapeText(joinCommands(r.Commands)) + "\n")
				if r.Info != "" {
					w.WriteString("  description = " + r.Info + "\n")
				}
				if len(depfiles) > 0 {
					w.WriteString("  depfile = " + ninjaEscapePath(depfiles[0]) + "\n")
				}
			}
		}
		w.WriteString("\ndefault all\n")
		return nil
	})
}

func ninjaEscapePath(s string) string {
	s = strings.ReplaceAll(s, "$", "$$")
	s = strings.ReplaceAll(s, " ", "$ ")
	return strings.ReplaceAll(s, ":", "$:")
}

func ninjaEscapeList(paths []string) string {
	escaped := make([]string, len(paths))
	for i, p := range paths {
		escaped[i] = ninjaEscapePath(p)
	}
	return strings.Join(escaped, " ")
}

func ninjaEscapeText(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
