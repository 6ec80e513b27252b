package emit

import (
	"bufio"
	"strings"

	"github.com/stefanreuther/accidental-build/rules"
)

// makeWrapColumn is the column after which dependency lines continue on the
// next line.
const makeWrapColumn = 140

// Makefile writes the store as a flat Makefile: no variables, no pattern
// rules, every command already expanded. Dependency files are attached via
// -include so a vanished header does not break the build.
func Makefile(st *rules.Store, path string) error {
	return writeArtifact(path, func(w *bufio.Writer) error {
		w.WriteString("# Generated by abuild - do not edit.\n")
		for _, key := range st.Keys() {
			r := st.Rule(key)
			if !r.ClaimEmit() {
				continue
			}
			w.WriteString("\n")
			for _, c := range r.Comments {
				w.WriteString("# " + c + "\n")
			}
			writeMakeRuleLine(w, st, r)
			if r.Info != "" {
				w.WriteString("\t@echo \"\t" + r.Info + "...\"\n")
			}
			for _, cmd := range r.Commands {
				text, silent, ignore := splitMarkers(cmd)
				prefix := ""
				if silent || r.Info != "" {
					prefix += "@"
				}
				if ignore {
					prefix += "-"
				}
				w.WriteString("\t" + prefix + makeEscape(text) + "\n")
			}
			_, depfiles := partitionOutputs(r.Outputs)
			for _, d := range depfiles {
				w.WriteString("-include " + makeEscape(d) + "\n")
			}
		}
		return nil
	})
}

func writeMakeRuleLine(w *bufio.Writer, st *rules.Store, r *rules.Rule) {
	targets, _ := partitionOutputs(r.Outputs)
	inputs := r.Inputs
	if !r.Phony {
		inputs = st.EffectiveInputs(r)
	}
	inputs = dropSwitches(inputs)

	head := makeEscape(strings.Join(targets, " ")) + " :"
	w.WriteString(head)
	col := len(head)
	for _, in := range inputs {
		esc := makeEscape(in)
		if col+1+len(esc) > makeWrapColumn {
			w.WriteString(" \\\n  ")
			col = 2
		}
		w.WriteString(" " + esc)
		col += 1 + len(esc)
	}
	w.WriteString("\n")
}

// makeEscape re-escapes literal dollars; the artifact carries no make
// variables of its own.
func makeEscape(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
