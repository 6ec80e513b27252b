package emit

import (
	"bufio"
	"fmt"

	"github.com/stefanreuther/accidental-build/rules"
)

// Script writes a linear shell script that builds the given targets in
// dependency order. The traversal is an iterative depth-first walk: a rule
// is pushed, its uncompleted dependencies are emitted first, and the rule
// itself is written on the second visit. Strict commands abort the script,
// ignorable ones (leading "-") run through.
func Script(st *rules.Store, path string, targets []string) error {
	type frame struct {
		rule     *rules.Rule
		expanded bool
	}
	var stack []*frame
	for i := len(targets) - 1; i >= 0; i-- {
		r := st.Rule(targets[i])
		if r == nil {
			return fmt.Errorf("no rule for target %q", targets[i])
		}
		stack = append(stack, &frame{rule: r})
	}

	return writeArtifact(path, func(w *bufio.Writer) error {
		w.WriteString("#!/bin/sh\n# Generated by abuild - do not edit.\n")
		visiting := make(map[*rules.Rule]bool)
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			r := f.rule
			if !f.expanded {
				f.expanded = true
				visiting[r] = true
				deps := r.Inputs
				for i := len(deps) - 1; i >= 0; i-- {
					dep := st.Rule(deps[i])
					if dep == nil || visiting[dep] {
						continue
					}
					stack = append(stack, &frame{rule: dep})
				}
				continue
			}
			stack = stack[:len(stack)-1]
			if !r.ClaimEmit() {
				continue
			}
			if len(r.Comments) > 0 || r.Info != "" || len(r.Commands) > 0 {
				w.WriteString("\n")
			}
			for _, c := range r.Comments {
				w.WriteString("# " + c + "\n")
			}
			if r.Info != "" {
				w.WriteString("echo \"\t" + r.Info + "...\"\n")
			}
			for _, cmd := range r.Commands {
				text, _, ignore := splitMarkers(cmd)
				if ignore {
					w.WriteString(text + "\n")
				} else {
					w.WriteString(text + " || exit 1\n")
				}
			}
		}
		return nil
	})
}
