// Package emit writes the rule store out as a standalone build artifact:
// a classic Makefile, a ninja file, or a linear shell script. All three
// writers produce <path>.new and atomically rename it into place, so an
// aborted run never leaves a half-written artifact.
package emit

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

func writeArtifact(path string, gen func(w *bufio.Writer) error) error {
	tmp := path + ".new"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	w := bufio.NewWriter(f)
	if err := gen(w); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename %s: %w", tmp, err)
	}
	return nil
}

// splitMarkers strips the runner-level command prefixes: "@" silences the
// command, "-" ignores its exit status. Both may appear in either order.
func splitMarkers(cmd string) (text string, silent, ignore bool) {
	for {
		switch {
		case strings.HasPrefix(cmd, "@"):
			silent = true
			cmd = cmd[1:]
		case strings.HasPrefix(cmd, "-"):
			ignore = true
			cmd = cmd[1:]
		default:
			return cmd, silent, ignore
		}
	}
}

// joinCommands concatenates a rule's commands into a single shell pipeline:
// ignorable commands chain with ";", strict ones with "&&". A trailing ";"
// joiner is closed with true, a trailing "&&" is dropped.
func joinCommands(cmds []string) string {
	var sb strings.Builder
	for _, c := range cmds {
		text, _, ignore := splitMarkers(c)
		sb.WriteString(text)
		if ignore {
			sb.WriteString("; ")
		} else {
			sb.WriteString(" && ")
		}
	}
	s := sb.String()
	switch {
	case strings.HasSuffix(s, " && "):
		return s[:len(s)-len(" && ")]
	case strings.HasSuffix(s, "; "):
		return s + "true"
	}
	return s
}

// dropSwitches filters out raw linker switches, which are never
// dependencies.
func dropSwitches(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if strings.HasPrefix(it, "-") {
			continue
		}
		out = append(out, it)
	}
	return out
}

func isDepFile(path string) bool {
	return strings.HasSuffix(path, ".d")
}

func partitionOutputs(outputs []string) (targets, depfiles []string) {
	for _, o := range outputs {
		if isDepFile(o) {
			depfiles = append(depfiles, o)
		} else {
			targets = append(targets, o)
		}
	}
	if len(targets) == 0 {
		targets = outputs
		depfiles = nil
	}
	return targets, depfiles
}
