package rules

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// cleanLineLimit caps the length of a single rm batch in the clean rule.
const cleanLineLimit = 120

// FinalizeOptions configures the housekeeping rules injected before
// emission.
type FinalizeOptions struct {
	// Artifact is the canonical path of the file being generated; the
	// self-rebuild rule regenerates it when any registered input changes.
	Artifact string

	// SelfCommand is the argv that reproduces this run, user overrides
	// included. SelfCommand[0] is the driver executable, which becomes an
	// input of the self-rebuild rule.
	SelfCommand []string

	// WithPhonyRule injects the classic runner's .PHONY collector.
	WithPhonyRule bool
}

// Finalize injects the bookkeeping rules, in this order: hash markers (so
// the bookkeeping itself is not hash-tracked), the self-rebuild rule, the
// clean rule, and optionally the phony collector.
func (b *Build) Finalize(opts FinalizeOptions) {
	b.generateHashMarkers()
	b.generateSelfRebuild(opts)
	b.generateClean()
	if opts.WithPhonyRule {
		b.generatePhonyRule()
	}
}

// generateSelfRebuild makes the artifact rebuild itself when the rules
// script or any other registered input changes. Every input additionally
// gets a bare no-command rule so a deleted include file does not halt the
// runner.
func (b *Build) generateSelfRebuild(opts FinalizeOptions) {
	if opts.Artifact == "" || len(opts.SelfCommand) == 0 {
		return
	}
	inputs := append([]string{}, b.st.InputFiles()...)
	inputs = append(inputs, NormalizeFilename(opts.SelfCommand[0]))
	quoted := make([]string, len(opts.SelfCommand))
	for i, arg := range opts.SelfCommand {
		quoted[i] = shellQuote(arg)
	}
	// Protect literal dollars from the one-shot expansion in Generate.
	command := strings.ReplaceAll(strings.Join(quoted, " "), "$", "$$")
	b.Generate([]string{opts.Artifact}, inputs, "@"+command)
	b.RuleSetPrecious(opts.Artifact)

	for _, in := range inputs {
		if b.st.rules[in] == nil {
			r := &Rule{Outputs: []string{in}, Precious: true}
			b.st.bind(in, r)
		}
	}
}

// generateClean defines the phony clean target removing every output of
// every rule that is neither precious nor phony, batched so no command line
// grows unboundedly.
func (b *Build) generateClean() {
	var files []string
	b.st.walkRules(func(r *Rule) {
		if r.Precious || r.Phony {
			return
		}
		files = addUnique(files, r.Outputs...)
	})

	var commands []string
	line := ""
	chunks := 0
	flush := func() {
		if line == "" {
			return
		}
		commands = append(commands, "@rm -f"+line)
		line = ""
		chunks++
		if chunks%100 == 0 {
			commands = append(commands, `@echo "	cleaning..."`)
		}
	}
	for _, f := range files {
		if len(line)+1+len(f) > cleanLineLimit {
			flush()
		}
		line += " " + f
	}
	flush()

	b.Generate([]string{"clean"}, nil, commands...)
	b.RuleSetPhony("clean")
}

// generatePhonyRule collects every phony target under the classic runner's
// .PHONY directive.
func (b *Build) generatePhonyRule() {
	var targets []string
	b.st.walkRules(func(r *Rule) {
		if r.Phony {
			targets = addUnique(targets, r.Outputs...)
		}
	})
	b.Generate([]string{".PHONY"}, targets)
	b.RuleSetPhony(".PHONY")
}

// Verify warns about every rule input that is neither generated by the
// graph nor present on the filesystem. Linker switches are skipped.
func (b *Build) Verify(w io.Writer) {
	warned := make(map[string]bool)
	b.st.walkRules(func(r *Rule) {
		for _, in := range r.Inputs {
			if strings.HasPrefix(in, "-") || warned[in] || b.st.rules[in] != nil {
				continue
			}
			if _, err := os.Stat(in); err == nil {
				continue
			}
			warned[in] = true
			fmt.Fprintf(w, "warning: %s: no rule generates this file and it does not exist\n", in)
		}
	})
}

// shellQuote quotes an argument for the regenerated command line.
func shellQuote(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\n'\"\\$&|;<>()*?[]#~`") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
