package rules

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Generate declares that outputs are produced from inputs by running
// commands. Output and input lists accept whitespace-separated strings and
// are canonicalized; commands are variable-expanded against the
// canonicalized lists of this call. If some of the outputs already belong to
// a rule, that rule is extended (outputs, inputs and commands unioned in
// insertion order, so a repeated command is not added twice); outputs
// spanning two distinct preexisting rules
// cannot be merged. Returns the first output name.
func (b *Build) Generate(outputs, inputs []string, commands ...string) string {
	outs := normalizeList(ToList(outputs...))
	if len(outs) == 0 {
		fatalf("generate needs at least one output")
	}
	ins := normalizeList(ToList(inputs...))
	cmds := b.expandCommands(commands, outs, ins)
	r := b.mergeRule(outs, ins, cmds)
	b.wireDirectories(r, outs)
	return outs[0]
}

// GenerateUnique is the no-merge variant of Generate. If any requested
// output already belongs to a rule, it succeeds only when that single rule
// already carries every requested output, input and command; otherwise it
// reports false without mutating anything, and the caller retries under a
// different name. Fresh outputs create the rule as Generate would.
func (b *Build) GenerateUnique(outputs, inputs []string, commands ...string) bool {
	outs := normalizeList(ToList(outputs...))
	if len(outs) == 0 {
		fatalf("generateUnique needs at least one output")
	}
	ins := normalizeList(ToList(inputs...))
	cmds := b.expandCommands(commands, outs, ins)

	var existing *Rule
	for _, out := range outs {
		if r := b.st.rules[out]; r != nil {
			if existing != nil && existing != r {
				return false
			}
			existing = r
		}
	}
	if existing != nil {
		for _, out := range outs {
			if !contains(existing.Outputs, out) {
				return false
			}
		}
		for _, in := range ins {
			if !contains(existing.Inputs, in) {
				return false
			}
		}
		for _, cmd := range cmds {
			if !contains(existing.Commands, cmd) {
				return false
			}
		}
		return true
	}

	r := b.newRule(outs, ins, cmds)
	b.wireDirectories(r, outs)
	return true
}

// GenerateCopy defines dst as a copy of src using the CP tool variable
// (default cp). Returns dst.
func (b *Build) GenerateCopy(dst, src string) string {
	b.AddVariable("CP", "cp")
	return b.Generate([]string{dst}, []string{src}, "@$(CP) $< $@")
}

// GenerateAnonymous creates a rule whose output name is derived from a
// stable hash over the extension, inputs and commands, placed under
// <TMP>/.anon. Repeated construction with identical parameters therefore
// shares one rule. Returns the output path.
func (b *Build) GenerateAnonymous(ext string, inputs []string, commands ...string) string {
	ins := normalizeList(ToList(inputs...))
	sum := md5.Sum([]byte(ext + "\n" + strings.Join(ins, " ") + "\n" + strings.Join(commands, "\n")))
	out := NormalizeFilename(b.GetVariable("TMP"), ".anon", hex.EncodeToString(sum[:])+ext)
	if b.st.rules[out] == nil {
		b.Generate([]string{out}, ins, commands...)
	}
	return out
}

// GenerateDirectory ensures a directory-creation rule for path exists and
// returns its mark file <path>/.mark. The rule is precious, excluded from
// hash tracking, and sorts near the bottom of the artifact; parent
// directories are created the same way and chained via their mark files.
func (b *Build) GenerateDirectory(path string) string {
	dir := NormalizeFilename(path)
	mark := dir + "/.mark"
	if r := b.st.rules[mark]; r != nil {
		if !r.Directory {
			fatalf("%s already has a file rule, cannot turn it into a directory", mark)
		}
		return mark
	}
	r := &Rule{
		Outputs:   []string{mark},
		Commands:  []string{"-@mkdir -p " + dir, "@touch " + mark},
		Priority:  -99,
		Precious:  true,
		Directory: true,
	}
	if parent := dirOf(dir); parent != "" && wantsDirectoryRule(dir) {
		r.Inputs = append(r.Inputs, b.GenerateDirectory(parent))
	}
	b.st.bind(mark, r)
	return mark
}

// mergeRule finds or creates the rule covering outs and folds ins and cmds
// into it, enforcing the store invariants.
func (b *Build) mergeRule(outs, ins, cmds []string) *Rule {
	var found *Rule
	var foundAt string
	for _, out := range outs {
		r := b.st.rules[out]
		if r == nil {
			continue
		}
		if found != nil && found != r {
			fatalf("cannot merge rules for %s and %s", foundAt, out)
		}
		found, foundAt = r, out
	}
	if found == nil {
		return b.newRule(outs, ins, cmds)
	}
	if found.Directory {
		fatalf("%s names a directory rule, cannot add file outputs", foundAt)
	}
	found.Outputs = addUnique(found.Outputs, outs...)
	found.Inputs = addUnique(found.Inputs, ins...)
	found.Commands = addUnique(found.Commands, cmds...)
	for _, out := range outs {
		b.st.bind(out, found)
	}
	return found
}

func (b *Build) newRule(outs, ins, cmds []string) *Rule {
	r := &Rule{
		Outputs:  outs,
		Inputs:   ins,
		Commands: cmds,
	}
	for _, out := range outs {
		if strings.HasPrefix(out, ".") {
			r.Priority = 2
			break
		}
	}
	for _, out := range outs {
		b.st.bind(out, r)
	}
	return r
}

// wireDirectories makes the rule depend on the mark file of every
// subdirectory it writes into, so parallel runners create directories before
// the commands that need them.
func (b *Build) wireDirectories(r *Rule, outs []string) {
	if r.Directory {
		return
	}
	for _, out := range outs {
		if wantsDirectoryRule(out) {
			r.Inputs = addUnique(r.Inputs, b.GenerateDirectory(dirOf(out)))
		}
	}
}
