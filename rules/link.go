package rules

// RuleAddLink designates the named rule as a library alias: dependents link
// against the accumulated inputs (file paths and raw linker switches)
// instead of the rule's own outputs. Later duplicates win, preserving linker
// ordering.
func (b *Build) RuleAddLink(name string, inputs ...string) {
	r := b.st.mustRule(NormalizeFilename(name))
	if r.LinkInputs == nil {
		r.LinkInputs = []string{}
	}
	r.LinkInputs = pushUniqueLast(r.LinkInputs, ToList(inputs...)...)
}

// RuleFlattenAliases expands every phony rule that is not a link alias to
// its inputs, recursively; anything else (real files, linker switches)
// passes through. Cycles among phony rules terminate via a visited set.
func (b *Build) RuleFlattenAliases(items []string) []string {
	return b.st.flattenAliases(ToList(items...))
}

// RuleGetLinkInputs substitutes each item that names a link alias with that
// alias's link inputs, de-duplicated keeping the last occurrence.
func (b *Build) RuleGetLinkInputs(items []string) []string {
	return b.st.getLinkInputs(ToList(items...))
}

// RuleGetInputs returns the named rule's inputs with link aliases resolved.
func (b *Build) RuleGetInputs(name string) []string {
	return b.st.EffectiveInputs(b.st.mustRule(NormalizeFilename(name)))
}

// RuleAddInfo attaches the status string shown when the rule runs.
func (b *Build) RuleAddInfo(name, info string) {
	b.st.mustRule(NormalizeFilename(name)).Info = info
}

// RuleAddComment adds comment lines emitted above the rule in the artifact.
func (b *Build) RuleAddComment(name string, comments ...string) {
	r := b.st.mustRule(NormalizeFilename(name))
	r.Comments = append(r.Comments, comments...)
}

// RuleSetPhony marks rules as producing labels, not files.
func (b *Build) RuleSetPhony(names ...string) {
	for _, name := range ToList(names...) {
		b.st.mustRule(NormalizeFilename(name)).Phony = true
	}
}

// RuleSetPrecious exempts rules from the generated clean rule.
func (b *Build) RuleSetPrecious(names ...string) {
	for _, name := range ToList(names...) {
		b.st.mustRule(NormalizeFilename(name)).Precious = true
	}
}

// RuleSetPriority orders the rule in the artifact; higher emits first.
func (b *Build) RuleSetPriority(name string, priority int) {
	b.st.mustRule(NormalizeFilename(name)).Priority = priority
}

func (st *Store) flattenAliases(items []string) []string {
	var out []string
	visited := make(map[string]bool)
	var walk func(items []string)
	walk = func(items []string) {
		for _, it := range items {
			if r := st.rules[it]; r != nil && r.Phony && r.LinkInputs == nil {
				if visited[it] {
					continue
				}
				visited[it] = true
				walk(r.Inputs)
				continue
			}
			out = append(out, it)
		}
	}
	walk(items)
	return out
}

func (st *Store) getLinkInputs(items []string) []string {
	var out []string
	for _, it := range items {
		if r := st.rules[it]; r != nil && r.LinkInputs != nil {
			out = pushUniqueLast(out, r.LinkInputs...)
			continue
		}
		out = pushUniqueLast(out, it)
	}
	return out
}

// EffectiveInputs resolves a rule's inputs through the link-alias layer;
// emitters use it to compute the dependency line of non-phony rules.
func (st *Store) EffectiveInputs(r *Rule) []string {
	return st.getLinkInputs(r.Inputs)
}
