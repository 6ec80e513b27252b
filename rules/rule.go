package rules

// Rule declares that a set of output paths is produced from a set of input
// paths by running a sequence of already-expanded command strings. A rule is
// reachable in the store under every one of its output names.
type Rule struct {
	Outputs  []string
	Inputs   []string
	Commands []string

	// Comments are emitted as comment lines above the rule; Info, when set,
	// is echoed by the runner while the rule executes.
	Comments []string
	Info     string

	// Priority orders emission, higher first. Directory rules use -99 and
	// hash markers -100 so housekeeping sinks to the bottom of the artifact.
	Priority int

	Phony     bool
	Precious  bool
	Directory bool

	// LinkInputs, when non-nil, turns the rule into a library alias:
	// dependents link against this list instead of the rule's outputs.
	LinkInputs []string

	emitted bool
}

// ClaimEmit marks the rule as emitted and reports whether the caller is the
// first to do so. Emitters reach a rule once per output key; only the first
// claim writes it.
func (r *Rule) ClaimEmit() bool {
	if r.emitted {
		return false
	}
	r.emitted = true
	return true
}

// addUnique appends each value that is not already present, preserving
// insertion order.
func addUnique(list []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, have := range list {
			if have == v {
				found = true
				break
			}
		}
		if !found {
			list = append(list, v)
		}
	}
	return list
}

// pushUniqueLast appends each value, first removing an earlier occurrence.
// Later duplicates must win so that linker argument ordering stays correct.
func pushUniqueLast(list []string, values ...string) []string {
	for _, v := range values {
		for i, have := range list {
			if have == v {
				list = append(list[:i], list[i+1:]...)
				break
			}
		}
		list = append(list, v)
	}
	return list
}

func contains(list []string, v string) bool {
	for _, have := range list {
		if have == v {
			return true
		}
	}
	return false
}
