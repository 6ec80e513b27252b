package rules

import (
	"fmt"
	"sort"
)

// Error is raised (via panic) for fatal rule-model and script-surface
// violations. The driver recovers it at the script boundary and turns it
// into a fatal diagnostic carrying the script name.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func fatalf(format string, args ...any) {
	panic(&Error{Msg: fmt.Sprintf(format, args...)})
}

// Store owns every rule and variable of one generation run. Output names map
// to shared *Rule values; two names bound to the same rule compare equal by
// pointer, which is how conflicting merges are detected.
type Store struct {
	rules map[string]*Rule

	vars      map[string]string
	userVars  map[string]string
	userOrder []string
	dirVars   map[string]bool

	inputs    []string
	inputSeen map[string]bool

	loadedModules map[string]bool
	tempSeq       int
}

func newStore() *Store {
	return &Store{
		rules:    make(map[string]*Rule),
		vars:     make(map[string]string),
		userVars: make(map[string]string),
		dirVars: map[string]bool{
			"IN":  true,
			"OUT": true,
			"TMP": true,
		},
		inputSeen:     make(map[string]bool),
		loadedModules: make(map[string]bool),
	}
}

// Rule returns the rule bound to an output name, or nil.
func (st *Store) Rule(name string) *Rule {
	return st.rules[name]
}

func (st *Store) mustRule(name string) *Rule {
	r := st.rules[name]
	if r == nil {
		fatalf("no rule for %s", name)
	}
	return r
}

// NumRules counts distinct rules in the store.
func (st *Store) NumRules() int {
	seen := make(map[*Rule]bool)
	for _, r := range st.rules {
		seen[r] = true
	}
	return len(seen)
}

// Keys returns every output name, ordered by descending rule priority with
// lexical ties. Emitters walk this projection so artifacts are deterministic.
func (st *Store) Keys() []string {
	keys := make([]string, 0, len(st.rules))
	for k := range st.rules {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, pj := st.rules[keys[i]].Priority, st.rules[keys[j]].Priority
		if pi != pj {
			return pi > pj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// walkRules visits each distinct rule once, in Keys order.
func (st *Store) walkRules(visit func(r *Rule)) {
	seen := make(map[*Rule]bool)
	for _, key := range st.Keys() {
		r := st.rules[key]
		if seen[r] {
			continue
		}
		seen[r] = true
		visit(r)
	}
}

func (st *Store) bind(name string, r *Rule) {
	st.rules[name] = r
}

// InputFiles returns the registered input-file set in registration order.
func (st *Store) InputFiles() []string {
	return st.inputs
}

func (st *Store) addInputFile(path string) {
	if st.inputSeen[path] {
		return
	}
	st.inputSeen[path] = true
	st.inputs = append(st.inputs, path)
}
