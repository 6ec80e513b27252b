package rules

import (
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// AddVariable sets a variable only if it is absent and returns the value the
// variable ends up with. Scripts use it for overridable defaults.
func (b *Build) AddVariable(name, value string) string {
	if have, ok := b.st.vars[name]; ok {
		return have
	}
	b.st.vars[name] = value
	return value
}

// SetVariable sets a variable unconditionally.
func (b *Build) SetVariable(name, value string) {
	b.st.vars[name] = value
}

// SetUserVariable sets a variable and remembers the pair so the
// self-regeneration command can re-embed the user's configuration.
func (b *Build) SetUserVariable(name, value string) {
	if _, ok := b.st.userVars[name]; !ok {
		b.st.userOrder = append(b.st.userOrder, name)
	}
	b.st.userVars[name] = value
	b.st.vars[name] = value
}

// GetVariable returns the last-defined value across the global scope and any
// supplied per-call option mappings, or "" if undefined everywhere.
func (b *Build) GetVariable(name string, scopes ...map[string]string) string {
	value := b.st.vars[name]
	for _, scope := range scopes {
		if v, ok := scope[name]; ok {
			value = v
		}
	}
	return value
}

// GetVariableMerge concatenates every defined value of name across the
// global scope and the supplied mappings, joined by single spaces.
func (b *Build) GetVariableMerge(name string, scopes ...map[string]string) string {
	var parts []string
	if v, ok := b.st.vars[name]; ok && v != "" {
		parts = append(parts, v)
	}
	for _, scope := range scopes {
		if v, ok := scope[name]; ok && v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// AddToVariable space-appends values to a variable, initializing it when
// absent or empty.
func (b *Build) AddToVariable(name string, values ...string) {
	add := strings.Join(ToList(values...), " ")
	if add == "" {
		return
	}
	if cur := b.st.vars[name]; cur != "" {
		b.st.vars[name] = cur + " " + add
	} else {
		b.st.vars[name] = add
	}
}

// AddDirectoryVariable declares a directory-like variable: like AddVariable,
// but the value is additionally rebased when a script enters a subdirectory
// scope.
func (b *Build) AddDirectoryVariable(name, value string) string {
	b.st.dirVars[name] = true
	return b.AddVariable(name, value)
}

// LoadVariables reads a KEY=VALUE file into the store with set-if-absent
// semantics, so command-line overrides stay in effect. The file is
// registered as a generation input.
func (b *Build) LoadVariables(file string) {
	path := NormalizeFilename(file)
	b.AddInputFile(path)
	values, err := godotenv.Read(path)
	if err != nil {
		fatalf("failed to load variables from %s: %v", path, err)
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.AddVariable(name, values[name])
	}
}

// VariableNames returns every defined variable name, sorted.
func (b *Build) VariableNames() []string {
	names := make([]string, 0, len(b.st.vars))
	for name := range b.st.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsUserVariable reports whether the variable was set from the command line.
func (b *Build) IsUserVariable(name string) bool {
	_, ok := b.st.userVars[name]
	return ok
}

// IsDirectoryVariable reports whether the variable is rebased on
// subdirectory entry.
func (b *Build) IsDirectoryVariable(name string) bool {
	return b.st.dirVars[name]
}

// UserVariables returns the command-line overrides in the order they were
// given, as KEY=VALUE strings.
func (b *Build) UserVariables() []string {
	out := make([]string, 0, len(b.st.userOrder))
	for _, name := range b.st.userOrder {
		out = append(out, name+"="+b.st.userVars[name])
	}
	return out
}
