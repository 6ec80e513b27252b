package rules

import "strings"

// LoadFile runs another rules script in the current scope. The file is
// registered as a generation input.
func (b *Build) LoadFile(files ...string) {
	for _, f := range ToList(files...) {
		b.loadScript(NormalizeFilename(f))
	}
}

// LoadModule is LoadFile with once-only semantics: each distinct canonical
// path is executed at most once per run.
func (b *Build) LoadModule(files ...string) {
	for _, f := range ToList(files...) {
		path := NormalizeFilename(f)
		if b.st.loadedModules[path] {
			continue
		}
		b.st.loadedModules[path] = true
		b.loadScript(path)
	}
}

// LoadDirectory descends into subdirectories: for each one, every directory
// variable (IN, OUT, TMP and AddDirectoryVariable registrations) is rebased
// by the subdirectory name, the directory's own rules script <IN>/<INFILE>
// is executed, and the variables are restored. Absolute and tree-escaping
// paths are rejected.
func (b *Build) LoadDirectory(dirs ...string) {
	for _, d := range ToList(dirs...) {
		dir := NormalizeFilename(d)
		if strings.HasPrefix(dir, "/") || dir == ".." || strings.HasPrefix(dir, "../") || dir == "." {
			fatalf("loadDirectory: invalid directory %q", d)
		}
		saved := make(map[string]string, len(b.st.dirVars))
		for name := range b.st.dirVars {
			saved[name] = b.st.vars[name]
			b.st.vars[name] = NormalizeFilename(b.st.vars[name], dir)
		}
		script := NormalizeFilename(b.GetVariable("IN"), b.GetVariable("INFILE"))
		b.loadScript(script)
		for name, value := range saved {
			b.st.vars[name] = value
		}
	}
}

func (b *Build) loadScript(path string) {
	b.AddInputFile(path)
	if b.loader == nil {
		fatalf("no script loader configured")
	}
	fn, err := b.loader.Load(path)
	if err != nil {
		fatalf("failed to load %s: %v", path, err)
	}
	fn(b)
}
