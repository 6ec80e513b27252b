// Package compiler is the compilation helper layer on top of the rule
// engine: it registers the default C/C++/assembler tool variables, derives
// object files from sources, archives static libraries, and links
// executables with automatic linker selection.
package compiler

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/stefanreuther/accidental-build/rules"
)

const GopPackage = true

// Compiler wraps a Build with source-language awareness. It remembers which
// rules involve C++ so executables pick the right linker.
type Compiler struct {
	b   *rules.Build
	cxx map[string]bool
}

// New registers the default tool variables (set-if-absent, so user
// overrides win) and returns a Compiler for the build.
func New(b *rules.Build) *Compiler {
	b.AddVariable("CC", "cc")
	b.AddVariable("CXX", "c++")
	b.AddVariable("AS", "as")
	b.AddVariable("AR", "ar")
	b.AddVariable("CFLAGS", "")
	b.AddVariable("CXXFLAGS", "")
	b.AddVariable("ASFLAGS", "")
	b.AddVariable("LDFLAGS", "")
	b.AddVariable("LIBS", "")
	return &Compiler{b: b, cxx: make(map[string]bool)}
}

// Object compiles a single source file into an object file under <TMP>; C
// and C++ sources also get a compiler-written dependency file, assembler
// sources do not. The same source compiled
// with identical flags shares one rule; differing flags fall back to a
// suffixed object name (stem, stem0, stem1, ...).
func (c *Compiler) Object(src string, flags ...string) string {
	source := rules.NormalizeFilename(src)
	dir, stem, ext := rules.SplitFilename(source)
	switch ext {
	case ".o", ".a":
		return source
	}
	tool, toolFlags, isCxx := c.toolFor(source, ext)
	isAsm := tool == "AS"

	objDir := rules.NormalizeFilename(c.b.GetVariable("TMP"), dir)
	extra := strings.Join(rules.ToList(flags...), " ")
	for i := -1; ; i++ {
		name := stem
		if i >= 0 {
			name = fmt.Sprintf("%s%d", stem, i)
		}
		obj := objDir + "/" + name + ".o"
		dep := objDir + "/" + name + ".d"
		cmd := "@$(" + tool + ") $(" + toolFlags + ")"
		if extra != "" {
			cmd += " " + extra
		}
		outputs := []string{obj, dep}
		if isAsm {
			// assemblers produce no dependency files
			cmd += " -o $@ $<"
			outputs = []string{obj}
		} else {
			cmd += " -MMD -MF " + dep + " -c $< -o $@"
		}
		if c.b.GenerateUnique(outputs, []string{source}, cmd) {
			c.b.RuleAddInfo(obj, "Compiling "+source)
			if isCxx {
				c.cxx[obj] = true
			}
			return obj
		}
	}
}

// StaticLibrary compiles sources, archives them into <OUT>/<name>.a, and
// defines a phony alias named name whose link inputs are the archive plus
// every item of flags (raw linker switches such as -l...), unfiltered.
// Dependents declare the alias and link
// correctly. Returns the alias name.
func (c *Compiler) StaticLibrary(name string, sources []string, flags ...string) string {
	lib := rules.NormalizeFilename(c.b.GetVariable("OUT"), name+".a")
	objs := c.objects(sources)
	objs = c.renameDuplicates(lib, objs)

	c.b.Generate([]string{lib}, objs,
		"@rm -f $@",
		"@$(AR) rcs $@ "+strings.Join(objs, " "))
	c.b.RuleAddInfo(lib, "Archiving "+lib)

	alias := rules.NormalizeFilename(name)
	c.b.Generate([]string{alias}, []string{lib})
	c.b.RuleSetPhony(alias)
	link := append([]string{lib}, rules.ToList(flags...)...)
	c.b.RuleAddLink(alias, link...)
	if c.anyCxx(objs) {
		c.cxx[alias] = true
	}
	return alias
}

// Executable compiles sources and links them with the given libraries
// (library aliases, archives, objects or raw linker switches) into
// <OUT>/<name>. The C++ driver links as soon as any involved object or
// alias was compiled from C++.
func (c *Compiler) Executable(name string, sources []string, libs ...string) string {
	exe := rules.NormalizeFilename(c.b.GetVariable("OUT"), name)
	objs := c.objects(sources)
	deps := append(append([]string{}, objs...), rules.ToList(libs...)...)

	linkItems := c.b.RuleGetLinkInputs(c.b.RuleFlattenAliases(deps))
	linker := "CC"
	if c.anyCxx(deps) || c.anyCxx(linkItems) {
		linker = "CXX"
	}
	c.b.Generate([]string{exe}, deps,
		"@$("+linker+") -o $@ "+strings.Join(linkItems, " ")+" $(LDFLAGS) $(LIBS)")
	c.b.RuleAddInfo(exe, "Linking "+exe)
	return exe
}

func (c *Compiler) objects(sources []string) []string {
	var objs []string
	for _, src := range rules.ToList(sources...) {
		objs = append(objs, c.Object(src))
	}
	return objs
}

// renameDuplicates reroutes objects whose basename already appears in the
// archive through a copy under <TMP>/.lib/<archive-hash>/, because the
// archiver keys members by basename.
func (c *Compiler) renameDuplicates(lib string, objs []string) []string {
	sum := md5.Sum([]byte(lib))
	copyDir := rules.NormalizeFilename(c.b.GetVariable("TMP"), ".lib", hex.EncodeToString(sum[:])[:8])
	seen := make(map[string]int)
	out := make([]string, 0, len(objs))
	for _, obj := range objs {
		_, stem, ext := rules.SplitFilename(obj)
		base := stem + ext
		n, dup := seen[base]
		seen[base] = n + 1
		if !dup {
			out = append(out, obj)
			continue
		}
		renamed := fmt.Sprintf("%s/%s%d%s", copyDir, stem, n, ext)
		c.b.GenerateCopy(renamed, obj)
		if c.cxx[obj] {
			c.cxx[renamed] = true
		}
		out = append(out, renamed)
	}
	return out
}

func (c *Compiler) anyCxx(items []string) bool {
	for _, it := range items {
		if c.cxx[it] {
			return true
		}
	}
	return false
}

func (c *Compiler) toolFor(source, ext string) (tool, flags string, isCxx bool) {
	switch ext {
	case ".c":
		return "CC", "CFLAGS", false
	case ".cpp", ".cc", ".cxx", ".c++":
		return "CXX", "CXXFLAGS", true
	case ".s", ".S":
		return "AS", "ASFLAGS", false
	}
	panic(&rules.Error{Msg: fmt.Sprintf("do not know how to compile %s", source)})
}
