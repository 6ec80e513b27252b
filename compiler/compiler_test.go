package compiler

import (
	"strings"
	"testing"

	"github.com/stefanreuther/accidental-build/rules"
)

func newTestCompiler() (*rules.Build, *Compiler) {
	b := rules.NewBuild()
	b.SetVariable("OUT", "out")
	b.SetVariable("TMP", "tmp")
	return b, New(b)
}

func TestNewRegistersToolDefaults(t *testing.T) {
	b := rules.NewBuild()
	b.SetUserVariable("CC", "clang")
	New(b)
	if got := b.GetVariable("CC"); got != "clang" {
		t.Errorf("user CC overridden: %q", got)
	}
	if got := b.GetVariable("CXX"); got != "c++" {
		t.Errorf("CXX default = %q", got)
	}
	if got := b.GetVariable("AR"); got != "ar" {
		t.Errorf("AR default = %q", got)
	}
}

func TestObject(t *testing.T) {
	b, c := newTestCompiler()
	obj := c.Object("src/foo.c")
	if obj != "tmp/src/foo.o" {
		t.Errorf("Object = %q", obj)
	}
	r := b.Store().Rule(obj)
	if r == nil {
		t.Fatal("object rule missing")
	}
	if !strings.Contains(r.Commands[0], "cc ") || !strings.Contains(r.Commands[0], "-c src/foo.c -o tmp/src/foo.o") {
		t.Errorf("compile command = %q", r.Commands[0])
	}
	if !strings.Contains(r.Commands[0], "-MMD -MF tmp/src/foo.d") {
		t.Errorf("dependency flags missing: %q", r.Commands[0])
	}
	if b.Store().Rule("tmp/src/foo.d") != r {
		t.Error(".d file not bound to the same rule")
	}
	if r.Info == "" {
		t.Error("object rule has no info")
	}
}

func TestObjectSharedWhenIdentical(t *testing.T) {
	_, c := newTestCompiler()
	first := c.Object("foo.c")
	second := c.Object("foo.c")
	if first != second {
		t.Errorf("identical compiles must share: %q vs %q", first, second)
	}
}

func TestObjectUniqueNameFallback(t *testing.T) {
	_, c := newTestCompiler()
	plain := c.Object("foo.c")
	debug := c.Object("foo.c", "-DDEBUG")
	if plain == debug {
		t.Error("differing flags must give a distinct object")
	}
	if debug != "tmp/foo0.o" {
		t.Errorf("fallback name = %q, want tmp/foo0.o", debug)
	}
}

func TestObjectDispatch(t *testing.T) {
	b, c := newTestCompiler()
	tests := []struct {
		src  string
		tool string
	}{
		{"a.c", "cc"},
		{"b.cpp", "c++"},
		{"c.cc", "c++"},
		{"d.s", "as"},
	}
	for _, tt := range tests {
		obj := c.Object(tt.src)
		cmd := b.Store().Rule(obj).Commands[0]
		if !strings.Contains(cmd, tt.tool+" ") {
			t.Errorf("Object(%q) command %q does not use %s", tt.src, cmd, tt.tool)
		}
	}
	if got := c.Object("pre.o"); got != "pre.o" {
		t.Errorf("object passthrough = %q", got)
	}
}

func TestObjectUnknownExtension(t *testing.T) {
	_, c := newTestCompiler()
	defer func() {
		if _, ok := recover().(*rules.Error); !ok {
			t.Error("unknown extension should raise *rules.Error")
		}
	}()
	c.Object("readme.txt")
}

func TestStaticLibrary(t *testing.T) {
	b, c := newTestCompiler()
	alias := c.StaticLibrary("libfoo", []string{"a.c", "b.c"}, "-lm")
	if alias != "libfoo" {
		t.Errorf("alias = %q", alias)
	}
	lib := b.Store().Rule("out/libfoo.a")
	if lib == nil {
		t.Fatal("archive rule missing")
	}
	if lib.Commands[0] != "@rm -f out/libfoo.a" {
		t.Errorf("archive commands = %v", lib.Commands)
	}
	if !strings.Contains(lib.Commands[1], "ar rcs out/libfoo.a tmp/a.o tmp/b.o") {
		t.Errorf("archive command = %q", lib.Commands[1])
	}
	ar := b.Store().Rule(alias)
	if !ar.Phony {
		t.Error("alias must be phony")
	}
	link := b.RuleGetLinkInputs([]string{alias})
	if len(link) != 2 || link[0] != "out/libfoo.a" || link[1] != "-lm" {
		t.Errorf("alias link inputs = %v", link)
	}
}

func TestStaticLibraryDuplicateBasenames(t *testing.T) {
	b, c := newTestCompiler()
	c.StaticLibrary("libdup", []string{"x/impl.c", "y/impl.c"})
	lib := b.Store().Rule("out/libdup.a")
	archive := lib.Commands[1]
	if !strings.Contains(archive, "tmp/x/impl.o") {
		t.Errorf("first object missing: %q", archive)
	}
	if strings.Count(archive, "impl") < 2 {
		t.Errorf("duplicate object lost: %q", archive)
	}
	if !strings.Contains(archive, "tmp/.lib/") {
		t.Errorf("duplicate basename not rerouted through .lib copy: %q", archive)
	}
}

func TestExecutableLinkerSelection(t *testing.T) {
	b, c := newTestCompiler()
	cExe := c.Executable("ctool", []string{"main.c"})
	if cmd := b.Store().Rule(cExe).Commands[0]; !strings.Contains(cmd, "cc -o") {
		t.Errorf("C program should link with cc: %q", cmd)
	}
	cxxExe := c.Executable("cxxtool", []string{"main2.cpp"})
	if cmd := b.Store().Rule(cxxExe).Commands[0]; !strings.Contains(cmd, "c++ -o") {
		t.Errorf("C++ program should link with c++: %q", cmd)
	}
}

func TestExecutableLinksAliases(t *testing.T) {
	b, c := newTestCompiler()
	alias := c.StaticLibrary("libfoo", []string{"foo.cpp"}, "-lpthread")
	exe := c.Executable("prog", []string{"main.c"}, alias)

	r := b.Store().Rule(exe)
	cmd := r.Commands[0]
	if !strings.Contains(cmd, "c++ -o") {
		t.Errorf("C++ library must force the C++ linker: %q", cmd)
	}
	if !strings.Contains(cmd, "out/libfoo.a -lpthread") {
		t.Errorf("link line wrong: %q", cmd)
	}
	if !strings.Contains(strings.Join(r.Inputs, " "), alias) {
		t.Errorf("alias missing from inputs: %v", r.Inputs)
	}
}
