package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stefanreuther/accidental-build/rules"
)

func emitMakefile(t *testing.T, b *rules.Build) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Makefile")
	if err := Makefile(b.Store(), path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".new"); !os.IsNotExist(err) {
		t.Error("temporary .new file left behind")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestMakefileBasicRule(t *testing.T) {
	b := rules.NewBuild()
	b.Generate([]string{"o"}, []string{"i"}, "cc -c i -o o")
	b.RuleAddComment("o", "compile step")

	out := emitMakefile(t, b)
	if !strings.Contains(out, "# compile step\n") {
		t.Error("comment missing")
	}
	if !strings.Contains(out, "o : i\n") {
		t.Errorf("rule line missing:\n%s", out)
	}
	if !strings.Contains(out, "\tcc -c i -o o\n") {
		t.Error("command must be tab-indented")
	}
}

func TestMakefileInfoSilencesCommands(t *testing.T) {
	b := rules.NewBuild()
	b.Generate([]string{"o"}, []string{"i"}, "cc -c i -o o")
	b.RuleAddInfo("o", "Compiling i")

	out := emitMakefile(t, b)
	if !strings.Contains(out, "\t@echo \"\tCompiling i...\"\n") {
		t.Errorf("info echo missing:\n%s", out)
	}
	if !strings.Contains(out, "\t@cc -c i -o o\n") {
		t.Error("commands under info must be silenced")
	}
}

func TestMakefileAliasAndSwitches(t *testing.T) {
	b := rules.NewBuild()
	b.Generate([]string{"libfoo.a"}, []string{"foo.o"}, "ar rcs $@ $<")
	b.Generate([]string{"libfoo"}, []string{"libfoo.a"})
	b.RuleSetPhony("libfoo")
	b.RuleAddLink("libfoo", "libfoo.a", "-lpthread")
	b.Generate([]string{"prog"}, []string{"main.o", "libfoo"}, "cc -o $@ main.o libfoo.a -lpthread")

	out := emitMakefile(t, b)
	// the program depends on the archive, not on the switch or the alias
	if !strings.Contains(out, "prog : main.o libfoo.a\n") {
		t.Errorf("alias expansion wrong:\n%s", out)
	}
	// the phony alias keeps its raw inputs
	if !strings.Contains(out, "libfoo : libfoo.a\n") {
		t.Errorf("phony raw inputs wrong:\n%s", out)
	}
}

func TestMakefileDepfiles(t *testing.T) {
	b := rules.NewBuild()
	b.Generate([]string{"x.o", "x.d"}, []string{"x.c"}, "cc -MMD -MF x.d -c x.c -o x.o")

	out := emitMakefile(t, b)
	if !strings.Contains(out, "x.o : x.c\n") {
		t.Errorf(".d file must not appear as a target:\n%s", out)
	}
	if !strings.Contains(out, "-include x.d\n") {
		t.Error("-include line missing")
	}
}

func TestMakefileDollarEscaping(t *testing.T) {
	b := rules.NewBuild()
	b.Generate([]string{"o"}, nil, "echo $$HOME")

	out := emitMakefile(t, b)
	if !strings.Contains(out, "\techo $$HOME\n") {
		t.Errorf("literal dollar must be re-escaped:\n%s", out)
	}
}

func TestMakefileLineWrapping(t *testing.T) {
	b := rules.NewBuild()
	var ins []string
	for i := 0; i < 20; i++ {
		ins = append(ins, strings.Repeat("abcdefgh", 3)+"-"+string(rune('a'+i))+".o")
	}
	b.Generate([]string{"prog"}, ins, "link")

	out := emitMakefile(t, b)
	if !strings.Contains(out, " \\\n  ") {
		t.Error("long dependency line not wrapped")
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) > makeWrapColumn+40 {
			t.Errorf("line too long (%d): %q", len(line), line)
		}
	}
}

func TestMakefileEmissionOrder(t *testing.T) {
	b := rules.NewBuild()
	b.Generate([]string{"zzz"}, nil, "touch zzz")
	b.Generate([]string{"aaa"}, nil, "touch aaa")
	b.Generate([]string{".PHONY"}, []string{"all"})
	b.RuleSetPhony(".PHONY")
	b.Generate([]string{"late"}, nil, "touch late")
	b.RuleSetPriority("late", -50)

	out := emitMakefile(t, b)
	phony := strings.Index(out, ".PHONY :")
	aaa := strings.Index(out, "aaa :")
	zzz := strings.Index(out, "zzz :")
	late := strings.Index(out, "late :")
	if !(phony < aaa && aaa < zzz && zzz < late) {
		t.Errorf("emission order wrong:\n%s", out)
	}
}

func TestMakefileEmitsEachRuleOnce(t *testing.T) {
	b := rules.NewBuild()
	b.Generate([]string{"x.o", "x.lst"}, []string{"x.c"}, "cc x.c")

	out := emitMakefile(t, b)
	if strings.Count(out, "cc x.c") != 1 {
		t.Errorf("multi-output rule emitted more than once:\n%s", out)
	}
}
