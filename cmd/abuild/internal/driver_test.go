package internal

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/stefanreuther/accidental-build/rules"
)

func TestSelfCommand(t *testing.T) {
	b := rules.NewBuild()
	b.SetVariable("IN", "src")
	b.SetVariable("OUT", "build")
	b.SetVariable("INFILE", "Rules_build.gox")
	b.SetVariable("OUTFILE", "Makefile")
	b.SetUserVariable("CC", "clang")

	argv := selfCommand(b, "makefile", nil)
	want := []string{
		"--in=src",
		"--out=build",
		"--infile=Rules_build.gox",
		"--outfile=Makefile",
		"CC=clang",
		"makefile",
	}
	if !reflect.DeepEqual(argv[1:], want) {
		t.Errorf("selfCommand = %v, want exe followed by %v", argv, want)
	}

	argv = selfCommand(b, "scriptfile", []string{"all", "install"})
	if got := argv[len(argv)-3:]; !reflect.DeepEqual(got, []string{"scriptfile", "all", "install"}) {
		t.Errorf("scriptfile targets not preserved: %v", argv)
	}
}

func TestShowVars(t *testing.T) {
	b := rules.NewBuild()
	b.SetVariable("IN", "src")
	b.SetUserVariable("CC", "gcc")
	b.SetVariable("CFLAGS", "-O2")

	var buf bytes.Buffer
	showVars(b, &buf)
	out := buf.String()

	if !strings.Contains(out, "CC=gcc  (user-set)\n") {
		t.Errorf("user annotation missing:\n%s", out)
	}
	if !strings.Contains(out, "IN=src  (directory)\n") {
		t.Errorf("directory annotation missing:\n%s", out)
	}
	if !strings.Contains(out, "CFLAGS=-O2\n") {
		t.Errorf("plain variable wrong:\n%s", out)
	}
}

func TestRunScriptConvertsPanics(t *testing.T) {
	b := rules.NewBuild()
	b.SetLoader(stubLoader(func(bb *rules.Build) {
		bb.Generate([]string{"a"}, nil, "cmd a")
		bb.Generate([]string{"b"}, nil, "cmd b")
		bb.Generate([]string{"a", "b"}, nil, "cmd ab")
	}))
	err := runScript(b, "Rules_build.gox")
	if err == nil || !strings.Contains(err.Error(), "Rules_build.gox") || !strings.Contains(err.Error(), "cannot merge") {
		t.Errorf("merge conflict not surfaced with script name: %v", err)
	}
}

type stubLoader rules.ScriptFunc

func (s stubLoader) Load(path string) (rules.ScriptFunc, error) {
	return rules.ScriptFunc(s), nil
}
