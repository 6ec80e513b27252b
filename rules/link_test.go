package rules

import (
	"reflect"
	"testing"
)

func TestRuleAddLink(t *testing.T) {
	b := NewBuild()
	b.Generate([]string{"libfoo"}, []string{"libfoo.a"})
	b.RuleSetPhony("libfoo")
	b.RuleAddLink("libfoo", "libfoo.a -lpthread")

	r := b.Store().Rule("libfoo")
	if !reflect.DeepEqual(r.LinkInputs, []string{"libfoo.a", "-lpthread"}) {
		t.Errorf("LinkInputs = %v", r.LinkInputs)
	}
}

func TestRuleAddLinkUnknownRule(t *testing.T) {
	b := NewBuild()
	defer expectError(t, "no rule")
	b.RuleAddLink("missing", "x")
}

func TestRuleGetLinkInputs(t *testing.T) {
	b := NewBuild()
	b.Generate([]string{"libfoo"}, []string{"libfoo.a"})
	b.RuleSetPhony("libfoo")
	b.RuleAddLink("libfoo", "libfoo.a", "-lm")
	b.Generate([]string{"libbar"}, []string{"libbar.a"})
	b.RuleSetPhony("libbar")
	b.RuleAddLink("libbar", "libbar.a", "-lm")

	got := b.RuleGetLinkInputs([]string{"libfoo", "libbar", "main.o"})
	// -lm deduplicates keeping the last occurrence
	want := []string{"libfoo.a", "libbar.a", "-lm", "main.o"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RuleGetLinkInputs = %v, want %v", got, want)
	}
}

func TestRuleFlattenAliases(t *testing.T) {
	b := NewBuild()
	b.Generate([]string{"all"}, []string{"prog", "doc"})
	b.RuleSetPhony("all")
	b.Generate([]string{"doc"}, []string{"manual.txt"})
	b.RuleSetPhony("doc")
	b.Generate([]string{"prog"}, []string{"prog.o"}, "link")

	got := b.RuleFlattenAliases([]string{"all", "-lz"})
	want := []string{"prog", "manual.txt", "-lz"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RuleFlattenAliases = %v, want %v", got, want)
	}
}

func TestRuleFlattenAliasesCycle(t *testing.T) {
	b := NewBuild()
	b.Generate([]string{"a"}, []string{"b"})
	b.Generate([]string{"b"}, []string{"a", "x.o"})
	b.RuleSetPhony("a", "b")

	got := b.RuleFlattenAliases([]string{"a"})
	if !reflect.DeepEqual(got, []string{"x.o"}) {
		t.Errorf("cycle flattening = %v, want [x.o]", got)
	}
}

func TestRuleGetInputs(t *testing.T) {
	b := NewBuild()
	b.Generate([]string{"libfoo"}, []string{"libfoo.a"})
	b.RuleSetPhony("libfoo")
	b.RuleAddLink("libfoo", "libfoo.a", "-lpthread")
	b.Generate([]string{"prog"}, []string{"main.o", "libfoo"}, "link")

	got := b.RuleGetInputs("prog")
	want := []string{"main.o", "libfoo.a", "-lpthread"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RuleGetInputs = %v, want %v", got, want)
	}
}

func TestRuleSetters(t *testing.T) {
	b := NewBuild()
	b.Generate([]string{"thing"}, nil, "make thing")
	b.RuleSetPhony("thing")
	b.RuleSetPrecious("thing")
	b.RuleSetPriority("thing", 7)
	b.RuleAddInfo("thing", "Making thing")
	b.RuleAddComment("thing", "first", "second")

	r := b.Store().Rule("thing")
	if !r.Phony || !r.Precious || r.Priority != 7 {
		t.Errorf("flags not applied: %+v", r)
	}
	if r.Info != "Making thing" {
		t.Errorf("info = %q", r.Info)
	}
	if !reflect.DeepEqual(r.Comments, []string{"first", "second"}) {
		t.Errorf("comments = %v", r.Comments)
	}
}
