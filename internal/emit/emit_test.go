package emit

import "testing"

func TestSplitMarkers(t *testing.T) {
	tests := []struct {
		cmd    string
		text   string
		silent bool
		ignore bool
	}{
		{"cc -c x", "cc -c x", false, false},
		{"@echo hi", "echo hi", true, false},
		{"-rm -f x", "rm -f x", false, true},
		{"-@mkdir -p out", "mkdir -p out", true, true},
		{"@-mkdir -p out", "mkdir -p out", true, true},
	}
	for _, tt := range tests {
		text, silent, ignore := splitMarkers(tt.cmd)
		if text != tt.text || silent != tt.silent || ignore != tt.ignore {
			t.Errorf("splitMarkers(%q) = (%q, %v, %v), want (%q, %v, %v)",
				tt.cmd, text, silent, ignore, tt.text, tt.silent, tt.ignore)
		}
	}
}

func TestJoinCommands(t *testing.T) {
	tests := []struct {
		name string
		cmds []string
		want string
	}{
		{
			name: "strict chain",
			cmds: []string{"@cc -c x", "cc -c y"},
			want: "cc -c x && cc -c y",
		},
		{
			name: "ignorable then strict",
			cmds: []string{"-rm -f x", "touch x"},
			want: "rm -f x; touch x",
		},
		{
			name: "trailing ignorable closes with true",
			cmds: []string{"touch x", "-rm -f y"},
			want: "touch x && rm -f y; true",
		},
		{
			name: "single",
			cmds: []string{"@touch x"},
			want: "touch x",
		},
		{
			name: "empty",
			cmds: nil,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinCommands(tt.cmds); got != tt.want {
				t.Errorf("joinCommands(%v) = %q, want %q", tt.cmds, got, tt.want)
			}
		})
	}
}

func TestDropSwitches(t *testing.T) {
	got := dropSwitches([]string{"a.o", "-lfoo", "lib.a", "-L/x"})
	if len(got) != 2 || got[0] != "a.o" || got[1] != "lib.a" {
		t.Errorf("dropSwitches = %v", got)
	}
}

func TestPartitionOutputs(t *testing.T) {
	targets, depfiles := partitionOutputs([]string{"x.o", "x.d"})
	if len(targets) != 1 || targets[0] != "x.o" {
		t.Errorf("targets = %v", targets)
	}
	if len(depfiles) != 1 || depfiles[0] != "x.d" {
		t.Errorf("depfiles = %v", depfiles)
	}
}
