// Package configure provides autoconf-style probing for rules scripts:
// try-compile and try-link checks, pkg-config interrogation, program
// search and version comparison. Probes run at generation time; their
// results reach the rule graph only through variables.
package configure

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/stefanreuther/accidental-build/internal/gnu"
	"github.com/stefanreuther/accidental-build/rules"
)

const GopPackage = true

// Probe runs configuration checks against the tools named by the build's
// variables.
type Probe struct {
	b *rules.Build
}

// New returns a Probe for the build. PKG_CONFIG defaults to pkg-config.
func New(b *rules.Build) *Probe {
	b.AddVariable("PKG_CONFIG", "pkg-config")
	return &Probe{b: b}
}

// TryCompile writes code to a scratch file under <TMP>/.conf and reports
// whether the C compiler accepts it.
func (p *Probe) TryCompile(code string, flags ...string) bool {
	return p.try(code, "-c", flags)
}

// TryLink reports whether code compiles and links into an executable.
func (p *Probe) TryLink(code string, flags ...string) bool {
	return p.try(code, "", flags)
}

// CheckHeader reports whether a header can be included.
func (p *Probe) CheckHeader(name string) bool {
	return p.TryCompile("#include <" + name + ">\nint main() { return 0; }\n")
}

// CheckLib reports whether an empty program links against -l<name>.
func (p *Probe) CheckLib(name string, flags ...string) bool {
	return p.TryLink("int main() { return 0; }\n", append([]string{"-l" + name}, flags...)...)
}

// PkgFlags is the result of a pkg-config interrogation.
type PkgFlags struct {
	CFlags string
	Libs   string
}

// PkgConfig asks pkg-config about a package.
func (p *Probe) PkgConfig(pkg string) (PkgFlags, error) {
	tool := p.b.GetVariable("PKG_CONFIG")
	cflags, err := firstLine(exec.Command(tool, "--cflags", pkg).Output())
	if err != nil {
		return PkgFlags{}, fmt.Errorf("pkg-config failed for %s: %w", pkg, err)
	}
	libs, err := firstLine(exec.Command(tool, "--libs", pkg).Output())
	if err != nil {
		return PkgFlags{}, fmt.Errorf("pkg-config failed for %s: %w", pkg, err)
	}
	return PkgFlags{CFlags: cflags, Libs: libs}, nil
}

// UsePackage folds a pkg-config package into CFLAGS and LIBS and reports
// success. A WITH_<PKG>=0 user override disables the package without
// probing.
func (p *Probe) UsePackage(pkg string) bool {
	name := "WITH_" + strings.ToUpper(regexp.MustCompile(`[^A-Za-z0-9]+`).ReplaceAllString(pkg, "_"))
	if p.b.GetVariable(name) == "0" {
		return false
	}
	flags, err := p.PkgConfig(pkg)
	if err != nil {
		return false
	}
	p.b.AddToVariable("CFLAGS", flags.CFlags)
	p.b.AddToVariable("LIBS", flags.Libs)
	p.b.SetVariable(name, "1")
	return true
}

// FindProgram returns the first of names found in $PATH, or "".
func (p *Probe) FindProgram(names ...string) string {
	for _, name := range rules.ToList(names...) {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// ProgramVersion runs prog --version and extracts the first
// version-looking token of its first output line, or "".
func (p *Probe) ProgramVersion(prog string) string {
	out, err := exec.Command(prog, "--version").Output()
	if err != nil {
		return ""
	}
	line, _ := firstLine(out, nil)
	m := regexp.MustCompile(`\d+(\.\d+)+`).FindString(line)
	return m
}

// CompareVersions compares two version strings GNU-style and returns
// -1, 0 or 1.
func (p *Probe) CompareVersions(a, b string) int {
	return gnu.Compare(a, b)
}

// try compiles (and optionally links) a scratch program with the C
// compiler and the given extra flags.
func (p *Probe) try(code, mode string, flags []string) bool {
	dir := rules.NormalizeFilename(p.b.GetVariable("TMP"), ".conf")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}
	src := p.b.MakeTempFilename(".c")
	src = dir + "/" + baseName(src)
	if err := os.WriteFile(src, []byte(code), 0o644); err != nil {
		return false
	}
	defer os.Remove(src)
	out := src + ".out"
	defer os.Remove(out)

	args := rules.ToList(p.b.GetVariable("CFLAGS"))
	if mode != "" {
		args = append(args, mode)
	}
	args = append(args, src, "-o", out)
	args = append(args, rules.ToList(flags...)...)

	cc := p.b.GetVariable("CC")
	if cc == "" {
		cc = "cc"
	}
	cmd := exec.Command(cc, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

func baseName(path string) string {
	_, stem, ext := rules.SplitFilename(path)
	return stem + ext
}

func firstLine(out []byte, err error) (string, error) {
	if err != nil {
		return "", err
	}
	s := string(out)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s), nil
}
