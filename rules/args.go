package rules

import (
	"errors"
	"fmt"
	"strings"
)

// ErrHelp is returned by ParseArgs when --help is requested; the driver
// prints usage and exits 0.
var ErrHelp = errors.New("help requested")

// ParseArgs applies the recognized command-line surface to the variable
// store and returns the remaining positional arguments (subcommand and
// targets). Recognized forms:
//
//	KEY=VALUE               user variable override
//	--with-foo --enable-foo WITH_FOO=1
//	--without-foo           WITH_FOO=0 (likewise --disable-foo)
//	--in= --out=            source and output roots
//	--infile= --outfile=    entry script and artifact names
//	--help
//
// Any other flag is an error.
func (b *Build) ParseArgs(args []string) ([]string, error) {
	var positional []string
	for _, arg := range args {
		switch {
		case arg == "--help" || arg == "-h":
			return nil, ErrHelp
		case strings.HasPrefix(arg, "--in="):
			b.SetVariable("IN", NormalizeFilename(arg[len("--in="):]))
		case strings.HasPrefix(arg, "--out="):
			b.SetVariable("OUT", NormalizeFilename(arg[len("--out="):]))
		case strings.HasPrefix(arg, "--infile="):
			b.SetVariable("INFILE", arg[len("--infile="):])
		case strings.HasPrefix(arg, "--outfile="):
			b.SetVariable("OUTFILE", arg[len("--outfile="):])
		case strings.HasPrefix(arg, "--with-") || strings.HasPrefix(arg, "--enable-"):
			b.SetUserVariable(featureVariable(arg), "1")
		case strings.HasPrefix(arg, "--without-") || strings.HasPrefix(arg, "--disable-"):
			b.SetUserVariable(featureVariable(arg), "0")
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown option %q", arg)
		default:
			if name, value, ok := splitAssignment(arg); ok {
				b.SetUserVariable(name, value)
			} else {
				positional = append(positional, arg)
			}
		}
	}
	return positional, nil
}

// featureVariable maps --with-foo-bar and friends to WITH_FOO_BAR.
func featureVariable(flag string) string {
	name := strings.TrimPrefix(flag, "--")
	for _, p := range []string{"without-", "with-", "disable-", "enable-"} {
		if strings.HasPrefix(name, p) {
			name = name[len(p):]
			break
		}
	}
	return "WITH_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// splitAssignment recognizes KEY=VALUE with an identifier-shaped key.
func splitAssignment(arg string) (name, value string, ok bool) {
	i := strings.IndexByte(arg, '=')
	if i <= 0 {
		return "", "", false
	}
	name, value = arg[:i], arg[i+1:]
	for j := 0; j < len(name); j++ {
		c := name[j]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c == '_':
		case c >= '0' && c <= '9':
			if j == 0 {
				return "", "", false
			}
		default:
			return "", "", false
		}
	}
	return name, value, true
}
