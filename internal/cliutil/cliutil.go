// internal/cliutil/cliutil.go
package cliutil

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"
)

// BoolFlags returns names of flags that don't require a value.
func BoolFlags(fs *flag.FlagSet) map[string]bool {
	m := map[string]bool{}
	fs.VisitAll(func(f *flag.Flag) {
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			m[f.Name] = true
		}
	})
	return m
}

// SplitFlagsAndPositionals separates flag-like args from positionals so
// files may follow or precede flags. '-' stays positional (stdin), '--'
// ends flag parsing. Use before fs.Parse(flagArgs).
func SplitFlagsAndPositionals(fs *flag.FlagSet, argv []string) (flagArgs, posArgs []string) {
	boolFlags := BoolFlags(fs)
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--":
			return flagArgs, append(posArgs, argv[i+1:]...)
		case arg == "-" || !strings.HasPrefix(arg, "-"):
			posArgs = append(posArgs, arg)
		case strings.Contains(arg, "="):
			flagArgs = append(flagArgs, arg)
		default:
			flagArgs = append(flagArgs, arg)
			if !boolFlags[strings.TrimLeft(arg, "-")] && i+1 < len(argv) {
				flagArgs = append(flagArgs, argv[i+1])
				i++
			}
		}
	}
	return flagArgs, posArgs
}

// WasSet reports whether any of names was given on the command line.
func WasSet(fs *flag.FlagSet, names ...string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		for _, n := range names {
			if f.Name == n {
				set = true
			}
		}
	})
	return set
}

// SplitList splits a comma separated flag value, dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPositionals expands any globs among path-like positionals. A glob
// that matches nothing is an error; plain paths pass through unchecked.
func ExpandPositionals(posArgs []string) ([]string, error) {
	var out []string
	for _, a := range posArgs {
		if a == "-" || !hasGlobMeta(a) {
			out = append(out, a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", a, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", a)
		}
		out = append(out, m...)
	}
	return out, nil
}
