// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"hibf-hashing/internal/version"
)

// Tool is the program name shown in help and version output.
const Tool = "hibf-hashing"

// UsageHeader prints the banner shared by every help screen.
func UsageHeader(out io.Writer, name, summary string) {
	fmt.Fprintf(out, "%s – %s\n\n", name, summary)
	fmt.Fprintln(out, "License: CC0-1.0")
	fmt.Fprintf(out, "Version: %s\n\n", version.Version)
}

// UsageCommon installs a shared Usage() handler on fs. extra prints the
// subcommand's own sections; def resolves flag defaults.
func UsageCommon(fs *flag.FlagSet, name, summary string, withSeq bool, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		UsageHeader(out, name, summary)
		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "      --threads int           Worker threads (0=all CPUs) [%s]\n", def("threads"))
		if withSeq {
			fmt.Fprintf(out, "      --strict                Reject non-ACGT symbols instead of reading them as A [%s]\n", def("strict"))
		}
		fmt.Fprintf(out, "  -q, --quiet                 Suppress non-essential warnings [%s]\n", def("quiet"))
		fmt.Fprintln(out, "      --examples              Print quickstart examples and exit")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
