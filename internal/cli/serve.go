// internal/cli/serve.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"hibf-hashing/internal/clibase"
	"hibf-hashing/internal/threshold"
)

// ServeOptions holds the flags of "serve".
type ServeOptions struct {
	clibase.Common
	Index     string
	Bind      string
	Errors    int
	Threshold float64
}

func ParseServeArgs(fs *flag.FlagSet, argv []string) (ServeOptions, error) {
	var o ServeOptions
	clibase.Register(fs, &o.Common, true)
	fs.StringVar(&o.Index, "index", "", "index file to serve [*]")
	fs.StringVar(&o.Index, "i", "", "alias of --index")
	fs.StringVar(&o.Bind, "bind", ":8080", "listen address (host:port) [:8080]")
	fs.IntVar(&o.Errors, "error", 0, "default maximum number of errors (0..5) [0]")
	fs.IntVar(&o.Errors, "e", 0, "alias of --error")
	fs.Float64Var(&o.Threshold, "threshold", 0, "default fixed hit fraction (0 = k-mer lemma) [0]")
	clibase.UsageCommon(fs, clibase.Tool+" serve", "HTTP search API over an index", true,
		func(out io.Writer, def func(string) string) {
			fmt.Fprintf(out, "Usage:\n  %s serve -i index [--bind :8080]\n", clibase.Tool)
			fmt.Fprintln(out, "\nEndpoints: GET /index, POST /search, GET /healthz, GET /swagger.json")
			fmt.Fprintln(out, "\nOptions:")
			fmt.Fprintln(out, "  -i, --index file            Index file [*]")
			fmt.Fprintf(out, "      --bind string           Listen address [%s]\n", def("bind"))
			fmt.Fprintf(out, "  -e, --error int             Default maximum errors [%s]\n", def("error"))
			fmt.Fprintf(out, "      --threshold float       Default fixed hit fraction [%s]\n", def("threshold"))
		})

	if _, err := clibase.ParseWithPositionals(fs, argv); err != nil {
		return o, err
	}
	if o.Version {
		return o, nil
	}
	if o.Examples {
		return o, clibase.ErrPrintedAndExitOK
	}
	if err := clibase.Validate(&o.Common); err != nil {
		return o, err
	}
	if o.Index == "" {
		return o, errors.New("missing required option --index")
	}
	if o.Bind == "" {
		return o, errors.New("--bind must not be empty")
	}
	if o.Errors < 0 || o.Errors > threshold.MaxErrors {
		return o, fmt.Errorf("--error must be in [0, %d], got %d", threshold.MaxErrors, o.Errors)
	}
	if o.Threshold < 0 || o.Threshold > 1 {
		return o, fmt.Errorf("--threshold must be in (0, 1], got %g", o.Threshold)
	}
	return o, nil
}
