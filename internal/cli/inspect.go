// internal/cli/inspect.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"hibf-hashing/internal/clibase"
	"hibf-hashing/internal/output"
)

// InspectOptions holds the flags of "inspect".
type InspectOptions struct {
	clibase.Common
	Index  string
	Format string
}

func ParseInspectArgs(fs *flag.FlagSet, argv []string) (InspectOptions, error) {
	var o InspectOptions
	clibase.Register(fs, &o.Common, false)
	fs.StringVar(&o.Index, "index", "", "index file to describe [*]")
	fs.StringVar(&o.Index, "i", "", "alias of --index")
	fs.StringVar(&o.Format, "format", output.FormatText, "text | json | yaml [text]")
	fs.StringVar(&o.Format, "f", output.FormatText, "alias of --format")
	clibase.UsageCommon(fs, clibase.Tool+" inspect", "describe a built index", false,
		func(out io.Writer, def func(string) string) {
			fmt.Fprintf(out, "Usage:\n  %s inspect -i index [--format text|json|yaml]\n", clibase.Tool)
			fmt.Fprintln(out, "\nOptions:")
			fmt.Fprintln(out, "  -i, --index file            Index file [*]")
			fmt.Fprintf(out, "  -f, --format string         text | json | yaml [%s]\n", def("format"))
		})

	pos, err := clibase.ParseWithPositionals(fs, argv)
	if err != nil {
		return o, err
	}
	if o.Version {
		return o, nil
	}
	if o.Examples {
		return o, clibase.ErrPrintedAndExitOK
	}
	if o.Index == "" && len(pos) == 1 {
		o.Index = pos[0]
	}
	if o.Index == "" {
		return o, errors.New("missing required option --index")
	}
	switch o.Format {
	case output.FormatText, output.FormatJSON, output.FormatYAML:
	default:
		return o, fmt.Errorf("invalid --format %q", o.Format)
	}
	return o, nil
}
