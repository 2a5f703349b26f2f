// internal/clibase/examples.go
package clibase

import (
	"errors"
	"fmt"
	"io"
)

// ErrPrintedAndExitOK tells the runner that --examples was given; it prints
// the subcommand's examples and exits 0 without running anything.
var ErrPrintedAndExitOK = errors.New("examples requested")

// PrintExamples frames body with the command name and a pointer to --help.
func PrintExamples(out io.Writer, name string, body func(io.Writer)) {
	_, _ = fmt.Fprintf(out, "%s — quickstart\n\n", name)
	if body != nil {
		body(out)
	}
	_, _ = fmt.Fprintf(out, "\nSee '%s --help' for every option.\n", name)
}
