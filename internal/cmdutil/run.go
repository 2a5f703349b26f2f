// internal/cmdutil/run.go
package cmdutil

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"hibf-hashing/internal/clibase"
	"hibf-hashing/internal/writers"
)

// Exit codes shared by every subcommand.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitRuntime  = 3
	ExitCanceled = 130
)

// Flush flushes outw and maps the outcome to an exit code. A broken pipe
// (e.g. `| head`) counts as success.
func Flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return ExitOK
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return ExitRuntime
	}
	return code
}

// Fail prints err once and returns the matching exit code: 130 for
// cancellation, 0 for a broken pipe, code otherwise.
func Fail(stderr io.Writer, code int, err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case writers.IsBrokenPipe(err):
		return ExitOK
	}
	_, _ = fmt.Fprintln(stderr, err)
	return code
}

// HandleParse turns a parser error into output and an exit code. done is
// false when parsing succeeded and the command should run.
func HandleParse(fs *flag.FlagSet, outw *bufio.Writer, stderr io.Writer, err error, name string, examples func(io.Writer)) (code int, done bool) {
	switch {
	case err == nil:
		return ExitOK, false
	case errors.Is(err, flag.ErrHelp):
		fs.SetOutput(outw)
		fs.Usage()
		return Flush(outw, stderr, ExitOK), true
	case errors.Is(err, clibase.ErrPrintedAndExitOK):
		clibase.PrintExamples(outw, name, examples)
		return Flush(outw, stderr, ExitOK), true
	}
	_, _ = fmt.Fprintln(stderr, err)
	fs.SetOutput(outw)
	fs.Usage()
	return Flush(outw, stderr, ExitUsage), true
}

// Threads resolves 0 to all CPUs.
func Threads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
