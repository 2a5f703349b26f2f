// Package appshell wires a RunContext-style entrypoint to the process:
// arguments, standard streams, signals and the exit code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"hibf-hashing/internal/cmdutil"
)

// Main runs run with SIGINT/SIGTERM cancelling its context and exits with
// its code. A run that was cancelled but reports success exits 130.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	os.Exit(Run(run, os.Args[1:], os.Stdout, os.Stderr))
}

// Run is Main without the process exit.
func Run(run func(context.Context, []string, io.Writer, io.Writer) int, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == cmdutil.ExitOK {
		code = cmdutil.ExitCanceled
	}
	return code
}
