// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"

	"hibf-hashing/internal/buildapp"
	"hibf-hashing/internal/clibase"
	"hibf-hashing/internal/cmdutil"
	"hibf-hashing/internal/inspectapp"
	"hibf-hashing/internal/searchapp"
	"hibf-hashing/internal/serveapp"
	"hibf-hashing/internal/version"
)

// Runner is the signature every subcommand implements.
type Runner func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

type command struct {
	run     Runner
	summary string
}

var commands = map[string]command{
	"build":   {buildapp.RunContext, "build an index from a list of sequence files"},
	"search":  {searchapp.RunContext, "query reads against an index"},
	"inspect": {inspectapp.RunContext, "describe a built index"},
	"serve":   {serveapp.RunContext, "HTTP search API over an index"},
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	if len(argv) == 0 {
		usage(outw)
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}
	switch argv[0] {
	case "-h", "-help", "--help", "help":
		usage(outw)
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	case "-v", "-version", "--version", "version":
		_, _ = fmt.Fprintf(outw, "%s version %s\n", clibase.Tool, version.Version)
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}

	cmd, ok := commands[argv[0]]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", argv[0])
		usage(outw)
		return cmdutil.Flush(outw, stderr, cmdutil.ExitUsage)
	}
	return cmd.run(parent, argv[1:], stdout, stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func usage(out io.Writer) {
	clibase.UsageHeader(out, clibase.Tool, "bloom-filter sequence index over k-mers, minimisers or syncmers")
	fmt.Fprintf(out, "Usage:\n  %s <command> [options]\n\nCommands:\n", clibase.Tool)
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(out, "  %-9s %s\n", n, commands[n].summary)
	}
	fmt.Fprintf(out, "\nRun '%s <command> --help' for command options.\n", clibase.Tool)
}
