// internal/inspectapp/app.go
package inspectapp

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"hibf-hashing/internal/cli"
	"hibf-hashing/internal/clibase"
	"hibf-hashing/internal/cmdutil"
	"hibf-hashing/internal/output"
	"hibf-hashing/internal/store"
	"hibf-hashing/internal/version"
)

const name = clibase.Tool + " inspect"

func RunContext(_ context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := clibase.NewFlagSet(name)
	opts, err := cli.ParseInspectArgs(fs, argv)
	if code, done := cmdutil.HandleParse(fs, outw, stderr, err, name, examples); done {
		return code
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", clibase.Tool, version.Version)
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}

	idx, err := store.Load(opts.Index)
	if err != nil {
		return cmdutil.Fail(stderr, cmdutil.ExitRuntime, err)
	}
	info := output.ToIndexInfo(idx)
	switch opts.Format {
	case output.FormatJSON:
		err = output.WriteIndexJSON(outw, info)
	case output.FormatYAML:
		err = output.WriteIndexYAML(outw, info)
	default:
		err = output.WriteIndexText(outw, info)
	}
	if err != nil {
		return cmdutil.Fail(stderr, cmdutil.ExitRuntime, err)
	}
	return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
}

func examples(out io.Writer) {
	fmt.Fprintf(out, "  %s inspect -i refs.index\n", clibase.Tool)
	fmt.Fprintf(out, "  %s inspect -i refs.index --format yaml\n", clibase.Tool)
}
