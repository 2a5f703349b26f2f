// internal/buildapp/app.go
package buildapp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"hibf-hashing/internal/cli"
	"hibf-hashing/internal/clibase"
	"hibf-hashing/internal/cmdutil"
	"hibf-hashing/internal/filelist"
	"hibf-hashing/internal/hibf"
	"hibf-hashing/internal/index"
	"hibf-hashing/internal/pipeline"
	"hibf-hashing/internal/store"
	"hibf-hashing/internal/version"
)

const name = clibase.Tool + " build"

// ErrNoValidFiles is returned when every input file was skipped.
var ErrNoValidFiles = errors.New("no valid files found in the file list")

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := clibase.NewFlagSet(name)
	opts, err := cli.ParseBuildArgs(fs, argv)
	if code, done := cmdutil.HandleParse(fs, outw, stderr, err, name, examples); done {
		return code
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", clibase.Tool, version.Version)
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}

	n, err := Build(parent, opts, stderr)
	if err != nil {
		return cmdutil.Fail(stderr, cmdutil.ExitRuntime, err)
	}
	_, _ = fmt.Fprintf(outw, "HIBF index built and saved to %q\n", opts.Output)
	_, _ = fmt.Fprintf(outw, "Successfully processed %d files.\n", n)
	return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
}

// Build hashes the inputs of opts into an index saved at opts.Output and
// returns the number of files that became user bins. Skipped entries,
// sequences and files are reported as warnings on stderr.
func Build(ctx context.Context, opts cli.BuildOptions, stderr io.Writer) (int, error) {
	warn := cmdutil.Warner(stderr, opts.Quiet)

	var paths []string
	if opts.FileList != "" {
		list, err := filelist.Read(opts.FileList)
		if err != nil {
			return 0, err
		}
		for _, s := range list.Skipped {
			warn("%s: %v", opts.FileList, s)
		}
		paths = list.Paths
	}
	paths = append(paths, opts.Files...)

	threads := cmdutil.Threads(opts.Threads)
	bins, err := pipeline.HashBins(ctx, pipeline.BuildConfig{
		Threads: threads,
		Hash:    opts.Hash,
		Strict:  opts.Strict,
	}, paths, warn)
	if err != nil {
		return 0, err
	}

	var (
		names  []string
		values [][]uint64
	)
	for _, b := range bins {
		if b.Err != nil {
			warn("could not parse file %s: %v; skipping file", b.Path, b.Err)
			continue
		}
		if b.Sequences == 0 {
			warn("file %s yielded no fingerprints; its bin stays empty", b.Path)
		}
		names = append(names, b.Path)
		values = append(values, b.Values)
	}
	if len(names) == 0 {
		return 0, ErrNoValidFiles
	}

	f, err := hibf.Build(hibf.Config{
		NumHashFunctions: opts.HashFunctions,
		MaxFPR:           opts.FPR,
		Threads:          threads,
	}, values)
	if err != nil {
		return 0, err
	}
	idx, err := index.New(opts.Hash, names, f)
	if err != nil {
		return 0, err
	}
	if err := store.Save(opts.Output, idx); err != nil {
		return 0, err
	}
	return len(names), nil
}

func examples(out io.Writer) {
	fmt.Fprintf(out, "  # k-mer index over the files listed in files.txt\n")
	fmt.Fprintf(out, "  %s build -i files.txt -o refs.index\n\n", clibase.Tool)
	fmt.Fprintf(out, "  # minimiser index (setting -w selects minimisers)\n")
	fmt.Fprintf(out, "  %s build -i files.txt -k 19 -w 23 -o refs.index\n\n", clibase.Tool)
	fmt.Fprintf(out, "  # syncmer index, one bin per FASTA matched by the glob\n")
	fmt.Fprintf(out, "  %s build -m syncmer -k 15 -s 11 -t 2 -o refs.index 'genomes/*.fa.gz'\n", clibase.Tool)
}
