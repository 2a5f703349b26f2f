// internal/cli/build.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"hibf-hashing/internal/clibase"
	"hibf-hashing/internal/cliutil"
	"hibf-hashing/internal/hashing"
	"hibf-hashing/internal/hibf"
)

// BuildOptions holds the flags of "build".
type BuildOptions struct {
	clibase.Common

	FileList string
	Files    []string // positional files/globs appended to the list
	Output   string

	Hash          hashing.Params
	FPR           float64
	HashFunctions int
}

// ParseBuildArgs registers and parses the build flags.
func ParseBuildArgs(fs *flag.FlagSet, argv []string) (BuildOptions, error) {
	var o BuildOptions
	var mode string
	clibase.Register(fs, &o.Common, true)

	fs.StringVar(&o.FileList, "input", "", "file with one sequence file per line [*]")
	fs.StringVar(&o.FileList, "i", "", "alias of --input")
	fs.StringVar(&o.Output, "output", "index", "where to store the index [index]")
	fs.StringVar(&o.Output, "o", "index", "alias of --output")

	fs.IntVar(&o.Hash.K, "kmer", hashing.DefaultK, "k-mer size [20]")
	fs.IntVar(&o.Hash.K, "k", hashing.DefaultK, "alias of --kmer")
	fs.IntVar(&o.Hash.W, "window", 0, "minimiser window size; implies --mode minimiser [k]")
	fs.IntVar(&o.Hash.W, "w", 0, "alias of --window")
	fs.IntVar(&o.Hash.S, "smer", hashing.DefaultS, "syncmer s-mer size [11]")
	fs.IntVar(&o.Hash.S, "s", hashing.DefaultS, "alias of --smer")
	fs.IntVar(&o.Hash.T, "offset", hashing.DefaultT, "syncmer offset of the minimal s-mer [2]")
	fs.IntVar(&o.Hash.T, "t", hashing.DefaultT, "alias of --offset")
	fs.StringVar(&mode, "mode", string(hashing.ModeKmer), "hash mode: kmer | minimiser | syncmer [kmer]")
	fs.StringVar(&mode, "m", string(hashing.ModeKmer), "alias of --mode")

	fs.Float64Var(&o.FPR, "fpr", hibf.DefaultMaxFPR, "maximum false positive rate per bin [0.05]")
	fs.IntVar(&o.HashFunctions, "hash-functions", hibf.DefaultHashFunctions, "bloom hash functions [2]")

	clibase.UsageCommon(fs, clibase.Tool+" build", "build an index from sequence files", true, buildUsage)

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
	o.Files = pos

	m, err := hashing.ParseMode(mode)
	if err != nil {
		return o, err
	}
	o.Hash.Mode = m
	if cliutil.WasSet(fs, "window", "w") {
		if o.Hash.W < o.Hash.K {
			return o, fmt.Errorf("window size (%d) must be greater than or equal to k-mer size (%d)", o.Hash.W, o.Hash.K)
		}
		o.Hash.Mode = hashing.ModeMinimiser
	} else {
		o.Hash.W = o.Hash.K
	}
	return o, ValidateBuild(o)
}

// ValidateBuild applies the build invariants.
func ValidateBuild(o BuildOptions) error {
	if err := clibase.Validate(&o.Common); err != nil {
		return err
	}
	if o.FileList == "" && len(o.Files) == 0 {
		return errors.New("provide --input LIST or sequence files")
	}
	if o.Output == "" {
		return errors.New("missing value for option --output")
	}
	if o.Hash.K < 1 || o.Hash.K > 32 {
		return fmt.Errorf("--kmer must be in [1, 32], got %d", o.Hash.K)
	}
	if o.Hash.W > 200 {
		return fmt.Errorf("--window must be in [1, 200], got %d", o.Hash.W)
	}
	if err := o.Hash.Validate(); err != nil {
		return err
	}
	return (hibf.Config{NumHashFunctions: o.HashFunctions, MaxFPR: o.FPR}).Validate()
}

func buildUsage(out io.Writer, def func(string) string) {
	fmt.Fprintf(out, "Usage:\n  %s build -i files.txt [-o index] [options] [FILES...]\n", clibase.Tool)

	fmt.Fprintln(out, "\nInput:")
	fmt.Fprintln(out, "  -i, --input file            File list: one FASTA/FASTQ (optionally .gz) per line [*]")
	fmt.Fprintln(out, "                              Positional FILES/globs are appended as extra bins")
	fmt.Fprintf(out, "  -o, --output file           Where to store the index [%s]\n", def("output"))

	fmt.Fprintln(out, "\nHashing:")
	fmt.Fprintf(out, "  -m, --mode string           kmer | minimiser | syncmer [%s]\n", def("mode"))
	fmt.Fprintf(out, "  -k, --kmer int              k-mer size (1..32) [%s]\n", def("kmer"))
	fmt.Fprintln(out, "  -w, --window int            Minimiser window (>= k); implies --mode minimiser [k]")
	fmt.Fprintf(out, "  -s, --smer int              Syncmer s-mer size [%s]\n", def("smer"))
	fmt.Fprintf(out, "  -t, --offset int            Syncmer offset of the minimal s-mer (0..k-s) [%s]\n", def("offset"))

	fmt.Fprintln(out, "\nFilter:")
	fmt.Fprintf(out, "      --fpr float             Maximum false positive rate per bin [%s]\n", def("fpr"))
	fmt.Fprintf(out, "      --hash-functions int    Bloom hash functions (1..5) [%s]\n", def("hash-functions"))
}
