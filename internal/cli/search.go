// internal/cli/search.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"hibf-hashing/internal/clibase"
	"hibf-hashing/internal/output"
	"hibf-hashing/internal/threshold"
	"hibf-hashing/internal/writers"
)

// SearchOptions holds the flags of "search".
type SearchOptions struct {
	clibase.Common

	Index     string
	Reads     string
	Errors    int
	Output    string // results file ("" or "-" = stdout only)
	Format    string
	Threshold float64

	KafkaBrokers string
	KafkaTopic   string

	NoMatchExitCode int
}

// ParseSearchArgs registers and parses the search flags.
func ParseSearchArgs(fs *flag.FlagSet, argv []string) (SearchOptions, error) {
	var o SearchOptions
	clibase.Register(fs, &o.Common, true)

	fs.StringVar(&o.Index, "index", "", "index file to load [*]")
	fs.StringVar(&o.Index, "i", "", "alias of --index")
	fs.StringVar(&o.Reads, "reads", "", "reads to search for (FASTA/FASTQ, '-' = stdin) [*]")
	fs.StringVar(&o.Reads, "r", "", "alias of --reads")
	fs.IntVar(&o.Errors, "error", 0, "maximum number of errors (0..5) [0]")
	fs.IntVar(&o.Errors, "e", 0, "alias of --error")
	fs.StringVar(&o.Output, "output", "output.txt", "file to write the search results to [output.txt]")
	fs.StringVar(&o.Output, "o", "output.txt", "alias of --output")
	fs.StringVar(&o.Format, "format", output.FormatText, "text | json | jsonl | kafka [text]")
	fs.StringVar(&o.Format, "f", output.FormatText, "alias of --format")
	fs.Float64Var(&o.Threshold, "threshold", 0, "fixed fraction of fingerprints that must hit (0 = k-mer lemma) [0]")
	fs.StringVar(&o.KafkaBrokers, "kafka-brokers", "localhost:9092", "Kafka brokers, comma separated")
	fs.StringVar(&o.KafkaTopic, "kafka-topic", "", "Kafka topic for --format kafka")
	fs.IntVar(&o.NoMatchExitCode, "no-match-exit-code", 0, "exit code when no read hits any bin [0]")

	clibase.UsageCommon(fs, clibase.Tool+" search", "query reads against an index", true, searchUsage)

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
	if o.Reads == "" && len(pos) == 1 {
		o.Reads = pos[0]
	} else if len(pos) > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", pos)
	}
	return o, ValidateSearch(o)
}

// ValidateSearch applies the search invariants.
func ValidateSearch(o SearchOptions) error {
	if err := clibase.Validate(&o.Common); err != nil {
		return err
	}
	if o.Index == "" {
		return errors.New("missing required option --index")
	}
	if o.Reads == "" {
		return errors.New("missing required option --reads")
	}
	if o.Errors < 0 || o.Errors > threshold.MaxErrors {
		return fmt.Errorf("--error must be in [0, %d], got %d", threshold.MaxErrors, o.Errors)
	}
	if o.Threshold < 0 || o.Threshold > 1 {
		return fmt.Errorf("--threshold must be in (0, 1], got %g", o.Threshold)
	}
	if _, ok := writers.HitWriters[o.Format]; !ok {
		return fmt.Errorf("invalid --format %q", o.Format)
	}
	if o.Format == output.FormatKafka && o.KafkaTopic == "" {
		return errors.New("--format kafka requires --kafka-topic")
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255 {
		return errors.New("--no-match-exit-code must be between 0 and 255")
	}
	return nil
}

func searchUsage(out io.Writer, def func(string) string) {
	fmt.Fprintf(out, "Usage:\n  %s search -i index -r reads.fq [-e 0] [-o output.txt] [options]\n", clibase.Tool)

	fmt.Fprintln(out, "\nInput:")
	fmt.Fprintln(out, "  -i, --index file            Index built by 'build' [*]")
	fmt.Fprintln(out, "  -r, --reads file            FASTA/FASTQ reads (optionally .gz) or '-' for STDIN [*]")

	fmt.Fprintln(out, "\nMatching:")
	fmt.Fprintf(out, "  -e, --error int             Maximum number of errors (0..5) [%s]\n", def("error"))
	fmt.Fprintf(out, "      --threshold float       Fixed hit fraction (0 = k-mer lemma) [%s]\n", def("threshold"))

	fmt.Fprintln(out, "\nOutput:")
	fmt.Fprintf(out, "  -o, --output file           Results file; '-' for STDOUT only [%s]\n", def("output"))
	fmt.Fprintf(out, "  -f, --format string         text | json | jsonl | kafka [%s]\n", def("format"))
	fmt.Fprintf(out, "      --kafka-brokers string  Kafka brokers, comma separated [%s]\n", def("kafka-brokers"))
	fmt.Fprintln(out, "      --kafka-topic string    Kafka topic (required for --format kafka)")
	fmt.Fprintf(out, "      --no-match-exit-code int  Exit code when no read hits any bin [%s]\n", def("no-match-exit-code"))
}
