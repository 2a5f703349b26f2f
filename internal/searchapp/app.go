// internal/searchapp/app.go
package searchapp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Shopify/sarama"

	"hibf-hashing/internal/cli"
	"hibf-hashing/internal/clibase"
	"hibf-hashing/internal/cmdutil"
	"hibf-hashing/internal/output"
	"hibf-hashing/internal/pipeline"
	"hibf-hashing/internal/store"
	"hibf-hashing/internal/version"
	"hibf-hashing/internal/writers"
)

const name = clibase.Tool + " search"

// NewProducer connects the Kafka producer for --format kafka. Tests swap it.
var NewProducer = writers.NewKafkaProducer

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := clibase.NewFlagSet(name)
	opts, err := cli.ParseSearchArgs(fs, argv)
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

	var (
		sink     io.Writer = outw
		resw     *bufio.Writer
		producer sarama.SyncProducer
	)
	if opts.Format == output.FormatKafka {
		if producer, err = NewProducer(opts.KafkaBrokers); err != nil {
			return cmdutil.Fail(stderr, cmdutil.ExitRuntime, err)
		}
		defer producer.Close()
	} else if opts.Output != "" && opts.Output != "-" {
		results, err := os.Create(opts.Output)
		if err != nil {
			return cmdutil.Fail(stderr, cmdutil.ExitRuntime, err)
		}
		defer results.Close()
		resw = bufio.NewWriter(results)
		sink = io.MultiWriter(outw, resw)
	}
	if opts.Format == output.FormatText {
		_, _ = fmt.Fprintln(outw, output.TextHeader)
	}

	threads := cmdutil.Threads(opts.Threads)
	inCh, writeErr := writers.StartHitWriter(sink, opts.Format, writers.Options{
		BufSize:  threads * 4,
		Producer: producer,
		Topic:    opts.KafkaTopic,
	})

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var total, matched int
	serr := pipeline.Search(ctx, pipeline.SearchConfig{
		Threads:  threads,
		Hash:     idx.Meta.HashParams(),
		Errors:   opts.Errors,
		Fraction: opts.Threshold,
		Strict:   opts.Strict,
	}, pipeline.FilterAgents(idx.Filter), opts.Reads, func(h pipeline.Hit) error {
		if h.Err != nil {
			cmdutil.Warnf(stderr, opts.Quiet, "read %q: %v; reporting no hits", h.ID, h.Err)
		}
		total++
		if len(h.Bins) > 0 {
			matched++
		}
		select {
		case inCh <- output.ToAPIHit(h, idx.Meta.Bins):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	close(inCh)

	if werr := <-writeErr; werr != nil {
		return cmdutil.Fail(stderr, cmdutil.ExitRuntime, werr)
	}
	if resw != nil {
		if err := resw.Flush(); err != nil {
			return cmdutil.Fail(stderr, cmdutil.ExitRuntime, fmt.Errorf("%s: %w", opts.Output, err))
		}
	}
	if serr != nil {
		_ = cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
		return cmdutil.Fail(stderr, cmdutil.ExitRuntime, serr)
	}
	if opts.Format == output.FormatKafka {
		_, _ = fmt.Fprintf(outw, "Published %d results to Kafka topic %q\n", total, opts.KafkaTopic)
	}
	code := cmdutil.ExitOK
	if matched == 0 {
		code = opts.NoMatchExitCode
	}
	return cmdutil.Flush(outw, stderr, code)
}

func examples(out io.Writer) {
	fmt.Fprintf(out, "  # text results on the terminal and in output.txt\n")
	fmt.Fprintf(out, "  %s search -i refs.index -r reads.fq -e 1\n\n", clibase.Tool)
	fmt.Fprintf(out, "  # JSONL on stdout only\n")
	fmt.Fprintf(out, "  %s search -i refs.index -r reads.fq.gz --format jsonl -o -\n\n", clibase.Tool)
	fmt.Fprintf(out, "  # one Kafka message per read\n")
	fmt.Fprintf(out, "  %s search -i refs.index -r reads.fq --format kafka --kafka-brokers k1:9092 --kafka-topic hits\n", clibase.Tool)
}
