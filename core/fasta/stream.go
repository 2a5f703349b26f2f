// core/fasta/stream.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// Record is one parsed FASTA or FASTQ entry. Qual is nil for FASTA.
type Record struct {
	ID   string
	Seq  []byte
	Qual []byte
}

// Format is the detected layout of a sequence file.
type Format int

const (
	FormatUnknown Format = iota
	FormatFASTA
	FormatFASTQ
)

func (f Format) String() string {
	switch f {
	case FormatFASTA:
		return "fasta"
	case FormatFASTQ:
		return "fastq"
	}
	return "unknown"
}

// ErrUnsupportedFormat is returned when the first record starts with neither
// '>' nor '@'.
var ErrUnsupportedFormat = errors.New("unsupported sequence file format")

const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)

// Stream parses r as FASTA or FASTQ (decided by the first non-empty line) and
// calls emit once per record. Emitted slices are owned by the callee.
//
// It is cancelable: ctx is checked between lines.
func Stream(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var first []byte
	for sc.Scan() {
		if line := bytes.TrimSpace(sc.Bytes()); len(line) > 0 {
			first = append([]byte(nil), line...)
			break
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	switch {
	case first == nil:
		return nil
	case first[0] == '>':
		return streamFASTA(ctx, sc, first, emit)
	case first[0] == '@':
		return streamFASTQ(ctx, sc, first, emit)
	}
	return fmt.Errorf("%w: record starts with %q", ErrUnsupportedFormat, first[0])
}

func streamFASTA(ctx context.Context, sc *bufio.Scanner, header []byte, emit func(Record) error) error {
	id := parseHeaderID(header[1:])
	seq := make([]byte, 0, 1<<16)

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := emit(Record{ID: id, Seq: append([]byte(nil), seq...)}); err != nil {
				return err
			}
			id = parseHeaderID(line[1:])
			seq = seq[:0]
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return emit(Record{ID: id, Seq: append([]byte(nil), seq...)})
}

// streamFASTQ reads four-line records: @id, sequence, +[id], quality.
func streamFASTQ(ctx context.Context, sc *bufio.Scanner, header []byte, emit func(Record) error) error {
	next := func() ([]byte, bool) {
		for sc.Scan() {
			if line := bytes.TrimSpace(sc.Bytes()); len(line) > 0 {
				return line, true
			}
		}
		return nil, false
	}

	for header != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if header[0] != '@' {
			return fmt.Errorf("fastq: expected '@' header, got %q", header)
		}
		id := parseHeaderID(header[1:])
		seq, ok := next()
		if !ok {
			return fmt.Errorf("fastq: record %s truncated after header", id)
		}
		seq = append([]byte(nil), seq...)
		plus, ok := next()
		if !ok || plus[0] != '+' {
			return fmt.Errorf("fastq: record %s missing '+' separator", id)
		}
		qual, ok := next()
		if !ok {
			return fmt.Errorf("fastq: record %s missing quality line", id)
		}
		if len(qual) != len(seq) {
			return fmt.Errorf("fastq: record %s quality length %d != sequence length %d", id, len(qual), len(seq))
		}
		if err := emit(Record{ID: id, Seq: seq, Qual: append([]byte(nil), qual...)}); err != nil {
			return err
		}
		header, _ = next()
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fastq scan: %w", err)
	}
	return nil
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
