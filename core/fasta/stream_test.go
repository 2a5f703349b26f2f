package fasta

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const plain = `>seq1 first record
ACGT
ac
>seq2
NNnn
`

const fastq = `@read1 lane=1
ACGTACGT
+
IIIIIIII
@read2
GGCC
+read2
####
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return fn
}

// writeGz creates a gzipped file with provided data, returns the file path.
func writeGz(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	fh, err := os.Create(fn)
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(data)); err != nil {
		t.Fatalf("write gz: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return fn
}

func TestStreamFASTA(t *testing.T) {
	recs, err := ReadAll(context.Background(), writeFile(t, "x.fa", plain))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("want 2 records, got %d", len(recs))
	}
	if recs[0].ID != "seq1" || string(recs[0].Seq) != "ACGTac" || recs[0].Qual != nil {
		t.Fatalf("record 0 = %+v", recs[0])
	}
	if recs[1].ID != "seq2" || string(recs[1].Seq) != "NNnn" {
		t.Fatalf("record 1 = %+v", recs[1])
	}
}

func TestStreamFASTQ(t *testing.T) {
	recs, err := ReadAll(context.Background(), writeFile(t, "x.fq", fastq))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "read1" || recs[1].ID != "read2" {
		t.Fatalf("unexpected records %+v", recs)
	}
	if string(recs[1].Seq) != "GGCC" || string(recs[1].Qual) != "####" {
		t.Fatalf("record 1 = %+v", recs[1])
	}
}

func TestStreamFASTQTruncated(t *testing.T) {
	_, err := ReadAll(context.Background(), writeFile(t, "bad.fq", "@r\nACGT\n+\nII\n"))
	if err == nil || !strings.Contains(err.Error(), "quality length") {
		t.Fatalf("want quality length error, got %v", err)
	}
}

func TestStreamUnsupported(t *testing.T) {
	_, err := ReadAll(context.Background(), writeFile(t, "x.txt", "hello\nworld\n"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("want ErrUnsupportedFormat, got %v", err)
	}
}

func TestStreamEmptyFile(t *testing.T) {
	recs, err := ReadAll(context.Background(), writeFile(t, "empty.fa", "\n\n"))
	if err != nil || len(recs) != 0 {
		t.Fatalf("empty file: %v %v", recs, err)
	}
}

func TestStreamGzip(t *testing.T) {
	recs, err := ReadAll(context.Background(), writeGz(t, "x.fa.gz", plain))
	if err != nil {
		t.Fatalf("stream gz: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "seq1" || recs[1].ID != "seq2" {
		t.Fatalf("gzip parse failed: %+v", recs)
	}
}

func TestStreamStdin(t *testing.T) {
	// Fake stdin by swapping os.Stdin
	orig := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = io.WriteString(w, plain)
		_ = w.Close()
	}()

	ch, errc, err := StreamCtxPath(context.Background(), "-")
	if err != nil {
		t.Fatalf("stream stdin: %v", err)
	}
	count := 0
	for range ch {
		count++
	}
	if err := <-errc; err != nil {
		t.Fatalf("stdin parse: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 records from stdin, got %d", count)
	}
}

func TestStreamCtxPath_CancelImmediately_YieldsNoRecords(t *testing.T) {
	fn := writeFile(t, "x.fa", ">s\nACGT\n>t\nGGGG\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already canceled

	ch, errc, err := StreamCtxPath(ctx, fn)
	if err != nil {
		t.Fatalf("StreamCtxPath: %v", err)
	}
	n := 0
	for range ch {
		n++
	}
	if n != 0 {
		t.Fatalf("expected 0 records due to immediate cancel, got %d", n)
	}
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, _, err := StreamCtxPath(context.Background(), filepath.Join(t.TempDir(), "nope.fa")); err == nil {
		t.Fatalf("expected open error")
	}
}
