// core/fasta/open.go
package fasta

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// multiReadCloser closes every wrapped layer, first error wins.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader over a sequence file. "-" reads stdin. Gzip input is
// recognised by its magic number or a .gz suffix, so compressed stdin works
// too.
func Open(path string) (io.ReadCloser, error) {
	var (
		src    io.Reader
		closer io.Closer
	)
	if path == "-" {
		src, closer = os.Stdin, io.NopCloser(os.Stdin)
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src, closer = fh, fh
	}

	br := bufio.NewReaderSize(src, 64<<10)
	sig, _ := br.Peek(2)
	gz := len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b
	if !gz && !strings.HasSuffix(path, ".gz") {
		return &multiReadCloser{Reader: br, closers: []io.Closer{closer}}, nil
	}
	gr, err := gzip.NewReader(br)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, closer}}, nil
}
