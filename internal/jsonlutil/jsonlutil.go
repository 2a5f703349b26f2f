// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// 64 KiB buffers are recycled between writer goroutines.
var buffers = sync.Pool{
	New: func() any { return bufio.NewWriterSize(io.Discard, 64<<10) },
}

// Start runs a goroutine that encodes every value received on the returned
// channel as one JSON line on out. The error channel yields exactly once,
// after the input is closed. After a failed encode the input is still
// drained, so producers never block. Errors matched by quiet (broken pipes)
// are not reported on the final flush.
func Start[T any](out io.Writer, bufSize int, encode func(*json.Encoder, T) error, quiet func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := buffers.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			buffers.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		var err error
		for v := range in {
			if err != nil {
				continue
			}
			err = encode(enc, v)
		}
		if err == nil {
			if ferr := bw.Flush(); ferr != nil && !quiet(ferr) {
				err = ferr
			}
		}
		done <- err
	}()

	return in, done
}
