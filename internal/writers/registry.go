// internal/writers/registry.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"syscall"

	"github.com/Shopify/sarama"

	"hibf-hashing/pkg/api"
)

// Options carries the per-format knobs a writer may need.
type Options struct {
	BufSize  int
	Producer sarama.SyncProducer // kafka
	Topic    string              // kafka
}

// HitWriterFactory starts a writer goroutine for one output format.
type HitWriterFactory func(out io.Writer, opt Options) (chan<- api.HitV1, <-chan error)

// HitWriters maps format → factory. Register from init() blocks in the
// per-format files.
var HitWriters = map[string]HitWriterFactory{}

// RegisterHit is idempotent, last wins.
func RegisterHit(format string, fn HitWriterFactory) { HitWriters[format] = fn }

// Formats lists registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(HitWriters))
	for f := range HitWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// StartHitWriter dispatches to the registered factory. Unknown formats
// yield a writer that drains its input and reports the error.
func StartHitWriter(out io.Writer, format string, opt Options) (chan<- api.HitV1, <-chan error) {
	if fn, ok := HitWriters[format]; ok {
		return fn(out, opt)
	}
	return failing(fmt.Errorf("unknown hit format %q (no writer registered)", format), opt.BufSize)
}

func failing(err error, bufSize int) (chan<- api.HitV1, <-chan error) {
	in := make(chan api.HitV1, bufSizeOr(bufSize))
	done := make(chan error, 1)
	go func() {
		drain(in)
		done <- err
	}()
	return in, done
}

func drain[T any](in <-chan T) {
	for range in {
	}
}

func bufSizeOr(n int) int {
	if n <= 0 {
		return 64
	}
	return n
}

// IsBrokenPipe reports whether err means the reader went away (`| head`).
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}
