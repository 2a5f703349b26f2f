// internal/writers/text.go
package writers

import (
	"io"

	"hibf-hashing/internal/output"
	"hibf-hashing/pkg/api"
)

func init() {
	RegisterHit(output.FormatText, StartTextWriter)
	RegisterHit(output.FormatJSON, StartJSONWriter)
}

// StartTextWriter streams "id: [bins]" lines.
func StartTextWriter(out io.Writer, opt Options) (chan<- api.HitV1, <-chan error) {
	in := make(chan api.HitV1, bufSizeOr(opt.BufSize))
	done := make(chan error, 1)
	go func() {
		err := output.StreamText(out, in)
		drain(in)
		done <- err
	}()
	return in, done
}

// StartJSONWriter buffers every hit and writes one JSON array on close.
func StartJSONWriter(out io.Writer, opt Options) (chan<- api.HitV1, <-chan error) {
	in := make(chan api.HitV1, bufSizeOr(opt.BufSize))
	done := make(chan error, 1)
	go func() {
		buf := []api.HitV1{}
		for h := range in {
			buf = append(buf, h)
		}
		done <- output.WriteJSON(out, buf)
	}()
	return in, done
}
