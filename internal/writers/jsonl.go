// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"hibf-hashing/internal/jsonlutil"
	"hibf-hashing/internal/output"
	"hibf-hashing/pkg/api"
)

func init() { RegisterHit(output.FormatJSONL, StartJSONLWriter) }

// StartJSONLWriter streams each hit as one JSON line (v1).
func StartJSONLWriter(out io.Writer, opt Options) (chan<- api.HitV1, <-chan error) {
	return jsonlutil.Start[api.HitV1](out, opt.BufSize,
		func(enc *json.Encoder, h api.HitV1) error {
			return enc.Encode(h)
		},
		IsBrokenPipe,
	)
}
