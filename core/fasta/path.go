// core/fasta/path.go
package fasta

import (
	"context"
	"fmt"
)

// StreamPath opens path (see Open) and streams its records to emit.
func StreamPath(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := Stream(ctx, rc, emit); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ReadAll loads every record of path into memory.
func ReadAll(ctx context.Context, path string) ([]Record, error) {
	var out []Record
	err := StreamPath(ctx, path, func(r Record) error {
		out = append(out, r)
		return nil
	})
	return out, err
}

// StreamCtxPath is the channel form of StreamPath. Open errors are reported
// immediately; parse errors arrive on the error channel after the record
// channel closes.
func StreamCtxPath(ctx context.Context, path string) (<-chan Record, <-chan error, error) {
	if path != "-" {
		rc, err := Open(path)
		if err != nil {
			return nil, nil, err
		}
		_ = rc.Close()
	}

	out := make(chan Record, 8)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(out)
		errc <- StreamPath(ctx, path, func(r Record) error {
			select {
			case out <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()
	return out, errc, nil
}
