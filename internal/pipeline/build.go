// internal/pipeline/build.go
package pipeline

import (
	"context"
	"errors"
	"sync"

	"hibf-hashing/core/fasta"
	"hibf-hashing/internal/hashing"
)

// BuildConfig controls HashBins.
type BuildConfig struct {
	Threads int            // worker goroutines (>=1)
	Hash    hashing.Params // fingerprint extractor
	Strict  bool           // reject non-ACGT symbols instead of reading them as A
}

// Bin is the outcome of hashing one file.
type Bin struct {
	Path      string
	Values    []uint64
	Sequences int // sequences hashed
	Skipped   int // sequences skipped with a warning
	Err       error
}

// Warn receives per-sequence problems. HashBins serialises calls.
type Warn func(format string, a ...any)

// HashBins hashes every file of paths into its own bin; result i belongs to
// paths[i]. A file that cannot be opened or parsed gets Bin.Err set and
// does not stop the other files. The returned error is reserved for
// cancellation.
func HashBins(ctx context.Context, cfg BuildConfig, paths []string, warn Warn) ([]Bin, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	var mu sync.Mutex
	safeWarn := func(format string, a ...any) {
		if warn == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		warn(format, a...)
	}

	out := make([]Bin, len(paths))
	jobs := make(chan int, cfg.Threads*2)

	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					out[i] = hashFile(ctx, cfg, paths[i], safeWarn)
				}
			}
		}()
	}

feed:
	for i := range paths {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return out, nil
}

func hashFile(ctx context.Context, cfg BuildConfig, path string, warn Warn) Bin {
	b := Bin{Path: path}
	err := fasta.StreamPath(ctx, path, func(rec fasta.Record) error {
		seq, err := hashing.Decode(rec.Seq, !cfg.Strict)
		if err != nil {
			warn("sequence %q in file %s: %v; skipping sequence", rec.ID, path, err)
			b.Skipped++
			return nil
		}
		vals, err := cfg.Hash.Append(b.Values, seq)
		if errors.Is(err, hashing.ErrSequenceTooShort) {
			warn("sequence %q in file %s is shorter than the %s span (%d); skipping sequence",
				rec.ID, path, cfg.Hash.Mode, cfg.Hash.Span())
			b.Skipped++
			return nil
		}
		if err != nil {
			return err
		}
		b.Values = vals
		b.Sequences++
		return nil
	})
	if err != nil {
		b.Err = err
	}
	return b
}
