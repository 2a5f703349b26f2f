// internal/pipeline/search.go
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"hibf-hashing/core/fasta"
	"hibf-hashing/internal/hashing"
	"hibf-hashing/internal/threshold"
)

// SearchConfig controls read queries.
type SearchConfig struct {
	Threads  int
	Hash     hashing.Params // must equal the index build parameters
	Errors   int
	Fraction float64 // optional fixed threshold fraction (0 = lemma)
	Strict   bool
}

// Validate checks the threshold settings once, before any read is queried.
func (c SearchConfig) Validate() error {
	if err := c.Hash.Validate(); err != nil {
		return err
	}
	return threshold.Params{K: c.Hash.K, W: c.Hash.W, Errors: c.Errors, Fraction: c.Fraction}.Validate()
}

// Hit is the answer for one read.
type Hit struct {
	Ordinal   int // position of the read in its input
	ID        string
	Bins      []int // ascending user-bin ids; never nil
	Count     int   // fingerprints extracted from the read
	Threshold int
	Err       error // per-read problem (too short, invalid symbols)
}

// Searcher answers single reads. It is safe for concurrent use as long as
// each goroutine passes its own Membership.
type Searcher struct {
	cfg SearchConfig
}

func NewSearcher(cfg SearchConfig) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Searcher{cfg: cfg}, nil
}

// Query hashes one read and asks m for the bins that reach the threshold.
func (s *Searcher) Query(m Membership, id string, raw []byte) Hit {
	h := Hit{ID: id, Bins: []int{}}
	seq, err := hashing.Decode(raw, !s.cfg.Strict)
	if err != nil {
		h.Err = err
		return h
	}
	vals, err := s.cfg.Hash.Fingerprints(seq)
	if err != nil {
		h.Err = err
		return h
	}
	th, err := threshold.New(threshold.Params{
		Mode:        s.cfg.Hash.Mode,
		K:           s.cfg.Hash.K,
		W:           s.cfg.Hash.W,
		QueryLength: len(seq),
		Errors:      s.cfg.Errors,
		Fraction:    s.cfg.Fraction,
	})
	if err != nil {
		h.Err = err
		return h
	}
	h.Count = len(vals)
	h.Threshold = th.Get(len(vals))
	h.Bins = m.MembershipFor(vals, h.Threshold)
	if h.Bins == nil {
		h.Bins = []int{}
	}
	return h
}

// Search queries every read of readsPath and calls visit in read order.
// Per-read problems are reported through Hit.Err; the returned error is the
// first parse, visit or context error.
func Search(ctx context.Context, cfg SearchConfig, agents AgentSource, readsPath string, visit func(Hit) error) error {
	s, err := NewSearcher(cfg)
	if err != nil {
		return err
	}
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	recs, parseErr, err := fasta.StreamCtxPath(ctx, readsPath)
	if err != nil {
		return err
	}

	type job struct {
		ord int
		rec fasta.Record
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan Hit, cfg.Threads*2)

	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			m := agents()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					h := s.Query(m, j.rec.ID, j.rec.Seq)
					h.Ordinal = j.ord
					select {
					case results <- h:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: restore read order before visiting.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]Hit)
		next := 0
		for h := range results {
			pending[h.Ordinal] = h
			for {
				ready, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if cerr != nil {
					continue
				}
				if err := visit(ready); err != nil {
					cerr = err
					cancel()
				}
			}
		}
	}()

	ord := 0
feed:
	for rec := range recs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{ord: ord, rec: rec}:
			ord++
		}
	}
	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	// Drain the reader so its goroutine exits, then collect its verdict.
	for range recs {
	}
	perr := <-parseErr

	if cerr != nil {
		return cerr
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if perr != nil {
		return fmt.Errorf("reads: %w", perr)
	}
	return nil
}
