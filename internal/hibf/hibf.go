// Package hibf is the bloom-filter engine behind an index: one filter per
// user bin, queried through a MembershipAgent that counts fingerprint hits
// per bin and reports the bins that reach a threshold.
package hibf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	DefaultHashFunctions = 2
	DefaultMaxFPR        = 0.05

	// minBits keeps empty bins representable.
	minBits = 64
)

var ErrNoBins = errors.New("index needs at least one user bin")

// Config controls filter sizing and build parallelism.
type Config struct {
	NumHashFunctions int
	MaxFPR           float64
	Threads          int
}

func (c Config) withDefaults() Config {
	if c.NumHashFunctions <= 0 {
		c.NumHashFunctions = DefaultHashFunctions
	}
	if c.MaxFPR <= 0 {
		c.MaxFPR = DefaultMaxFPR
	}
	if c.Threads <= 0 {
		c.Threads = runtime.NumCPU()
	}
	return c
}

func (c Config) Validate() error {
	if c.NumHashFunctions < 0 || c.NumHashFunctions > 5 {
		return fmt.Errorf("number of hash functions must be in [1, 5], got %d", c.NumHashFunctions)
	}
	if c.MaxFPR < 0 || c.MaxFPR >= 1 {
		return fmt.Errorf("false positive rate must be in (0, 1), got %g", c.MaxFPR)
	}
	return nil
}

// Bits returns the filter size for n distinct values at the configured rate.
func (c Config) Bits(n int) uint {
	c = c.withDefaults()
	if n <= 0 {
		return minBits
	}
	k := float64(c.NumHashFunctions)
	m := -k * float64(n) / math.Log(1-math.Pow(c.MaxFPR, 1/k))
	if m < minBits {
		return minBits
	}
	return uint(math.Ceil(m))
}

// Filter holds the per-bin filters of one index. It is read-only once built.
type Filter struct {
	cfg  Config
	bins []*bloom.BloomFilter
}

// Build creates one filter per entry of bins. Duplicate values within a bin
// do not inflate its size.
func Build(cfg Config, bins [][]uint64) (*Filter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(bins) == 0 {
		return nil, ErrNoBins
	}
	cfg = cfg.withDefaults()
	f := &Filter{cfg: cfg, bins: make([]*bloom.BloomFilter, len(bins))}

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := cfg.Threads
	if workers > len(bins) {
		workers = len(bins)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				f.bins[i] = buildBin(cfg, bins[i])
			}
		}()
	}
	for i := range bins {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return f, nil
}

func buildBin(cfg Config, values []uint64) *bloom.BloomFilter {
	distinct := make(map[uint64]struct{}, len(values))
	for _, v := range values {
		distinct[v] = struct{}{}
	}
	bf := bloom.New(cfg.Bits(len(distinct)), uint(cfg.NumHashFunctions))
	var key [8]byte
	for v := range distinct {
		binary.LittleEndian.PutUint64(key[:], v)
		bf.Add(key[:])
	}
	return bf
}

// FromBins reassembles a Filter from deserialized bins.
func FromBins(cfg Config, bins []*bloom.BloomFilter) (*Filter, error) {
	if len(bins) == 0 {
		return nil, ErrNoBins
	}
	for i, b := range bins {
		if b == nil {
			return nil, fmt.Errorf("bin %d: missing filter", i)
		}
	}
	return &Filter{cfg: cfg.withDefaults(), bins: bins}, nil
}

func (f *Filter) NumBins() int   { return len(f.bins) }
func (f *Filter) Config() Config { return f.cfg }

// BitCount is the total filter size in bits.
func (f *Filter) BitCount() uint64 {
	var n uint64
	for _, b := range f.bins {
		n += uint64(b.Cap())
	}
	return n
}

// WriteBinTo serializes bin i in the bloom library's binary format.
func (f *Filter) WriteBinTo(i int, w io.Writer) (int64, error) {
	if i < 0 || i >= len(f.bins) {
		return 0, fmt.Errorf("bin %d out of range [0, %d)", i, len(f.bins))
	}
	return f.bins[i].WriteTo(w)
}

// ReadBin decodes one bin written by WriteBinTo.
func ReadBin(r io.Reader) (*bloom.BloomFilter, error) {
	bf := &bloom.BloomFilter{}
	if _, err := bf.ReadFrom(r); err != nil {
		return nil, err
	}
	return bf, nil
}

// MembershipAgent returns a fresh agent. Agents keep scratch state and must
// not be shared between goroutines; the Filter itself may be.
func (f *Filter) MembershipAgent() *Agent {
	return &Agent{f: f, counts: make([]int, len(f.bins))}
}

// Agent answers membership queries against a Filter.
type Agent struct {
	f      *Filter
	counts []int
	key    [8]byte
}

// MembershipFor returns, in ascending order, the ids of bins whose filter
// contains at least threshold of values.
func (a *Agent) MembershipFor(values []uint64, threshold int) []int {
	for i := range a.counts {
		a.counts[i] = 0
	}
	for _, v := range values {
		binary.LittleEndian.PutUint64(a.key[:], v)
		for i, b := range a.f.bins {
			if b.Test(a.key[:]) {
				a.counts[i]++
			}
		}
	}
	out := []int{}
	for i, c := range a.counts {
		if c >= threshold {
			out = append(out, i)
		}
	}
	return out
}

// Counts exposes the per-bin hit counts of the last query.
func (a *Agent) Counts() []int { return a.counts }
