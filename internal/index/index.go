// Package index is the in-memory model of a built index: the hashing
// configuration it was built with, its user bins and the filter over them.
package index

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid"

	"hibf-hashing/internal/hashing"
	"hibf-hashing/internal/hibf"
)

// FormatVersion is bumped whenever the stored layout changes incompatibly.
const FormatVersion = 1

// Meta is persisted next to the filter. A search must rebuild exactly the
// hashing.Params the index was built with, so every field that feeds the
// fingerprint extractor lives here.
type Meta struct {
	FormatVersion    int          `json:"format_version" yaml:"format_version"`
	Mode             hashing.Mode `json:"mode" yaml:"mode"`
	KmerSize         int          `json:"kmer_size" yaml:"kmer_size"`
	WindowSize       int          `json:"window_size" yaml:"window_size"`
	SmerSize         int          `json:"smer_size,omitempty" yaml:"smer_size,omitempty"`
	Offset           int          `json:"offset,omitempty" yaml:"offset,omitempty"`
	NumHashFunctions int          `json:"num_hash_functions" yaml:"num_hash_functions"`
	MaxFPR           float64      `json:"max_fpr" yaml:"max_fpr"`
	BuildID          string       `json:"build_id" yaml:"build_id"`
	CreatedAt        time.Time    `json:"created_at" yaml:"created_at"`
	Bins             []string     `json:"bins" yaml:"bins"`
}

// HashParams reconstructs the build-time fingerprint configuration.
func (m Meta) HashParams() hashing.Params {
	p := hashing.Params{Mode: m.Mode, K: m.KmerSize, W: m.WindowSize}
	if m.Mode == hashing.ModeSyncmer {
		p.S, p.T = m.SmerSize, m.Offset
	}
	return p
}

// FilterConfig is the engine configuration recorded at build time.
func (m Meta) FilterConfig() hibf.Config {
	return hibf.Config{NumHashFunctions: m.NumHashFunctions, MaxFPR: m.MaxFPR}
}

func (m Meta) Validate() error {
	if m.FormatVersion != FormatVersion {
		return fmt.Errorf("unsupported index format version %d (want %d)", m.FormatVersion, FormatVersion)
	}
	if len(m.Bins) == 0 {
		return hibf.ErrNoBins
	}
	return m.HashParams().Validate()
}

// Index couples metadata with its filter.
type Index struct {
	Meta   Meta
	Filter *hibf.Filter
}

// New stamps fresh metadata (format version, ULID build id, creation time)
// for a filter built with p over bins.
func New(p hashing.Params, bins []string, f *hibf.Filter) (*Index, error) {
	if f == nil {
		return nil, errors.New("index: nil filter")
	}
	if f.NumBins() != len(bins) {
		return nil, fmt.Errorf("index: %d bin names for %d filters", len(bins), f.NumBins())
	}
	now := time.Now().UTC()
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("index: build id: %w", err)
	}
	fc := f.Config()
	m := Meta{
		FormatVersion:    FormatVersion,
		Mode:             p.Mode,
		KmerSize:         p.K,
		WindowSize:       p.W,
		NumHashFunctions: fc.NumHashFunctions,
		MaxFPR:           fc.MaxFPR,
		BuildID:          id.String(),
		CreatedAt:        now,
		Bins:             append([]string(nil), bins...),
	}
	if m.WindowSize < m.KmerSize {
		m.WindowSize = m.KmerSize
	}
	if p.Mode == hashing.ModeSyncmer {
		m.SmerSize, m.Offset = p.S, p.T
	}
	return &Index{Meta: m, Filter: f}, nil
}
