// Package hashing selects the fingerprint extractor for an index: plain
// k-mers, minimisers or syncmers. The same Params are persisted with the
// index so a search reproduces the build's fingerprints exactly.
package hashing

import (
	"errors"
	"fmt"

	"hibf-hashing/core/dna4"
	"hibf-hashing/core/seqhash"
	"hibf-hashing/core/syncmer"
)

// Mode is the hash-mode tag stored in index metadata.
type Mode string

const (
	ModeKmer      Mode = "kmer"
	ModeMinimiser Mode = "minimiser"
	ModeSyncmer   Mode = "syncmer"
)

// Modes lists the accepted tags in help order.
var Modes = []Mode{ModeKmer, ModeMinimiser, ModeSyncmer}

// ParseMode maps a CLI/meta tag to a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown hash mode %q (want kmer | minimiser | syncmer)", s)
}

// Build defaults.
const (
	DefaultK = 20
	DefaultS = 11
	DefaultT = 2
)

// ErrSequenceTooShort marks sequences that cannot yield a single fingerprint.
var ErrSequenceTooShort = errors.New("sequence is shorter than the k-mer/window size")

// Params is the full fingerprint configuration of one index.
type Params struct {
	Mode Mode
	K    int // k-mer size
	W    int // minimiser window (bases); equals K outside minimiser mode
	S    int // syncmer s-mer size
	T    int // syncmer offset
}

// Validate checks the fields the selected mode uses.
func (p Params) Validate() error {
	if p.K < 1 || p.K > seqhash.MaxK {
		return fmt.Errorf("k-mer size %d out of range [1, %d]", p.K, seqhash.MaxK)
	}
	switch p.Mode {
	case ModeKmer:
	case ModeMinimiser:
		if p.W < p.K {
			return fmt.Errorf("window size (%d) must be greater than or equal to k-mer size (%d)", p.W, p.K)
		}
	case ModeSyncmer:
		if err := p.syncmer().Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown hash mode %q", p.Mode)
	}
	return nil
}

func (p Params) syncmer() syncmer.Params {
	return syncmer.Params{KmerSize: p.K, SmerSize: p.S, Offset: p.T}
}

// Span is the minimum sequence length that yields fingerprints.
func (p Params) Span() int {
	if p.Mode == ModeMinimiser && p.W > p.K {
		return p.W
	}
	return p.K
}

// Append adds the fingerprints of seq to dst. Sequences shorter than Span
// fail with ErrSequenceTooShort so callers can report and skip them.
func (p Params) Append(dst []uint64, seq dna4.Sequence) ([]uint64, error) {
	if len(seq) < p.Span() {
		return dst, fmt.Errorf("%w (%d < %d)", ErrSequenceTooShort, len(seq), p.Span())
	}
	switch p.Mode {
	case ModeKmer:
		return seqhash.AppendKmers(dst, seq, p.K)
	case ModeMinimiser:
		return seqhash.AppendMinimisers(dst, seq, p.K, p.W, seqhash.DefaultSeed)
	case ModeSyncmer:
		return syncmer.Append(dst, seq, p.syncmer())
	}
	return dst, fmt.Errorf("unknown hash mode %q", p.Mode)
}

// Fingerprints is Append into a fresh slice.
func (p Params) Fingerprints(seq dna4.Sequence) ([]uint64, error) {
	return p.Append(nil, seq)
}

func (p Params) String() string {
	switch p.Mode {
	case ModeMinimiser:
		return fmt.Sprintf("minimiser k=%d w=%d", p.K, p.W)
	case ModeSyncmer:
		return fmt.Sprintf("syncmer k=%d s=%d t=%d", p.K, p.S, p.T)
	}
	return fmt.Sprintf("kmer k=%d", p.K)
}
