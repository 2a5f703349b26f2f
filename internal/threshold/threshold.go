// Package threshold decides how many fingerprints of a read must hit a user
// bin before the bin is reported.
package threshold

import (
	"fmt"
	"math"

	"hibf-hashing/internal/hashing"
)

// MaxErrors bounds the error count accepted by search.
const MaxErrors = 5

// Params describes one query configuration.
type Params struct {
	Mode        hashing.Mode
	K           int
	W           int
	QueryLength int
	Errors      int
	// Fraction, when > 0, overrides the lemma with ceil(count*Fraction).
	Fraction float64
}

func (p Params) Validate() error {
	if p.Errors < 0 || p.Errors > MaxErrors {
		return fmt.Errorf("errors must be in [0, %d], got %d", MaxErrors, p.Errors)
	}
	if p.Fraction < 0 || p.Fraction > 1 {
		return fmt.Errorf("threshold fraction must be in (0, 1], got %g", p.Fraction)
	}
	if p.K < 1 {
		return fmt.Errorf("k-mer size must be positive, got %d", p.K)
	}
	return nil
}

// Threshold is immutable and safe for concurrent use.
type Threshold struct {
	p     Params
	lemma int
	kmers int
}

// New precomputes the k-mer lemma for the query length in p.
func New(p Params) (Threshold, error) {
	if err := p.Validate(); err != nil {
		return Threshold{}, err
	}
	t := Threshold{p: p}
	t.kmers = p.QueryLength - p.K + 1
	if t.kmers < 0 {
		t.kmers = 0
	}
	t.lemma = t.kmers - p.K*p.Errors
	if t.lemma < 1 {
		t.lemma = 1
	}
	return t, nil
}

// Lemma is the k-mer lemma bound for the configured query length.
func (t Threshold) Lemma() int { return t.lemma }

// Get returns the hit threshold for a read that produced count fingerprints.
// The result is at least 1.
func (t Threshold) Get(count int) int {
	if t.p.Fraction > 0 {
		return atLeastOne(int(math.Ceil(float64(count) * t.p.Fraction)))
	}
	if t.p.Mode == hashing.ModeKmer || t.p.Mode == "" {
		return t.lemma
	}
	if t.kmers == 0 {
		return 1
	}
	// Thinned modes keep a fraction of the k-mers; scale the lemma to match.
	scaled := math.Ceil(float64(count) * float64(t.lemma) / float64(t.kmers))
	return atLeastOne(int(scaled))
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
