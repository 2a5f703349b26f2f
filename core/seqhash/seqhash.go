// Package seqhash turns DNA-4 sequences into k-mer and minimiser
// fingerprints. Values are 2-bit packed k-mers (k <= 32), as in
// core/syncmer, so the three hash modes share one value space per k.
package seqhash

import (
	"errors"
	"fmt"

	"hibf-hashing/core/dna4"
)

// MaxK is the largest k whose packed value fits in a uint64.
const MaxK = 32

// DefaultSeed is XORed into canonical k-mers before minimiser selection to
// break the lexicographic bias towards poly-A.
const DefaultSeed uint64 = 0x8F3F73B5CF1C9ADE

var ErrInvalidShape = errors.New("invalid k-mer shape")

func checkK(k int) error {
	if k <= 0 || k > MaxK {
		return fmt.Errorf("%w: k=%d must be in [1, %d]", ErrInvalidShape, k, MaxK)
	}
	return nil
}

func kmerMask(k int) uint64 {
	if k >= MaxK {
		return ^uint64(0)
	}
	return uint64(1)<<(2*uint(k)) - 1
}

// AppendKmers appends the forward packed value of every k-mer of seq.
// Sequences shorter than k add nothing.
func AppendKmers(dst []uint64, seq dna4.Sequence, k int) ([]uint64, error) {
	if err := checkK(k); err != nil {
		return dst, err
	}
	m := kmerMask(k)
	var v uint64
	for i, r := range seq {
		v = (v<<2 | uint64(r)) & m
		if i >= k-1 {
			dst = append(dst, v)
		}
	}
	return dst, nil
}

// Kmers returns the forward packed value of every k-mer of seq.
func Kmers(seq dna4.Sequence, k int) ([]uint64, error) {
	return AppendKmers(nil, seq, k)
}

// AppendCanonical appends min(forward, reverse complement) for every k-mer.
func AppendCanonical(dst []uint64, seq dna4.Sequence, k int) ([]uint64, error) {
	if err := checkK(k); err != nil {
		return dst, err
	}
	m := kmerMask(k)
	shift := uint(2 * (k - 1))
	var fwd, rc uint64
	for i, r := range seq {
		fwd = (fwd<<2 | uint64(r)) & m
		rc = rc>>2 | uint64(r.Complement())<<shift
		if i >= k-1 {
			dst = append(dst, min(fwd, rc))
		}
	}
	return dst, nil
}
