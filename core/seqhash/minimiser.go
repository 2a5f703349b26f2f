// core/seqhash/minimiser.go
package seqhash

import (
	"fmt"

	"hibf-hashing/core/dna4"
)

// AppendMinimisers appends the minimisers of seq for k-mer size k and window
// size w (bases, w >= k). Each canonical k-mer is XORed with seed; a window
// spans w-k+1 consecutive k-mers. A value is emitted for the first window
// and then whenever the window minimum changes: a strictly smaller k-mer
// enters, or the current minimum leaves and the window is rescanned. Ties
// resolve to the leftmost k-mer.
func AppendMinimisers(dst []uint64, seq dna4.Sequence, k, w int, seed uint64) ([]uint64, error) {
	if err := checkK(k); err != nil {
		return dst, err
	}
	if w < k {
		return dst, fmt.Errorf("%w: window %d smaller than k=%d", ErrInvalidShape, w, k)
	}
	hashes, _ := AppendCanonical(nil, seq, k)
	span := w - k + 1
	if len(hashes) < span {
		return dst, nil
	}
	for i := range hashes {
		hashes[i] ^= seed
	}

	argmin := func(lo, hi int) int {
		best := lo
		for i := lo + 1; i < hi; i++ {
			if hashes[i] < hashes[best] {
				best = i
			}
		}
		return best
	}

	cur := argmin(0, span)
	dst = append(dst, hashes[cur])
	for i := span; i < len(hashes); i++ {
		start := i - span + 1
		switch {
		case hashes[i] < hashes[cur]:
			cur = i
		case cur < start:
			cur = argmin(start, i+1)
		default:
			continue
		}
		dst = append(dst, hashes[cur])
	}
	return dst, nil
}

// Minimisers is AppendMinimisers into a fresh slice with DefaultSeed.
func Minimisers(seq dna4.Sequence, k, w int) ([]uint64, error) {
	return AppendMinimisers(nil, seq, k, w, DefaultSeed)
}
