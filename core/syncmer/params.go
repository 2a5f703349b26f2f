// core/syncmer/params.go
package syncmer

import (
	"errors"
	"fmt"
)

// MaxKmerSize is the largest k whose packed value fits in a uint64.
const MaxKmerSize = 32

// ErrInvalidParams is wrapped by every Params validation failure.
var ErrInvalidParams = errors.New("invalid syncmer parameters")

// Params configures one extraction run.
type Params struct {
	KmerSize int // k
	SmerSize int // s
	Offset   int // t, required position of the minimal s-mer
}

// WindowLen is the number of s-mers overlapping one k-mer (k-s+1).
func (p Params) WindowLen() int { return p.KmerSize - p.SmerSize + 1 }

// Validate checks k>0, s>0, k>=s, 0<=t<=k-s and k<=MaxKmerSize.
func (p Params) Validate() error {
	switch {
	case p.KmerSize <= 0:
		return fmt.Errorf("%w: kmer_size must be > 0", ErrInvalidParams)
	case p.SmerSize <= 0:
		return fmt.Errorf("%w: smer_size must be > 0", ErrInvalidParams)
	case p.KmerSize < p.SmerSize:
		return fmt.Errorf("%w: kmer_size must be >= smer_size", ErrInvalidParams)
	case p.KmerSize > MaxKmerSize:
		return fmt.Errorf("%w: kmer_size must be <= %d", ErrInvalidParams, MaxKmerSize)
	case p.Offset < 0 || p.Offset > p.KmerSize-p.SmerSize:
		return fmt.Errorf("%w: offset must be in [0, kmer_size - smer_size] = [0, %d]",
			ErrInvalidParams, p.KmerSize-p.SmerSize)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("k=%d s=%d t=%d", p.KmerSize, p.SmerSize, p.Offset)
}
