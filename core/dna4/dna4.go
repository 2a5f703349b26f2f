// core/dna4/dna4.go
package dna4

import (
	"fmt"
	"strings"
)

// Rank is the 2-bit code of a nucleotide: A=0, C=1, G=2, T=3.
// Complementary bases sum to 3.
type Rank uint8

const (
	A Rank = iota
	C
	G
	T
)

// Sequence is a decoded DNA-4 sequence, one rank per base.
type Sequence []Rank

// InvalidSymbolError reports a byte outside the A/C/G/T alphabet.
type InvalidSymbolError struct {
	Pos    int
	Symbol byte
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid base %q at %d; allowed: A C G T", e.Symbol, e.Pos+1)
}

const invalid = 0xff

var (
	strict  [256]Rank
	lenient [256]Rank
	letters = [4]byte{'A', 'C', 'G', 'T'}
)

func init() {
	for i := range strict {
		strict[i] = invalid
		lenient[i] = A
	}
	for r, b := range letters {
		strict[b] = Rank(r)
		strict[b+'a'-'A'] = Rank(r)
		lenient[b] = Rank(r)
		lenient[b+'a'-'A'] = Rank(r)
	}
	lenient['U'] = T
	lenient['u'] = T
}

// Encode converts ASCII nucleotides to ranks. Case is ignored; any other
// symbol fails with *InvalidSymbolError.
func Encode(raw []byte) (Sequence, error) {
	out := make(Sequence, len(raw))
	for i, b := range raw {
		r := strict[b]
		if r == invalid {
			return nil, &InvalidSymbolError{Pos: i, Symbol: b}
		}
		out[i] = r
	}
	return out, nil
}

// EncodeLenient converts ASCII nucleotides to ranks, reading U as T and
// every other unknown symbol (N, IUPAC codes, gaps) as A.
func EncodeLenient(raw []byte) Sequence {
	out := make(Sequence, len(raw))
	for i, b := range raw {
		out[i] = lenient[b]
	}
	return out
}

// MustEncode is Encode for literals in tests and examples.
func MustEncode(s string) Sequence {
	seq, err := Encode([]byte(s))
	if err != nil {
		panic(err)
	}
	return seq
}

// Complement returns the complementary base.
func (r Rank) Complement() Rank { return r ^ 3 }

// Char returns the upper-case letter for r.
func (r Rank) Char() byte { return letters[r&3] }

func (s Sequence) String() string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteByte(r.Char())
	}
	return b.String()
}

// ReverseComplement returns a new sequence: reversed, each base complemented.
func (s Sequence) ReverseComplement() Sequence {
	n := len(s)
	if n == 0 {
		return nil
	}
	out := make(Sequence, n)
	for i := 0; i < n; i++ {
		out[i] = s[n-1-i].Complement()
	}
	return out
}

// Pack returns the 2-bit packed value of s (first base in the highest bits).
// Only the last 32 bases fit; longer inputs keep their 32-base suffix.
func (s Sequence) Pack() uint64 {
	var v uint64
	for _, r := range s {
		v = v<<2 | uint64(r)
	}
	return v
}

// Unpack renders the k-base packed value v as letters.
func Unpack(v uint64, k int) string {
	b := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		b[i] = letters[v&3]
		v >>= 2
	}
	return string(b)
}
