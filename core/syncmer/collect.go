// core/syncmer/collect.go
package syncmer

import "hibf-hashing/core/dna4"

// Hit is one emitted syncmer with the text position of its k-mer.
type Hit struct {
	Pos   int
	Value uint64
}

// Append drains a fresh iterator over seq into dst.
func Append(dst []uint64, seq dna4.Sequence, p Params) ([]uint64, error) {
	it, err := New(seq, p)
	if err != nil {
		return dst, err
	}
	for ; !it.Done(); it.Next() {
		dst = append(dst, it.Value())
	}
	return dst, nil
}

// Values returns every syncmer value of seq in text order.
func Values(seq dna4.Sequence, p Params) ([]uint64, error) {
	return Append(nil, seq, p)
}

// Hits returns every syncmer of seq together with its k-mer position.
func Hits(seq dna4.Sequence, p Params) ([]Hit, error) {
	it, err := New(seq, p)
	if err != nil {
		return nil, err
	}
	var out []Hit
	for ; !it.Done(); it.Next() {
		out = append(out, Hit{Pos: it.Offset(), Value: it.Value()})
	}
	return out, nil
}
