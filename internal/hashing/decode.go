// internal/hashing/decode.go
package hashing

import "hibf-hashing/core/dna4"

// Decode converts raw sequence bytes for hashing. Lenient decoding reads
// unknown symbols as A, matching the DNA-4 sequence-file convention; strict
// decoding rejects them with *dna4.InvalidSymbolError.
func Decode(raw []byte, lenient bool) (dna4.Sequence, error) {
	if lenient {
		return dna4.EncodeLenient(raw), nil
	}
	return dna4.Encode(raw)
}
