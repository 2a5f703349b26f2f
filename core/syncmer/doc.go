// Package syncmer extracts canonical open syncmers from a DNA-4 sequence.
//
// A k-mer is a syncmer when the minimal s-mer inside it sits at a fixed
// offset t. Both strands are tracked at once; the strand whose packed k-mer
// is smaller (the canonical strand) decides the offset test and supplies the
// emitted value, so a sequence and its reverse complement produce the same
// fingerprints.
//
// The package is domain-only: no I/O, no logging, no shared state. One
// Iterator owns its windows exclusively; run one Iterator per sequence.
package syncmer
