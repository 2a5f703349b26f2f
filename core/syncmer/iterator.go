// core/syncmer/iterator.go
package syncmer

import "hibf-hashing/core/dna4"

// Iterator is a forward-only cursor over the syncmers of one sequence.
//
//	it, err := syncmer.New(seq, p)
//	for ; !it.Done(); it.Next() {
//		use(it.Value(), it.Offset())
//	}
//
// It is not safe for concurrent use and cannot be rewound; build a new one to
// start over.
type Iterator struct {
	seq dna4.Sequence
	p   Params

	kmerMask, smerMask       uint64
	rcKmerShift, rcSmerShift uint

	fwdKmer, rcKmer uint64
	fwdSmer, rcSmer uint64
	fwd, rc         window

	pos   int // index of the last consumed base
	value uint64
	done  bool
}

// New validates p, primes the cursor on the first k bases and positions it on
// the first syncmer. A sequence shorter than k yields an iterator that is
// already done.
func New(seq dna4.Sequence, p Params) (*Iterator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	k, s := p.KmerSize, p.SmerSize
	it := &Iterator{
		seq:         seq,
		p:           p,
		kmerMask:    mask(k),
		smerMask:    mask(s),
		rcKmerShift: uint(2 * (k - 1)),
		rcSmerShift: uint(2 * (s - 1)),
	}
	if len(seq) < k {
		it.pos = len(seq)
		it.done = true
		return it, nil
	}

	n := p.WindowLen()
	it.fwd = newWindow(n, false)
	it.rc = newWindow(n, true)
	for i := 0; i < k; i++ {
		it.consume(seq[i])
		if j := i - (s - 1); j >= 0 {
			it.fwd.vals[j] = it.fwdSmer
			it.rc.vals[j] = it.rcSmer
		}
	}
	it.pos = k - 1
	it.fwd.rescan()
	it.rc.rescan()

	if !it.accept() {
		it.Next()
	}
	return it, nil
}

func mask(bases int) uint64 {
	if bases >= MaxKmerSize {
		return ^uint64(0)
	}
	return uint64(1)<<(2*uint(bases)) - 1
}

// consume rolls one base into the forward and reverse-complement k-mer and
// s-mer values.
func (it *Iterator) consume(r dna4.Rank) {
	v := uint64(r)
	c := uint64(r.Complement())
	it.fwdKmer = (it.fwdKmer<<2 | v) & it.kmerMask
	it.fwdSmer = (it.fwdSmer<<2 | v) & it.smerMask
	it.rcKmer = it.rcKmer>>2 | c<<it.rcKmerShift
	it.rcSmer = it.rcSmer>>2 | c<<it.rcSmerShift
}

// accept applies the syncmer test on the canonical strand and records the
// value to emit. Ties between the strands go to the forward strand.
func (it *Iterator) accept() bool {
	if it.fwdKmer <= it.rcKmer {
		if it.fwd.pos != it.p.Offset {
			return false
		}
		it.value = it.fwdKmer
		return true
	}
	if it.rc.pos != it.p.Offset {
		return false
	}
	it.value = it.rcKmer
	return true
}

// Next moves to the following syncmer, skipping rejected k-mers, or to the
// end of input. Calling Next on a done iterator is a no-op.
func (it *Iterator) Next() {
	for !it.done {
		it.pos++
		if it.pos >= len(it.seq) {
			it.done = true
			return
		}
		it.consume(it.seq[it.pos])
		it.fwd.slide(it.fwdSmer)
		it.rc.slide(it.rcSmer)
		if it.accept() {
			return
		}
	}
}

// Done reports whether no syncmers remain.
func (it *Iterator) Done() bool { return it.done }

// Value is the canonical packed k-mer at the cursor. Meaningless once Done.
func (it *Iterator) Value() uint64 { return it.value }

// Offset is the text position of the current k-mer's first base.
// Meaningless once Done.
func (it *Iterator) Offset() int { return it.pos - it.p.KmerSize + 1 }

// Params returns the parameters the iterator was built with.
func (it *Iterator) Params() Params { return it.p }

// Equal compares cursor positions only. Two done iterators are equal
// regardless of their input; emitted values are not compared.
func (it *Iterator) Equal(o *Iterator) bool {
	if it.done || o.done {
		return it.done == o.done
	}
	return it.pos == o.pos
}
