// core/syncmer/window.go
package syncmer

// window holds the k-s+1 s-mer values of one strand in a fixed ring.
//
// The ring stores values in genomic order (oldest at head). A forward window
// exposes them oldest-first; a reversed window exposes them newest-first,
// which is the order the reverse-complement strand reads its s-mers in.
// Positions (pos, the index arguments of at) are in exposure order, so pos is
// the s-mer offset inside the strand's own k-mer.
type window struct {
	vals     []uint64
	head     int
	reversed bool

	min uint64
	pos int
}

func newWindow(n int, reversed bool) window {
	return window{vals: make([]uint64, n), reversed: reversed}
}

func (w *window) len() int { return len(w.vals) }

func (w *window) at(i int) uint64 {
	n := len(w.vals)
	if w.reversed {
		i = n - 1 - i
	}
	j := w.head + i
	if j >= n {
		j -= n
	}
	return w.vals[j]
}

// oldest and newest are exposure-order indices of the genomic ends.
func (w *window) oldest() int {
	if w.reversed {
		return len(w.vals) - 1
	}
	return 0
}

func (w *window) newest() int {
	if w.reversed {
		return 0
	}
	return len(w.vals) - 1
}

// push overwrites the oldest value with v, which becomes the newest.
func (w *window) push(v uint64) {
	w.vals[w.head] = v
	w.head++
	if w.head == len(w.vals) {
		w.head = 0
	}
}

// rescan walks the window in exposure order and replaces on <=, so among
// equal minima the one scanned last is kept.
func (w *window) rescan() {
	w.min, w.pos = w.at(0), 0
	for i := 1; i < len(w.vals); i++ {
		if v := w.at(i); v <= w.min {
			w.min, w.pos = v, i
		}
	}
}

// slide evicts the oldest s-mer, admits v and updates the tracked minimum.
// Only an evicted minimum costs a full rescan; a newcomer must be strictly
// smaller to take over.
func (w *window) slide(v uint64) {
	evicted := w.pos == w.oldest()
	w.push(v)
	switch {
	case evicted:
		w.rescan()
	case v < w.min:
		w.min, w.pos = v, w.newest()
	case w.reversed:
		w.pos++
	default:
		w.pos--
	}
}
