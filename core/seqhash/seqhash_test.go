// core/seqhash/seqhash_test.go
package seqhash

import (
	"errors"
	"math/rand"
	"testing"

	"hibf-hashing/core/dna4"
)

func TestKmersPacked(t *testing.T) {
	got, err := Kmers(dna4.MustEncode("ACGT"), 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint64{1, 6, 11} // AC CG GT
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestKmersShortAndInvalid(t *testing.T) {
	got, err := Kmers(dna4.MustEncode("AC"), 3)
	if err != nil || len(got) != 0 {
		t.Fatalf("short input: %v %v", got, err)
	}
	for _, k := range []int{0, 33} {
		if _, err := Kmers(dna4.MustEncode("ACGT"), k); !errors.Is(err, ErrInvalidShape) {
			t.Fatalf("k=%d: want ErrInvalidShape, got %v", k, err)
		}
	}
}

func TestCanonicalStrandInvariant(t *testing.T) {
	seq := dna4.MustEncode("ACGTTGCAAGGCTTACGATCGG")
	a, _ := AppendCanonical(nil, seq, 5)
	b, _ := AppendCanonical(nil, seq.ReverseComplement(), 5)
	if len(a) != len(b) {
		t.Fatalf("len %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[len(b)-1-i] {
			t.Fatalf("canonical value %d differs from rc counterpart", i)
		}
	}
}

func TestMinimisersWindowEqualsK(t *testing.T) {
	seq := dna4.MustEncode("ACGTTGCAAGGCTTACGATCGG")
	mins, err := Minimisers(seq, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	can, _ := AppendCanonical(nil, seq, 4)
	if len(mins) != len(can) {
		t.Fatalf("w==k should emit every k-mer: %d vs %d", len(mins), len(can))
	}
	for i := range can {
		if mins[i] != can[i]^DefaultSeed {
			t.Fatalf("minimiser %d = %x want %x", i, mins[i], can[i]^DefaultSeed)
		}
	}
}

func TestMinimisersCoverEveryWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seq := make(dna4.Sequence, 300)
	for i := range seq {
		seq[i] = dna4.Rank(rng.Intn(4))
	}
	k, w := 7, 15
	mins, err := Minimisers(seq, k, w)
	if err != nil {
		t.Fatal(err)
	}
	emitted := map[uint64]bool{}
	for _, m := range mins {
		emitted[m] = true
	}
	can, _ := AppendCanonical(nil, seq, k)
	span := w - k + 1
	for s := 0; s+span <= len(can); s++ {
		best := can[s] ^ DefaultSeed
		for _, v := range can[s+1 : s+span] {
			best = min(best, v^DefaultSeed)
		}
		if !emitted[best] {
			t.Fatalf("window %d minimum %x never emitted", s, best)
		}
	}
	if len(mins) >= len(can) {
		t.Fatalf("minimisers should thin the k-mers: %d vs %d", len(mins), len(can))
	}
}

func TestMinimisersRejectSmallWindow(t *testing.T) {
	if _, err := Minimisers(dna4.MustEncode("ACGTACGT"), 5, 4); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("want ErrInvalidShape, got %v", err)
	}
	got, err := Minimisers(dna4.MustEncode("ACGTA"), 3, 8)
	if err != nil || len(got) != 0 {
		t.Fatalf("sequence shorter than window: %v %v", got, err)
	}
}
