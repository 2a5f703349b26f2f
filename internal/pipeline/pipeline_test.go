package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"hibf-hashing/internal/hashing"
	"hibf-hashing/internal/hibf"
)

var kmer4 = hashing.Params{Mode: hashing.ModeKmer, K: 4, W: 4}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return fn
}

type recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recorder) warn(format string, a ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, fmt.Sprintf(format, a...))
}

func TestHashBins(t *testing.T) {
	a := writeFile(t, "a.fa", ">a1\nACGTACGT\n>short\nAC\n")
	b := writeFile(t, "b.fq", "@r\nGGGGCCCC\n+\nIIIIIIII\n")
	missing := filepath.Join(t.TempDir(), "missing.fa")

	var rec recorder
	bins, err := HashBins(context.Background(), BuildConfig{Threads: 3, Hash: kmer4},
		[]string{a, missing, b}, rec.warn)
	if err != nil {
		t.Fatalf("HashBins: %v", err)
	}
	if len(bins) != 3 {
		t.Fatalf("want 3 bins, got %d", len(bins))
	}
	if bins[0].Path != a || len(bins[0].Values) != 5 || bins[0].Sequences != 1 || bins[0].Skipped != 1 {
		t.Fatalf("bin 0 = %+v", bins[0])
	}
	if bins[1].Err == nil {
		t.Fatalf("expected open error for missing file")
	}
	if bins[2].Err != nil || len(bins[2].Values) != 5 {
		t.Fatalf("bin 2 = %+v", bins[2])
	}
	if len(rec.msgs) != 1 || !strings.Contains(rec.msgs[0], "short") {
		t.Fatalf("warnings = %q", rec.msgs)
	}
}

func TestHashBinsStrict(t *testing.T) {
	a := writeFile(t, "n.fa", ">n\nACGTNACGT\n>ok\nACGTA\n")
	var rec recorder
	bins, err := HashBins(context.Background(), BuildConfig{Threads: 1, Hash: kmer4, Strict: true},
		[]string{a}, rec.warn)
	if err != nil {
		t.Fatalf("HashBins: %v", err)
	}
	if bins[0].Sequences != 1 || bins[0].Skipped != 1 || len(bins[0].Values) != 2 {
		t.Fatalf("bin = %+v", bins[0])
	}
}

func TestHashBinsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := HashBins(ctx, BuildConfig{Threads: 2, Hash: kmer4}, []string{"x", "y"}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

// fakeMembership reports bin 0 for every read with at least one value.
type fakeMembership struct{}

func (fakeMembership) MembershipFor(values []uint64, threshold int) []int {
	if len(values) >= threshold && len(values) > 0 {
		return []int{0}
	}
	return nil
}

func TestSearchKeepsReadOrder(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, ">r%d\nACGTACGTAC\n", i)
	}
	reads := writeFile(t, "reads.fa", sb.String())

	var got []Hit
	err := Search(context.Background(), SearchConfig{Threads: 8, Hash: kmer4},
		func() Membership { return fakeMembership{} }, reads,
		func(h Hit) error {
			got = append(got, h)
			return nil
		})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 200 {
		t.Fatalf("want 200 hits, got %d", len(got))
	}
	for i, h := range got {
		if h.Ordinal != i || h.ID != fmt.Sprintf("r%d", i) {
			t.Fatalf("hit %d out of order: %+v", i, h)
		}
		if len(h.Bins) != 1 || h.Count != 7 || h.Threshold != 7 {
			t.Fatalf("hit %d = %+v", i, h)
		}
	}
}

func TestSearchAgainstFilter(t *testing.T) {
	ref0 := "ACGTTGCAAGGCTTACGATCGGATCCAT"
	ref1 := "TTTTGGGGCCCCAAAATTTTGGGGCCCC"
	p := hashing.Params{Mode: hashing.ModeSyncmer, K: 5, W: 5, S: 2, T: 1}
	bins, err := HashBins(context.Background(), BuildConfig{Threads: 2, Hash: p},
		[]string{writeFile(t, "0.fa", ">0\n"+ref0+"\n"), writeFile(t, "1.fa", ">1\n"+ref1+"\n")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	f, err := hibf.Build(hibf.Config{}, [][]uint64{bins[0].Values, bins[1].Values})
	if err != nil {
		t.Fatal(err)
	}
	reads := writeFile(t, "q.fa", ">q0\n"+ref0+"\n>tiny\nACG\n")

	var got []Hit
	err = Search(context.Background(), SearchConfig{Threads: 2, Hash: p}, FilterAgents(f), reads,
		func(h Hit) error { got = append(got, h); return nil })
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 hits, got %+v", got)
	}
	if len(got[0].Bins) == 0 || got[0].Bins[0] != 0 {
		t.Fatalf("q0 should hit bin 0: %+v", got[0])
	}
	if !errors.Is(got[1].Err, hashing.ErrSequenceTooShort) || len(got[1].Bins) != 0 {
		t.Fatalf("tiny = %+v", got[1])
	}
}

func TestSearchVisitErrorStops(t *testing.T) {
	reads := writeFile(t, "reads.fa", ">a\nACGTACGT\n>b\nACGTACGT\n>c\nACGTACGT\n")
	boom := errors.New("boom")
	n := 0
	err := Search(context.Background(), SearchConfig{Threads: 2, Hash: kmer4},
		func() Membership { return fakeMembership{} }, reads,
		func(Hit) error { n++; return boom })
	if !errors.Is(err, boom) || n != 1 {
		t.Fatalf("err=%v n=%d", err, n)
	}
}

func TestSearchRejectsBadConfig(t *testing.T) {
	err := Search(context.Background(), SearchConfig{Hash: kmer4, Errors: 9},
		func() Membership { return fakeMembership{} }, "unused", func(Hit) error { return nil })
	if err == nil {
		t.Fatal("expected validation error")
	}
}
