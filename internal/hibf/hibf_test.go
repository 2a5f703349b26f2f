package hibf

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomValues(r *rand.Rand, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = r.Uint64()
	}
	return out
}

func TestBuildAndQuery(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	bins := [][]uint64{randomValues(r, 500), randomValues(r, 500), randomValues(r, 500)}
	f, err := Build(Config{Threads: 2}, bins)
	require.NoError(t, err)
	require.Equal(t, 3, f.NumBins())

	agent := f.MembershipAgent()
	assert.Equal(t, []int{1}, agent.MembershipFor(bins[1][:50], 50))
	assert.Equal(t, 50, agent.Counts()[1])

	both := append(append([]uint64{}, bins[0][:30]...), bins[2][:30]...)
	assert.Equal(t, []int{0, 2}, agent.MembershipFor(both, 30))
}

func TestNoFalseNegatives(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	vals := randomValues(r, 2000)
	f, err := Build(Config{NumHashFunctions: 3, MaxFPR: 0.01}, [][]uint64{vals})
	require.NoError(t, err)
	got := f.MembershipAgent().MembershipFor(vals, len(vals))
	assert.Equal(t, []int{0}, got)
}

func TestEmptyQueryAndEmptyBin(t *testing.T) {
	f, err := Build(Config{}, [][]uint64{nil, {1, 2, 3}})
	require.NoError(t, err)
	a := f.MembershipAgent()
	assert.Equal(t, []int{}, a.MembershipFor([]uint64{1, 2, 3}, 4))
	assert.Equal(t, []int{1}, a.MembershipFor([]uint64{1, 2, 3}, 3))
}

func TestBitsMonotone(t *testing.T) {
	c := Config{NumHashFunctions: 2, MaxFPR: 0.05}
	assert.Equal(t, uint(minBits), c.Bits(0))
	assert.Less(t, c.Bits(1000), c.Bits(2000))
	assert.Greater(t, c.Bits(1000), Config{NumHashFunctions: 2, MaxFPR: 0.2}.Bits(1000))
}

func TestBinRoundTrip(t *testing.T) {
	vals := []uint64{5, 6, 7, 1 << 40}
	f, err := Build(Config{}, [][]uint64{vals, {9}})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = f.WriteBinTo(0, &buf)
	require.NoError(t, err)
	bin, err := ReadBin(&buf)
	require.NoError(t, err)

	g, err := FromBins(f.Config(), []*bloom.BloomFilter{bin})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, g.MembershipAgent().MembershipFor(vals, len(vals)))

	_, err = f.WriteBinTo(2, &buf)
	assert.Error(t, err)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(Config{}, nil)
	assert.ErrorIs(t, err, ErrNoBins)
	_, err = Build(Config{MaxFPR: 1.5}, [][]uint64{{1}})
	assert.Error(t, err)
}
