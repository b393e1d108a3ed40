package rng

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(3, 5))
}

func TestWeightedRandomBounds(t *testing.T) {
	r := testRand()
	for i := 0; i < 1000; i++ {
		got := WeightedRandom(r, 12, 70, 19)
		assert.GreaterOrEqual(t, got, uint32(12))
		assert.LessOrEqual(t, got, uint32(70))
	}
}

func TestWeightedRandomDegenerate(t *testing.T) {
	r := testRand()
	assert.Equal(t, uint32(5), WeightedRandom(r, 5, 5, 5))
	assert.Panics(t, func() { WeightedRandom(r, 10, 5, 7) })
}

func TestSplitInIntegers(t *testing.T) {
	r := testRand()
	for i := 0; i < 100; i++ {
		parts := SplitInIntegers(r, 50, 5, 1)
		require.Len(t, parts, 5)

		var sum uint32
		for _, p := range parts {
			assert.GreaterOrEqual(t, p, uint32(1))
			sum += p
		}
		assert.Equal(t, uint32(50), sum)
	}
}

func TestSplitInIntegersEdgeCases(t *testing.T) {
	r := testRand()
	assert.Nil(t, SplitInIntegers(r, 10, 0, 1))
	assert.Nil(t, SplitInIntegers(r, 3, 4, 1))
	assert.Equal(t, []uint32{0, 0}, SplitInIntegers(r, 0, 2, 0))
}

func TestSelectOne(t *testing.T) {
	r := testRand()

	got, ok := SelectOne(r, []string{"a"}, []uint32{1})
	require.True(t, ok)
	assert.Equal(t, "a", got)

	// Zero-weight options are never selected.
	for i := 0; i < 100; i++ {
		got, ok := SelectOne(r, []string{"never", "always"}, []uint32{0, 7})
		require.True(t, ok)
		assert.Equal(t, "always", got)
	}

	_, ok = SelectOne(r, []string{"a", "b"}, []uint32{1})
	assert.False(t, ok)
	_, ok = SelectOne(r, []string{"a"}, []uint32{0})
	assert.False(t, ok)
}

func TestWeightedIndex(t *testing.T) {
	r := testRand()

	assert.Equal(t, -1, WeightedIndex(r, nil))
	assert.Equal(t, -1, WeightedIndex(r, []float64{0, 0}))

	for i := 0; i < 100; i++ {
		idx := WeightedIndex(r, []float64{0, 2.5, 0})
		assert.Equal(t, 1, idx)
	}

	counts := map[int]int{}
	for i := 0; i < 2000; i++ {
		counts[WeightedIndex(r, []float64{90, 10})]++
	}
	assert.Greater(t, counts[0], counts[1])
}
