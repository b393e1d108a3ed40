// Package rng collects the random-number helpers used by box opening
// and the battle engine. Every function takes the generator as an
// argument so callers can seed deterministically in tests.
package rng

import (
	"math/rand/v2"
	"slices"
)

// WeightedRandom generates a random number between lower and upper whose
// long-run average lands close to avg.
//
// Panics if lower > avg or avg > upper.
func WeightedRandom(r *rand.Rand, lower, upper, avg uint32) uint32 {
	if lower > avg || avg > upper {
		panic("rng: WeightedRandom requires lower <= avg <= upper")
	}

	avgLow := float64(lower+avg) / 2
	avgHigh := float64(avg+upper) / 2

	var pHigh float64
	if avgHigh > avgLow {
		pHigh = (float64(avg) - avgLow) / (avgHigh - avgLow)
	}

	low, high := lower, avg
	if r.Float64() < pHigh {
		low, high = avg, upper
	}
	if high == low {
		return low
	}
	return low + r.Uint32N(high-low+1)
}

// SplitInIntegers randomly splits number into total integers that add up
// to it. Every element of the result is at least minimum.
//
// Returns nil if total == 0 or total*minimum > number.
func SplitInIntegers(r *rand.Rand, number, total, minimum uint32) []uint32 {
	if total == 0 || total*minimum > number {
		return nil
	}
	if number == 0 {
		return make([]uint32, total)
	}

	max := number - total*minimum + total - 1
	breaks := r.Perm(int(max))[:total-1]
	slices.Sort(breaks)
	breaks = append(breaks, int(max))

	buckets := []uint32{uint32(breaks[0]) + minimum}
	for i := 1; i < len(breaks); i++ {
		buckets = append(buckets, uint32(breaks[i]-breaks[i-1]-1)+minimum)
	}
	return buckets
}

// SelectOne picks one of options using the corresponding weights.
//
// The second return value is false if the slice lengths differ, weights
// is empty or all weights are zero.
func SelectOne[T any](r *rand.Rand, options []T, weights []uint32) (T, bool) {
	var zero T
	if len(options) != len(weights) || len(weights) == 0 {
		return zero, false
	}

	var sum uint64
	for _, w := range weights {
		sum += uint64(w)
	}
	if sum == 0 {
		return zero, false
	}

	n := r.Uint64N(sum)
	for i, w := range weights {
		if n < uint64(w) {
			return options[i], true
		}
		n -= uint64(w)
	}
	return zero, false
}

// WeightedIndex picks an index according to float weights. Returns -1 if
// weights is empty or sums to zero.
func WeightedIndex(r *rand.Rand, weights []float64) int {
	var sum float64
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}
	if sum <= 0 {
		return -1
	}

	n := r.Float64() * sum
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if n < w {
			return i
		}
		n -= w
	}
	return len(weights) - 1
}
