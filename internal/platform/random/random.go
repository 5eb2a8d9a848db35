// Package random provides the seedable randomness primitives shared by every
// generator stage. All helpers are pure functions of a Source, so a fixed seed
// reproduces an entire generation run byte for byte.
package random

import (
	"math"
	"math/rand"
)

// Source is the minimal PRNG surface the generators depend on. *rand.Rand
// satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// New returns a Source seeded for reproducibility.
func New(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Chance returns true with probability p/100. Values at or below 0 are never
// true; values at or above 100 always are.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 100 {
		return true
	}
	return src.Float64()*100 < p
}

// WeightedChoice pairs a candidate value with its selection weight.
type WeightedChoice[T any] struct {
	Value  T
	Weight float64
}

// Weighted selects one value with probability proportional to its weight using
// a cumulative-weight scan. Weights need not sum to 100. Entries with zero or
// negative weight are never selected. The zero value of T is returned when no
// entry carries positive weight.
func Weighted[T any](src Source, choices []WeightedChoice[T]) T {
	var total float64
	for _, c := range choices {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	var zero T
	if total == 0 {
		return zero
	}
	r := src.Float64() * total
	var cum float64
	last := zero
	for _, c := range choices {
		if c.Weight <= 0 {
			continue
		}
		cum += c.Weight
		last = c.Value
		if r < cum {
			return c.Value
		}
	}
	// Floating-point remainder lands on the final positive-weight entry.
	return last
}

// PickOne returns a uniformly chosen element, or the zero value for an empty
// list.
func PickOne[T any](src Source, list []T) T {
	var zero T
	if len(list) == 0 {
		return zero
	}
	return list[src.Intn(len(list))]
}

// PickN returns n distinct elements in shuffled order. n is clamped to
// len(list) and the input slice is never modified.
func PickN[T any](src Source, list []T, n int) []T {
	if n <= 0 || len(list) == 0 {
		return nil
	}
	if n > len(list) {
		n = len(list)
	}
	idx := make([]int, len(list))
	for i := range idx {
		idx[i] = i
	}
	src.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = list[idx[i]]
	}
	return out
}

// IntBetween returns a uniform integer in [min, max].
func IntBetween(src Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + src.Intn(max-min+1)
}

// FloatBetween returns a uniform float in [min, max).
func FloatBetween(src Source, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + src.Float64()*(max-min)
}

// Round rounds v to the given number of decimal places.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
