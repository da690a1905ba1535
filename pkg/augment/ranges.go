// ranges.go — Inclusive random range draws shared by the transforms and the generator.
package augment

import "math/rand/v2"

// Range is an inclusive [lo, hi] interval of floats. YAML form: [lo, hi].
type Range [2]float64

// Uniform draws a float uniformly from the range.
// A degenerate range (lo == hi) always returns lo.
func (r Range) Uniform(rng *rand.Rand) float64 {
	return r[0] + rng.Float64()*(r[1]-r[0])
}

// Valid reports whether lo <= hi.
func (r Range) Valid() bool { return r[0] <= r[1] }

// IntRange is an inclusive [lo, hi] interval of integers.
type IntRange [2]int

// Int draws an integer uniformly from [lo, hi].
func (r IntRange) Int(rng *rand.Rand) int {
	if r[1] <= r[0] {
		return r[0]
	}
	return r[0] + rng.IntN(r[1]-r[0]+1)
}

// Odd draws an odd integer from [lo, hi] in steps of two. Even bounds are
// moved inward to the nearest odd value; if nothing odd remains, the
// adjusted lower bound is returned.
func (r IntRange) Odd(rng *rand.Rand) int {
	lo, hi := r.OddBounds()
	if hi <= lo {
		return lo
	}
	return lo + 2*rng.IntN((hi-lo)/2+1)
}

// OddBounds returns the odd bounds Odd samples between.
func (r IntRange) OddBounds() (lo, hi int) {
	lo, hi = r[0], r[1]
	if lo%2 == 0 {
		lo++
	}
	if hi%2 == 0 {
		hi--
	}
	return lo, hi
}

// Valid reports whether lo <= hi.
func (r IntRange) Valid() bool { return r[0] <= r[1] }
