package augment

import "testing"

func TestIntRangeOddStaysOddAndInRange(t *testing.T) {
	tests := []struct {
		name   string
		r      IntRange
		lo, hi int
	}{
		{name: "odd bounds", r: IntRange{3, 9}, lo: 3, hi: 9},
		{name: "even bounds move inward", r: IntRange{2, 10}, lo: 3, hi: 9},
		{name: "single value", r: IntRange{5, 5}, lo: 5, hi: 5},
		{name: "one", r: IntRange{1, 1}, lo: 1, hi: 1},
	}
	rng := newRand()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := map[int]bool{}
			for i := 0; i < 500; i++ {
				k := tt.r.Odd(rng)
				if k%2 == 0 {
					t.Fatalf("Odd returned even kernel %d", k)
				}
				if k < tt.lo || k > tt.hi {
					t.Fatalf("Odd returned %d outside [%d,%d]", k, tt.lo, tt.hi)
				}
				seen[k] = true
			}
			if want := (tt.hi-tt.lo)/2 + 1; len(seen) != want {
				t.Fatalf("saw %d distinct values, want %d", len(seen), want)
			}
		})
	}
}

func TestIntRangeIntIsInclusive(t *testing.T) {
	rng := newRand()
	r := IntRange{2, 4}
	seen := map[int]bool{}
	for i := 0; i < 300; i++ {
		v := r.Int(rng)
		if v < 2 || v > 4 {
			t.Fatalf("Int returned %d outside [2,4]", v)
		}
		seen[v] = true
	}
	if !seen[2] || !seen[4] {
		t.Fatalf("bounds not reached: %v", seen)
	}
	if got := (IntRange{7, 7}).Int(rng); got != 7 {
		t.Fatalf("degenerate range returned %d", got)
	}
}

func TestRangeUniform(t *testing.T) {
	rng := newRand()
	r := Range{-0.5, 1.5}
	for i := 0; i < 300; i++ {
		if v := r.Uniform(rng); v < -0.5 || v > 1.5 {
			t.Fatalf("Uniform returned %v outside %v", v, r)
		}
	}
	if got := (Range{0.25, 0.25}).Uniform(rng); got != 0.25 {
		t.Fatalf("degenerate range returned %v", got)
	}
}
