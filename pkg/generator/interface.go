package generator

import "math/rand/v2"

// SampleSource is what the dataset runner and preview server need from a
// generator.
type SampleSource interface {
	Generate(rng *rand.Rand, index int) (*Sample, error)
}

var _ SampleSource = (*Generator)(nil)
