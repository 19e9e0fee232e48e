// Package random provides the single seeded random source shared by all
// augmentation rules.
//
// A run creates one [Source] from an integer seed and hands it to every rule
// in pipeline order. Rules consume values in a fixed order (shape order,
// then sub-decision order), so the same seed and the same input document
// always reproduce the same output.
package random

import "math/rand/v2"

// Source is a deterministic pseudo-random generator. It is not safe for
// concurrent use; each run owns its own Source.
type Source struct {
	rng   *rand.Rand
	seed  uint64
	draws int
}

// New returns a Source seeded with seed.
func New(seed uint64) *Source {
	return &Source{
		rng:  rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
		seed: seed,
	}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() uint64 { return s.seed }

// Draws returns how many values have been consumed so far.
func (s *Source) Draws() int { return s.draws }

// Float returns a uniform value in [0, 1).
func (s *Source) Float() float64 {
	s.draws++
	return s.rng.Float64()
}

// Range returns a uniform value in [lo, hi).
func (s *Source) Range(lo, hi float64) float64 {
	return lo + s.Float()*(hi-lo)
}

// IntN returns floor(Float()*n), a uniform integer in [0, n) for n > 0.
// It returns 0 without drawing when n <= 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Float() * float64(n))
}

// IntRange returns a uniform integer in [lo, hi).
func (s *Source) IntRange(lo, hi int) int {
	return lo + s.IntN(hi-lo)
}

// Pick returns a uniformly chosen element of items. It panics when items is
// empty.
func Pick[T any](s *Source, items []T) T {
	if len(items) == 0 {
		panic("random: Pick from empty slice")
	}
	return items[s.IntN(len(items))]
}
