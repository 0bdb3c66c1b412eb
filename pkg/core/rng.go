package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
// An RNG is not safe for concurrent use; every simulation run owns its own.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// FromSource wraps an existing generator, e.g. one backed by a scripted
// rand.Source in tests.
func FromSource(src rand.Source) *RNG {
	return &RNG{r: rand.New(src)}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// IntN returns a uniform value in [0, n). It returns 0 for n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Int64 returns a non-negative pseudo-random int64, suitable for deriving
// seeds of dependent generators.
func (r *RNG) Int64() int64 {
	return r.r.Int64()
}

// FillUniform fills buf with independent uniform draws in [0, 1), consuming
// the stream in index order.
func (r *RNG) FillUniform(buf []float64) {
	for i := range buf {
		buf[i] = r.r.Float64()
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
