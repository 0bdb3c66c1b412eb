package weather

import (
	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/floats"
)

// NoiseParams controls the fractal Perlin noise used as cloud material.
type NoiseParams struct {
	// Octaves is the number of summed noise layers.
	Octaves int32 `validate:"gt=0"`
	// Frequency scales the normalised sample coordinates; higher values give
	// smaller clouds.
	Frequency float64 `validate:"gt=0"`
	// Alpha is the amplitude divisor between octaves.
	Alpha float64 `validate:"gt=0"`
	// Beta is the frequency multiplier between octaves.
	Beta float64 `validate:"gt=0"`
}

// DefaultNoiseParams returns the noise settings used by default.
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{Octaves: 5, Frequency: 5, Alpha: 2, Beta: 2}
}

// sampleNoise evaluates seeded 2D Perlin noise over a w×h lattice at
// coordinates normalised to [0, Frequency) and rescales the samples so the
// observed minimum maps to 0 and the maximum to 1. A flat field maps to 0.
func sampleNoise(w, h int, p NoiseParams, seed int64) []float64 {
	gen := perlin.NewPerlin(p.Alpha, p.Beta, p.Octaves, seed)
	vals := make([]float64, w*h)
	for y := 0; y < h; y++ {
		ny := float64(y) / float64(h) * p.Frequency
		for x := 0; x < w; x++ {
			nx := float64(x) / float64(w) * p.Frequency
			vals[y*w+x] = gen.Noise2D(nx, ny)
		}
	}

	lo, hi := floats.Min(vals), floats.Max(vals)
	span := hi - lo
	if span == 0 {
		floats.Scale(0, vals)
		return vals
	}
	floats.AddConst(-lo, vals)
	floats.Scale(1/span, vals)
	return vals
}

// threshold zeroes every value strictly below th. A threshold of 1 or more
// leaves no cloud at all.
func threshold(vals []float64, th float64) {
	for i, v := range vals {
		if th >= 1 || v < th {
			vals[i] = 0
		}
	}
}
