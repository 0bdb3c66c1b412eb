package forestfire

import (
	"wildfire/internal/core"
	rng "wildfire/pkg/core"
)

// Chance yields the probability that applies to cell i.
type Chance func(i int) float64

// Constant applies p to every cell.
func Constant(p float64) Chance {
	return func(int) float64 { return p }
}

// RainDampened lowers p in proportion to the local rain intensity:
// p·(1 − rain[i]). Used for lightning.
func RainDampened(p float64, rain []float64) Chance {
	return func(i int) float64 { return p * (1 - rain[i]) }
}

// RainBoosted raises p in proportion to the local rain intensity:
// p·(1 + rain[i]). Used for regrowth; the result may exceed 1.
func RainBoosted(p float64, rain []float64) Chance {
	return func(i int) float64 { return p * (1 + rain[i]) }
}

// Transition applies lightning and regrowth to g in place. The first pass
// draws one uniform per cell in row-major order and turns TREE into FIRE when
// the draw exceeds 1 − lightning. The second pass draws a fresh uniform per
// cell and turns BURNT into TREE when it exceeds 1 − growth. Probabilities of
// 1 or more always succeed.
func Transition(g *core.ByteGrid, lightning, growth Chance, r *rng.RNG) {
	cells := g.Cells()
	for i := range cells {
		u := r.Float64()
		if State(cells[i]) == Tree && succeeds(u, lightning(i)) {
			cells[i] = uint8(Fire)
		}
	}
	for i := range cells {
		u := r.Float64()
		if State(cells[i]) == Burnt && succeeds(u, growth(i)) {
			cells[i] = uint8(Tree)
		}
	}
}

func succeeds(u, p float64) bool {
	return p >= 1 || u > 1-p
}
