package forestfire

import "wildfire/internal/core"

// SpreadFire returns the grid after one round of fire spread. Every FIRE cell
// becomes BURNT and ignites the TREE cells of its Moore neighbourhood; cells
// outside the grid are ignored rather than wrapped. Only src is read, so fire
// advances exactly one ring per call no matter the visiting order.
func SpreadFire(src *core.ByteGrid) *core.ByteGrid {
	out := core.NewByteGrid(src.W, src.H)
	for y := 0; y < src.H; y++ {
		spreadRow(src, out, y)
	}
	return out
}

// spreadRow fills row y of dst from src. Rows are independent of each other.
func spreadRow(src, dst *core.ByteGrid, y int) {
	cells := src.Cells()
	next := dst.Cells()
	for x := 0; x < src.W; x++ {
		idx := y*src.W + x
		switch State(cells[idx]) {
		case Fire:
			next[idx] = uint8(Burnt)
		case Tree:
			if burningNeighbor(src, x, y) {
				next[idx] = uint8(Fire)
			} else {
				next[idx] = uint8(Tree)
			}
		default:
			next[idx] = cells[idx]
		}
	}
}

func burningNeighbor(g *core.ByteGrid, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= g.H {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if nx < 0 || nx >= g.W {
				continue
			}
			if dx == 0 && dy == 0 {
				continue
			}
			if State(g.At(nx, ny)) == Fire {
				return true
			}
		}
	}
	return false
}
