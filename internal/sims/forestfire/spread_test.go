package forestfire

import (
	"math/rand/v2"
	"testing"

	"wildfire/internal/core"
)

func TestSpreadFireScenarios(t *testing.T) {
	cases := []struct {
		name string
		in   [][]uint8
		want [][]uint8
	}{
		{
			name: "no fire",
			in:   [][]uint8{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
			want: [][]uint8{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		},
		{
			name: "corner",
			in:   [][]uint8{{1, 0, 0}, {0, 0, 0}, {0, 0, 0}},
			want: [][]uint8{{2, 1, 0}, {1, 1, 0}, {0, 0, 0}},
		},
		{
			name: "centre",
			in:   [][]uint8{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}},
			want: [][]uint8{{1, 1, 1}, {1, 2, 1}, {1, 1, 1}},
		},
		{
			name: "interior of larger grid",
			in:   [][]uint8{{0, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
			want: [][]uint8{{1, 1, 1, 0}, {1, 2, 1, 0}, {1, 1, 1, 0}, {0, 0, 0, 0}},
		},
		{
			name: "burnt cells block nothing and stay burnt",
			in:   [][]uint8{{1, 2, 0}, {2, 2, 0}, {0, 0, 0}},
			want: [][]uint8{{2, 2, 0}, {2, 2, 0}, {0, 0, 0}},
		},
		{
			name: "adjacent fires burn out without cascading",
			in:   [][]uint8{{1, 1, 0, 0, 0}},
			want: [][]uint8{{2, 2, 1, 0, 0}},
		},
	}
	for _, tc := range cases {
		got := SpreadFire(core.ByteGridFrom(tc.in))
		if !got.Equal(core.ByteGridFrom(tc.want)) {
			t.Fatalf("%s: got %v, expected %v", tc.name, got.Rows(), tc.want)
		}
	}
}

func TestSpreadFireDoesNotModifyInput(t *testing.T) {
	in := core.ByteGridFrom([][]uint8{{1, 0}, {0, 0}})
	before := in.Clone()
	SpreadFire(in)
	if !in.Equal(before) {
		t.Fatal("SpreadFire must read from a frozen snapshot")
	}
}

// pushSpread is the reference formulation: visit FIRE cells in the given
// order and push fire onto TREE neighbours, reading only src.
func pushSpread(src *core.ByteGrid, order []int) *core.ByteGrid {
	out := src.Clone()
	for _, idx := range order {
		x, y := idx%src.W, idx/src.W
		if State(src.At(x, y)) != Fire {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if (dx == 0 && dy == 0) || !src.InBounds(nx, ny) {
					continue
				}
				if State(src.At(nx, ny)) == Tree {
					out.Set(nx, ny, uint8(Fire))
				}
			}
		}
		out.Set(x, y, uint8(Burnt))
	}
	return out
}

func randomGrid(r *rand.Rand, w, h int) *core.ByteGrid {
	g := core.NewByteGrid(w, h)
	for i := range g.Cells() {
		g.Cells()[i] = uint8(r.IntN(3))
	}
	return g
}

func TestSpreadFireIsOrderIndependent(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 0))
	for trial := 0; trial < 50; trial++ {
		g := randomGrid(r, 1+r.IntN(12), 1+r.IntN(12))
		want := SpreadFire(g)

		order := make([]int, len(g.Cells()))
		for i := range order {
			order[i] = i
		}
		for perm := 0; perm < 5; perm++ {
			r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
			if got := pushSpread(g, order); !got.Equal(want) {
				t.Fatalf("trial %d: order %v gave %v, expected %v", trial, order, got.Rows(), want.Rows())
			}
		}
	}
}

func TestSpreadFireProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	for trial := 0; trial < 50; trial++ {
		g := randomGrid(r, 1+r.IntN(10), 1+r.IntN(10))
		out := SpreadFire(g)
		for i, c := range g.Cells() {
			switch State(c) {
			case Fire:
				if State(out.Cells()[i]) != Burnt {
					t.Fatalf("trial %d: fire cell %d did not burn out", trial, i)
				}
			case Burnt:
				if State(out.Cells()[i]) != Burnt {
					t.Fatalf("trial %d: burnt cell %d changed", trial, i)
				}
			}
		}

		noFire := g.Clone()
		for i, c := range noFire.Cells() {
			if State(c) == Fire {
				noFire.Cells()[i] = uint8(Tree)
			}
		}
		if !SpreadFire(noFire).Equal(noFire) {
			t.Fatalf("trial %d: spread without fire must be the identity", trial)
		}
	}
}
