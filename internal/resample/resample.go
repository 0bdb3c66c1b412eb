// Package resample converts integer-coded rasters between the logical grid
// resolution and the magnified rendering resolution.
//
// Both directions use area semantics with an integer block size: Enlarge
// replicates every cell into a block×block tile and Shrink averages each tile
// back into one cell. On block-uniform input the two are exact inverses, so no
// intermediate state codes are ever invented.
package resample

import (
	"image"

	"golang.org/x/image/draw"

	"wildfire/internal/core"
)

// Enlarge magnifies g by block in both axes. A block of 1 or less returns a copy.
func Enlarge(g *core.ByteGrid, block int) *core.ByteGrid {
	if block <= 1 {
		return g.Clone()
	}
	src := grayView(g)
	dst := image.NewGray(image.Rect(0, 0, g.W*block, g.H*block))
	// For integer factors nearest-neighbour sampling covers each destination
	// pixel with exactly one source cell, which is what area upsampling yields.
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := core.NewByteGrid(dst.Rect.Dx(), dst.Rect.Dy())
	copy(out.Cells(), dst.Pix)
	return out
}

// Shrink reduces buf by block in both axes, averaging every block×block tile
// and rounding half up. Trailing partial tiles are averaged over the pixels
// they contain.
func Shrink(buf *core.ByteGrid, block int) *core.ByteGrid {
	if block <= 1 {
		return buf.Clone()
	}
	w := (buf.W + block - 1) / block
	h := (buf.H + block - 1) / block
	out := core.NewByteGrid(w, h)
	cells := buf.Cells()
	dst := out.Cells()
	for y := 0; y < h; y++ {
		y0, y1 := y*block, min((y+1)*block, buf.H)
		for x := 0; x < w; x++ {
			x0, x1 := x*block, min((x+1)*block, buf.W)
			sum, n := 0, 0
			for py := y0; py < y1; py++ {
				row := cells[py*buf.W : (py+1)*buf.W]
				for px := x0; px < x1; px++ {
					sum += int(row[px])
					n++
				}
			}
			dst[y*w+x] = uint8((sum + n/2) / n)
		}
	}
	return out
}

// EnlargeIntensity magnifies a row-major field of non-negative intensities.
// Values are scaled by scale and truncated to 8 bits before resampling so that
// fractional intensities survive the integer raster, then scaled back down.
// The result therefore carries a resolution of 1/scale.
func EnlargeIntensity(values []float64, w, h, block int, scale float64) []float64 {
	if scale <= 0 {
		scale = 1
	}
	q := core.NewByteGrid(w, h)
	cells := q.Cells()
	for i, v := range values[:len(cells)] {
		s := v * scale
		switch {
		case s <= 0:
			cells[i] = 0
		case s >= 255:
			cells[i] = 255
		default:
			cells[i] = uint8(s)
		}
	}
	big := Enlarge(q, block).Cells()
	out := make([]float64, len(big))
	for i, c := range big {
		out[i] = float64(c) / scale
	}
	return out
}

func grayView(g *core.ByteGrid) *image.Gray {
	return &image.Gray{Pix: g.Cells(), Stride: g.W, Rect: image.Rect(0, 0, g.W, g.H)}
}
