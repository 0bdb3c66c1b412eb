// Package render draws cell buffers as terminal text.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/crazy3lf/colorconv"
)

// Swatch is how a single cell code is drawn.
type Swatch struct {
	Glyph rune
	Color color.RGBA
}

// HSV converts hue (degrees), saturation and value into an opaque colour.
// Out-of-range input yields black.
func HSV(h, s, v float64) color.RGBA {
	r, g, b, err := colorconv.HSVToRGB(h, s, v)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Palette maps cell codes to swatches. Codes past the end use the last entry.
type Palette []Swatch

func (p Palette) lookup(c uint8) Swatch {
	if len(p) == 0 {
		return Swatch{Glyph: '?'}
	}
	idx := int(c)
	if idx >= len(p) {
		idx = len(p) - 1
	}
	return p[idx]
}

// Text renders cells (row-major, w per row) as plain glyph lines.
func Text(cells []uint8, w int, p Palette) string {
	if w <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(cells) + len(cells)/w)
	for i, c := range cells {
		b.WriteRune(p.lookup(c).Glyph)
		if (i+1)%w == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ANSI renders cells with 24-bit background colours, two columns per cell so
// the output keeps roughly square proportions.
func ANSI(cells []uint8, w int, p Palette) string {
	if w <= 0 {
		return ""
	}
	var b strings.Builder
	var last color.RGBA
	open := false
	for i, c := range cells {
		col := p.lookup(c).Color
		if !open || col != last {
			fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm", col.R, col.G, col.B)
			last, open = col, true
		}
		b.WriteString("  ")
		if (i+1)%w == 0 {
			b.WriteString("\x1b[0m\n")
			open = false
		}
	}
	return b.String()
}

// ClearScreen moves the cursor home and clears the terminal.
const ClearScreen = "\x1b[H\x1b[2J"
