package forestfire

import "wildfire/internal/render"

var forestPalette = render.Palette{
	Tree:  {Glyph: '♣', Color: render.HSV(120, 0.72, 0.63)},
	Fire:  {Glyph: '▲', Color: render.HSV(0, 0.82, 0.84)},
	Burnt: {Glyph: '·', Color: render.HSV(0, 0, 0.5)},
	Rain:  {Glyph: '░', Color: render.HSV(240, 1, 0.55)},
}

// Palette exposes the swatches used to draw tree, fire, burnt and rain cells.
func (s *Sim) Palette() render.Palette {
	return forestPalette
}
