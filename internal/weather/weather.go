// Package weather generates a drifting rain-intensity field from thresholded
// Perlin noise and composites rain speckle onto magnified render buffers.
package weather

import (
	"fmt"

	"wildfire/internal/core"
	"wildfire/internal/resample"
	rng "wildfire/pkg/core"
)

// RainMarker is the render-only cell code written into rain pixels.
const RainMarker uint8 = 3

const (
	// intensityScale lifts intensities into the 8-bit raster before
	// resampling so they are not rounded away.
	intensityScale = 100
	// rainDensity dilutes cloud intensity so clouds render as speckle.
	rainDensity = 0.5
)

// Wind is a fixed per-run offset applied to the rain window every frame.
type Wind struct {
	DX, DY int
}

// Winds lists the eight possible wind directions.
var Winds = [8]Wind{
	{DX: 0, DY: 1},
	{DX: 0, DY: -1},
	{DX: 1, DY: 0},
	{DX: -1, DY: 0},
	{DX: -1, DY: -1},
	{DX: 1, DY: -1},
	{DX: 1, DY: 1},
	{DX: -1, DY: 1},
}

// Config describes the simulation grid the field is laid over.
type Config struct {
	Width          int         `validate:"gt=0"`
	Height         int         `validate:"gt=0"`
	MaxFrames      int         `validate:"gte=0"`
	CloudThreshold float64     `validate:"gte=0,lte=1"`
	Block          int         `validate:"gt=0"`
	Noise          NoiseParams `validate:"required"`
}

// Field owns the cloud noise, the wind and the random stream used for rain
// speckle. The noise is generated once and never modified.
type Field struct {
	cfg    Config
	margin int
	fw, fh int
	noise  []float64
	wind   Wind
	rng    *rng.RNG
}

// New builds a weather field. The noise seed and wind direction are drawn from
// r, which the field keeps for CompositeRain.
func New(cfg Config, r *rng.RNG) (*Field, error) {
	if err := core.ValidateStruct(cfg); err != nil {
		return nil, err
	}
	margin := cfg.MaxFrames
	f := &Field{
		cfg:    cfg,
		margin: margin,
		fw:     cfg.Width + 2*margin,
		fh:     cfg.Height + 2*margin,
		rng:    r,
	}
	f.noise = sampleNoise(f.fw, f.fh, cfg.Noise, r.Int64())
	threshold(f.noise, cfg.CloudThreshold)
	f.wind = Winds[r.IntN(len(Winds))]
	return f, nil
}

// Wind reports the direction chosen at construction.
func (f *Field) Wind() Wind { return f.wind }

// Size reports the dimensions of a rain window.
func (f *Field) Size() core.Size { return core.Size{W: f.cfg.Width, H: f.cfg.Height} }

// MaxFrames reports the last frame a window can be requested for.
func (f *Field) MaxFrames() int { return f.cfg.MaxFrames }

// RainWindow returns the row-major Height×Width intensity window for frame,
// translated by frame×wind from the centre of the noise field.
//
// frame must lie in [0, MaxFrames]; anything else returns ErrFrameOutOfRange.
func (f *Field) RainWindow(frame int) ([]float64, error) {
	if frame < 0 || frame > f.cfg.MaxFrames {
		return nil, fmt.Errorf("rain window for frame %d (max %d): %w", frame, f.cfg.MaxFrames, core.ErrFrameOutOfRange)
	}
	x0 := f.margin + frame*f.wind.DX
	y0 := f.margin + frame*f.wind.DY
	w, h := f.cfg.Width, f.cfg.Height
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		src := f.noise[(y0+y)*f.fw+x0:]
		copy(out[y*w:(y+1)*w], src[:w])
	}
	return out, nil
}

// CompositeRain magnifies window to the canvas resolution and returns a copy
// of canvas with RainMarker written wherever a fresh uniform draw falls below
// half the local intensity. canvas is never modified.
func (f *Field) CompositeRain(canvas *core.ByteGrid, window []float64) (*core.ByteGrid, error) {
	w, h, b := f.cfg.Width, f.cfg.Height, f.cfg.Block
	if canvas.W != w*b || canvas.H != h*b {
		return nil, fmt.Errorf("canvas is %dx%d, expected %dx%d", canvas.W, canvas.H, w*b, h*b)
	}
	if len(window) != w*h {
		return nil, fmt.Errorf("rain window has %d cells, expected %d", len(window), w*h)
	}

	big := resample.EnlargeIntensity(window, w, h, b, intensityScale)
	out := canvas.Clone()
	cells := out.Cells()
	for i, intensity := range big {
		if f.rng.Float64() < intensity*rainDensity {
			cells[i] = RainMarker
		}
	}
	return out, nil
}
