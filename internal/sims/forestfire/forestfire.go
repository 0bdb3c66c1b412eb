// Package forestfire implements the forest fire cellular automaton: fire
// spreads to the Moore neighbourhood, lightning ignites trees and burnt cells
// regrow, optionally under a drifting rain field that damps lightning and
// boosts regrowth.
package forestfire

import (
	"fmt"

	"wildfire/internal/core"
	"wildfire/internal/resample"
	"wildfire/internal/weather"
	rng "wildfire/pkg/core"
)

// Stats holds the proportions recorded for one frame.
type Stats struct {
	Frame int
	Trees float64
	Fire  float64
	// Rain is the share of render pixels carrying the rain marker. It stays
	// zero when the rain field is disabled.
	Rain float64
}

// Empty is the share of cells that are neither TREE nor FIRE.
func (s Stats) Empty() float64 { return 1 - s.Trees - s.Fire }

// Frame is the outcome of one step.
type Frame struct {
	// Grid is the logical state after the step. Callers must not modify it.
	Grid *core.ByteGrid
	// Render is the magnified, rain-composited buffer; nil without rain.
	Render *core.ByteGrid
	Stats  Stats
}

// Sim is one independent simulation run. It owns its grid, random stream and
// weather field, so separate Sims may be stepped from separate goroutines.
type Sim struct {
	cfg Config
	rng *rng.RNG

	grid *core.ByteGrid
	// canvas is the magnified, rain-free state in rain mode. The logical
	// grid is recovered from it with resample.Shrink at every step.
	canvas  *core.ByteGrid
	render  *core.ByteGrid
	weather *weather.Field

	history   []Stats
	frame     int
	lastFrame int
	burntOut  bool
}

// New validates cfg and prepares the initial grid. When r is nil a generator
// seeded with cfg.Seed is used.
func New(cfg Config, r *rng.RNG) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = rng.NewRNG(cfg.Seed)
	}
	s := &Sim{cfg: cfg, rng: r}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sim) init() error {
	s.grid = core.NewByteGrid(s.cfg.Width, s.cfg.Height)
	s.grid.Fill(uint8(s.cfg.InitialState))
	if s.cfg.InitialState == Burnt {
		// A fully burnt forest would terminate immediately.
		s.grid.Set(s.rng.IntN(s.cfg.Width), s.rng.IntN(s.cfg.Height), uint8(Tree))
	}

	s.canvas, s.render, s.weather = nil, nil, nil
	if s.cfg.Rain {
		field, err := weather.New(s.cfg.weatherConfig(), s.rng)
		if err != nil {
			return fmt.Errorf("weather: %w", err)
		}
		s.weather = field
		s.canvas = resample.Enlarge(s.grid, s.cfg.Block)
		s.render = s.canvas.Clone()
	}

	s.history = s.history[:0]
	s.frame = 0
	s.lastFrame = s.cfg.MaxFrames
	s.burntOut = false
	return nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string {
	if s.cfg.Rain {
		return "forestfire-rain"
	}
	return "forestfire"
}

// Config returns the configuration the run was built with.
func (s *Sim) Config() Config { return s.cfg }

// Size reports the dimensions of Cells: the logical grid, or the magnified
// render buffer when rain is enabled.
func (s *Sim) Size() core.Size { return s.Display().Size() }

// Cells exposes the display buffer.
func (s *Sim) Cells() []uint8 { return s.Display().Cells() }

// Display returns the most recent render buffer in rain mode and the logical
// grid otherwise.
func (s *Sim) Display() *core.ByteGrid {
	if s.render != nil {
		return s.render
	}
	return s.grid
}

// Grid exposes the current logical grid. Callers must not modify it.
func (s *Sim) Grid() *core.ByteGrid { return s.grid }

// Canvas returns the last rain-composited render buffer, or nil when rain is
// disabled.
func (s *Sim) Canvas() *core.ByteGrid { return s.render }

// Weather exposes the rain field, or nil when rain is disabled.
func (s *Sim) Weather() *weather.Field { return s.weather }

// Frame reports the frame number the next Step will use.
func (s *Sim) Frame() int { return s.frame }

// LastFrame reports the first frame at which the forest burnt out, or the
// frame budget when that has not happened.
func (s *Sim) LastFrame() int { return s.lastFrame }

// BurntOut reports whether a burn-out has been recorded.
func (s *Sim) BurntOut() bool { return s.burntOut }

// History returns a copy of the per-frame statistics in frame order.
func (s *Sim) History() []Stats {
	return append([]Stats(nil), s.history...)
}

// Reset rebuilds the initial state with a fresh random stream. A zero seed
// falls back to the configured one.
func (s *Sim) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.rng = rng.NewRNG(seed)
	// The config was validated in New, so rebuilding cannot fail.
	if err := s.init(); err != nil {
		panic(err)
	}
}

// Step advances the simulation by one frame using the internal counter.
func (s *Sim) Step() error {
	_, err := s.StepFrame(s.frame)
	return err
}

// StepFrame advances the simulation by one frame labelled frame. In rain mode
// frame selects the rain window and must not exceed MaxFrames.
func (s *Sim) StepFrame(frame int) (Frame, error) {
	snapshot := s.grid
	lightning := Constant(s.cfg.Lightning)
	growth := Constant(s.cfg.TreeGrowth)

	var window []float64
	if s.weather != nil {
		var err error
		window, err = s.weather.RainWindow(frame)
		if err != nil {
			return Frame{}, err
		}
		snapshot = resample.Shrink(s.canvas, s.cfg.Block)
		lightning = RainDampened(s.cfg.Lightning, window)
		growth = RainBoosted(s.cfg.TreeGrowth, window)
	}

	next := SpreadFire(snapshot)
	Transition(next, lightning, growth, s.rng)

	trees, fire := next.Count(uint8(Tree)), next.Count(uint8(Fire))
	size := float64(len(next.Cells()))
	stats := Stats{
		Frame: frame,
		Trees: float64(trees) / size,
		Fire:  float64(fire) / size,
	}

	if trees == 0 && fire == 0 && !s.burntOut {
		s.lastFrame = frame
		s.burntOut = true
	}

	out := Frame{Grid: next}
	if s.weather != nil {
		canvas := resample.Enlarge(next, s.cfg.Block)
		render, err := s.weather.CompositeRain(canvas, window)
		if err != nil {
			return Frame{}, err
		}
		s.canvas = canvas
		s.render = render
		stats.Rain = float64(render.Count(uint8(Rain))) / float64(len(render.Cells()))
		out.Render = render
	}

	s.grid = next
	s.history = append(s.history, stats)
	s.frame = frame + 1
	out.Stats = stats
	return out, nil
}

func init() {
	core.Register("forestfire", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return New(c, nil)
	})
	core.Register("forestfire-rain", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		c.Rain = true
		return New(c, nil)
	})
}
