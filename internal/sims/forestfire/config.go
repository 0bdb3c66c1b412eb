package forestfire

import (
	"fmt"
	"strconv"

	"wildfire/internal/core"
	"wildfire/internal/weather"
)

// Config controls the forest fire simulation.
type Config struct {
	Width  int `validate:"gt=0"`
	Height int `validate:"gt=0"`

	Seed int64

	// TreeGrowth is the chance a BURNT cell regrows per frame.
	TreeGrowth float64 `validate:"gte=0,lte=1"`
	// Lightning is the chance a TREE cell is struck per frame.
	Lightning float64 `validate:"gte=0,lte=1"`

	InitialState State `validate:"oneof=0 1 2"`

	// MaxFrames is the frame budget of a run. LastFrame reports it until
	// the forest burns out, and the rain field is sized to cover it.
	MaxFrames int `validate:"gte=0"`

	Rain           bool
	CloudThreshold float64 `validate:"gte=0,lte=1"`
	// Block is the number of render pixels per cell along each axis.
	Block int                 `validate:"gt=0"`
	Noise weather.NoiseParams `validate:"required"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:          10,
		Height:         10,
		Seed:           1337,
		TreeGrowth:     0.03,
		Lightning:      0.03,
		InitialState:   Tree,
		MaxFrames:      100,
		CloudThreshold: 0.6,
		Block:          5,
		Noise:          weather.DefaultNoiseParams(),
	}
}

// Validate reports the first out-of-range field as a *core.ConfigError.
func (c Config) Validate() error {
	return core.ValidateStruct(c)
}

func (c Config) weatherConfig() weather.Config {
	return weather.Config{
		Width:          c.Width,
		Height:         c.Height,
		MaxFrames:      c.MaxFrames,
		CloudThreshold: c.CloudThreshold,
		Block:          c.Block,
		Noise:          c.Noise,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys are ignored; values that do not parse are reported. Range
// checks are left to Validate.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	var err error
	setInt := func(key string, dst *int) {
		if v, ok := cfg[key]; ok && err == nil {
			parsed, perr := strconv.Atoi(v)
			if perr != nil {
				err = parseError(key, v, perr)
				return
			}
			*dst = parsed
		}
	}
	setFloat := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok && err == nil {
			parsed, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				err = parseError(key, v, perr)
				return
			}
			*dst = parsed
		}
	}

	setInt("w", &c.Width)
	setInt("h", &c.Height)
	if _, ok := cfg["size"]; ok {
		setInt("size", &c.Width)
		c.Height = c.Width
	}
	if v, ok := cfg["seed"]; ok && err == nil {
		parsed, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			err = parseError("seed", v, perr)
		} else {
			c.Seed = parsed
		}
	}
	setFloat("tree_growth", &c.TreeGrowth)
	setFloat("lightning", &c.Lightning)
	if v, ok := cfg["initial_state"]; ok && err == nil {
		s, perr := ParseState(v)
		if perr != nil {
			err = parseError("initial_state", v, perr)
		} else {
			c.InitialState = s
		}
	}
	setInt("frames", &c.MaxFrames)
	if v, ok := cfg["rain"]; ok && err == nil {
		parsed, perr := strconv.ParseBool(v)
		if perr != nil {
			err = parseError("rain", v, perr)
		} else {
			c.Rain = parsed
		}
	}
	setFloat("cloud_th", &c.CloudThreshold)
	setInt("block", &c.Block)
	if v, ok := cfg["noise_octaves"]; ok && err == nil {
		parsed, perr := strconv.ParseInt(v, 10, 32)
		if perr != nil {
			err = parseError("noise_octaves", v, perr)
		} else {
			c.Noise.Octaves = int32(parsed)
		}
	}
	setFloat("noise_frequency", &c.Noise.Frequency)
	return c, err
}

func parseError(key, value string, err error) error {
	return &core.ConfigError{
		Field:   key,
		Message: fmt.Sprintf("cannot parse %q", value),
		Err:     err,
	}
}
