// Package app holds the command-line configuration shared by the binaries.
//
// Values are layered: built-in defaults, then an optional .env file, then
// WILDFIRE_* environment variables, then command-line flags.
package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"wildfire/internal/core"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "WILDFIRE"

// Config contains runtime options for the binaries.
type Config struct {
	Sim  string `envconfig:"SIM" validate:"required"`
	Seed int64  `envconfig:"SEED"`
	// Frames caps the number of steps; zero runs the sim's own frame budget.
	Frames int `envconfig:"FRAMES" validate:"gte=0"`
	TPS    int `envconfig:"TPS" validate:"gt=0"`

	Watch bool `envconfig:"WATCH"`
	Color bool `envconfig:"COLOR"`

	LogLevel string `envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	// Overrides are sim parameters in key=value form, passed to the sim
	// factory.
	Overrides Overrides `envconfig:"SET"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{Sim: "forestfire", Seed: 1337, TPS: 10, LogLevel: "info", Color: true}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random stream (0 keeps the sim default)")
	fs.IntVar(&c.Frames, "frames", c.Frames, "number of frames to run (0 uses the sim frame budget)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second in watch mode")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "draw every frame to the terminal")
	fs.BoolVar(&c.Color, "color", c.Color, "use ANSI colours in watch mode")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.Var(&c.Overrides, "set", "sim parameter override in key=value form (repeatable)")
}

// Validate reports the first invalid field as a *core.ConfigError.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	return core.ValidateStruct(c)
}

// Load layers defaults, the environment and args into a validated Config.
// A missing .env file is not an error.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := NewConfig()
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, &core.ConfigError{Field: "env", Message: "cannot read " + EnvPrefix + "_* variables", Err: err}
	}
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Logger builds a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Overrides collects repeatable key=value pairs. It implements flag.Value
// and envconfig.Decoder.
type Overrides []string

func (o *Overrides) String() string {
	if o == nil {
		return ""
	}
	return strings.Join(*o, ",")
}

// Set appends one key=value pair.
func (o *Overrides) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q is not in key=value form", value)
	}
	*o = append(*o, value)
	return nil
}

// Decode accepts a comma-separated list of key=value pairs.
func (o *Overrides) Decode(value string) error {
	for _, kv := range strings.Split(value, ",") {
		if kv = strings.TrimSpace(kv); kv == "" {
			continue
		}
		if err := o.Set(kv); err != nil {
			return err
		}
	}
	return nil
}

// Map returns the overrides keyed by name. Later pairs win.
func (o Overrides) Map() map[string]string {
	m := make(map[string]string, len(o))
	for _, kv := range o {
		k, v, _ := strings.Cut(kv, "=")
		m[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return m
}
