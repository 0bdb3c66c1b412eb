// Package sweep repeats forest fire runs across parameter values and reports
// how much forest survives and how long it takes to burn out.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"wildfire/internal/core"
	"wildfire/internal/sims/forestfire"
)

// Axis selects the parameter a sweep varies.
type Axis int

const (
	TreeGrowth Axis = iota
	Lightning
	// GridSize varies the side of a square grid.
	GridSize
	// Rain varies the rain probability; the cloud threshold is set to
	// 1 minus the value so larger values mean wetter runs.
	Rain
)

var axisNames = []string{"tree_growth", "lightning", "size", "rain"}

func (a Axis) String() string {
	if a < 0 || int(a) >= len(axisNames) {
		return fmt.Sprintf("axis(%d)", int(a))
	}
	return axisNames[a]
}

// ParseAxis accepts the names String produces.
func ParseAxis(v string) (Axis, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, name := range axisNames {
		if v == name {
			return Axis(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sweep axis %q (want one of %s)", v, strings.Join(axisNames, ", "))
}

// Plan describes a one-parameter sweep. Every parameter other than the
// swept one comes from Base.
type Plan struct {
	Base   forestfire.Config
	Axis   Axis      `validate:"gte=0,lte=3"`
	Values []float64 `validate:"min=1"`
	Trials int       `validate:"gte=1"`
	// Workers bounds the number of concurrent runs; zero means one per CPU.
	Workers int `validate:"gte=0"`
}

// Validate reports the first invalid field as a *core.ConfigError.
func (p Plan) Validate() error {
	if err := core.ValidateStruct(p); err != nil {
		return err
	}
	if err := validateFrames(p.Base); err != nil {
		return err
	}
	if p.Axis == Rain && !p.Base.Rain {
		return &core.ConfigError{Field: "Plan.Axis", Message: "the rain axis needs a rain-enabled base config"}
	}
	return nil
}

// Point is the averaged outcome for one swept value.
type Point struct {
	Value float64
	// MeanTrees is the mean proportion of TREE cells in the final frame.
	MeanTrees float64
	// MeanLastFrame is the mean burn-out frame, counting runs that never
	// burnt out at the frame budget.
	MeanLastFrame float64
}

// Result collects a sweep in value order.
type Result struct {
	RunID  string
	Axis   Axis
	Points []Point
}

// Run executes plan.Trials runs per value, in parallel, and averages them.
// Trial seeds derive from plan.Base.Seed so results are reproducible.
func Run(ctx context.Context, plan Plan, logger *slog.Logger) (Result, error) {
	if err := plan.Validate(); err != nil {
		return Result{}, err
	}
	logger = orDefault(logger)
	res := Result{RunID: uuid.NewString(), Axis: plan.Axis}
	logger = logger.With("run_id", res.RunID)

	cfgs := make([]forestfire.Config, len(plan.Values))
	for i, v := range plan.Values {
		cfgs[i] = apply(plan.Base, plan.Axis, v)
	}
	logger.Info("sweep started", "axis", plan.Axis, "values", len(plan.Values), "trials", plan.Trials, "frames", plan.Base.MaxFrames)

	outcomes, err := evaluate(ctx, cfgs, plan.Trials, plan.Workers, logger)
	if err != nil {
		return Result{}, err
	}
	res.Points = make([]Point, len(plan.Values))
	for i, v := range plan.Values {
		res.Points[i] = Point{Value: v, MeanTrees: outcomes[i].trees, MeanLastFrame: outcomes[i].lastFrame}
		logger.Debug("value done", "value", v, "mean_trees", outcomes[i].trees, "mean_last_frame", outcomes[i].lastFrame)
	}
	logger.Info("sweep finished", "points", len(res.Points))
	return res, nil
}

func apply(base forestfire.Config, axis Axis, v float64) forestfire.Config {
	cfg := base
	switch axis {
	case TreeGrowth:
		cfg.TreeGrowth = v
	case Lightning:
		cfg.Lightning = v
	case GridSize:
		side := int(math.Round(v))
		cfg.Width, cfg.Height = side, side
	case Rain:
		cfg.CloudThreshold = 1 - v
	}
	return cfg
}

func validateFrames(cfg forestfire.Config) error {
	if cfg.MaxFrames < 1 {
		return &core.ConfigError{Field: "Plan.Base.MaxFrames", Message: "must be at least 1"}
	}
	return nil
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

type outcome struct {
	trees     float64
	lastFrame float64
}

// evaluate runs trials independent simulations of every config and returns
// the per-config means. Trial t of config i is seeded with Seed+i*trials+t.
func evaluate(ctx context.Context, cfgs []forestfire.Config, trials, workers int, logger *slog.Logger) ([]outcome, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	trees := make([][]float64, len(cfgs))
	last := make([][]float64, len(cfgs))
	for i := range cfgs {
		trees[i] = make([]float64, trials)
		last[i] = make([]float64, trials)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cfg := range cfgs {
		for t := 0; t < trials; t++ {
			trial := cfg
			trial.Seed = cfg.Seed + int64(i*trials+t)
			g.Go(func() error {
				remaining, lastFrame, err := runTrial(gCtx, trial)
				if err != nil {
					return fmt.Errorf("config %d trial %d: %w", i, t, err)
				}
				trees[i][t] = remaining
				last[i][t] = float64(lastFrame)
				logger.Debug("trial finished", "config", i, "trial", t, "seed", trial.Seed, "trees", remaining, "last_frame", lastFrame)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]outcome, len(cfgs))
	for i := range cfgs {
		out[i] = outcome{trees: stat.Mean(trees[i], nil), lastFrame: stat.Mean(last[i], nil)}
	}
	return out, nil
}

// runTrial steps one simulation through its frame budget and reports the
// final tree proportion and the recorded last frame.
func runTrial(ctx context.Context, cfg forestfire.Config) (float64, int, error) {
	sim, err := forestfire.New(cfg, nil)
	if err != nil {
		return 0, 0, err
	}
	var stats forestfire.Stats
	for frame := 0; frame < cfg.MaxFrames; frame++ {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}
		f, err := sim.StepFrame(frame)
		if err != nil {
			return 0, 0, err
		}
		stats = f.Stats
	}
	return stats.Trees, sim.LastFrame(), nil
}
