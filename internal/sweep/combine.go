package sweep

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"wildfire/internal/core"
	"wildfire/internal/sims/forestfire"
)

// CombinePlan crosses every lightning chance with every tree growth chance.
type CombinePlan struct {
	Base       forestfire.Config
	Lightning  []float64 `validate:"min=1"`
	TreeGrowth []float64 `validate:"min=1"`
	Trials     int       `validate:"gte=1"`
	Workers    int       `validate:"gte=0"`
}

// Validate reports the first invalid field as a *core.ConfigError.
func (p CombinePlan) Validate() error {
	if err := core.ValidateStruct(p); err != nil {
		return err
	}
	return validateFrames(p.Base)
}

// Condition is one (lightning, tree growth) pair.
type Condition struct {
	Lightning  float64
	TreeGrowth float64
}

// PairPoint is the averaged outcome for one condition.
type PairPoint struct {
	Condition
	MeanTrees     float64
	MeanLastFrame float64
}

// CombineResult lists the conditions with lightning as the outer loop.
type CombineResult struct {
	RunID  string
	Points []PairPoint
}

// Conditions returns the tested pairs in result order.
func (r CombineResult) Conditions() []Condition {
	out := make([]Condition, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Condition
	}
	return out
}

// Combine runs plan.Trials simulations for every lightning and tree growth
// pair and averages them.
func Combine(ctx context.Context, plan CombinePlan, logger *slog.Logger) (CombineResult, error) {
	if err := plan.Validate(); err != nil {
		return CombineResult{}, err
	}
	res := CombineResult{RunID: uuid.NewString()}
	logger = orDefault(logger).With("run_id", res.RunID)

	var conds []Condition
	var cfgs []forestfire.Config
	for _, l := range plan.Lightning {
		for _, g := range plan.TreeGrowth {
			cfg := plan.Base
			cfg.Lightning, cfg.TreeGrowth = l, g
			conds = append(conds, Condition{Lightning: l, TreeGrowth: g})
			cfgs = append(cfgs, cfg)
		}
	}
	logger.Info("combined sweep started", "conditions", len(conds), "trials", plan.Trials, "frames", plan.Base.MaxFrames)

	outcomes, err := evaluate(ctx, cfgs, plan.Trials, plan.Workers, logger)
	if err != nil {
		return CombineResult{}, err
	}
	res.Points = make([]PairPoint, len(conds))
	for i, c := range conds {
		res.Points[i] = PairPoint{Condition: c, MeanTrees: outcomes[i].trees, MeanLastFrame: outcomes[i].lastFrame}
	}
	logger.Info("combined sweep finished", "points", len(res.Points))
	return res, nil
}
