package sweep

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wildfire/internal/core"
	"wildfire/internal/sims/forestfire"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func baseConfig() forestfire.Config {
	cfg := forestfire.DefaultConfig()
	cfg.Width, cfg.Height = 6, 6
	cfg.MaxFrames = 8
	cfg.TreeGrowth, cfg.Lightning = 0, 0
	return cfg
}

func TestPlanValidation(t *testing.T) {
	valid := Plan{Base: baseConfig(), Axis: Lightning, Values: []float64{0.1}, Trials: 1}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Plan)
		field  string
	}{
		{name: "no trials", mutate: func(p *Plan) { p.Trials = 0 }, field: "Plan.Trials"},
		{name: "no values", mutate: func(p *Plan) { p.Values = []float64{} }, field: "Plan.Values"},
		{name: "nil values", mutate: func(p *Plan) { p.Values = nil }, field: "Plan.Values"},
		{name: "no frames", mutate: func(p *Plan) { p.Base.MaxFrames = 0 }, field: "Plan.Base.MaxFrames"},
		{name: "rain without weather", mutate: func(p *Plan) { p.Axis = Rain }, field: "Plan.Axis"},
		{name: "unknown axis", mutate: func(p *Plan) { p.Axis = 7 }, field: "Plan.Axis"},
		{name: "bad base", mutate: func(p *Plan) { p.Base.Lightning = 2 }, field: "Plan.Base.Lightning"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := valid
			tt.mutate(&plan)

			_, err := Run(context.Background(), plan, quietLogger())
			require.ErrorIs(t, err, core.ErrInvalidConfig)

			var cfgErr *core.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestRunWithoutEventsKeepsForest(t *testing.T) {
	plan := Plan{Base: baseConfig(), Axis: GridSize, Values: []float64{3, 5}, Trials: 3, Workers: 2}

	res, err := Run(context.Background(), plan, quietLogger())
	require.NoError(t, err)
	require.NotEmpty(t, res.RunID)
	require.Len(t, res.Points, 2)

	for i, p := range res.Points {
		assert.Equal(t, plan.Values[i], p.Value)
		assert.Equal(t, 1.0, p.MeanTrees)
		assert.Equal(t, float64(plan.Base.MaxFrames), p.MeanLastFrame)
	}
}

func TestRunCertainLightningBurnsOut(t *testing.T) {
	plan := Plan{Base: baseConfig(), Axis: Lightning, Values: []float64{0, 1}, Trials: 2}

	res, err := Run(context.Background(), plan, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.Points[0].MeanTrees)
	assert.Equal(t, 8.0, res.Points[0].MeanLastFrame)
	// Every tree ignites on frame 0 and burns out on frame 1.
	assert.Equal(t, 0.0, res.Points[1].MeanTrees)
	assert.Equal(t, 1.0, res.Points[1].MeanLastFrame)
}

func TestRunIsReproducible(t *testing.T) {
	base := baseConfig()
	base.Lightning = 0.05
	plan := Plan{Base: base, Axis: TreeGrowth, Values: []float64{0.01, 0.2, 0.6}, Trials: 4, Workers: 3}

	first, err := Run(context.Background(), plan, quietLogger())
	require.NoError(t, err)
	second, err := Run(context.Background(), plan, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Points, second.Points)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRunRainAxis(t *testing.T) {
	base := baseConfig()
	base.Rain = true
	base.Block = 2
	plan := Plan{Base: base, Axis: Rain, Values: []float64{0, 0.5}, Trials: 1}

	res, err := Run(context.Background(), plan, quietLogger())
	require.NoError(t, err)
	require.Len(t, res.Points, 2)
	assert.Equal(t, 1.0, res.Points[0].MeanTrees)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := Plan{Base: baseConfig(), Axis: Lightning, Values: []float64{0.1}, Trials: 2}
	_, err := Run(ctx, plan, quietLogger())
	require.ErrorIs(t, err, context.Canceled)
}

func TestApplyAxis(t *testing.T) {
	base := baseConfig()

	assert.Equal(t, 0.4, apply(base, TreeGrowth, 0.4).TreeGrowth)
	assert.Equal(t, 0.4, apply(base, Lightning, 0.4).Lightning)
	sized := apply(base, GridSize, 12)
	assert.Equal(t, [2]int{12, 12}, [2]int{sized.Width, sized.Height})
	assert.InDelta(t, 0.3, apply(base, Rain, 0.7).CloudThreshold, 1e-12)
}

func TestParseAxis(t *testing.T) {
	for _, a := range []Axis{TreeGrowth, Lightning, GridSize, Rain} {
		got, err := ParseAxis(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ParseAxis("wind")
	assert.Error(t, err)
}

func TestCombineOrdersConditions(t *testing.T) {
	plan := CombinePlan{
		Base:       baseConfig(),
		Lightning:  []float64{0, 1},
		TreeGrowth: []float64{0, 0.5},
		Trials:     2,
	}

	res, err := Combine(context.Background(), plan, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, []Condition{
		{Lightning: 0, TreeGrowth: 0},
		{Lightning: 0, TreeGrowth: 0.5},
		{Lightning: 1, TreeGrowth: 0},
		{Lightning: 1, TreeGrowth: 0.5},
	}, res.Conditions())

	assert.Equal(t, 1.0, res.Points[0].MeanTrees)
	assert.Equal(t, 1.0, res.Points[1].MeanTrees)
	assert.Equal(t, 0.0, res.Points[2].MeanTrees)
	assert.Equal(t, 1.0, res.Points[2].MeanLastFrame)
}

func TestCombineValidation(t *testing.T) {
	plan := CombinePlan{Base: baseConfig(), Lightning: []float64{0.1}, TreeGrowth: nil, Trials: 1}
	_, err := Combine(context.Background(), plan, quietLogger())
	require.ErrorIs(t, err, core.ErrInvalidConfig)

	plan.TreeGrowth = []float64{0.1}
	plan.Base.MaxFrames = 0
	_, err = Combine(context.Background(), plan, quietLogger())
	require.ErrorIs(t, err, core.ErrInvalidConfig)
}
