package forestfire

import "wildfire/internal/core"

// Parameters reports the run's tunables under the keys FromMap accepts.
func (s *Sim) Parameters() core.ParameterSnapshot {
	cfg := s.cfg
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", cfg.Width),
				core.IntParam("h", "Height", cfg.Height),
				core.Int64Param("seed", "Seed", cfg.Seed),
				core.IntParam("frames", "Frame budget", cfg.MaxFrames),
				core.IntParam("initial_state", "Initial state", int(cfg.InitialState)),
			},
		},
		{
			Name: "Fire",
			Params: []core.Parameter{
				core.FloatParam("tree_growth", "Tree growth chance", cfg.TreeGrowth),
				core.FloatParam("lightning", "Lightning chance", cfg.Lightning),
			},
		},
		{
			Name: "Rain",
			Params: []core.Parameter{
				core.BoolParam("rain", "Rain enabled", cfg.Rain),
				core.FloatParam("cloud_th", "Cloud threshold", cfg.CloudThreshold),
				core.IntParam("block", "Pixels per cell", cfg.Block),
				core.IntParam("noise_octaves", "Noise octaves", int(cfg.Noise.Octaves)),
				core.FloatParam("noise_frequency", "Noise frequency", cfg.Noise.Frequency),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}
