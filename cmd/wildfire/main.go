package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"wildfire/internal/app"
	"wildfire/internal/core"
	"wildfire/internal/render"
	"wildfire/internal/sims/forestfire"
)

func main() {
	cfg, err := app.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	logger := cfg.Logger(os.Stderr)

	params := cfg.Overrides.Map()
	if _, ok := params["seed"]; !ok && cfg.Seed != 0 {
		params["seed"] = strconv.FormatInt(cfg.Seed, 10)
	}
	sim, err := core.Build(cfg.Sim, params)
	if err != nil {
		log.Fatal(err)
	}
	fire, ok := sim.(*forestfire.Sim)
	if !ok {
		log.Fatalf("sim %q does not report forest statistics", cfg.Sim)
	}

	frames := cfg.Frames
	if frames == 0 {
		frames = fire.Config().MaxFrames
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("run started", "sim", sim.Name(), "frames", frames, "size", fmt.Sprintf("%dx%d", sim.Size().W, sim.Size().H))
	if err := run(ctx, fire, cfg, frames, logger); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	summarize(fire)
}

func run(ctx context.Context, sim *forestfire.Sim, cfg *app.Config, frames int, logger *slog.Logger) error {
	var timer *core.FixedStep
	if cfg.Watch {
		timer = core.NewFixedStep(cfg.TPS)
	}
	for i := 0; i < frames; i++ {
		if timer != nil {
			if err := timer.Wait(ctx); err != nil {
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		frame, err := sim.StepFrame(i)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		logger.Debug("frame", "n", i, "trees", frame.Stats.Trees, "fire", frame.Stats.Fire, "rain", frame.Stats.Rain)
		if timer != nil {
			draw(sim, frame, cfg.Color)
		}
	}
	return nil
}

func draw(sim *forestfire.Sim, frame forestfire.Frame, color bool) {
	g := sim.Display()
	out := render.Text(g.Cells(), g.W, sim.Palette())
	if color {
		out = render.ANSI(g.Cells(), g.W, sim.Palette())
	}
	st := frame.Stats
	fmt.Print(render.ClearScreen)
	fmt.Print(out)
	fmt.Printf("frame %d  trees %.3f  fire %.3f  empty %.3f  rain %.3f\n",
		st.Frame, st.Trees, st.Fire, st.Empty(), st.Rain)
}

func summarize(sim *forestfire.Sim) {
	hist := sim.History()
	if len(hist) == 0 {
		fmt.Println("no frames simulated")
		return
	}
	last := hist[len(hist)-1]
	status := "survived"
	if sim.BurntOut() {
		status = "burnt out"
	}
	fmt.Printf("%s: %s at frame %d after %d frames, %.1f%% trees remaining\n",
		sim.Name(), status, sim.LastFrame(), len(hist), last.Trees*100)
}
