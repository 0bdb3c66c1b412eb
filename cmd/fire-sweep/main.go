package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"wildfire/internal/app"
	"wildfire/internal/sims/forestfire"
	"wildfire/internal/sweep"
)

type floatList []float64

func (l *floatList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *floatList) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return fmt.Errorf("value %q: %w", part, err)
		}
		*l = append(*l, v)
	}
	return nil
}

func main() {
	axisName := flag.String("axis", "lightning", "parameter to vary: tree_growth, lightning, size or rain")
	var values, lightning, growth floatList
	flag.Var(&values, "values", "comma-separated values for -axis (repeatable)")
	flag.Var(&lightning, "lightning", "lightning chances for a combined sweep (repeatable)")
	flag.Var(&growth, "growth", "tree growth chances for a combined sweep (repeatable)")
	trials := flag.Int("trials", 10, "runs per value")
	workers := flag.Int("workers", runtime.NumCPU(), "number of concurrent runs")

	cfg, err := app.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	logger := cfg.Logger(os.Stderr)

	params := cfg.Overrides.Map()
	if _, ok := params["seed"]; !ok && cfg.Seed != 0 {
		params["seed"] = strconv.FormatInt(cfg.Seed, 10)
	}
	base, err := forestfire.FromMap(params)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Sim == "forestfire-rain" {
		base.Rain = true
	}
	if cfg.Frames > 0 {
		base.MaxFrames = cfg.Frames
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	out := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if len(lightning) > 0 || len(growth) > 0 {
		res, err := sweep.Combine(ctx, sweep.CombinePlan{
			Base:       base,
			Lightning:  lightning,
			TreeGrowth: growth,
			Trials:     *trials,
			Workers:    *workers,
		}, logger)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(out, "lightning\ttree_growth\tmean_trees\tmean_last_frame")
		for _, p := range res.Points {
			fmt.Fprintf(out, "%g\t%g\t%.4f\t%.2f\n", p.Lightning, p.TreeGrowth, p.MeanTrees, p.MeanLastFrame)
		}
	} else {
		axis, err := sweep.ParseAxis(*axisName)
		if err != nil {
			log.Fatal(err)
		}
		res, err := sweep.Run(ctx, sweep.Plan{
			Base:    base,
			Axis:    axis,
			Values:  values,
			Trials:  *trials,
			Workers: *workers,
		}, logger)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(out, "%s\tmean_trees\tmean_last_frame\n", axis)
		for _, p := range res.Points {
			fmt.Fprintf(out, "%g\t%.4f\t%.2f\n", p.Value, p.MeanTrees, p.MeanLastFrame)
		}
	}
	out.Flush()
	fmt.Printf("\nelapsed %s over %d trials per point\n", time.Since(start).Round(time.Millisecond), *trials)
}
