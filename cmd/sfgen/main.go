// Command sfgen grows a synthetic snowflake and exports it as a PNG,
// optionally with per-layer masks and a growth telemetry CSV.
package main

import (
	"flag"
	"log"
	"time"

	"sfgen/internal/config"
	"sfgen/internal/core"
	"sfgen/internal/env"
	"sfgen/internal/lattice"
	"sfgen/internal/render"
	"sfgen/internal/telemetry"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		size       = flag.Int("size", 0, "grid edge length (overrides config)")
		steps      = flag.Int("steps", -1, "max growth iterations, 0 = unbounded (overrides config)")
		margin     = flag.Float64("margin", 0, "growth margin in (0,1] (overrides config)")
		seed       = flag.Int64("seed", 0, "rng seed (overrides config)")
		scheme     = flag.String("scheme", "", "color scheme: grayscale|blackwhite|agehue")
		out        = flag.String("out", "", "output image path (overrides config)")
		layers     = flag.Int("layers", -1, "k-means layer mask count (overrides config)")
		csvPath    = flag.String("telemetry", "", "growth telemetry CSV path")
		paper      = flag.Bool("paper", false, "composite over a paper texture")
		fixedEnv   = flag.Bool("fixed-env", false, "use fixed constants instead of curve schedules")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *size > 0 {
		cfg.Lattice.Size = *size
	}
	if *steps >= 0 {
		cfg.Lattice.MaxSteps = *steps
	}
	if *margin > 0 {
		cfg.Lattice.Margin = *margin
	}
	if *seed != 0 {
		cfg.Lattice.Seed = *seed
	}
	if *scheme != "" {
		cfg.Render.Scheme = *scheme
	}
	if *out != "" {
		cfg.Output.Image = *out
	}
	if *layers >= 0 {
		cfg.Render.Layers = *layers
	}
	if *csvPath != "" {
		cfg.Output.Telemetry = *csvPath
	}
	if *paper {
		cfg.Render.Paper = true
	}
	if *fixedEnv {
		cfg.Environment.UseCurves = false
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	kind, err := render.ParseSchemeKind(cfg.Render.Scheme)
	if err != nil {
		log.Fatal(err)
	}
	if kind == render.Layered {
		log.Fatal("use -layers N for layered export; -scheme selects the main image")
	}

	rng := core.NewRNG(cfg.Lattice.Seed)

	environment := env.Default()
	if cfg.Environment.UseCurves {
		built, err := env.Build(cfg.CurveStepBudget(),
			cfg.Environment.MinGamma, cfg.Environment.MaxGamma, rng)
		if err != nil {
			log.Fatal(err)
		}
		environment = *built
	}

	lat, err := lattice.New(lattice.Config{
		Size:     cfg.Lattice.Size,
		MaxSteps: cfg.Lattice.MaxSteps,
		Margin:   cfg.Lattice.Margin,
		Seed:     cfg.Lattice.Seed,
	}, &environment, rng)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	if cfg.Output.Telemetry != "" {
		col := telemetry.NewCollector()
		for {
			if err := lat.Step(); err != nil {
				log.Fatal(err)
			}
			col.Record(lat)
			if !lat.Headroom() {
				break
			}
		}
		if err := col.SaveCSV(cfg.Output.Telemetry); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", cfg.Output.Telemetry)
	} else if err := lat.Grow(); err != nil {
		log.Fatal(err)
	}
	log.Printf("grew to iteration %d, radius %d, %d attached cells in %v",
		lat.Iteration(), lat.SnowflakeRadius(lattice.DefaultAngle),
		lat.AttachedCount(), time.Since(start).Round(time.Millisecond))

	s := render.NewScheme(kind)
	s.ShowBoundary = cfg.Render.ShowBoundary
	opts := render.Options{
		Scheme:     s,
		Rotate:     cfg.Render.Rotate,
		Scale:      cfg.Render.Scale,
		Crop:       cfg.Render.Crop,
		CropMargin: cfg.Render.CropMargin,
		Resize:     cfg.Render.Resize,
		Paper:      cfg.Render.Paper,
		PaperSeed:  cfg.Lattice.Seed,
	}
	if err := render.SaveImage(lat, cfg.Output.Image, opts); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", cfg.Output.Image)

	if cfg.Render.Layers > 0 {
		paths, err := render.SaveLayers(lat, cfg.Output.LayerPattern, cfg.Render.Layers, opts, rng)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %d layer masks", len(paths))
	}
}
