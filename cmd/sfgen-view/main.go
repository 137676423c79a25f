//go:build ebiten

// Command sfgen-view watches a snowflake grow live. Space pauses, N
// single-steps, R reseeds, Tab toggles the parameter panel.
package main

import (
	"errors"
	"flag"
	"log"

	"sfgen/internal/app"
	"sfgen/internal/config"
	"sfgen/internal/core"
	"sfgen/internal/env"
	"sfgen/internal/lattice"
	"sfgen/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		scale      = flag.Int("scale", 3, "pixel scale multiplier")
		tps        = flag.Int("tps", 60, "ticks per second")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
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

	game := app.New(lat, render.SnowflakePalette(), *scale, cfg.Lattice.Seed)
	side := cfg.Lattice.Size * (*scale)

	ebiten.SetWindowTitle("sfgen " + lat.Name())
	ebiten.SetTPS(*tps)
	ebiten.SetWindowSize(side, side)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
