package main

import (
	"fmt"
	"log/slog"

	"github.com/cartovote/vote-map/internal/adapter/house"
	"github.com/cartovote/vote-map/internal/adapter/senate"
	"github.com/cartovote/vote-map/internal/config"
	"github.com/cartovote/vote-map/internal/observability"
	"github.com/cartovote/vote-map/internal/pipeline"
	"github.com/cartovote/vote-map/internal/render"
)

// app bundles the wired-up dependencies shared by the render and serve
// commands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	pipeline *pipeline.Pipeline
}

// buildApp wires config, observability, adapters, and the pipeline.
// A non-empty palettePath overrides the PALETTE_FILE setting.
func buildApp(palettePath string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if palettePath != "" {
		cfg.PaletteFile = palettePath
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	senatePalette := render.SenatePalette()
	housePalette := render.HousePalette()
	if cfg.PaletteFile != "" {
		if senatePalette, err = render.LoadPalette(cfg.PaletteFile, senatePalette); err != nil {
			return nil, fmt.Errorf("load palette: %w", err)
		}
		if housePalette, err = render.LoadPalette(cfg.PaletteFile, housePalette); err != nil {
			return nil, fmt.Errorf("load palette: %w", err)
		}
	}

	senateClient := senate.NewClient(cfg.SenateBaseURL, cfg.FetchTimeout, metrics, logger)
	senateSource := senate.NewCachedSource(senateClient, cfg.VoteCacheSize, metrics)
	houseSource := house.NewClient(cfg.HouseBaseURL, cfg.HouseMembersURL, cfg.FetchTimeout, metrics, logger)
	boundaries := pipeline.NewFileBoundaries(cfg.ShapeFilePath, cfg.DistrictShapeFilePath)

	p := pipeline.New(
		senateSource,
		houseSource,
		boundaries,
		render.NewRenderer(senatePalette, render.SenateLegend(), logger),
		render.NewRenderer(housePalette, render.HouseLegend(), logger),
		logger,
		metrics,
	)

	return &app{cfg: cfg, logger: logger, pipeline: p}, nil
}
