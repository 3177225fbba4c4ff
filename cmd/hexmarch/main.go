// Package main is the entry point for hexmarch.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/hexmarch/data"
	"github.com/samdwyer/hexmarch/internal/config"
	"github.com/samdwyer/hexmarch/internal/game"
	"github.com/samdwyer/hexmarch/internal/observability"
	"github.com/samdwyer/hexmarch/internal/telemetry"
)

func main() {
	scenarioID := flag.String("scenario", "", "scenario id from scenarios.json (default: first)")
	configPath := flag.String("config", "", "extra directory to search for hexmarch.yaml")
	flag.Parse()

	// Load .env for local development; env vars may also be set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn("telemetry setup failed, running without tracing", zap.Error(err))
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Error("telemetry shutdown failed", zap.Error(err))
			}
		}()
	}

	scenario, err := data.FindScenario(*scenarioID)
	if err != nil {
		logger.Fatal("scenario not found", zap.Error(err))
	}
	logger.Info("loading scenario",
		zap.String("scenario", scenario.ID),
		zap.String("biome", scenario.Biome),
		zap.Int64("seed", scenario.Seed),
	)

	g, err := game.New(ctx, cfg, scenario, logger)
	if err != nil {
		logger.Fatal("failed to initialize game", zap.Error(err))
	}
	defer g.Close()

	if err := g.Run(ctx); err != nil {
		logger.Fatal("game error", zap.Error(err))
	}
}
