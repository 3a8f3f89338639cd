package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aquametrics/aquascore/internal/api"
	"github.com/aquametrics/aquascore/internal/config"
	"github.com/aquametrics/aquascore/internal/quality"
	"github.com/aquametrics/aquascore/internal/render"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}))
	slog.SetDefault(logger)

	catalog, err := buildCatalog(cfg)
	if err != nil {
		logger.Error("invalid scoring configuration", "error", err)
		os.Exit(1)
	}

	evaluator := quality.NewEvaluator(catalog, logger)
	renderer := render.NewBarChartRenderer()

	router := api.NewRouter(evaluator, renderer, cfg.Server.StaticDir, cfg.Server.RateLimitPerMinute, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	metricsRouter := api.NewMetricsRouter()
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsRouter,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port, "fuzzy_ph_do", cfg.Scoring.FuzzyPHDO)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

// buildCatalog turns the config's optional wholesale overrides into a rating
// catalog. Empty override tables select the built-in defaults.
func buildCatalog(cfg *config.Config) (*quality.Catalog, error) {
	var weights map[quality.Parameter]float64
	if len(cfg.Scoring.Weights) > 0 {
		weights = make(map[quality.Parameter]float64, len(cfg.Scoring.Weights))
		for name, w := range cfg.Scoring.Weights {
			weights[quality.Parameter(name)] = w
		}
	}

	var thresholds map[quality.Parameter]quality.Thresholds
	if len(cfg.Scoring.Ratings) > 0 {
		thresholds = make(map[quality.Parameter]quality.Thresholds, len(cfg.Scoring.Ratings))
		for name, rc := range cfg.Scoring.Ratings {
			thresholds[quality.Parameter(name)] = quality.Thresholds{
				Ideal:    rc.Ideal,
				GoodLow:  rc.GoodLow,
				GoodHigh: rc.GoodHigh,
				PoorLow:  rc.PoorLow,
				PoorHigh: rc.PoorHigh,
				Unit:     rc.Unit,
			}
		}
	}

	return quality.NewCatalog(weights, thresholds, cfg.Scoring.FuzzyPHDO)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
