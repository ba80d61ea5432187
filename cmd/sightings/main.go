// Command sightings runs the UFO sightings batch pipeline: it reads a
// NUFORC-style CSV, cleans and normalizes the records, and writes the
// statistical summary and globe visualization artifacts.
//
// Usage:
//
//	sightings -input data/ufo_sightings_scrubbed.csv \
//	  -summary-out data/eda_summary.json \
//	  -globe-out data/sightings_for_globe.json
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/skywatch/sightings-etl/internal/config"
	"github.com/skywatch/sightings-etl/internal/observability"
	"github.com/skywatch/sightings-etl/internal/pipeline"
	"github.com/skywatch/sightings-etl/internal/report"
	"github.com/skywatch/sightings-etl/internal/store"
)

func main() {
	input := flag.String("input", "", "path to the sightings CSV (required)")
	summaryOut := flag.String("summary-out", "data/eda_summary.json", "output path for the summary artifact")
	globeOut := flag.String("globe-out", "data/sightings_for_globe.json", "output path for the globe artifact")
	configPath := flag.String("config", "", "optional YAML file overriding pipeline thresholds")
	dbPath := flag.String("db", "", "optional SQLite path to persist the clean set")
	noReport := flag.Bool("no-report", false, "suppress the console report")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var st pipeline.Store
	if *dbPath != "" {
		s, err := store.Open(*dbPath)
		if err != nil {
			logger.Error("failed to open store", "path", *dbPath, "error", err)
			os.Exit(1)
		}
		defer s.Close()
		st = s
		logger.Info("sqlite persistence enabled", "path", *dbPath)
	}

	p := pipeline.New(cfg, logger, metrics, st)

	result, err := p.Run(*input, *summaryOut, *globeOut)
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		pushMetrics(metrics, cfg, logger)
		os.Exit(1)
	}

	if !*noReport {
		report.Write(os.Stdout, result.Summary)
	}

	pushMetrics(metrics, cfg, logger)
}

// pushMetrics delivers batch metrics to the Pushgateway when one is
// configured. Failures are logged, never fatal: observability must not break
// the run.
func pushMetrics(metrics *observability.Metrics, cfg *config.Config, logger *slog.Logger) {
	if cfg.PushgatewayURL == "" {
		return
	}
	if err := metrics.Push(cfg.PushgatewayURL); err != nil {
		logger.Warn("metrics push failed", "url", cfg.PushgatewayURL, "error", err)
	}
}
