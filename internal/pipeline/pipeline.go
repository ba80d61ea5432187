// Package pipeline orchestrates the batch run: load the CSV, clean the
// records, then build the summary and globe artifacts from the same clean
// set. A single invocation runs to completion or fails outright; the only
// recoverable errors are per-record, and the cleaner swallows those.
package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/skywatch/sightings-etl/internal/analysis"
	"github.com/skywatch/sightings-etl/internal/artifact"
	"github.com/skywatch/sightings-etl/internal/config"
	"github.com/skywatch/sightings-etl/internal/domain"
	"github.com/skywatch/sightings-etl/internal/globe"
	"github.com/skywatch/sightings-etl/internal/loader"
	"github.com/skywatch/sightings-etl/internal/observability"
)

// Store persists the clean set for ad-hoc querying. Optional; a nil Store
// skips persistence entirely.
type Store interface {
	SaveSightings(sightings []domain.Sighting) error
}

// Pipeline wires the stages together for one batch invocation.
type Pipeline struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	store   Store
}

// Result carries the derived artifacts and counts from one run.
type Result struct {
	Summary    domain.Summary
	Globe      []domain.GlobePoint
	RawCount   int
	CleanCount int
}

// New creates a Pipeline. store may be nil.
func New(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, store Store) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		store:   store,
	}
}

// Run executes one complete batch: read inputPath, clean, summarize, export,
// and write both artifacts. An empty clean set is not an error; both files
// are still written, null-filled and empty respectively. Only schema-level
// failures (missing required columns, unreadable input) return an error.
func (p *Pipeline) Run(inputPath, summaryPath, globePath string) (Result, error) {
	var res Result

	raws, columns, err := p.timedLoad(inputPath)
	if err != nil {
		return res, err
	}
	res.RawCount = len(raws)
	p.metrics.RecordsLoaded.Add(float64(len(raws)))
	p.logger.Info("input loaded", "path", inputPath, "rows", len(raws),
		"has_shape", columns.Shape, "has_country", columns.Country, "has_state", columns.State)

	cleans := timedStage(p, "clean", func() []domain.Sighting {
		return NewCleaner(p.cfg.Pipeline, columns, p.logger, p.metrics).Clean(raws)
	})
	res.CleanCount = len(cleans)
	p.logger.Info("cleaning complete", "raw", len(raws), "clean", len(cleans),
		"dropped", len(raws)-len(cleans))

	if len(cleans) == 0 {
		p.logger.Warn("clean set is empty; writing null-filled artifacts")
	}

	res.Summary = timedStage(p, "summarize", func() domain.Summary {
		return analysis.Summarize(cleans, p.cfg.Pipeline)
	})
	res.Globe = timedStage(p, "export", func() []domain.GlobePoint {
		return globe.Export(cleans, p.cfg.Globe)
	})
	p.metrics.GlobePoints.Add(float64(len(res.Globe)))

	if p.store != nil {
		if err := p.store.SaveSightings(cleans); err != nil {
			return res, fmt.Errorf("persist clean set: %w", err)
		}
		p.logger.Info("clean set persisted", "records", len(cleans))
	}

	start := time.Now()
	if err := artifact.WriteSummary(summaryPath, res.Summary); err != nil {
		return res, fmt.Errorf("write summary artifact: %w", err)
	}
	if err := artifact.WriteGlobe(globePath, res.Globe); err != nil {
		return res, fmt.Errorf("write globe artifact: %w", err)
	}
	p.metrics.StageDuration.WithLabelValues("write").Observe(time.Since(start).Seconds())

	p.metrics.PipelineSuccess.Set(1)
	p.logger.Info("pipeline complete",
		"summary_path", summaryPath,
		"globe_path", globePath,
		"globe_points", len(res.Globe),
	)
	return res, nil
}

func (p *Pipeline) timedLoad(inputPath string) ([]domain.RawSighting, domain.Columns, error) {
	start := time.Now()
	raws, columns, err := loader.LoadFile(inputPath)
	p.metrics.StageDuration.WithLabelValues("load").Observe(time.Since(start).Seconds())
	return raws, columns, err
}

// timedStage runs one stage and records its wall-clock duration. A free
// function because methods cannot introduce type parameters.
func timedStage[T any](p *Pipeline, stage string, fn func() T) T {
	start := time.Now()
	out := fn()
	p.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	return out
}
