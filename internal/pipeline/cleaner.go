package pipeline

import (
	"log/slog"

	"github.com/skywatch/sightings-etl/internal/config"
	"github.com/skywatch/sightings-etl/internal/domain"
	"github.com/skywatch/sightings-etl/internal/observability"
)

// Drop reasons, used as metric labels and debug-log fields. Each names the
// first cleaning stage the record failed.
const (
	DropTimestamp   = "timestamp"
	DropDuration    = "duration"
	DropCoordinates = "coordinates"
	DropRange       = "range"
)

// Cleaner turns raw rows into clean sightings by running each record through
// the ordered validation stages. Individual failures never surface as errors:
// the offending record is dropped and counted.
type Cleaner struct {
	rules   config.PipelineRules
	columns domain.Columns
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewCleaner creates a Cleaner for one input schema. columns controls which
// categorical normalizations run; an absent column leaves its sentinel on
// every record.
func NewCleaner(rules config.PipelineRules, columns domain.Columns, logger *slog.Logger, metrics *observability.Metrics) *Cleaner {
	return &Cleaner{
		rules:   rules,
		columns: columns,
		logger:  logger,
		metrics: metrics,
	}
}

// Clean filters and normalizes the raw set. The result is append-only from
// here on: no later stage mutates a clean sighting.
func (c *Cleaner) Clean(raws []domain.RawSighting) []domain.Sighting {
	cleans := make([]domain.Sighting, 0, len(raws))
	for i := range raws {
		sighting, reason := c.cleanOne(&raws[i])
		if reason != "" {
			c.metrics.RecordsDropped.WithLabelValues(reason).Inc()
			c.logger.Debug("record dropped", "reason", reason, "row", i)
			continue
		}
		cleans = append(cleans, sighting)
	}
	c.metrics.RecordsClean.Add(float64(len(cleans)))
	return cleans
}

// cleanOne runs the ordered stages for a single record. A non-empty reason
// means the record is dropped; later stages assume earlier guarantees, so
// order matters.
func (c *Cleaner) cleanOne(raw *domain.RawSighting) (domain.Sighting, string) {
	ts, ok := domain.ParseTimestamp(raw.Timestamp)
	if !ok {
		return domain.Sighting{}, DropTimestamp
	}

	duration, ok := domain.ParseNumber(raw.Duration)
	if !ok || duration <= c.rules.DurationMinSeconds || duration >= c.rules.DurationMaxSeconds {
		return domain.Sighting{}, DropDuration
	}

	lat, okLat := domain.ParseNumber(raw.Latitude)
	lon, okLon := domain.ParseNumber(raw.Longitude)
	if !okLat || !okLon {
		return domain.Sighting{}, DropCoordinates
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return domain.Sighting{}, DropRange
	}

	sighting := domain.Sighting{
		Timestamp:       ts,
		Year:            ts.Year(),
		Month:           int(ts.Month()),
		Hour:            ts.Hour(),
		DurationSeconds: duration,
		Latitude:        lat,
		Longitude:       lon,
		Shape:           domain.ShapeVarious,
		Country:         domain.CountryUnknown,
		State:           domain.StateUnknown,
	}

	if c.columns.Shape {
		sighting.Shape = domain.NormalizeShape(raw.Shape)
	}
	if c.columns.Country {
		sighting.Country = domain.NormalizeCountry(raw.Country)
	}
	if c.columns.State {
		sighting.State = domain.NormalizeState(raw.State)
	}

	return sighting, ""
}
