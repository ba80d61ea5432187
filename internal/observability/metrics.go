package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one
// pipeline invocation. The tool is a batch job, so metrics live on a private
// registry and are pushed to a Pushgateway at completion when one is
// configured, rather than scraped.
type Metrics struct {
	registry *prometheus.Registry

	RecordsLoaded  prometheus.Counter
	RecordsDropped *prometheus.CounterVec // labels: reason={timestamp,duration,coordinates,range}
	RecordsClean   prometheus.Counter
	GlobePoints    prometheus.Counter

	StageDuration   *prometheus.HistogramVec // labels: stage={load,clean,summarize,export,write}
	PipelineSuccess prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sightings_etl",
			Name:      "records_loaded_total",
			Help:      "Total raw records read from the source CSV.",
		}),
		RecordsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sightings_etl",
			Name:      "records_dropped_total",
			Help:      "Records dropped during cleaning, by failing stage.",
		}, []string{"reason"}),
		RecordsClean: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sightings_etl",
			Name:      "records_clean_total",
			Help:      "Records surviving all cleaning stages.",
		}),
		GlobePoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sightings_etl",
			Name:      "globe_points_total",
			Help:      "Points written to the globe artifact.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sightings_etl",
			Name:      "stage_duration_seconds",
			Help:      "Wall-clock duration of each pipeline stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		PipelineSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sightings_etl",
			Name:      "pipeline_success",
			Help:      "1 when the invocation completed, 0 otherwise.",
		}),
	}

	registry.MustRegister(
		m.RecordsLoaded,
		m.RecordsDropped,
		m.RecordsClean,
		m.GlobePoints,
		m.StageDuration,
		m.PipelineSuccess,
	)

	return m
}

// Push delivers the collected metrics to a Pushgateway, the standard delivery
// path for short-lived batch jobs. No-op when url is empty.
func (m *Metrics) Push(url string) error {
	if url == "" {
		return nil
	}
	return push.New(url, "sightings_etl").Gatherer(m.registry).Push()
}

// DroppedTotal reads back the current drop count for a reason label.
// Used by tests and the completion log line.
func (m *Metrics) DroppedTotal(reason string) float64 {
	return counterValue(m.RecordsDropped.WithLabelValues(reason))
}

func counterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}
