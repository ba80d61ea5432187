package observability_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywatch/sightings-etl/internal/observability"
)

func TestMetrics_DroppedTotal(t *testing.T) {
	m := observability.NewMetrics()

	m.RecordsDropped.WithLabelValues("duration").Inc()
	m.RecordsDropped.WithLabelValues("duration").Inc()
	m.RecordsDropped.WithLabelValues("timestamp").Inc()

	assert.Equal(t, 2.0, m.DroppedTotal("duration"))
	assert.Equal(t, 1.0, m.DroppedTotal("timestamp"))
	assert.Equal(t, 0.0, m.DroppedTotal("range"))
}

func TestMetrics_PrivateRegistries(t *testing.T) {
	// Two instances must not collide; each run owns its registry.
	a := observability.NewMetrics()
	b := observability.NewMetrics()

	a.RecordsLoaded.Add(10)
	b.RecordsDropped.WithLabelValues("range").Inc()

	assert.Equal(t, 0.0, a.DroppedTotal("range"))
	assert.Equal(t, 1.0, b.DroppedTotal("range"))
}

func TestMetrics_PushEmptyURLIsNoop(t *testing.T) {
	m := observability.NewMetrics()
	assert.NoError(t, m.Push(""))
}

func TestMetrics_Push(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := observability.NewMetrics()
	m.RecordsLoaded.Add(5)

	require.NoError(t, m.Push(srv.URL))
	assert.Equal(t, "/metrics/job/sightings_etl", gotPath)
}

func TestMetrics_PushUnreachable(t *testing.T) {
	m := observability.NewMetrics()
	assert.Error(t, m.Push("http://127.0.0.1:1"))
}
