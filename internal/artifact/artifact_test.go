package artifact_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywatch/sightings-etl/internal/artifact"
	"github.com/skywatch/sightings-etl/internal/domain"
)

func TestWriteSummary_NullableFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")

	require.NoError(t, artifact.WriteSummary(path, domain.Summary{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Nil(t, raw["median_duration_seconds_overall"])
	assert.Nil(t, raw["peak_hour_numeric"])
	assert.Equal(t, 0.0, raw["total_sightings"])
	assert.NotContains(t, string(data), "NaN")
}

func TestWriteSummary_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	median := 200.0
	in := domain.Summary{
		TotalSightings:               3,
		MedianDurationSecondsOverall: &median,
		PeakMonth:                    "Jul",
		SightingsByMonth: domain.CountList{
			{Label: "Jan", Count: 1},
			{Label: "Jul", Count: 2},
		},
	}

	require.NoError(t, artifact.WriteSummary(path, in))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out domain.Summary
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.TotalSightings, out.TotalSightings)
	assert.Equal(t, in.SightingsByMonth, out.SightingsByMonth)
	require.NotNil(t, out.MedianDurationSecondsOverall)
	assert.Equal(t, median, *out.MedianDurationSecondsOverall)
}

func TestWriteGlobe_EmptySetIsEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "globe.json")

	require.NoError(t, artifact.WriteGlobe(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteGlobe_Points(t *testing.T) {
	path := filepath.Join(t.TempDir(), "globe.json")
	points := []domain.GlobePoint{
		{Lat: 51.5, Lng: -0.12, Alt: 0.005, Radius: 0.28, Color: "rgba(255, 255, 0, 0.7)"},
	}

	require.NoError(t, artifact.WriteGlobe(path, points))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []domain.GlobePoint
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, points, out)
}

func TestWrite_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "globe.json")

	require.NoError(t, artifact.WriteGlobe(path, nil))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
