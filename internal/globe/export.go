// Package globe produces the sampled, render-ready point list for the 3D
// globe visualization.
package globe

import (
	"math"
	"math/rand"
	"sort"

	"github.com/skywatch/sightings-etl/internal/config"
	"github.com/skywatch/sightings-etl/internal/domain"
)

// Render constants shared with the front-end globe component.
const (
	pointAltitude = 0.005
	pointColor    = "rgba(255, 255, 0, 0.7)"

	baseMagnitude = 0.03
	magnitudeSpan = 0.25
	minRadius     = 0.01
)

// Export converts the clean set to globe points. Sets larger than
// rules.MaxPoints are downsampled to exactly MaxPoints via a fixed-seed
// uniform sample without replacement, so repeated runs over the same input
// produce identical artifacts. An empty input yields an empty, non-nil slice.
func Export(sightings []domain.Sighting, rules config.GlobeRules) []domain.GlobePoint {
	indices := sampleIndices(len(sightings), rules.MaxPoints, rules.SampleSeed)

	points := make([]domain.GlobePoint, 0, len(indices))
	for _, i := range indices {
		sg := &sightings[i]
		points = append(points, domain.GlobePoint{
			Lat:    sg.Latitude,
			Lng:    sg.Longitude,
			Alt:    pointAltitude,
			Radius: radius(sg.DurationSeconds, rules),
			Color:  pointColor,
		})
	}
	return points
}

// sampleIndices picks max indices out of n without replacement, keeping the
// records' original order. All indices are returned when n <= max.
func sampleIndices(n, max int, seed int64) []int {
	if n <= max {
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}

	r := rand.New(rand.NewSource(seed))
	indices := r.Perm(n)[:max]
	sort.Ints(indices)
	return indices
}

// radius maps a duration to a visual point radius on a log scale. The clamp
// to the visual scale bounds affects point size only, never inclusion: the
// cleaner has already decided which records exist.
func radius(durationSeconds float64, rules config.GlobeRules) float64 {
	clamped := math.Min(math.Max(durationSeconds, rules.MinScaleSeconds), rules.MaxScaleSeconds)

	logMin := math.Log(rules.MinScaleSeconds)
	logMax := math.Log(rules.MaxScaleSeconds)
	t := (math.Log(clamped) - logMin) / (logMax - logMin)

	magnitude := baseMagnitude + t*magnitudeSpan
	return math.Max(minRadius, magnitude)
}
