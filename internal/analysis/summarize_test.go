package analysis_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywatch/sightings-etl/internal/analysis"
	"github.com/skywatch/sightings-etl/internal/config"
	"github.com/skywatch/sightings-etl/internal/domain"
)

func defaultRules(t *testing.T) config.PipelineRules {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg.Pipeline
}

// sighting builds a clean record with harmless defaults so tests only spell
// out the fields their assertion cares about.
func sighting(mutate func(*domain.Sighting)) domain.Sighting {
	sg := domain.Sighting{
		Timestamp:       time.Date(2004, 6, 15, 21, 0, 0, 0, time.UTC),
		Year:            2004,
		Month:           6,
		Hour:            21,
		DurationSeconds: 120,
		Latitude:        40,
		Longitude:       -100,
		Shape:           "light",
		Country:         "us",
		State:           "CA",
	}
	if mutate != nil {
		mutate(&sg)
	}
	return sg
}

func TestSummarize_MedianOverall(t *testing.T) {
	sightings := []domain.Sighting{
		sighting(func(s *domain.Sighting) { s.DurationSeconds = 300 }),
		sighting(func(s *domain.Sighting) { s.DurationSeconds = 100 }),
		sighting(func(s *domain.Sighting) { s.DurationSeconds = 200 }),
	}

	s := analysis.Summarize(sightings, defaultRules(t))

	require.NotNil(t, s.MedianDurationSecondsOverall)
	assert.Equal(t, 200.0, *s.MedianDurationSecondsOverall)
}

func TestSummarize_GroupingsSumToTotal(t *testing.T) {
	var sightings []domain.Sighting
	for i := 0; i < 30; i++ {
		i := i
		sightings = append(sightings, sighting(func(s *domain.Sighting) {
			s.Year = 2000 + i%4
			s.Month = 1 + i%12
			s.Hour = i % 24
		}))
	}

	s := analysis.Summarize(sightings, defaultRules(t))

	assert.Equal(t, 30, s.TotalSightings)
	assert.Equal(t, 30, s.SightingsByYear.Total())
	assert.Equal(t, 30, s.SightingsByMonth.Total())
	assert.Equal(t, 30, s.SightingsByHour.Total())
}

func TestSummarize_GroupedCountsAscending(t *testing.T) {
	sightings := []domain.Sighting{
		sighting(func(s *domain.Sighting) { s.Year = 2010; s.Month = 12; s.Hour = 23 }),
		sighting(func(s *domain.Sighting) { s.Year = 1999; s.Month = 1; s.Hour = 0 }),
		sighting(func(s *domain.Sighting) { s.Year = 2004; s.Month = 3; s.Hour = 9 }),
	}

	s := analysis.Summarize(sightings, defaultRules(t))

	years := make([]string, len(s.SightingsByYear))
	for i, lc := range s.SightingsByYear {
		years[i] = lc.Label
	}
	assert.Equal(t, []string{"1999", "2004", "2010"}, years)

	months := make([]string, len(s.SightingsByMonth))
	for i, lc := range s.SightingsByMonth {
		months[i] = lc.Label
	}
	assert.Equal(t, []string{"Jan", "Mar", "Dec"}, months)

	hours := make([]string, len(s.SightingsByHour))
	for i, lc := range s.SightingsByHour {
		hours[i] = lc.Label
	}
	assert.Equal(t, []string{"0", "9", "23"}, hours)
}

func TestSummarize_Peaks(t *testing.T) {
	var sightings []domain.Sighting
	add := func(n, year, month, hour int) {
		for i := 0; i < n; i++ {
			sightings = append(sightings, sighting(func(s *domain.Sighting) {
				s.Year = year
				s.Month = month
				s.Hour = hour
			}))
		}
	}
	add(3, 2012, 7, 21)
	add(2, 1999, 1, 3)

	s := analysis.Summarize(sightings, defaultRules(t))

	assert.Equal(t, "2012", s.PeakYearOfReports)
	assert.Equal(t, "Jul", s.PeakMonth)
	require.NotNil(t, s.PeakHourNumeric)
	assert.Equal(t, 21, *s.PeakHourNumeric)
	assert.Equal(t, "21:00 - 22:00", s.PeakHourReadable)
}

func TestSummarize_PeakTieBreaksToSmallestKey(t *testing.T) {
	sightings := []domain.Sighting{
		sighting(func(s *domain.Sighting) { s.Hour = 22 }),
		sighting(func(s *domain.Sighting) { s.Hour = 3 }),
	}

	s := analysis.Summarize(sightings, defaultRules(t))

	require.NotNil(t, s.PeakHourNumeric)
	assert.Equal(t, 3, *s.PeakHourNumeric)
}

func TestSummarize_Rankings(t *testing.T) {
	var sightings []domain.Sighting
	add := func(n int, shape, country, state string) {
		for i := 0; i < n; i++ {
			sightings = append(sightings, sighting(func(s *domain.Sighting) {
				s.Shape = shape
				s.Country = country
				s.State = state
			}))
		}
	}
	add(5, "light", "us", "CA")
	add(3, "circle", "us", "TX")
	add(2, "disk", "uk", "UNKNOWN")
	add(4, domain.ShapeVarious, "ca", "UNKNOWN")
	add(1, "oval", domain.CountryUnknown, "WA")

	s := analysis.Summarize(sightings, defaultRules(t))

	assert.Equal(t, domain.CountList{
		{Label: "us", Count: 8},
		{Label: "ca", Count: 4},
		{Label: "uk", Count: 2},
	}, s.TopCountries)

	// State ranking is restricted to US records with a known state. The "WA"
	// record has no country so it stays out.
	assert.Equal(t, domain.CountList{
		{Label: "CA", Count: 5},
		{Label: "TX", Count: 3},
	}, s.TopStatesUS)

	// "various" is a sentinel, not a shape, and never ranks.
	assert.Equal(t, domain.CountList{
		{Label: "light", Count: 5},
		{Label: "circle", Count: 3},
		{Label: "disk", Count: 2},
		{Label: "oval", Count: 1},
	}, s.TopShapes)

	assert.Equal(t, "light", s.MostCommonShape)
	assert.Equal(t, "circle", s.SecondMostCommonShape)
}

func TestSummarize_RankingCapsAndTieOrder(t *testing.T) {
	var sightings []domain.Sighting
	for i := 0; i < 12; i++ {
		shape := fmt.Sprintf("shape%02d", i)
		sightings = append(sightings, sighting(func(s *domain.Sighting) { s.Shape = shape }))
	}

	s := analysis.Summarize(sightings, defaultRules(t))

	require.Len(t, s.TopShapes, 10)
	// All counts tie at one, so the ranking keeps first-encountered order.
	assert.Equal(t, "shape00", s.TopShapes[0].Label)
	assert.Equal(t, "shape09", s.TopShapes[9].Label)
}

func TestSummarize_ShapeMediansLimitedToTopFive(t *testing.T) {
	var sightings []domain.Sighting
	for i := 0; i < 7; i++ {
		shape := fmt.Sprintf("shape%d", i)
		count := 10 - i
		for j := 0; j < count; j++ {
			dur := float64(100 * (i + 1))
			sightings = append(sightings, sighting(func(s *domain.Sighting) {
				s.Shape = shape
				s.DurationSeconds = dur
			}))
		}
	}

	s := analysis.Summarize(sightings, defaultRules(t))

	require.Len(t, s.MedianDurationsByTopShapes, 5)
	require.Contains(t, s.MedianDurationsByTopShapes, "shape0")
	require.NotNil(t, s.MedianDurationsByTopShapes["shape0"])
	assert.Equal(t, 100.0, *s.MedianDurationsByTopShapes["shape0"])
	assert.NotContains(t, s.MedianDurationsByTopShapes, "shape5")
}

func TestSummarize_PeakHourShapes(t *testing.T) {
	var sightings []domain.Sighting
	add := func(n, hour int, shape string) {
		for i := 0; i < n; i++ {
			sightings = append(sightings, sighting(func(s *domain.Sighting) {
				s.Hour = hour
				s.Shape = shape
			}))
		}
	}
	add(6, 21, "light")
	add(3, 21, "circle")
	add(1, 21, "disk")
	add(2, 10, "oval")

	s := analysis.Summarize(sightings, defaultRules(t))

	assert.Equal(t, "light", s.PeakHourDominantShape)
	assert.Equal(t, "Light (60.0%), Circle (30.0%), Disk (10.0%)", s.TopShapesInPeakHourSummary)
}

func TestSummarize_NightDayMedians(t *testing.T) {
	sightings := []domain.Sighting{
		sighting(func(s *domain.Sighting) { s.Hour = 22; s.DurationSeconds = 100 }),
		sighting(func(s *domain.Sighting) { s.Hour = 2; s.DurationSeconds = 300 }),
		sighting(func(s *domain.Sighting) { s.Hour = 12; s.DurationSeconds = 60 }),
	}

	s := analysis.Summarize(sightings, defaultRules(t))

	require.NotNil(t, s.MedianDurationNightSeconds)
	assert.Equal(t, 200.0, *s.MedianDurationNightSeconds)
	require.NotNil(t, s.MedianDurationDaySeconds)
	assert.Equal(t, 60.0, *s.MedianDurationDaySeconds)
}

func TestSummarize_NightBoundaryHours(t *testing.T) {
	// Hours 18 and 5 are night; 17 and 6 are day.
	sightings := []domain.Sighting{
		sighting(func(s *domain.Sighting) { s.Hour = 18; s.DurationSeconds = 10 }),
		sighting(func(s *domain.Sighting) { s.Hour = 5; s.DurationSeconds = 20 }),
		sighting(func(s *domain.Sighting) { s.Hour = 17; s.DurationSeconds = 1000 }),
		sighting(func(s *domain.Sighting) { s.Hour = 6; s.DurationSeconds = 2000 }),
	}

	s := analysis.Summarize(sightings, defaultRules(t))

	require.NotNil(t, s.MedianDurationNightSeconds)
	assert.Equal(t, 15.0, *s.MedianDurationNightSeconds)
	require.NotNil(t, s.MedianDurationDaySeconds)
	assert.Equal(t, 1500.0, *s.MedianDurationDaySeconds)
}

func TestSummarize_Proportions(t *testing.T) {
	// Thresholds are strict: exactly 300s does not count as over five minutes.
	sightings := []domain.Sighting{
		sighting(func(s *domain.Sighting) { s.DurationSeconds = 300 }),
		sighting(func(s *domain.Sighting) { s.DurationSeconds = 301 }),
		sighting(func(s *domain.Sighting) { s.DurationSeconds = 4000 }),
	}

	s := analysis.Summarize(sightings, defaultRules(t))

	assert.Equal(t, 66.67, s.ProportionOver5MinPercent)
	assert.Equal(t, 33.33, s.ProportionOver1HourPercent)
}

func TestSummarize_EmptyInput(t *testing.T) {
	s := analysis.Summarize(nil, defaultRules(t))

	assert.Equal(t, 0, s.TotalSightings)
	assert.Nil(t, s.MedianDurationSecondsOverall)
	assert.Nil(t, s.PeakHourNumeric)
	assert.Equal(t, "N/A", s.PeakMonth)
	assert.Equal(t, "N/A", s.PeakHourReadable)
	assert.Equal(t, "N/A", s.PeakYearOfReports)
	assert.Equal(t, "N/A", s.MostCommonShape)
	assert.Equal(t, "N/A", s.SecondMostCommonShape)
	assert.Equal(t, "N/A", s.PeakHourDominantShape)
	assert.Equal(t, "N/A", s.TopShapesInPeakHourSummary)
	assert.Nil(t, s.MedianDurationNightSeconds)
	assert.Nil(t, s.MedianDurationDaySeconds)
	assert.Zero(t, s.ProportionOver5MinPercent)
	assert.Zero(t, s.ProportionOver1HourPercent)
	assert.Empty(t, s.TopCountries)
	assert.Empty(t, s.TopShapes)
	assert.Empty(t, s.SightingsByYear)
}

func TestSummarize_SingleShapeHasNoSecond(t *testing.T) {
	sightings := []domain.Sighting{sighting(nil)}

	s := analysis.Summarize(sightings, defaultRules(t))

	assert.Equal(t, "light", s.MostCommonShape)
	assert.Equal(t, "N/A", s.SecondMostCommonShape)
}

func TestSummarize_GeneratedAt(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	defer domain.SetClock(nil)

	s := analysis.Summarize(nil, defaultRules(t))
	assert.Equal(t, now, s.GeneratedAt)
}
