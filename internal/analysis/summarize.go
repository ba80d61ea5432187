// Package analysis builds the statistical summary over a clean sighting set.
// Summarize is a pure function of its input: same records and rules, same
// summary, with no randomness and no mutation of the record set.
package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/skywatch/sightings-etl/internal/config"
	"github.com/skywatch/sightings-etl/internal/domain"
	"github.com/skywatch/sightings-etl/internal/stats"
)

const (
	topCountryCount    = 5
	topStateCount      = 5
	topShapeCount      = 10
	shapeMedianCount   = 5
	peakHourShapeCount = 3
	notAvailable       = "N/A"
)

// Night covers 18:00-23:59 and 00:00-05:59; everything else is Day.
func isNightHour(hour int) bool {
	return hour >= 18 || hour <= 5
}

// Summarize computes the full summary over the clean set. Rankings order
// descending by count with first-encountered tie-breaks; grouped counts order
// ascending by the category's natural value; peak categories break ties
// toward the smallest key among the maxima.
func Summarize(sightings []domain.Sighting, rules config.PipelineRules) domain.Summary {
	s := domain.Summary{
		TotalSightings:             len(sightings),
		PeakMonth:                  notAvailable,
		PeakHourReadable:           notAvailable,
		PeakYearOfReports:          notAvailable,
		MostCommonShape:            notAvailable,
		SecondMostCommonShape:      notAvailable,
		TopShapesInPeakHourSummary: notAvailable,
		PeakHourDominantShape:      notAvailable,
		MedianDurationsByTopShapes: map[string]*float64{},
		TopCountries:               domain.CountList{},
		TopStatesUS:                domain.CountList{},
		TopShapes:                  domain.CountList{},
		GeneratedAt:                domain.Now(),
	}

	durations := make([]float64, len(sightings))
	for i := range sightings {
		durations[i] = sightings[i].DurationSeconds
	}
	s.MedianDurationSecondsOverall = medianOf(durations)

	s.SightingsByYear = intCounts(sightings, func(sg domain.Sighting) int { return sg.Year })
	s.SightingsByHour = intCounts(sightings, func(sg domain.Sighting) int { return sg.Hour })
	s.SightingsByMonth = monthCounts(sightings)

	if year, ok := peakIntCategory(sightings, func(sg domain.Sighting) int { return sg.Year }); ok {
		s.PeakYearOfReports = strconv.Itoa(year)
	}
	if month, ok := peakIntCategory(sightings, func(sg domain.Sighting) int { return sg.Month }); ok {
		s.PeakMonth = monthAbbrev(month)
	}
	peakHour, hasPeakHour := peakIntCategory(sightings, func(sg domain.Sighting) int { return sg.Hour })
	if hasPeakHour {
		s.PeakHourNumeric = &peakHour
		s.PeakHourReadable = fmt.Sprintf("%d:00 - %d:00", peakHour, peakHour+1)
	}

	countries := newCounter()
	states := newCounter()
	shapes := newCounter()
	for i := range sightings {
		sg := &sightings[i]
		if sg.Country != domain.CountryUnknown {
			countries.add(sg.Country)
		}
		if sg.Country == "us" && sg.State != domain.StateUnknown {
			states.add(sg.State)
		}
		if sg.Shape != domain.ShapeVarious {
			shapes.add(sg.Shape)
		}
	}
	s.TopCountries = countries.top(topCountryCount)
	s.TopStatesUS = states.top(topStateCount)
	s.TopShapes = shapes.top(topShapeCount)

	if len(s.TopShapes) > 0 {
		s.MostCommonShape = s.TopShapes[0].Label
	}
	if len(s.TopShapes) > 1 {
		s.SecondMostCommonShape = s.TopShapes[1].Label
	}

	s.MedianDurationsByTopShapes = shapeMedians(sightings, s.TopShapes)

	if hasPeakHour {
		s.PeakHourDominantShape, s.TopShapesInPeakHourSummary = peakHourShapes(sightings, peakHour)
	}

	s.MedianDurationNightSeconds, s.MedianDurationDaySeconds = nightDayMedians(sightings)

	s.ProportionOver5MinPercent = proportionOver(durations, rules.LongDurationSeconds)
	s.ProportionOver1HourPercent = proportionOver(durations, rules.VeryLongDurationSeconds)

	return s
}

// medianOf returns a pointer-wrapped median, nil when values is empty.
func medianOf(values []float64) *float64 {
	m, ok := stats.Median(values)
	if !ok {
		return nil
	}
	return &m
}

// intCounts groups sightings by an integer category, ordered ascending by key.
func intCounts(sightings []domain.Sighting, key func(domain.Sighting) int) domain.CountList {
	counts := map[int]int{}
	for _, sg := range sightings {
		counts[key(sg)]++
	}
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make(domain.CountList, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.LabelCount{Label: strconv.Itoa(k), Count: counts[k]})
	}
	return out
}

// monthCounts groups by month in calendar order with 3-letter labels.
func monthCounts(sightings []domain.Sighting) domain.CountList {
	counts := map[int]int{}
	for _, sg := range sightings {
		counts[sg.Month]++
	}
	out := domain.CountList{}
	for m := 1; m <= 12; m++ {
		if n, ok := counts[m]; ok {
			out = append(out, domain.LabelCount{Label: monthAbbrev(m), Count: n})
		}
	}
	return out
}

func monthAbbrev(m int) string {
	return time.Month(m).String()[:3]
}

// peakIntCategory returns the category with the maximum count. Ties resolve
// to the smallest key among the maxima. ok is false for an empty set.
func peakIntCategory(sightings []domain.Sighting, key func(domain.Sighting) int) (int, bool) {
	counts := map[int]int{}
	for _, sg := range sightings {
		counts[key(sg)]++
	}
	if len(counts) == 0 {
		return 0, false
	}
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best, true
}

// shapeMedians computes the median duration for each of the top shapes,
// limited to the first shapeMedianCount entries of the ranking.
func shapeMedians(sightings []domain.Sighting, topShapes domain.CountList) map[string]*float64 {
	out := map[string]*float64{}
	limit := shapeMedianCount
	if len(topShapes) < limit {
		limit = len(topShapes)
	}
	for _, lc := range topShapes[:limit] {
		var durations []float64
		for i := range sightings {
			if sightings[i].Shape == lc.Label {
				durations = append(durations, sightings[i].DurationSeconds)
			}
		}
		if m, ok := stats.Median(durations); ok {
			rounded := stats.Round2(m)
			out[lc.Label] = &rounded
		} else {
			out[lc.Label] = nil
		}
	}
	return out
}

// peakHourShapes ranks the non-"various" shapes reported during the peak hour
// by relative frequency and renders the top entries as "Shape (pp.p%)".
func peakHourShapes(sightings []domain.Sighting, peakHour int) (dominant, summary string) {
	shapes := newCounter()
	total := 0
	for i := range sightings {
		sg := &sightings[i]
		if sg.Hour != peakHour || sg.Shape == domain.ShapeVarious {
			continue
		}
		shapes.add(sg.Shape)
		total++
	}
	top := shapes.top(peakHourShapeCount)
	if len(top) == 0 {
		return notAvailable, notAvailable
	}

	parts := make([]string, len(top))
	for i, lc := range top {
		pct := float64(lc.Count) / float64(total) * 100
		parts[i] = fmt.Sprintf("%s (%.1f%%)", capitalize(lc.Label), pct)
	}
	return top[0].Label, strings.Join(parts, ", ")
}

// nightDayMedians partitions by time of day and computes each partition's
// median duration.
func nightDayMedians(sightings []domain.Sighting) (night, day *float64) {
	var nightDur, dayDur []float64
	for i := range sightings {
		if isNightHour(sightings[i].Hour) {
			nightDur = append(nightDur, sightings[i].DurationSeconds)
		} else {
			dayDur = append(dayDur, sightings[i].DurationSeconds)
		}
	}
	return medianOf(nightDur), medianOf(dayDur)
}

// proportionOver returns the percentage of durations strictly greater than
// threshold, rounded to two decimals. Zero for an empty set.
func proportionOver(durations []float64, threshold float64) float64 {
	if len(durations) == 0 {
		return 0
	}
	count := 0
	for _, d := range durations {
		if d > threshold {
			count++
		}
	}
	return stats.Round2(float64(count) / float64(len(durations)) * 100)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
