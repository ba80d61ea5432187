package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// RawSighting is one row of the source CSV after header normalization.
// All fields are loose text and may be malformed, missing, or out of range.
type RawSighting struct {
	Timestamp string
	Duration  string
	Latitude  string
	Longitude string
	Shape     string
	Country   string
	State     string
}

// Columns records which optional columns were present in the input schema.
// Presence is detected once by the loader and applied uniformly: an absent
// column skips its normalization stage for the entire run.
type Columns struct {
	Shape   bool
	Country bool
	State   bool
}

// Sighting is a cleaned report. Every field satisfies the invariants in the
// package documentation; a Sighting is never mutated after the cleaner
// produces it.
type Sighting struct {
	Timestamp       time.Time `json:"timestamp"`
	Year            int       `json:"year"`
	Month           int       `json:"month"`
	Hour            int       `json:"hour"`
	DurationSeconds float64   `json:"duration_seconds"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Shape           string    `json:"shape"`
	Country         string    `json:"country"`
	State           string    `json:"state"`
}

// LabelCount is one (category, count) pair of a grouped count or ranking.
type LabelCount struct {
	Label string
	Count int
}

// CountList is an ordered sequence of label/count pairs. It serializes as a
// JSON object whose keys appear in slice order, matching the summary artifact
// shape where category order is significant (calendar months, rank order).
type CountList []LabelCount

// Get returns the count for a label and whether the label is present.
func (c CountList) Get(label string) (int, bool) {
	for _, lc := range c {
		if lc.Label == label {
			return lc.Count, true
		}
	}
	return 0, false
}

// Total sums the counts across all labels.
func (c CountList) Total() int {
	n := 0
	for _, lc := range c {
		n += lc.Count
	}
	return n
}

func (c CountList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, lc := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(lc.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(lc.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *CountList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("count list: expected object, got %v", tok)
	}

	out := CountList{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("count list: non-string key %v", keyTok)
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("count list: value for %q: %w", key, err)
		}
		out = append(out, LabelCount{Label: key, Count: count})
	}
	*c = out
	return nil
}

// Summary is the statistical summary artifact. Field names mirror the JSON
// output; pointer fields serialize as null when the underlying statistic is
// undefined for the input (empty set, empty partition).
type Summary struct {
	TotalSightings               int      `json:"total_sightings"`
	MedianDurationSecondsOverall *float64 `json:"median_duration_seconds_overall"`

	PeakMonth         string `json:"peak_month"`
	PeakHourReadable  string `json:"peak_hour_readable"`
	PeakHourNumeric   *int   `json:"peak_hour_numeric"`
	PeakYearOfReports string `json:"peak_year_of_reports"`

	MostCommonShape       string `json:"most_common_shape"`
	SecondMostCommonShape string `json:"second_most_common_shape"`

	MedianDurationsByTopShapes map[string]*float64 `json:"median_durations_by_top_shapes"`

	TopShapesInPeakHourSummary string `json:"top_shapes_in_peak_hour_summary"`
	PeakHourDominantShape      string `json:"peak_hour_dominant_shape"`

	MedianDurationNightSeconds *float64 `json:"median_duration_night_seconds"`
	MedianDurationDaySeconds   *float64 `json:"median_duration_day_seconds"`

	ProportionOver5MinPercent  float64 `json:"proportion_over_5_min_percent"`
	ProportionOver1HourPercent float64 `json:"proportion_over_1_hour_percent"`

	SightingsByYear  CountList `json:"sightings_by_year"`
	SightingsByMonth CountList `json:"sightings_by_month"`
	SightingsByHour  CountList `json:"sightings_by_hour"`

	TopCountries CountList `json:"top_countries"`
	TopStatesUS  CountList `json:"top_states_us"`
	TopShapes    CountList `json:"top_shapes"`

	GeneratedAt time.Time `json:"generated_at"`
}

// GlobePoint is one render-ready point for the globe visualization.
type GlobePoint struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Alt    float64 `json:"alt"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}
