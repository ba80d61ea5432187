package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are the accepted raw timestamp formats, tried in order.
// US-style month-first layouts dominate the NUFORC export; ISO variants
// appear in newer extracts.
var timestampLayouts = []string{
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02",
}

// variousShapes are the shape values that collapse to the "various" sentinel.
// "nan" covers upstream exports that stringified missing cells.
var variousShapes = map[string]bool{
	"unknown":     true,
	"other":       true,
	"nan":         true,
	"":            true,
	"na":          true,
	"unspecified": true,
}

// Sentinel values for normalized categorical fields.
const (
	ShapeVarious   = "various"
	CountryUnknown = "unknown"
	StateUnknown   = "UNKNOWN"
)

// ParseTimestamp parses a raw timestamp string. Returns false when no
// accepted layout matches, including out-of-range components such as the
// "24:00" hour that litters the raw data.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseNumber parses a raw numeric field. Returns false for unparsable input
// and for non-finite values: strconv accepts "NaN" and "Inf" spellings, but a
// clean record must carry a finite number.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// NormalizeShape lowercases and trims a raw shape, collapsing all the
// unknown/other spellings to the "various" sentinel.
func NormalizeShape(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if variousShapes[s] {
		return ShapeVarious
	}
	return s
}

// NormalizeCountry lowercases and trims a raw country code. "gb" is remapped
// to "uk" so United Kingdom reports aggregate under one label; empty input
// becomes the "unknown" sentinel.
func NormalizeCountry(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "gb":
		return "uk"
	case "", "nan":
		return CountryUnknown
	}
	return s
}

// NormalizeState uppercases and trims a raw state code; empty input becomes
// the "UNKNOWN" sentinel.
func NormalizeState(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "NAN" {
		return StateUnknown
	}
	return s
}
