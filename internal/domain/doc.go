// Package domain models NUFORC-style UFO sighting report data.
//
// # Data Source
//
// Sighting reports originate from the National UFO Reporting Center (NUFORC)
// scrubbed CSV export. Each row is a single report with a free-text timestamp,
// a duration in seconds, WGS-84 coordinates, and optional shape/country/state
// columns. The export is community-maintained and noisy: timestamps use the
// non-existent hour "24:00", durations carry placeholder garbage (0, stray
// punctuation, multi-week values), and coordinates occasionally contain
// typos like "33q.200088".
//
// # Cleaning Conventions
//
// Timestamps:
//
//	US-style "M/D/YYYY HH:MM" is the dominant layout, with ISO 8601 variants
//	appearing in newer exports. Any value no accepted layout can parse drops
//	the record, including "24:00" hours.
//
// Durations:
//
//	Seconds as a decimal number. Values must be finite and strictly inside
//	(0, 604800): zero and negative values are placeholder encodings, and a
//	week-long sighting is treated as garbage. Both bounds are exclusive.
//
// Coordinates:
//
//	Latitude in [-90, 90] and longitude in [-180, 180], both inclusive.
//	Unparsable or out-of-range values drop the record.
//
// Categorical sentinels:
//
//	shape:   lowercased and trimmed; "unknown", "other", "nan", "", "na",
//	         "unspecified", and missing all collapse to "various".
//	country: lowercased and trimmed; "gb" is remapped to "uk" so United
//	         Kingdom reports aggregate under one label; empty becomes "unknown".
//	state:   uppercased and trimmed; empty becomes "UNKNOWN".
//
// Normalization never drops a record. When an optional column is absent from
// the input schema entirely, its normalization is skipped for the whole run
// and every record carries that column's missing sentinel.
package domain
