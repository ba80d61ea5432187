// Package report renders the summary as a human-readable console report.
// Pure presentation: it computes nothing, it only formats a Summary.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/skywatch/sightings-etl/internal/domain"
)

// Write renders the insight report to w.
func Write(w io.Writer, s domain.Summary) {
	fmt.Fprintln(w, "--- UFO Sightings EDA Insights ---")
	fmt.Fprintln(w)

	rows := [][2]string{
		{"Total cleaned sightings", fmt.Sprintf("%d", s.TotalSightings)},
		{"Overall median duration", formatSeconds(s.MedianDurationSecondsOverall)},
		{"Peak sighting month", s.PeakMonth},
		{"Peak sighting hour", s.PeakHourReadable},
		{"Year with most reports", s.PeakYearOfReports},
		{"Most common shape", s.MostCommonShape},
		{"Second most common shape", s.SecondMostCommonShape},
		{"Median duration (night)", formatSeconds(s.MedianDurationNightSeconds)},
		{"Median duration (day)", formatSeconds(s.MedianDurationDaySeconds)},
		{"Sightings over 5 minutes", fmt.Sprintf("%.2f%%", s.ProportionOver5MinPercent)},
		{"Sightings over 1 hour", fmt.Sprintf("%.2f%%", s.ProportionOver1HourPercent)},
	}
	writeAligned(w, rows)

	if len(s.TopShapes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Median duration by top shapes:")
		shapeRows := make([][2]string, 0, len(s.MedianDurationsByTopShapes))
		for _, lc := range s.TopShapes {
			median, ok := s.MedianDurationsByTopShapes[lc.Label]
			if !ok {
				continue
			}
			shapeRows = append(shapeRows, [2]string{"  " + lc.Label, formatSeconds(median)})
		}
		writeAligned(w, shapeRows)
	}

	if s.TopShapesInPeakHourSummary != "N/A" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "During peak hour (%s), top shapes: %s\n", s.PeakHourReadable, s.TopShapesInPeakHourSummary)
	}

	writeRanking(w, "Top countries", s.TopCountries)
	writeRanking(w, "Top US states", s.TopStatesUS)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- End of EDA Insights ---")
}

// writeAligned prints label/value pairs with the values in one column.
// runewidth keeps alignment correct for non-ASCII labels.
func writeAligned(w io.Writer, rows [][2]string) {
	width := 0
	for _, row := range rows {
		if rw := runewidth.StringWidth(row[0]); rw > width {
			width = rw
		}
	}
	for _, row := range rows {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(row[0]))
		fmt.Fprintf(w, "%s%s  %s\n", row[0], pad, row[1])
	}
}

func writeRanking(w io.Writer, title string, ranking domain.CountList) {
	if len(ranking) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", title)
	rows := make([][2]string, 0, len(ranking))
	for _, lc := range ranking {
		rows = append(rows, [2]string{"  " + lc.Label, fmt.Sprintf("%d", lc.Count)})
	}
	writeAligned(w, rows)
}

func formatSeconds(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2fs", *v)
}
