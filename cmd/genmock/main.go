// Command genmock generates a noisy mock sightings CSV for the test suites
// and prints aggregate stats computed with the actual cleaning and summary
// code, so fixture expectations always match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out testdata/mock_sightings.csv -rows 2000 -seed 7
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/skywatch/sightings-etl/internal/analysis"
	"github.com/skywatch/sightings-etl/internal/config"
	"github.com/skywatch/sightings-etl/internal/domain"
	"github.com/skywatch/sightings-etl/internal/observability"
	"github.com/skywatch/sightings-etl/internal/pipeline"
)

var (
	shapes    = []string{"light", "circle", "triangle", "disk", "fireball", "oval", "cigar", "unknown", "other", ""}
	countries = []string{"us", "us", "us", "ca", "gb", "au", "de", ""}
	states    = []string{"CA", "TX", "FL", "WA", "NY", "AZ", "OR", ""}
)

func main() {
	out := flag.String("out", "testdata/mock_sightings.csv", "output CSV path")
	rows := flag.Int("rows", 2000, "number of rows to generate")
	seed := flag.Int64("seed", 7, "PRNG seed for reproducible fixtures")
	flag.Parse()

	if err := run(*out, *rows, *seed); err != nil {
		log.Fatal(err)
	}
}

func run(out string, rows int, seed int64) error {
	r := rand.New(rand.NewSource(seed))

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"datetime", "duration (seconds)", "shape", "country", "state", "latitude", "longitude"}); err != nil {
		return err
	}

	raws := make([]domain.RawSighting, 0, rows)
	for i := 0; i < rows; i++ {
		raw := mockRow(r)
		raws = append(raws, raw)
		record := []string{raw.Timestamp, raw.Duration, raw.Shape, raw.Country, raw.State, raw.Latitude, raw.Longitude}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	log.Printf("wrote %d rows: %s", rows, out)

	printStats(raws)
	return nil
}

// mockRow produces one raw record. Roughly one in eight rows carries a
// deliberate defect mirroring the quirks of the real export.
func mockRow(r *rand.Rand) domain.RawSighting {
	ts := time.Date(1990+r.Intn(25), time.Month(1+r.Intn(12)), 1+r.Intn(28),
		r.Intn(24), r.Intn(60), 0, 0, time.UTC)

	raw := domain.RawSighting{
		Timestamp: fmt.Sprintf("%d/%d/%d %02d:%02d", ts.Month(), ts.Day(), ts.Year(), ts.Hour(), ts.Minute()),
		Duration:  strconv.FormatFloat(float64(5+r.Intn(7200)), 'f', -1, 64),
		Latitude:  strconv.FormatFloat(-90+r.Float64()*180, 'f', 6, 64),
		Longitude: strconv.FormatFloat(-180+r.Float64()*360, 'f', 6, 64),
		Shape:     shapes[r.Intn(len(shapes))],
		Country:   countries[r.Intn(len(countries))],
		State:     states[r.Intn(len(states))],
	}

	switch r.Intn(8) {
	case 0:
		// The infamous non-existent hour in the NUFORC export.
		raw.Timestamp = fmt.Sprintf("%d/%d/%d 24:00", ts.Month(), ts.Day(), ts.Year())
	case 1:
		raw.Duration = []string{"0", "-30", "604800", "2`", ""}[r.Intn(5)]
	case 2:
		raw.Latitude = []string{"33q.200088", "", "95.1"}[r.Intn(3)]
	}
	return raw
}

// printStats runs the real cleaner and summary over the generated set and
// prints the numbers test assertions care about.
func printStats(raws []domain.RawSighting) {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	columns := domain.Columns{Shape: true, Country: true, State: true}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cleaner := pipeline.NewCleaner(cfg.Pipeline, columns, logger, observability.NewMetrics())

	cleans := cleaner.Clean(raws)
	summary := analysis.Summarize(cleans, cfg.Pipeline)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Raw: %d, clean: %d, dropped: %d\n", len(raws), len(cleans), len(raws)-len(cleans))
	fmt.Printf("Peak month: %s, peak hour: %s, peak year: %s\n",
		summary.PeakMonth, summary.PeakHourReadable, summary.PeakYearOfReports)
	fmt.Printf("Most common shape: %s (second: %s)\n", summary.MostCommonShape, summary.SecondMostCommonShape)
	if summary.MedianDurationSecondsOverall != nil {
		fmt.Printf("Overall median duration: %.2fs\n", *summary.MedianDurationSecondsOverall)
	}
	fmt.Printf("Over 5 min: %.2f%%, over 1 hour: %.2f%%\n",
		summary.ProportionOver5MinPercent, summary.ProportionOver1HourPercent)

	fmt.Print("Top countries: ")
	for _, lc := range summary.TopCountries {
		fmt.Printf("%s=%d ", lc.Label, lc.Count)
	}
	fmt.Println()
	fmt.Print("Top shapes: ")
	for _, lc := range summary.TopShapes {
		fmt.Printf("%s=%d ", lc.Label, lc.Count)
	}
	fmt.Println()
}
