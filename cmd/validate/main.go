// Command validate performs end-to-end integrity checks on the pipeline's
// output artifacts: it re-runs cleaning and summarization over the source CSV
// and verifies the summary and globe files on disk are internally consistent
// and match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -input data/ufo_sightings_scrubbed.csv \
//	  -summary data/eda_summary.json \
//	  -globe data/sightings_for_globe.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/skywatch/sightings-etl/internal/analysis"
	"github.com/skywatch/sightings-etl/internal/config"
	"github.com/skywatch/sightings-etl/internal/domain"
	"github.com/skywatch/sightings-etl/internal/globe"
	"github.com/skywatch/sightings-etl/internal/loader"
	"github.com/skywatch/sightings-etl/internal/observability"
	"github.com/skywatch/sightings-etl/internal/pipeline"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "path to the source sightings CSV")
	summaryPath := flag.String("summary", "", "path to the summary artifact")
	globePath := flag.String("globe", "", "path to the globe artifact")
	flag.Parse()

	if *input == "" || *summaryPath == "" || *globePath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*input, *summaryPath, *globePath); code != 0 {
		os.Exit(code)
	}
}

func run(input, summaryPath, globePath string) int {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		return 1
	}

	fmt.Println("=== Sightings Artifact Validation ===")
	fmt.Println()

	raws, columns, err := loader.LoadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load input CSV: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cleaner := pipeline.NewCleaner(cfg.Pipeline, columns, logger, observability.NewMetrics())
	cleans := cleaner.Clean(raws)
	expected := analysis.Summarize(cleans, cfg.Pipeline)
	expectedGlobe := globe.Export(cleans, cfg.Globe)

	var summary domain.Summary
	var points []domain.GlobePoint
	phases := []*phase{
		loadArtifacts(summaryPath, globePath, &summary, &points),
		validateSummary(&summary, &expected),
		validateGlobe(points, expectedGlobe),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-40s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d raw, %d clean, %d globe points\n", len(raws), len(cleans), len(points))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: artifact presence and shape ──

func loadArtifacts(summaryPath, globePath string, summary *domain.Summary, points *[]domain.GlobePoint) *phase {
	p := &phase{name: "Phase 1: Artifact files"}

	if err := loadJSONFile(summaryPath, summary); err != nil {
		p.errorf("summary artifact: %v", err)
	}
	if err := loadJSONFile(globePath, points); err != nil {
		p.errorf("globe artifact: %v", err)
	}
	return p
}

func loadJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// ── Phase 2: summary consistency ──

func validateSummary(actual, expected *domain.Summary) *phase {
	p := &phase{name: "Phase 2: Summary consistency"}

	if actual.TotalSightings != expected.TotalSightings {
		p.errorf("total_sightings: expected %d, got %d", expected.TotalSightings, actual.TotalSightings)
	}
	if !ptrFloatEq(actual.MedianDurationSecondsOverall, expected.MedianDurationSecondsOverall) {
		p.errorf("median_duration_seconds_overall mismatch")
	}
	if actual.PeakMonth != expected.PeakMonth {
		p.errorf("peak_month: expected %q, got %q", expected.PeakMonth, actual.PeakMonth)
	}
	if actual.PeakHourReadable != expected.PeakHourReadable {
		p.errorf("peak_hour_readable: expected %q, got %q", expected.PeakHourReadable, actual.PeakHourReadable)
	}
	if actual.MostCommonShape != expected.MostCommonShape {
		p.errorf("most_common_shape: expected %q, got %q", expected.MostCommonShape, actual.MostCommonShape)
	}

	// Each grouping must account for every clean record exactly once.
	for _, g := range []struct {
		name   string
		counts domain.CountList
	}{
		{"sightings_by_year", actual.SightingsByYear},
		{"sightings_by_month", actual.SightingsByMonth},
		{"sightings_by_hour", actual.SightingsByHour},
	} {
		if total := g.counts.Total(); total != actual.TotalSightings {
			p.errorf("%s sums to %d, want %d", g.name, total, actual.TotalSightings)
		}
	}

	if len(actual.TopCountries) > 5 {
		p.errorf("top_countries has %d entries (max 5)", len(actual.TopCountries))
	}
	if len(actual.TopShapes) > 10 {
		p.errorf("top_shapes has %d entries (max 10)", len(actual.TopShapes))
	}
	if _, found := actual.TopShapes.Get(domain.ShapeVarious); found {
		p.errorf("top_shapes contains the %q sentinel", domain.ShapeVarious)
	}
	if _, found := actual.TopCountries.Get(domain.CountryUnknown); found {
		p.errorf("top_countries contains the %q sentinel", domain.CountryUnknown)
	}
	return p
}

// ── Phase 3: globe constraints ──

func validateGlobe(actual, expected []domain.GlobePoint) *phase {
	p := &phase{name: "Phase 3: Globe constraints"}

	if len(actual) != len(expected) {
		p.errorf("point count: expected %d, got %d", len(expected), len(actual))
	}
	for i, pt := range actual {
		if pt.Lat < -90 || pt.Lat > 90 || pt.Lng < -180 || pt.Lng > 180 {
			p.errorf("point %d: coordinates out of range (%g, %g)", i, pt.Lat, pt.Lng)
		}
		if pt.Radius < 0.01 {
			p.errorf("point %d: radius %g below visible minimum", i, pt.Radius)
		}
		if i < len(expected) && !floatEq(pt.Radius, expected[i].Radius) {
			p.errorf("point %d: radius %g, expected %g", i, pt.Radius, expected[i].Radius)
		}
	}
	return p
}

// ── Helpers ──

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func ptrFloatEq(a, b *float64) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return floatEq(*a, *b)
}
