// Package loader reads the source CSV and hands the pipeline a normalized
// in-memory record set. It owns the two schema concerns the cleaner must not
// see: header-name normalization and the required-column precondition.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/skywatch/sightings-etl/internal/domain"
)

// ErrMissingColumn is wrapped by Read when a required column is absent from
// the input schema. This is a hard precondition failure: the pipeline cannot
// produce meaningful output without it.
var ErrMissingColumn = errors.New("required column missing")

// requiredColumns must all be present after header normalization.
var requiredColumns = []string{"datetime", "duration_seconds", "latitude", "longitude"}

// headerJunkRe strips everything outside [a-z0-9_] from a lowercased header,
// so "Duration (seconds)" and "durationseconds" normalize identically.
var headerJunkRe = regexp.MustCompile(`[^a-z0-9_]+`)

// headerRenames maps normalized header variants to canonical names.
var headerRenames = map[string]string{
	"durationseconds":  "duration_seconds",
	"durationseconds1": "duration_seconds",
	"durationhoursmin": "duration_hours_min",
}

// LoadFile reads and parses the CSV at path.
func LoadFile(path string) ([]domain.RawSighting, domain.Columns, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.Columns{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses CSV data into raw sightings. Rows with malformed field counts
// are skipped; a required column missing from the header is a hard error.
func Read(r io.Reader) ([]domain.RawSighting, domain.Columns, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, domain.Columns{}, fmt.Errorf("read header: %w", err)
	}

	index := indexColumns(header)
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, domain.Columns{}, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	columns := domain.Columns{
		Shape:   hasColumn(index, "shape"),
		Country: hasColumn(index, "country"),
		State:   hasColumn(index, "state"),
	}

	var raws []domain.RawSighting
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed line. Skip it, matching the forgiving posture of the
			// rest of the cleaning stages.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, domain.Columns{}, fmt.Errorf("read row: %w", err)
		}

		raws = append(raws, domain.RawSighting{
			Timestamp: cell(row, index, "datetime"),
			Duration:  cell(row, index, "duration_seconds"),
			Latitude:  cell(row, index, "latitude"),
			Longitude: cell(row, index, "longitude"),
			Shape:     cell(row, index, "shape"),
			Country:   cell(row, index, "country"),
			State:     cell(row, index, "state"),
		})
	}

	return raws, columns, nil
}

// indexColumns builds a normalized-name → position map. The first occurrence
// of a name wins when duplicates collide after normalization.
func indexColumns(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := normalizeHeader(h)
		if renamed, ok := headerRenames[name]; ok {
			name = renamed
		}
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return index
}

func normalizeHeader(h string) string {
	return headerJunkRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), "")
}

func hasColumn(index map[string]int, name string) bool {
	_, ok := index[name]
	return ok
}

func cell(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
