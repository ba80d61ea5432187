// Package artifact writes the pipeline's two JSON output files.
package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/skywatch/sightings-etl/internal/domain"
)

// WriteSummary writes the summary artifact, creating parent directories as
// needed. Undefined statistics serialize as null via the Summary's pointer
// fields, never as NaN.
func WriteSummary(path string, summary domain.Summary) error {
	return writeJSON(path, summary)
}

// WriteGlobe writes the globe artifact. A nil or empty point set produces a
// well-formed empty array, not a missing file.
func WriteGlobe(path string, points []domain.GlobePoint) error {
	if points == nil {
		points = []domain.GlobePoint{}
	}
	return writeJSON(path, points)
}

func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
