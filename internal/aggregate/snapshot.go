package aggregate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/delaywise/flights-backend-go/internal/models"
)

// Snapshot file names inside the stats directory
const (
	AirlineStatsFile    = "airline_stats.json"
	AirportBusynessFile = "airport_busyness.json"
	FeatureSchemaFile   = "feature_schema.json"
	ManifestFile        = "manifest.json"
)

// Manifest records what a builder run scanned. It carries no timestamps so
// re-running on an unchanged corpus writes byte-identical output.
type Manifest struct {
	Root  string      `json:"root"`
	Files []FileStats `json:"files"`
}

// WriteSnapshot persists the finalized tables, the embedding feature schema
// and the run manifest into dir. Each document is written to a temp file and
// atomically renamed into place so readers never observe a partial table.
func WriteSnapshot(dir string, res Result, manifest Manifest, featureNames []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create stats dir: %w", err)
	}

	docs := []struct {
		name string
		data interface{}
	}{
		{AirlineStatsFile, res.AirlineStats},
		{AirportBusynessFile, res.AirportBusyness},
		{FeatureSchemaFile, map[string]interface{}{"features": featureNames}},
		{ManifestFile, manifest},
	}

	for _, doc := range docs {
		if err := writeJSONAtomic(filepath.Join(dir, doc.name), doc.data); err != nil {
			return err
		}
	}
	return nil
}

// LoadSnapshot reads the two aggregate tables back from dir. Missing files
// yield empty tables so a fresh deployment can serve before the first batch
// run (unknown airlines fall back to zeroed aggregates downstream).
func LoadSnapshot(dir string) (Result, error) {
	res := Result{
		AirlineStats:    make(map[string]models.AirlineStats),
		AirportBusyness: make(map[string]float64),
	}

	if err := readJSONIfExists(filepath.Join(dir, AirlineStatsFile), &res.AirlineStats); err != nil {
		return Result{}, err
	}
	if err := readJSONIfExists(filepath.Join(dir, AirportBusynessFile), &res.AirportBusyness); err != nil {
		return Result{}, err
	}
	return res, nil
}

func writeJSONAtomic(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func readJSONIfExists(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
