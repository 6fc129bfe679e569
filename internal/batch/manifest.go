package batch

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Manifest describes a rendered sequence.
type Manifest struct {
	Scene  string          `json:"scene"`
	Seed   uint64          `json:"seed"`
	Format string          `json:"format"`
	Size   int             `json:"size"`
	Frames []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one written frame.
type ManifestEntry struct {
	Frame int                `json:"frame"`
	Image string             `json:"image"`
	Stats map[string]float64 `json:"stats,omitempty"`
}

// NewManifest lists the successful results. Non-finite stats are left
// out since JSON has no encoding for them.
func NewManifest(scene string, seed uint64, format string, size int, results []Result) Manifest {
	m := Manifest{Scene: scene, Seed: seed, Format: format, Size: size, Frames: []ManifestEntry{}}
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{Frame: r.Frame, Image: r.Path, Stats: finite(r.Stats)})
	}
	return m
}

func finite(stats map[string]float64) map[string]float64 {
	if stats == nil {
		return nil
	}
	out := make(map[string]float64, len(stats))
	for k, v := range stats {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("batch: read %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("batch: parse %s: %w", path, err)
	}
	return m, nil
}
