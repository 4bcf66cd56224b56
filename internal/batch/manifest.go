package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"fe-shell-renderer/internal/vertexbuf"
)

// ManifestEntry represents one rendered state in the output manifest.
type ManifestEntry struct {
	State           string    `json:"state"`
	Image           string    `json:"image"`
	GLB             string    `json:"glb,omitempty"`
	Vertices        int       `json:"vertices"`
	MaxDisplacement float32   `json:"max_displacement,omitempty"`
	Levels          []float32 `json:"levels,omitempty"`
}

// Manifest is the document written to manifest.json.
type Manifest struct {
	Mode     string          `json:"color_mode"`
	Nodes    int             `json:"nodes"`
	Elements int             `json:"elements"`
	States   []ManifestEntry `json:"states"`
}

// NewManifest lists the successful results of a run.
func NewManifest(cfg Config, results []Result) Manifest {
	m := Manifest{
		Mode:     cfg.Mode.String(),
		Nodes:    cfg.Dataset.NodeCount(),
		Elements: cfg.Dataset.ElementCount(),
		States:   make([]ManifestEntry, 0, len(results)),
	}
	contourMode := cfg.Mode == vertexbuf.ColorByContour
	for _, r := range results {
		if !r.Success {
			continue
		}
		e := ManifestEntry{State: r.State, Image: r.Image, GLB: r.GLB, Vertices: r.Vertices}
		if contourMode {
			e.MaxDisplacement = r.Levels.Max()
			e.Levels = append([]float32(nil), r.Levels[:]...)
		}
		m.States = append(m.States, e)
	}
	return m
}

// WriteManifest writes the manifest as indented JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("batch: write manifest: %w", err)
	}
	return nil
}
