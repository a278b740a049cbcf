package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Manifest describes one batch run.
type Manifest struct {
	RunID   string          `json:"run_id"`
	Created string          `json:"created"`
	Entries []ManifestEntry `json:"entries"`
}

// ManifestEntry represents one scene in the output manifest.
type ManifestEntry struct {
	Name      string `json:"name"`
	Scene     string `json:"scene,omitempty"`
	Image     string `json:"image,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Error     string `json:"error,omitempty"`
}

// NewRunID returns a fresh identifier for a batch run.
func NewRunID() string {
	return uuid.NewString()
}

// WriteManifest writes manifest.json; image paths are stored relative to
// the manifest's directory.
func WriteManifest(path, runID string, results []Result) error {
	dir := filepath.Dir(path)
	m := Manifest{
		RunID:   runID,
		Created: time.Now().UTC().Format(time.RFC3339),
		Entries: make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		img := r.Output
		if rel, err := filepath.Rel(dir, r.Output); err == nil && r.Output != "" {
			img = filepath.ToSlash(rel)
		}
		m.Entries[i] = ManifestEntry{
			Name:      r.Name,
			Scene:     r.Scene,
			Image:     img,
			Width:     r.Width,
			Height:    r.Height,
			ElapsedMS: r.Elapsed.Milliseconds(),
			Error:     r.Error,
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
