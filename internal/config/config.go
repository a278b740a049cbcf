package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"scene-raytracer/internal/geom"
	"scene-raytracer/internal/imageio"
	"scene-raytracer/internal/raster"
	"scene-raytracer/internal/scene"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	SceneDir  string `json:"scene_dir"`
	OutputDir string `json:"output_dir"`

	// Render settings
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Samples      int     `json:"samples"`
	Supersample  int     `json:"supersample"`
	OutputSize   int     `json:"output_size"`
	OutputFormat string  `json:"output_format"`
	Workers      int     `json:"workers"`
	RootEpsilon  float64 `json:"root_epsilon"`
	NormalOffset float64 `json:"normal_offset"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values; unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.SceneDir != "" {
		c.SceneDir = flags.SceneDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.OutputFormat = flags.Format
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Samples > 0 {
		c.Samples = flags.Samples
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.OutputSize > 0 {
		c.OutputSize = flags.OutputSize
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Resolve relative paths against base dir
	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}
	if c.SceneDir != "" && !filepath.IsAbs(c.SceneDir) {
		c.SceneDir = filepath.Join(c.BaseDir, c.SceneDir)
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "renders")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}

	// Defaults for render settings
	d := raster.DefaultOptions()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.Samples <= 0 {
		c.Samples = d.Samples
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.OutputFormat == "" {
		c.OutputFormat = string(imageio.PNG)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.RootEpsilon <= 0 {
		c.RootEpsilon = geom.DefaultEpsilon
	}
	if c.NormalOffset <= 0 {
		c.NormalOffset = scene.DefaultNormalOffset
	}
}

// Validate checks settings that Resolve cannot repair.
func (c *Config) Validate() error {
	if _, err := c.Format(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Supersample > 8 {
		return fmt.Errorf("config: supersample %d too large (max 8)", c.Supersample)
	}
	return nil
}

// Format returns the parsed output format.
func (c *Config) Format() (imageio.Format, error) {
	f, err := imageio.ParseFormat(c.OutputFormat)
	if err != nil {
		return "", err
	}
	if f == imageio.JPEG {
		return "", fmt.Errorf("%w: %q is decode-only", imageio.ErrUnknownFormat, c.OutputFormat)
	}
	return f, nil
}

// RenderOptions converts the settings for the raster package at output
// resolution, before any Supersample enlargement.
func (c *Config) RenderOptions() raster.Options {
	return raster.Options{
		Width:   c.Width,
		Height:  c.Height,
		Samples: c.Samples,
		Workers: c.Workers,
	}
}

// Tuning returns the tracer tolerances.
func (c *Config) Tuning() scene.Tuning {
	return scene.Tuning{RootEpsilon: c.RootEpsilon, NormalOffset: c.NormalOffset}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	SceneDir    string
	OutputDir   string
	Format      string
	Width       int
	Height      int
	Samples     int
	Supersample int
	OutputSize  int
	Workers     int
}
