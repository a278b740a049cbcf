package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"scene-raytracer/internal/imageio"
)

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	doc := `{
  "base_dir": "` + filepath.ToSlash(dir) + `",
  "scene_dir": "scenes",
  "width": 320,
  "samples": 4,
  "output_format": "webp",
  "root_epsilon": 0.001
}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{Samples: 2, Supersample: 2})

	if cfg.SceneDir != filepath.Join(cfg.BaseDir, "scenes") {
		t.Errorf("scene dir = %q", cfg.SceneDir)
	}
	if cfg.OutputDir != filepath.Join(cfg.BaseDir, "renders") {
		t.Errorf("output dir = %q", cfg.OutputDir)
	}
	if cfg.Width != 320 || cfg.Height != 800 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Samples != 2 {
		t.Errorf("flag should override samples, got %d", cfg.Samples)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("workers = %d", cfg.Workers)
	}
	if cfg.RootEpsilon != 0.001 || cfg.NormalOffset != 1e-6 {
		t.Errorf("epsilons = %v, %v", cfg.RootEpsilon, cfg.NormalOffset)
	}

	f, err := cfg.Format()
	if err != nil || f != imageio.WebP {
		t.Errorf("format = %q, %v", f, err)
	}

	opts := cfg.RenderOptions()
	if opts.Width != 320 || opts.Height != 800 || opts.Samples != 2 {
		t.Errorf("render options = %+v", opts)
	}
	tun := cfg.Tuning()
	if tun.RootEpsilon != 0.001 {
		t.Errorf("tuning = %+v", tun)
	}
}

func TestResolve_Defaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	if cfg.Width != 800 || cfg.Height != 800 || cfg.Samples != 3 || cfg.Supersample != 1 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.OutputFormat != "png" {
		t.Errorf("format = %q", cfg.OutputFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{OutputFormat: "jpeg"}
	cfg.Resolve(Flags{})
	if err := cfg.Validate(); err == nil {
		t.Error("jpeg output accepted")
	}

	cfg = Config{OutputFormat: "png", Supersample: 16}
	cfg.Resolve(Flags{})
	if err := cfg.Validate(); err == nil {
		t.Error("supersample 16 accepted")
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file loaded")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("bad json loaded")
	}

	// WebP output is lossless, so there is no quality knob to carry.
	stale := filepath.Join(dir, "stale.json")
	if err := os.WriteFile(stale, []byte(`{"width": 64, "webp_quality": 90}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(stale); err == nil || !strings.Contains(err.Error(), "webp_quality") {
		t.Errorf("unknown key: got %v", err)
	}
}
