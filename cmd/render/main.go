package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"scene-raytracer/internal/batch"
	"scene-raytracer/internal/config"
	"scene-raytracer/internal/scenefile"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sceneName := flag.String("scene", "", "Scene file path, or scene name looked up in the scene directory")
	sceneDir := flag.String("scenes", "", "Directory of *.json scene files to render (default: all of them)")
	outputDir := flag.String("output", "", "Output directory (default: <base>/renders)")
	format := flag.String("format", "", "Output format: png, webp, tga, bmp, tiff (default: png)")
	width := flag.Int("width", 0, "Image width in pixels (default: 800)")
	height := flag.Int("height", 0, "Image height in pixels (default: 800)")
	samples := flag.Int("samples", 0, "Sub-samples per pixel axis (default: 3)")
	supersample := flag.Int("supersample", 0, "Render at N times the size, then downsample (default: 1)")
	size := flag.Int("size", 0, "Fit the final image so its longer side is this many pixels")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		SceneDir:    *sceneDir,
		OutputDir:   *outputDir,
		Format:      *format,
		Width:       *width,
		Height:      *height,
		Samples:     *samples,
		Supersample: *supersample,
		OutputSize:  *size,
		Workers:     *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	outFormat, _ := cfg.Format()

	jobs, err := collectJobs(cfg, *sceneName, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(jobs) == 0 {
		fmt.Println("No scenes to render.")
		os.Exit(0)
	}

	// A single scene spreads its rows over every worker; several scenes
	// get one worker each.
	renderOpts := cfg.RenderOptions()
	sceneWorkers := cfg.Workers
	if len(jobs) == 1 {
		sceneWorkers = 1
	} else {
		renderOpts.Workers = 1
	}

	fmt.Printf("Scene ray tracer → %s\n", outFormat)
	fmt.Printf("Scenes: %d, Size: %dx%d, Samples: %d, Workers: %d\n",
		len(jobs), cfg.Width, cfg.Height, cfg.Samples, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Format:      outFormat,
		Render:      renderOpts,
		Tuning:      cfg.Tuning(),
		Supersample: cfg.Supersample,
		OutputSize:  cfg.OutputSize,
		Workers:     sceneWorkers,
	}

	results := batch.Run(batchCfg, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(jobs))
	if len(jobs) == 1 && success == 1 {
		fmt.Printf("Image: %s\n", results[0].Output)
	}

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, batch.NewRunID(), results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// collectJobs picks what to render: an explicit -scene, positional scene
// paths, every scene in the scene directory, or the built-in demo scene.
func collectJobs(cfg config.Config, name string, args []string) ([]batch.Job, error) {
	var idx *scenefile.Index
	if cfg.SceneDir != "" {
		idx = scenefile.BuildIndex(cfg.SceneDir)
		fmt.Printf("Scenes indexed: %d in %s\n", idx.Len(), cfg.SceneDir)
	}

	var paths []string
	if name != "" {
		args = append([]string{name}, args...)
	}
	for _, a := range args {
		p, err := resolveScene(idx, a)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if len(paths) > 0 {
		return batch.JobsFromPaths(paths), nil
	}

	if idx != nil {
		return batch.JobsFromPaths(idx.Paths()), nil
	}

	return []batch.Job{{Name: "render", File: scenefile.Default()}}, nil
}

func resolveScene(idx *scenefile.Index, name string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}
	if idx != nil {
		if p, ok := idx.ResolvePath(name); ok {
			return p, nil
		}
	}
	return "", fmt.Errorf("scene %q not found", name)
}
