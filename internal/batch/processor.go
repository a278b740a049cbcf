package batch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"scene-raytracer/internal/imageio"
	"scene-raytracer/internal/postprocess"
	"scene-raytracer/internal/raster"
	"scene-raytracer/internal/scene"
	"scene-raytracer/internal/scenefile"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir   string
	Format      imageio.Format
	Render      raster.Options // output-resolution settings
	Tuning      scene.Tuning
	Supersample int // render at this multiple of the output size, then downsample
	OutputSize  int // if > 0, fit the final image so its longer side is this
	Workers     int // scenes rendered concurrently
}

// Job is one scene to render. File may be preloaded; otherwise Path is read.
type Job struct {
	Name string
	Path string
	File *scenefile.File
}

// Result holds the outcome of processing one job.
type Result struct {
	Name    string
	Scene   string
	Output  string
	Width   int
	Height  int
	Elapsed time.Duration
	Success bool
	Error   string
}

// JobsFromPaths names each job after its file stem.
func JobsFromPaths(paths []string) []Job {
	jobs := make([]Job, len(paths))
	for i, p := range paths {
		base := filepath.Base(p)
		jobs[i] = Job{Name: strings.TrimSuffix(base, filepath.Ext(base)), Path: p}
	}
	return jobs
}

// Run processes all jobs using a worker pool.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.2f scenes/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

// renderOptions returns the raster settings for file at the enlarged
// supersample resolution, plus the factor to downsample by afterwards.
// Defaults are resolved at output size so the factor applies to them too.
func renderOptions(cfg Config, file *scenefile.File) (raster.Options, int) {
	opts := file.ApplyRender(cfg.Render).WithDefaults()
	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}
	opts.Width *= ss
	opts.Height *= ss
	return opts, ss
}

func processJob(cfg Config, job Job) Result {
	start := time.Now()
	res := Result{Name: job.Name, Scene: job.Path}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.Elapsed = time.Since(start)
		return res
	}

	file := job.File
	if file == nil {
		var err error
		file, err = scenefile.Load(job.Path)
		if err != nil {
			return fail(err)
		}
	}

	tuning := cfg.Tuning
	if tuning == (scene.Tuning{}) {
		tuning = scene.DefaultTuning()
	}
	sc, err := file.BuildWithTuning(tuning)
	if err != nil {
		return fail(err)
	}

	opts, ss := renderOptions(cfg, file)

	img := raster.Render(sc, opts).Image()

	// Post-processing: supersample downsample
	if ss > 1 {
		img = postprocess.Downsample(img, ss)
	}
	if cfg.OutputSize > 0 {
		w, h := postprocess.FitWithin(img.Bounds(), cfg.OutputSize)
		img = postprocess.Resize(img, w, h)
	}

	format := cfg.Format
	if format == "" {
		format = imageio.PNG
	}
	outPath := filepath.Join(cfg.OutputDir, job.Name+format.Ext())
	if err := imageio.Save(outPath, img); err != nil {
		return fail(err)
	}

	res.Output = outPath
	res.Width = img.Bounds().Dx()
	res.Height = img.Bounds().Dy()
	res.Success = true
	res.Elapsed = time.Since(start)
	return res
}
