package raster

import (
	"sync"
	"sync/atomic"

	"scene-raytracer/internal/color"
	"scene-raytracer/internal/geom"
	"scene-raytracer/internal/mathutil"
	"scene-raytracer/internal/scene"
)

// Options controls the output raster.
type Options struct {
	Width   int
	Height  int
	Samples int // sub-samples per axis; each pixel traces Samples² rays
	Workers int // <= 1 renders on the calling goroutine

	// Progress, if set, is called after each finished row. It may be
	// called from several goroutines at once.
	Progress func(done, total int)
}

// DefaultOptions returns the reference 800×800, 3×3 supersampled setup.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 800, Samples: 3, Workers: 1}
}

// WithDefaults fills non-positive size and sample counts from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Samples <= 0 {
		o.Samples = d.Samples
	}
	return o
}

// Sampler maps pixel sub-samples to primary rays. The view plane sits at
// unit distance along the camera direction and spans ±tan(FOV/2) on both axes.
type Sampler struct {
	scene   *scene.Scene
	left    mathutil.Vec3
	up      mathutil.Vec3
	half    float64
	deltaX  float64
	deltaY  float64
	samples int
}

// NewSampler derives the screen basis once for a render.
func NewSampler(sc *scene.Scene, opts Options) *Sampler {
	opts = opts.WithDefaults()
	b := sc.Camera.Basis()
	return &Sampler{
		scene:   sc,
		left:    b.Left,
		up:      b.Up,
		half:    b.Half,
		deltaX:  b.Half * 2 / float64(opts.Width),
		deltaY:  b.Half * 2 / float64(opts.Height),
		samples: opts.Samples,
	}
}

// SubRay returns the primary ray for sub-sample (i, j) of pixel (x, y).
// Sub-samples sit at (k+1)/(N+1) of the pixel on each axis.
func (s *Sampler) SubRay(x, y, i, j int) geom.Ray {
	n := float64(s.samples + 1)
	sx := float64(i+1) / n
	sy := float64(j+1) / n

	leftOff := (s.half - (float64(x)+sx)*s.deltaX) / s.half
	upOff := (s.half - (float64(y)+sy)*s.deltaY) / s.half

	dir := s.scene.Camera.Direction.
		Add(s.left.Scale(leftOff)).
		Add(s.up.Scale(upOff))
	return geom.Ray{Origin: s.scene.Camera.Position, Direction: dir}
}

// Pixel traces every sub-sample of (x, y) and returns the channel-wise
// truncated average.
func (s *Sampler) Pixel(x, y int) color.RGB {
	var r, g, b int
	for i := 0; i < s.samples; i++ {
		for j := 0; j < s.samples; j++ {
			c := s.scene.Trace(s.SubRay(x, y, i, j))
			r += int(c.R)
			g += int(c.G)
			b += int(c.B)
		}
	}
	n := s.samples * s.samples
	return color.RGB{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}

func (s *Sampler) row(grid *Grid, y int) {
	for x := 0; x < grid.Width; x++ {
		grid.Set(x, y, s.Pixel(x, y))
	}
}

// Render traces the whole raster. Rows are independent, so with
// Workers > 1 they are spread over a worker pool; each row is written by
// exactly one worker and the result does not depend on the worker count.
func Render(sc *scene.Scene, opts Options) *Grid {
	opts = opts.WithDefaults()
	grid := NewGrid(opts.Width, opts.Height)
	s := NewSampler(sc, opts)

	total := opts.Height
	var done atomic.Int64
	finish := func() {
		d := done.Add(1)
		if opts.Progress != nil {
			opts.Progress(int(d), total)
		}
	}

	if opts.Workers <= 1 {
		for y := 0; y < total; y++ {
			s.row(grid, y)
			finish()
		}
		return grid
	}

	rowChan := make(chan int, opts.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rowChan {
				s.row(grid, y)
				finish()
			}
		}()
	}

	for y := 0; y < total; y++ {
		rowChan <- y
	}
	close(rowChan)

	wg.Wait()
	return grid
}
