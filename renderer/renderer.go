// Package renderer traces scenes into frames. Paths are integrated at
// hero wavelengths, accumulated on a sensor in CIE XYZ and developed
// into display pixels through the colorspace pipeline. Frame rows are
// distributed over a pool of workers that share the immutable scene
// and spectral tables without locking.
package renderer

import (
	"image"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/achilleasa/prism/colorspace"
	"github.com/achilleasa/prism/log"
	"github.com/achilleasa/prism/scene"
	"github.com/achilleasa/prism/spectral"
)

var logger = log.New("renderer")

// Render traces sc into a frame developed in gamut G with transfer
// function E. It blocks until every frame row has been traced.
func Render[G colorspace.Gamut, E colorspace.TransferFunc](sc *scene.Scene, opts Options) (*image.NRGBA, FrameStats, error) {
	if sc == nil {
		return nil, FrameStats{}, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, FrameStats{}, ErrCameraNotDefined
	}

	if opts.NumWorkers == 0 {
		opts.NumWorkers = uint32(runtime.NumCPU())
	}
	if opts.MinBouncesForRR == 0 {
		// Zero disables path elimination.
		opts.MinBouncesForRR = opts.NumBounces + 1
	}

	sensor, err := NewSensor[G, E](opts)
	if err != nil {
		return nil, FrameStats{}, err
	}

	sc.Camera.SetupProjection(float32(opts.FrameW) / float32(opts.FrameH))
	sc.Finalize()

	logger.Noticef("rendering %dx%d frame at %d samples per pixel with %d workers",
		opts.FrameW, opts.FrameH, opts.SamplesPerPixel, opts.NumWorkers)

	stats := FrameStats{Workers: make([]WorkerStat, opts.NumWorkers)}
	rows := make(chan uint32)
	start := time.Now()

	var wg sync.WaitGroup
	for workerID := uint32(0); workerID < opts.NumWorkers; workerID++ {
		wg.Add(1)
		go func(id uint32) {
			defer wg.Done()

			stat := &stats.Workers[id]
			stat.Id = id
			workerStart := time.Now()
			for y := range rows {
				renderRow(sc, sensor, &opts, y)
				stat.Rows++
			}
			stat.RenderTime = time.Since(workerStart)
		}(workerID)
	}

	for y := uint32(0); y < opts.FrameH; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	stats.RenderTime = time.Since(start)
	for i := range stats.Workers {
		stats.Workers[i].FramePercent = 100 * float32(stats.Workers[i].Rows) / float32(opts.FrameH)
	}

	return sensor.Image(), stats, nil
}

// renderRow traces every pixel of one frame row. The sample stream is
// seeded by row index so frames are reproducible for any worker
// count.
func renderRow[G colorspace.Gamut, E colorspace.TransferFunc](sc *scene.Scene, sensor *Sensor[G, E], opts *Options, y uint32) {
	rng := rand.New(rand.NewSource(opts.Seed + int64(y)))

	w := float32(opts.FrameW)
	h := float32(opts.FrameH)
	for x := uint32(0); x < opts.FrameW; x++ {
		for sample := uint32(0); sample < opts.SamplesPerPixel; sample++ {
			s := (float32(x) + rng.Float32()) / w
			t := 1 - (float32(y)+rng.Float32())/h

			wl := spectral.SampleUniform(rng.Float32())
			radiance := tracePath(sc, sc.Camera.Ray(s, t), &wl, opts, rng)
			sensor.AddSample(x, y, radiance.XYZ(&wl))
		}
	}
}
