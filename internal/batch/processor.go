package batch

import (
	"cmp"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"github.com/kartiksethi/ClothSimulation/internal/postprocess"
)

// Config holds the shared settings of an encoding run.
type Config struct {
	OutputDir  string
	Format     string // webp or tga
	RenderSize int    // final edge length; larger images are downsampled
	Workers    int
	Logger     *slog.Logger // nil disables progress logging
}

// Job is one rendered frame waiting to be written.
type Job struct {
	Frame int
	Image *image.NRGBA
	Stats map[string]float64
}

// Result holds the outcome of writing one frame.
type Result struct {
	Frame   int
	Path    string
	Stats   map[string]float64
	Success bool
	Error   string
}

// Encoder downsamples and writes frames on a worker pool so the
// simulation loop never waits on compression.
type Encoder struct {
	cfg       Config
	jobs      chan Job
	wg        sync.WaitGroup
	mu        sync.Mutex
	results   []Result
	submitted atomic.Int64
	processed atomic.Int64
	done      chan struct{}
	start     time.Time
}

// NewEncoder creates the output directory and starts the workers.
func NewEncoder(cfg Config) (*Encoder, error) {
	switch cfg.Format {
	case "webp", "tga":
	default:
		return nil, fmt.Errorf("batch: format %q: want webp or tga", cfg.Format)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("batch: create %s: %w", cfg.OutputDir, err)
	}

	e := &Encoder{
		cfg:   cfg,
		jobs:  make(chan Job, cfg.Workers*2),
		done:  make(chan struct{}),
		start: time.Now(),
	}
	for w := 0; w < cfg.Workers; w++ {
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			for job := range e.jobs {
				r := e.process(job)
				e.mu.Lock()
				e.results = append(e.results, r)
				e.mu.Unlock()
				e.processed.Add(1)
			}
		}()
	}
	if cfg.Logger != nil {
		go e.report()
	}
	return e, nil
}

// Progress reporter
func (e *Encoder) report() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-e.done:
			return
		case <-ticker.C:
			p := e.processed.Load()
			if p > 0 {
				rate := float64(p) / time.Since(e.start).Seconds()
				e.cfg.Logger.Info("encoding",
					"written", p,
					"queued", e.submitted.Load()-p,
					"frames_per_sec", rate)
			}
		}
	}
}

// Submit queues a frame, blocking while every worker is busy. It returns
// ctx.Err() if the context ends first.
func (e *Encoder) Submit(ctx context.Context, job Job) error {
	select {
	case e.jobs <- job:
		e.submitted.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close waits for queued frames and returns every result ordered by frame.
// Submit must not be called after Close.
func (e *Encoder) Close() []Result {
	close(e.jobs)
	e.wg.Wait()
	close(e.done)

	e.mu.Lock()
	defer e.mu.Unlock()
	sortResults(e.results)
	return e.results
}

// FrameName is the file name of frame i in the given format.
func FrameName(i int, format string) string {
	return fmt.Sprintf("frame_%05d.%s", i, format)
}

func (e *Encoder) process(job Job) Result {
	r := Result{Frame: job.Frame, Stats: job.Stats}
	img := job.Image
	if s := e.cfg.RenderSize; s > 0 {
		img = postprocess.Downsample(img, s, s)
	}

	name := FrameName(job.Frame, e.cfg.Format)
	outPath := filepath.Join(e.cfg.OutputDir, name)
	f, err := os.Create(outPath)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	defer f.Close()

	if err := encode(f, img, e.cfg.Format); err != nil {
		r.Error = err.Error()
		return r
	}
	r.Path = name
	r.Success = true
	return r
}

func encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "webp":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
	case "tga":
		if err := tga.Encode(w, img); err != nil {
			return fmt.Errorf("TGA encode: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

func sortResults(rs []Result) {
	slices.SortFunc(rs, func(a, b Result) int { return cmp.Compare(a.Frame, b.Frame) })
}
