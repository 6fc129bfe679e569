package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/kartiksethi/ClothSimulation/internal/batch"
	"github.com/kartiksethi/ClothSimulation/internal/config"
	"github.com/kartiksethi/ClothSimulation/internal/mesh"
	"github.com/kartiksethi/ClothSimulation/internal/raster"
	"github.com/kartiksethi/ClothSimulation/internal/scene"
	"github.com/kartiksethi/ClothSimulation/internal/texture"
	"github.com/kartiksethi/ClothSimulation/internal/viewmatrix"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a .toml or .json config file")
	sceneName := flag.String("scene", "", "Scenario: hanging or spheres (default: spheres)")
	frames := flag.Int("frames", 0, "Number of frames to simulate (default: 300)")
	seed := flag.Uint64("seed", 0, "Perturbation seed (default: 1)")
	outputDir := flag.String("output", "", "Output directory (default: frames/<scene>)")
	format := flag.String("format", "", "Frame format: webp or tga (default: webp)")
	size := flag.Int("size", 0, "Output frame size in pixels (default: 256)")
	workers := flag.Int("workers", 0, "Number of encoder goroutines (default: NumCPU)")
	tex := flag.String("texture", "", "Optional cloth texture (PNG, JPEG, TGA or BMP)")
	verbose := flag.Bool("v", false, "Log per-frame diagnostics")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

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
		Scene:     *sceneName,
		Frames:    *frames,
		Seed:      *seed,
		OutputDir: *outputDir,
		Format:    *format,
		Size:      *size,
		Workers:   *workers,
		Texture:   *tex,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	opts := scene.Options{Seed: cfg.Seed, GridX: cfg.GridX, GridY: cfg.GridY}
	sim, err := scene.New(cfg.Scene, opts)
	if err != nil {
		return err
	}

	var textures texture.Resolver = texture.NewCache()
	var clothTex *image.NRGBA
	if cfg.Texture != "" {
		clothTex, err = textures.Resolve(cfg.Texture)
		if err != nil {
			return err
		}
	}
	bg, err := cfg.BackgroundRGBA()
	if err != nil {
		return err
	}

	cam := viewmatrix.Camera{
		Yaw:         cfg.Camera.Yaw,
		Pitch:       cfg.Camera.Pitch,
		Roll:        cfg.Camera.Roll,
		FOV:         cfg.Camera.FOV,
		Perspective: cfg.Camera.Perspective,
	}
	renderSize := cfg.RenderSize * cfg.Supersample
	framing, err := fit(ctx, cfg, opts, cam, renderSize, 16*cfg.Supersample)
	if err != nil {
		return err
	}

	// Print summary
	fmt.Printf("Cloth simulation → %s\n", cfg.Format)
	fmt.Printf("Scene: %s, Frames: %d (every %d), Seed: %d\n", cfg.Scene, cfg.Frames, cfg.RenderEvery, cfg.Seed)
	fmt.Printf("Size: %d (x%d supersample), Workers: %d\n", cfg.RenderSize, cfg.Supersample, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	enc, err := batch.NewEncoder(batch.Config{
		OutputDir:  cfg.OutputDir,
		Format:     cfg.Format,
		RenderSize: cfg.RenderSize,
		Workers:    cfg.Workers,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	rOpts := raster.Options{Texture: clothTex, Tile: cfg.TextureTile, Background: bg}
	var loopErr error
	unhealthy := 0
	for f := 0; f <= cfg.Frames; f++ {
		if f > 0 {
			sim.Step()
		}
		if f%cfg.RenderEvery != 0 {
			continue
		}
		st := sim.Stats()
		logger.Debug("frame", "stats", st)
		if !st.Healthy() {
			unhealthy++
			logger.Warn("unhealthy state", "stats", st)
		}
		img := raster.RenderFrame(sim.Frame(), &framing, rOpts)
		if err := enc.Submit(ctx, batch.Job{Frame: f, Image: img, Stats: st.Values()}); err != nil {
			loopErr = err
			break
		}
	}
	results := enc.Close()

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errs []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errs = append(errs, r)
		}
	}
	fmt.Printf("Written: %d/%d\n", success, len(results))
	if unhealthy > 0 {
		fmt.Printf("Unhealthy frames: %d\n", unhealthy)
	}

	if len(errs) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errs) < limit {
			limit = len(errs)
		}
		for _, e := range errs[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Frame, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	m := batch.NewManifest(cfg.Scene, cfg.Seed, cfg.Format, cfg.RenderSize, results)
	if err := batch.WriteManifest(manifestPath, m); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if errors.Is(loopErr, context.Canceled) {
		return fmt.Errorf("interrupted after %d frames", success)
	}
	if loopErr != nil {
		return loopErr
	}
	if failed > 0 {
		return fmt.Errorf("%d frames failed", failed)
	}
	return nil
}

// fit runs a throwaway copy of the scenario to collect reference frames,
// so the camera framing holds still for the whole sequence.
func fit(ctx context.Context, cfg config.Config, opts scene.Options, cam viewmatrix.Camera, size, margin int) (viewmatrix.Framing, error) {
	dry, err := scene.New(cfg.Scene, opts)
	if err != nil {
		return viewmatrix.Framing{}, err
	}
	refs := []mesh.Frame{dry.Frame()}
	every := max(cfg.Frames/20, 1)
	for f := 1; f <= cfg.Frames; f++ {
		if err := ctx.Err(); err != nil {
			return viewmatrix.Framing{}, err
		}
		dry.Step()
		if f%every == 0 || f == cfg.Frames {
			refs = append(refs, dry.Frame())
		}
	}
	return viewmatrix.Fit(cam, refs, size, margin), nil
}
