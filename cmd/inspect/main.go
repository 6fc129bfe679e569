package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"

	"github.com/kartiksethi/ClothSimulation/internal/scene"
)

func main() {
	sceneName := flag.String("scene", "hanging", "Scenario: hanging or spheres")
	frames := flag.Int("frames", 200, "Number of frames to simulate")
	every := flag.Int("every", 10, "Log diagnostics every N frames")
	seed := flag.Uint64("seed", 1, "Perturbation seed")
	gridX := flag.Int("x", 0, "Grid resolution along X (default: scenario)")
	gridY := flag.Int("y", 0, "Grid resolution along Y (default: scenario)")
	jsonLogs := flag.Bool("json", false, "Emit diagnostics as JSON lines")
	flag.Parse()

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, nil)
	if *jsonLogs {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	logger := slog.New(handler)

	sim, err := scene.New(*sceneName, scene.Options{Seed: *seed, GridX: *gridX, GridY: *gridY})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *every < 1 {
		*every = 1
	}

	f0 := sim.Frame()
	fmt.Printf("Scene: %s, vertices=%d, triangles=%d\n", sim.Name(), len(f0.Positions), len(f0.Triangles))

	peak := map[string]float64{}
	firstBad := -1
	for f := 1; f <= *frames; f++ {
		sim.Step()
		st := sim.Stats()
		for k, v := range st.Values() {
			peak[k] = math.Max(peak[k], v)
		}
		if !st.Healthy() && firstBad < 0 {
			firstBad = f
			logger.Warn("unhealthy state", "stats", st)
		}
		if f%*every == 0 || f == *frames {
			logger.Info("frame", "stats", st)
		}
	}

	last := sim.Frame()
	lo, hi := last.Bounds()
	fmt.Printf("BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])

	names := make([]string, 0, len(peak))
	for k := range peak {
		names = append(names, k)
	}
	sort.Strings(names)
	fmt.Println("Peak values:")
	for _, k := range names {
		fmt.Printf("  %-16s %.6g\n", k, peak[k])
	}

	if firstBad >= 0 {
		fmt.Printf("First unhealthy frame: %d\n", firstBad)
		os.Exit(1)
	}
}
