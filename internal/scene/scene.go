// Package scene holds host-owned simulation state: one value per running
// scenario, advanced a frame at a time by the caller's loop.
package scene

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/kartiksethi/ClothSimulation/internal/mathutil"
	"github.com/kartiksethi/ClothSimulation/internal/mesh"
)

// Simulation is a scenario driven by a frame loop. Step fully completes a
// frame; Frame and Stats may only be called between steps.
type Simulation interface {
	Name() string
	Step()
	Frame() mesh.Frame
	Stats() Stats
}

// Metric is a named engine-specific diagnostic.
type Metric struct {
	Name  string
	Value float64
}

// Stats is a per-frame diagnostic snapshot.
type Stats struct {
	Frame       int
	PinnedDrift float64 // largest distance a pinned point has moved; always 0
	NonFinite   int     // positions with a NaN or Inf component
	Metrics     []Metric
}

// LogValue groups the stats for structured logging.
func (s Stats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frame", s.Frame),
		slog.Float64("pinned_drift", s.PinnedDrift),
		slog.Int("non_finite", s.NonFinite),
	}
	for _, m := range s.Metrics {
		attrs = append(attrs, slog.Float64(m.Name, m.Value))
	}
	return slog.GroupValue(attrs...)
}

// Values flattens the stats into a name → value map.
func (s Stats) Values() map[string]float64 {
	m := map[string]float64{
		"pinned_drift": s.PinnedDrift,
		"non_finite":   float64(s.NonFinite),
	}
	for _, x := range s.Metrics {
		m[x.Name] = x.Value
	}
	return m
}

// Healthy reports whether the state is numerically sane.
func (s Stats) Healthy() bool {
	return s.NonFinite == 0 && s.PinnedDrift == 0
}

// Options override scenario defaults. Zero fields keep the default.
type Options struct {
	Seed uint64
	// Grid resolution: points along X and Y for hanging, columns and rows
	// for spheres.
	GridX, GridY int
}

// New builds the named scenario.
func New(name string, opts Options) (Simulation, error) {
	switch name {
	case "hanging":
		return NewHanging(HangingConfig{NumX: opts.GridX, NumY: opts.GridY, Seed: opts.Seed})
	case "spheres":
		return NewSpheres(SpheresConfig{Cols: opts.GridX, Rows: opts.GridY})
	}
	return nil, fmt.Errorf("scene: unknown scenario %q (want hanging or spheres)", name)
}

// Names lists the scenarios New accepts.
func Names() []string { return []string{"hanging", "spheres"} }

// anchors remembers where pinned points started.
type anchors map[int]mathutil.Vec3

func (a anchors) drift(pos func(int) mathutil.Vec3) float64 {
	var worst float64
	for i, p0 := range a {
		worst = math.Max(worst, pos(i).Sub(p0).Len())
	}
	return worst
}

func countNonFinite(pts []mathutil.Vec3) int {
	n := 0
	for _, p := range pts {
		if !p.IsFinite() {
			n++
		}
	}
	return n
}
