package scene

import (
	"github.com/kartiksethi/ClothSimulation/internal/continuum"
	"github.com/kartiksethi/ClothSimulation/internal/mesh"
)

// HangingColor is the cloth color of the hanging scenario.
var HangingColor = mesh.Color{R: 0.5, G: 0.5, B: 0.9, A: 1}

// HangingConfig configures the continuum cloth hanging from two corners.
type HangingConfig struct {
	NumX, NumY int // default 10 × 30
	Seed       uint64
	Tuning     *continuum.Tuning
}

// Hanging is a continuum cloth pinned at two corners and left to fall.
type Hanging struct {
	cloth   *continuum.Cloth
	anchors anchors
	frame   int
}

func NewHanging(cfg HangingConfig) (*Hanging, error) {
	if cfg.NumX == 0 {
		cfg.NumX = 10
	}
	if cfg.NumY == 0 {
		cfg.NumY = 30
	}
	c, err := continuum.New(continuum.Config{
		NumX:   cfg.NumX,
		NumY:   cfg.NumY,
		Seed:   cfg.Seed,
		Tuning: cfg.Tuning,
	})
	if err != nil {
		return nil, err
	}
	h := &Hanging{cloth: c, anchors: anchors{}}
	for i := 0; i < c.NumPoints(); i++ {
		if !c.Movable(i) {
			h.anchors[i] = c.Point(i)
		}
	}
	return h, nil
}

func (h *Hanging) Name() string { return "hanging" }

// Cloth exposes the engine for inspection.
func (h *Hanging) Cloth() *continuum.Cloth { return h.cloth }

func (h *Hanging) Step() {
	h.cloth.Update()
	h.frame++
}

func (h *Hanging) Frame() mesh.Frame {
	f := h.cloth.Frame()
	f.Colors = make([]mesh.Color, len(f.Triangles))
	for i := range f.Colors {
		f.Colors[i] = HangingColor
	}
	// Pins sit at v = 1; images store rows top-down.
	for i, uv := range f.UVs {
		f.UVs[i][1] = 1 - uv[1]
	}
	return f
}

func (h *Hanging) Stats() Stats {
	r := h.cloth.Residuals()
	return Stats{
		Frame:       h.frame,
		PinnedDrift: h.anchors.drift(h.cloth.Point),
		NonFinite:   countNonFinite(h.cloth.Points()),
		Metrics: []Metric{
			{"stretch_x", r.StretchX},
			{"stretch_y", r.StretchY},
			{"shear", r.Shear},
			{"bend", r.Bend},
		},
	}
}
