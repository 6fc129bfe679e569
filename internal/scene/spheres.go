package scene

import (
	"math"

	"github.com/kartiksethi/ClothSimulation/internal/mathutil"
	"github.com/kartiksethi/ClothSimulation/internal/mesh"
	"github.com/kartiksethi/ClothSimulation/internal/springmass"
)

var (
	ClothPrimary   = mesh.Color{R: 0.9, G: 0.1, B: 0.1, A: 1}
	ClothSecondary = mesh.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}
	BallColor      = mesh.Color{R: 0.5, G: 0.1, B: 0.6, A: 1}
)

// Ball is a collision sphere whose position is a function of the frame
// number.
type Ball struct {
	Center mathutil.Vec3
	Radius float64
	// Axis (0, 1 or 2) oscillates as Amplitude·cos(frame/Period).
	Axis      int
	Amplitude float64
	Period    float64
}

func (b *Ball) advance(frame int) {
	b.Center[b.Axis] = b.Amplitude * math.Cos(float64(frame)/b.Period)
}

// SpheresConfig configures the spring-mass cloth draped over moving balls.
// Zero values take the defaults of DefaultSpheresConfig. Gravity and Wind
// are pointers so that an explicit zero vector turns them off; nil means
// the default.
type SpheresConfig struct {
	Origin        mathutil.Vec3
	Width, Height float64
	Rows, Cols    int
	Mass          float64
	Gravity       *mathutil.Vec3 // per frame, before the dt² factor
	Wind          *mathutil.Vec3
	Balls         []Ball
}

// DefaultSpheresConfig is a 14×10 cloth hung from its top row between two
// oscillating balls.
func DefaultSpheresConfig() SpheresConfig {
	return SpheresConfig{
		Origin:  mathutil.Vec3{0, -2, 0},
		Width:   14,
		Height:  10,
		Rows:    45,
		Cols:    55,
		Mass:    1,
		Gravity: &mathutil.Vec3{0, -0.2, 0},
		Wind:    &mathutil.Vec3{0.001, 0, 0.01},
		Balls: []Ball{
			{Center: mathutil.Vec3{7, -5, 0}, Radius: 2, Axis: 2, Amplitude: 7, Period: 50},
			{Center: mathutil.Vec3{4, -5, 2}, Radius: 2, Axis: 0, Amplitude: 2, Period: 50},
		},
	}
}

func (cfg *SpheresConfig) fill() {
	def := DefaultSpheresConfig()
	if cfg.Width == 0 && cfg.Height == 0 {
		cfg.Origin, cfg.Width, cfg.Height = def.Origin, def.Width, def.Height
	}
	if cfg.Rows == 0 {
		cfg.Rows = def.Rows
	}
	if cfg.Cols == 0 {
		cfg.Cols = def.Cols
	}
	if cfg.Mass == 0 {
		cfg.Mass = def.Mass
	}
	if cfg.Gravity == nil {
		cfg.Gravity = def.Gravity
	}
	if cfg.Wind == nil {
		cfg.Wind = def.Wind
	}
	if cfg.Balls == nil {
		cfg.Balls = def.Balls
	}
}

// Spheres is a spring-mass cloth pinned along its top row with wind,
// gravity and moving collision balls.
type Spheres struct {
	cloth   *springmass.Cloth
	gravity mathutil.Vec3
	wind    mathutil.Vec3
	balls   []Ball
	anchors anchors
	frame   int
}

func NewSpheres(cfg SpheresConfig) (*Spheres, error) {
	cfg.fill()
	c, err := springmass.New(springmass.Config{
		Origin: cfg.Origin,
		Width:  cfg.Width,
		Height: cfg.Height,
		Rows:   cfg.Rows,
		Cols:   cfg.Cols,
		Mass:   cfg.Mass,
	})
	if err != nil {
		return nil, err
	}
	if err := c.PinRow(0); err != nil {
		return nil, err
	}
	dt2 := springmass.DefaultTimeStep * springmass.DefaultTimeStep
	s := &Spheres{
		cloth:   c,
		gravity: cfg.Gravity.Scale(dt2),
		wind:    cfg.Wind.Scale(dt2),
		balls:   append([]Ball(nil), cfg.Balls...),
		anchors: anchors{},
	}
	for j := 0; j < cfg.Cols; j++ {
		i := c.Index(0, j)
		s.anchors[i] = c.Position(i)
	}
	c.MakeNormals()
	return s, nil
}

func (s *Spheres) Name() string { return "spheres" }

// Cloth exposes the engine for inspection.
func (s *Spheres) Cloth() *springmass.Cloth { return s.cloth }

// Balls returns the current collision spheres.
func (s *Spheres) Balls() []Ball { return append([]Ball(nil), s.balls...) }

// Step moves the balls, applies gravity and wind, simulates and resolves
// collisions against every ball.
func (s *Spheres) Step() {
	s.frame++
	for i := range s.balls {
		s.balls[i].advance(s.frame)
	}
	s.cloth.ApplyUniformForce(s.gravity)
	s.cloth.ApplyTriangleNormalForce(s.wind)
	s.cloth.Simulate()
	for _, b := range s.balls {
		s.cloth.ResolveSphereCollision(b.Center, b.Radius)
	}
	s.cloth.MakeNormals()
}

// Frame returns the striped cloth plus the balls, drawn slightly smaller
// than their collision radius.
func (s *Spheres) Frame() mesh.Frame {
	f := s.cloth.Frame(ClothPrimary, ClothSecondary)
	for _, b := range s.balls {
		f.Append(mesh.Sphere(b.Center, b.Radius-0.1, 24, 32, BallColor), BallColor)
	}
	return f
}

func (s *Spheres) Stats() Stats {
	e := s.cloth.ConstraintError()
	var inside float64
	for _, b := range s.balls {
		for i := 0; i < s.cloth.NumParticles(); i++ {
			if !s.cloth.Movable(i) {
				continue
			}
			d := b.Radius - s.cloth.Position(i).Sub(b.Center).Len()
			inside = math.Max(inside, d)
		}
	}
	return Stats{
		Frame:       s.frame,
		PinnedDrift: s.anchors.drift(s.cloth.Position),
		NonFinite:   countNonFinite(s.cloth.Positions()),
		Metrics: []Metric{
			{"constraint_max", e.Max},
			{"constraint_mean", e.Mean},
			{"penetration", inside},
		},
	}
}
