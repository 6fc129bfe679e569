// Package springmass simulates cloth as a grid of Verlet particles held
// together by distance constraints that are relaxed a fixed number of
// times per frame.
//
// A frame is sequenced by the caller: apply external forces, Simulate,
// resolve collisions, then MakeNormals before reading geometry.
package springmass

import (
	"fmt"

	"github.com/kartiksethi/ClothSimulation/internal/mathutil"
	"github.com/kartiksethi/ClothSimulation/internal/mesh"
)

const (
	DefaultDamping    = 0.01
	DefaultTimeStep   = 0.5
	DefaultIterations = 15
)

// Config describes a cloth to build. Rows run down -Y from Origin and
// columns along +X.
type Config struct {
	Origin        mathutil.Vec3
	Width, Height float64
	Rows, Cols    int
	Mass          float64 // per particle

	Damping    float64 // 0 means DefaultDamping
	TimeStep   float64 // 0 means DefaultTimeStep
	Iterations int     // 0 means DefaultIterations
}

// Cloth is a Rows × Cols particle grid.
type Cloth struct {
	rows, cols int
	damping    float64
	timeStep   float64
	iterations int

	particles   []particle
	constraints []constraint
	triangles   [][3]int
}

// New lays out the particles and builds every constraint and triangle once.
func New(cfg Config) (*Cloth, error) {
	if cfg.Rows < 2 || cfg.Cols < 2 {
		return nil, fmt.Errorf("springmass: grid %dx%d: need at least 2x2 particles", cfg.Rows, cfg.Cols)
	}
	if cfg.Mass <= 0 {
		return nil, fmt.Errorf("springmass: mass %g: must be positive", cfg.Mass)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("springmass: size %gx%g: must be positive", cfg.Width, cfg.Height)
	}
	c := &Cloth{
		rows:       cfg.Rows,
		cols:       cfg.Cols,
		damping:    orDefault(cfg.Damping, DefaultDamping),
		timeStep:   orDefault(cfg.TimeStep, DefaultTimeStep),
		iterations: cfg.Iterations,
	}
	if c.iterations <= 0 {
		c.iterations = DefaultIterations
	}

	dx := cfg.Width / float64(cfg.Cols)
	dy := cfg.Height / float64(cfg.Rows)
	c.particles = make([]particle, 0, cfg.Rows*cfg.Cols)
	for i := 0; i < cfg.Rows; i++ {
		for j := 0; j < cfg.Cols; j++ {
			pos := mathutil.Vec3{float64(j) * dx, -float64(i) * dy, 0}.Add(cfg.Origin)
			c.particles = append(c.particles, newParticle(pos, cfg.Mass))
		}
	}
	c.build()
	return c, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func (c *Cloth) index(i, j int) int { return i*c.cols + j }

// build adds constraints and triangles in a fixed per-particle order. The
// order matters: relaxation is Gauss-Seidel in insertion order.
func (c *Cloth) build() {
	for i := 0; i < c.rows; i++ {
		for j := 0; j < c.cols; j++ {
			if j < c.cols-1 {
				c.link(i, j, i, j+1, Structural)
			}
			if i < c.rows-1 {
				c.link(i, j, i+1, j, Structural)
			}
			if j < c.cols-1 && i < c.rows-1 {
				c.link(i, j, i+1, j+1, Shear)
				c.link(i+1, j, i, j+1, Shear)
				c.triangles = append(c.triangles,
					[3]int{c.index(i+1, j), c.index(i, j), c.index(i, j+1)},
					[3]int{c.index(i+1, j+1), c.index(i+1, j), c.index(i, j+1)},
				)
			}
			if j < c.cols-2 {
				c.link(i, j, i, j+2, Bend)
			}
			if i < c.rows-2 {
				c.link(i, j, i+2, j, Bend)
			}
			if j < c.cols-2 && i < c.rows-2 {
				c.link(i, j, i+2, j+2, Bend)
				c.link(i+2, j, i, j+2, Bend)
			}
		}
	}
}

func (c *Cloth) link(i1, j1, i2, j2 int, kind Kind) {
	a, b := c.index(i1, j1), c.index(i2, j2)
	rest := c.particles[b].pos.Sub(c.particles[a].pos).Len()
	c.constraints = append(c.constraints, constraint{a: a, b: b, rest: rest, kind: kind})
}

// Pin makes the particle at (row, col) permanently immovable.
func (c *Cloth) Pin(row, col int) error {
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return fmt.Errorf("springmass: pin (%d, %d): outside %dx%d grid", row, col, c.rows, c.cols)
	}
	c.particles[c.index(row, col)].movable = false
	return nil
}

// PinRow pins every particle of a row.
func (c *Cloth) PinRow(row int) error {
	for j := 0; j < c.cols; j++ {
		if err := c.Pin(row, j); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cloth) Size() (rows, cols int) { return c.rows, c.cols }
func (c *Cloth) NumParticles() int      { return len(c.particles) }
func (c *Cloth) NumConstraints() int    { return len(c.constraints) }
func (c *Cloth) NumTriangles() int      { return len(c.triangles) }

// Index returns the flat particle index of (row, col).
func (c *Cloth) Index(row, col int) int { return c.index(row, col) }

func (c *Cloth) Position(i int) mathutil.Vec3 { return c.particles[i].pos }
func (c *Cloth) Normal(i int) mathutil.Vec3   { return c.particles[i].normal }
func (c *Cloth) Movable(i int) bool           { return c.particles[i].movable }
func (c *Cloth) Triangle(t int) [3]int        { return c.triangles[t] }

// Constraint returns the endpoints, rest length and kind of constraint k.
func (c *Cloth) Constraint(k int) (a, b int, rest float64, kind Kind) {
	con := c.constraints[k]
	return con.a, con.b, con.rest, con.kind
}

// Positions returns a copy of every particle position.
func (c *Cloth) Positions() []mathutil.Vec3 {
	out := make([]mathutil.Vec3, len(c.particles))
	for i := range c.particles {
		out[i] = c.particles[i].pos
	}
	return out
}

// SetPosition teleports particle i, resetting its implicit velocity.
func (c *Cloth) SetPosition(i int, pos mathutil.Vec3) {
	c.particles[i].pos = pos
	c.particles[i].old = pos
}

// Frame copies the current geometry for a renderer. Triangles alternate
// primary and secondary colors. UVs follow the grid so a texture spans the
// whole cloth.
func (c *Cloth) Frame(primary, secondary mesh.Color) mesh.Frame {
	n := len(c.particles)
	f := mesh.Frame{
		Positions: make([]mathutil.Vec3, n),
		Normals:   make([]mathutil.Vec3, n),
		UVs:       make([]mathutil.Vec2, n),
		Triangles: append([][3]int(nil), c.triangles...),
		Colors:    make([]mesh.Color, len(c.triangles)),
	}
	for i, p := range c.particles {
		f.Positions[i] = p.pos
		f.Normals[i] = p.normal
		f.UVs[i] = mathutil.Vec2{
			float64(i%c.cols) / float64(c.cols-1),
			float64(i/c.cols) / float64(c.rows-1),
		}
	}
	for t := range f.Colors {
		if t%2 == 0 {
			f.Colors[t] = primary
		} else {
			f.Colors[t] = secondary
		}
	}
	return f
}
