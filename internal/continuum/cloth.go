// Package continuum simulates cloth as a triangle mesh whose internal
// forces come from per-triangle strain conditions (stretch, shear, bend),
// differentiated numerically and integrated with semi-implicit Euler.
//
// A Cloth is single-threaded: Update, ChangeState and Pin must not run
// concurrently with each other or with readers of the mesh.
package continuum

import (
	"fmt"
	"math/rand/v2"

	"github.com/kartiksethi/ClothSimulation/internal/mathutil"
	"github.com/kartiksethi/ClothSimulation/internal/mesh"
)

// Config describes a cloth to build.
type Config struct {
	NumX, NumY int     // grid resolution, at least 2 each
	Mass       float64 // mass of the whole cloth (default DefaultMass)
	Seed       uint64  // seed for the symmetry-breaking perturbation
	Tuning     *Tuning // nil means DefaultTuning()
	Pairing    BendPairing

	// Flat skips the initial perturbation, leaving positions equal to UV.
	Flat bool
}

// Cloth is a numX × numY grid of points with UV parameterization in
// [0,1]², triangulated into even/odd pairs per cell.
type Cloth struct {
	numX, numY int
	tuning     Tuning

	points     []mathutil.Vec3
	uvs        []mathutil.Vec2
	velocities []mathutil.Vec3
	forces     []mathutil.Vec3
	movable    []bool
	pointNorms []mathutil.Vec3

	triangles []Triangle
	triNorms  []mathutil.Vec3
	adjacency [][numSides]neighbor

	imass  float64 // inverse of the mass per point
	uvArea float64 // UV-space area of every triangle
	rng    *rand.Rand
}

// New builds the grid, pins the last point and the first point of the last
// row, perturbs every movable point (unless cfg.Flat) and computes normals.
//
// UV parameterization must stay non-degenerate: every triangle needs non-zero
// UV area or the strain conditions divide by zero.
func New(cfg Config) (*Cloth, error) {
	if cfg.NumX < 2 || cfg.NumY < 2 {
		return nil, fmt.Errorf("continuum: grid %dx%d: need at least 2x2 points", cfg.NumX, cfg.NumY)
	}
	mass := cfg.Mass
	if mass == 0 {
		mass = DefaultMass
	}
	if mass < 0 {
		return nil, fmt.Errorf("continuum: mass %g: must be positive", mass)
	}
	tuning := DefaultTuning()
	if cfg.Tuning != nil {
		tuning = *cfg.Tuning
	}

	x, y := cfg.NumX, cfg.NumY
	n := x * y
	c := &Cloth{
		numX:       x,
		numY:       y,
		tuning:     tuning,
		points:     make([]mathutil.Vec3, n),
		uvs:        make([]mathutil.Vec2, n),
		velocities: make([]mathutil.Vec3, n),
		forces:     make([]mathutil.Vec3, n),
		movable:    make([]bool, n),
		pointNorms: make([]mathutil.Vec3, n),
		imass:      float64(n) / mass,
		uvArea:     1.0 / float64(2*(x-1)*(y-1)),
		rng:        rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	for i := 0; i < n; i++ {
		u := float64(i%x) / float64(x-1)
		v := float64(i/x) / float64(y-1)
		c.uvs[i] = mathutil.Vec2{u, v}
		c.points[i] = mathutil.Vec3{u, v, 0}
		c.movable[i] = true
	}
	c.movable[n-1] = false
	c.movable[n-x] = false

	c.triangles = buildTriangles(x, y)
	c.triNorms = make([]mathutil.Vec3, len(c.triangles))
	c.adjacency = buildAdjacency(x, y, c.triangles, cfg.Pairing)

	if !cfg.Flat {
		c.Perturb()
	}
	c.MakeNormals()
	return c, nil
}

// Perturb offsets every movable point by a uniform random amount in
// [0, 1/50) per axis. A perfectly flat sheet has zero strain everywhere,
// which zeroes some gradients.
func (c *Cloth) Perturb() {
	for i := range c.points {
		if !c.movable[i] {
			continue
		}
		for k := 0; k < 3; k++ {
			c.points[i][k] += c.rng.Float64() / 50
		}
	}
}

// ChangeState replaces positions, velocities and movability in bulk,
// optionally re-perturbing, and recomputes normals.
func (c *Cloth) ChangeState(points, velocities []mathutil.Vec3, movable []bool, perturb bool) error {
	n := len(c.points)
	if len(points) != n || len(velocities) != n || len(movable) != n {
		return fmt.Errorf("continuum: change state: got %d points, %d velocities, %d flags, want %d each",
			len(points), len(velocities), len(movable), n)
	}
	copy(c.points, points)
	copy(c.velocities, velocities)
	copy(c.movable, movable)
	if perturb {
		c.Perturb()
	}
	c.MakeNormals()
	return nil
}

// Pin marks point i permanently immovable.
func (c *Cloth) Pin(i int) error {
	if i < 0 || i >= len(c.points) {
		return fmt.Errorf("continuum: pin %d: out of range [0, %d)", i, len(c.points))
	}
	c.movable[i] = false
	return nil
}

// Size returns the grid resolution.
func (c *Cloth) Size() (numX, numY int) { return c.numX, c.numY }

func (c *Cloth) NumPoints() int    { return len(c.points) }
func (c *Cloth) NumTriangles() int { return len(c.triangles) }

func (c *Cloth) Point(i int) mathutil.Vec3    { return c.points[i] }
func (c *Cloth) UV(i int) mathutil.Vec2       { return c.uvs[i] }
func (c *Cloth) Velocity(i int) mathutil.Vec3 { return c.velocities[i] }
func (c *Cloth) Force(i int) mathutil.Vec3    { return c.forces[i] }
func (c *Cloth) Movable(i int) bool           { return c.movable[i] }
func (c *Cloth) Normal(i int) mathutil.Vec3   { return c.pointNorms[i] }
func (c *Cloth) Triangle(t int) Triangle      { return c.triangles[t] }

// TriangleNormal returns the unit face normal from the last normal pass.
func (c *Cloth) TriangleNormal(t int) mathutil.Vec3 { return c.triNorms[t] }

// Points returns a copy of all positions.
func (c *Cloth) Points() []mathutil.Vec3 {
	return append([]mathutil.Vec3(nil), c.points...)
}

// Velocities returns a copy of all velocities.
func (c *Cloth) Velocities() []mathutil.Vec3 {
	return append([]mathutil.Vec3(nil), c.velocities...)
}

// MovableFlags returns a copy of the movability flags.
func (c *Cloth) MovableFlags() []bool {
	return append([]bool(nil), c.movable...)
}

// Frame copies the current geometry for a renderer.
func (c *Cloth) Frame() mesh.Frame {
	f := mesh.Frame{
		Positions: append([]mathutil.Vec3(nil), c.points...),
		Normals:   append([]mathutil.Vec3(nil), c.pointNorms...),
		UVs:       append([]mathutil.Vec2(nil), c.uvs...),
		Triangles: make([][3]int, len(c.triangles)),
	}
	for i, t := range c.triangles {
		f.Triangles[i] = t
	}
	return f
}
