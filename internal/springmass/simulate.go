package springmass

import "github.com/kartiksethi/ClothSimulation/internal/mathutil"

// Simulate relaxes the constraints and then takes one Verlet step for
// every particle.
func (c *Cloth) Simulate() {
	c.Relax(c.iterations)
	for i := range c.particles {
		c.particles[i].step(c.damping, c.timeStep)
	}
}

// Relax runs n passes over every constraint in insertion order.
func (c *Cloth) Relax(n int) {
	for it := 0; it < n; it++ {
		for _, con := range c.constraints {
			con.satisfy(c.particles)
		}
	}
}

// ApplyUniformForce adds f to every particle, gravity for example.
func (c *Cloth) ApplyUniformForce(f mathutil.Vec3) {
	for i := range c.particles {
		c.particles[i].applyForce(f)
	}
}

// ApplyTriangleNormalForce pushes each triangle along its unit normal by
// the component of dir along that normal. All three vertices receive the
// force, so interior particles collect it from up to six triangles.
func (c *Cloth) ApplyTriangleNormalForce(dir mathutil.Vec3) {
	for _, t := range c.triangles {
		n := c.faceNormal(t)
		f := n.Scale(n.Dot(dir))
		for _, idx := range t {
			c.particles[idx].applyForce(f)
		}
	}
}

// ResolveSphereCollision projects every movable particle strictly inside
// the sphere onto its surface along the radial direction. A particle at
// the exact center is pushed along +Y.
func (c *Cloth) ResolveSphereCollision(center mathutil.Vec3, radius float64) {
	for i := range c.particles {
		p := &c.particles[i]
		d := p.pos.Sub(center)
		dist := d.Len()
		if dist >= radius {
			continue
		}
		dir := d.Normalize()
		if dir == (mathutil.Vec3{}) {
			dir = mathutil.Vec3{0, 1, 0}
		}
		p.offset(dir.Scale(radius - dist))
	}
}

// faceNormal is the unit normal of cross(p0-p1, p0-p2).
func (c *Cloth) faceNormal(t [3]int) mathutil.Vec3 {
	p0 := c.particles[t[0]].pos
	return p0.Sub(c.particles[t[1]].pos).Cross(p0.Sub(c.particles[t[2]].pos)).Normalize()
}

// MakeNormals sums the unit normals of each particle's triangles and
// normalizes the result. Every triangle counts equally regardless of area.
func (c *Cloth) MakeNormals() {
	for i := range c.particles {
		c.particles[i].normal = mathutil.Vec3{}
	}
	for _, t := range c.triangles {
		n := c.faceNormal(t)
		for _, idx := range t {
			c.particles[idx].normal = c.particles[idx].normal.Add(n)
		}
	}
	for i := range c.particles {
		c.particles[i].normal = c.particles[i].normal.Normalize()
	}
}

// TriangleNormal returns the current unit normal of triangle t.
func (c *Cloth) TriangleNormal(t int) mathutil.Vec3 {
	return c.faceNormal(c.triangles[t])
}
