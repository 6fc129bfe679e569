package continuum

// Update advances the cloth one frame: accumulate forces, integrate, and
// recompute normals.
func (c *Cloth) Update() {
	c.AccumulateForces()
	c.integrate()
	c.MakeNormals()
}

// integrate is a semi-implicit Euler step with unit time step. Velocities
// of pinned points keep accumulating; only their positions are held.
func (c *Cloth) integrate() {
	for i := range c.velocities {
		c.velocities[i] = c.velocities[i].Add(c.forces[i].Scale(c.imass))
		c.velocities[i][1] -= c.tuning.Gravity
	}
	for i := range c.points {
		if c.movable[i] {
			c.points[i] = c.points[i].Add(c.velocities[i])
		}
	}
}
