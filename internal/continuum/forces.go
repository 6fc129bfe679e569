package continuum

import "github.com/kartiksethi/ClothSimulation/internal/mathutil"

// addTriangleForces applies the elastic and damping forces of one
// triangle condition. Both are clamped per axis.
func (c *Cloth) addTriangleForces(cond condition, tri Triangle, k, maxForce, maxDamp float64) {
	grad := c.gradient(cond, tri[:])
	value := cond(c.probe())

	var cdot float64 // time derivative of the condition
	for j, idx := range tri {
		c.forces[idx] = c.forces[idx].Sub(grad[j].Scale(value * k).Clamp(maxForce))
		cdot += grad[j].Dot(c.velocities[idx])
	}
	kd := cdot * k * c.tuning.KDamp
	for j, idx := range tri {
		c.forces[idx] = c.forces[idx].Sub(grad[j].Scale(kd).Clamp(maxDamp))
	}
}

func (c *Cloth) addStretchXForces(stretchiness float64) {
	tn := &c.tuning
	for _, tri := range c.triangles {
		c.addTriangleForces(c.stretchX(tri, stretchiness), tri, tn.KStretchX, tn.MaxStretch, tn.MaxStretchDamp)
	}
}

func (c *Cloth) addStretchYForces(stretchiness float64) {
	tn := &c.tuning
	for _, tri := range c.triangles {
		c.addTriangleForces(c.stretchY(tri, stretchiness), tri, tn.KStretchY, tn.MaxStretch, tn.MaxStretchDamp)
	}
}

func (c *Cloth) addShearForces() {
	tn := &c.tuning
	for _, tri := range c.triangles {
		c.addTriangleForces(c.shear(tri), tri, tn.KShear, tn.MaxShear, tn.MaxShearDamp)
	}
}

// addBendForces bends every even triangle against each of its candidates.
// Missing candidates contribute nothing.
func (c *Cloth) addBendForces() {
	for q, sides := range c.adjacency {
		for _, nb := range sides {
			if nb.tri < 0 {
				continue
			}
			c.addBendPair(2*q, nb)
		}
	}
}

// addBendPair applies bend forces to the pair.
func (c *Cloth) addBendPair(t1 int, nb neighbor) {
	tri := c.triangles[t1]
	pts := [4]int{tri[0], tri[1], tri[2], nb.rem}

	cond := c.bend(t1, nb)
	value := cond(c.probe())
	var grad [4]mathutil.Vec3
	copy(grad[:], c.gradient(cond, pts[:]))
	c.applyBend(pts, grad, value)
}

// applyBend adds elastic and damping bend forces for one pair. The three
// points of the first triangle get clamped forces; the fourth point's
// forces are applied unclamped.
func (c *Cloth) applyBend(pts [4]int, grad [4]mathutil.Vec3, value float64) {
	tn := &c.tuning
	var cdot float64
	for j, idx := range pts {
		cdot += grad[j].Dot(c.velocities[idx])
	}

	for j := 0; j < 3; j++ {
		idx := pts[j]
		c.forces[idx] = c.forces[idx].Sub(grad[j].Scale(value * tn.KBend).Clamp(tn.MaxBend))
	}
	c.forces[pts[3]] = c.forces[pts[3]].Sub(grad[3].Scale(value * tn.KBend))

	kd := cdot * tn.KBend * tn.KDamp
	for j := 0; j < 3; j++ {
		idx := pts[j]
		c.forces[idx] = c.forces[idx].Sub(grad[j].Scale(kd).Clamp(tn.MaxBendDamp))
	}
	c.forces[pts[3]] = c.forces[pts[3]].Sub(grad[3].Scale(kd))
}

// AccumulateForces zeroes the force accumulators and adds the stretch,
// shear and bend contributions of the current state.
func (c *Cloth) AccumulateForces() {
	for i := range c.forces {
		c.forces[i] = mathutil.Vec3{}
	}
	c.addStretchXForces(c.tuning.StretchX)
	c.addStretchYForces(c.tuning.StretchY)
	c.addShearForces()
	c.addBendForces()
}
