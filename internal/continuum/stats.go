package continuum

import "math"

// Residuals sums |C| of every condition kind over the mesh.
type Residuals struct {
	StretchX float64
	StretchY float64
	Shear    float64
	Bend     float64
}

// Residuals evaluates every condition at the current state.
func (c *Cloth) Residuals() Residuals {
	var r Residuals
	p := c.probe()
	for _, tri := range c.triangles {
		r.StretchX += math.Abs(c.stretchX(tri, c.tuning.StretchX)(p))
		r.StretchY += math.Abs(c.stretchY(tri, c.tuning.StretchY)(p))
		r.Shear += math.Abs(c.shear(tri)(p))
	}
	for q, sides := range c.adjacency {
		for _, nb := range sides {
			if nb.tri >= 0 {
				r.Bend += math.Abs(c.bend(2*q, nb)(p))
			}
		}
	}
	return r
}
