package springmass

import "math"

// ConstraintError reports how far constraints are from rest length,
// relative to rest length.
type ConstraintError struct {
	Max  float64
	Mean float64
	// Worst is the index of the constraint with the largest error.
	Worst int
}

// ConstraintError measures every constraint at the current positions.
func (c *Cloth) ConstraintError() ConstraintError {
	var e ConstraintError
	if len(c.constraints) == 0 {
		return e
	}
	var sum float64
	for k, con := range c.constraints {
		d := c.particles[con.b].pos.Sub(c.particles[con.a].pos).Len()
		rel := math.Abs(d-con.rest) / con.rest
		sum += rel
		if rel > e.Max {
			e.Max, e.Worst = rel, k
		}
	}
	e.Mean = sum / float64(len(c.constraints))
	return e
}
