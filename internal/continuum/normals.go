package continuum

import "github.com/kartiksethi/ClothSimulation/internal/mathutil"

// MakeNormals recomputes unit face normals and smooth point normals. Each
// point sums the unnormalized cross products of its triangles before
// normalizing, so larger triangles weigh more.
func (c *Cloth) MakeNormals() {
	for i := range c.pointNorms {
		c.pointNorms[i] = mathutil.Vec3{}
	}
	for i, t := range c.triangles {
		p0 := c.points[t[0]]
		n := c.points[t[1]].Sub(p0).Cross(c.points[t[2]].Sub(p0))
		c.triNorms[i] = n.Normalize()
		for _, idx := range t {
			c.pointNorms[idx] = c.pointNorms[idx].Add(n)
		}
	}
	for i := range c.pointNorms {
		c.pointNorms[i] = c.pointNorms[i].Normalize()
	}
}
