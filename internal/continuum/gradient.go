package continuum

import "github.com/kartiksethi/ClothSimulation/internal/mathutil"

// gradient differentiates cond by central differences with respect to each
// point in pts:
//
//	grad[k] = (f(p + del·e_k) - f(p - del·e_k)) / (2·del)
//
// Displaced positions are seen only through a probe; the point array is
// never written, so the call leaves the cloth unchanged.
func (c *Cloth) gradient(cond condition, pts []int) []mathutil.Vec3 {
	del := c.tuning.Delta
	base := c.probe()
	grad := make([]mathutil.Vec3, len(pts))
	for j, idx := range pts {
		p := c.points[idx]
		for k := 0; k < 3; k++ {
			lo, hi := p, p
			lo[k] -= del
			hi[k] += del
			f1 := cond(base.moved(idx, lo))
			f2 := cond(base.moved(idx, hi))
			grad[j][k] = (f2 - f1) / (2 * del)
		}
	}
	return grad
}

// GradStretchX returns the gradient of the U stretch condition of triangle
// t with respect to its three points.
func (c *Cloth) GradStretchX(t int, stretchiness float64) [3]mathutil.Vec3 {
	tri := c.triangles[t]
	return to3(c.gradient(c.stretchX(tri, stretchiness), tri[:]))
}

// GradStretchY is GradStretchX for the V direction.
func (c *Cloth) GradStretchY(t int, stretchiness float64) [3]mathutil.Vec3 {
	tri := c.triangles[t]
	return to3(c.gradient(c.stretchY(tri, stretchiness), tri[:]))
}

// GradShear returns the gradient of the shear condition of triangle t.
func (c *Cloth) GradShear(t int) [3]mathutil.Vec3 {
	tri := c.triangles[t]
	return to3(c.gradient(c.shear(tri), tri[:]))
}

// GradBend returns the gradient of the bend condition between even triangle
// t1 and partner t2: the three points of t1, then the vertex of t2 off the
// shared edge.
func (c *Cloth) GradBend(t1, t2 int) (grad [4]mathutil.Vec3, ok bool) {
	nb, ok := c.partnerOf(t1, t2)
	if !ok {
		return grad, false
	}
	tri := c.triangles[t1]
	g := c.gradient(c.bend(t1, nb), []int{tri[0], tri[1], tri[2], nb.rem})
	copy(grad[:], g)
	return grad, true
}

func to3(g []mathutil.Vec3) [3]mathutil.Vec3 {
	return [3]mathutil.Vec3{g[0], g[1], g[2]}
}
