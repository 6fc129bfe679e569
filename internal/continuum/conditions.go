package continuum

import (
	"math"

	"github.com/kartiksethi/ClothSimulation/internal/mathutil"
)

// probe reads point positions with an optional single-point override, so
// conditions can be evaluated at displaced positions without writing to
// the cloth.
type probe struct {
	points []mathutil.Vec3
	index  int // -1 for no override
	pos    mathutil.Vec3
}

func (c *Cloth) probe() probe {
	return probe{points: c.points, index: -1}
}

func (p probe) at(i int) mathutil.Vec3 {
	if i == p.index {
		return p.pos
	}
	return p.points[i]
}

// moved returns a probe that sees point i at pos.
func (p probe) moved(i int, pos mathutil.Vec3) probe {
	return probe{points: p.points, index: i, pos: pos}
}

// condition is a scalar strain function of the geometry seen by a probe.
type condition func(p probe) float64

// wuv solves [dUV1; dUV2] [Wu; Wv] = [dP1; dP2] per axis by Cramer's rule.
// Wu and Wv are the derivatives of position with respect to u and v.
func (c *Cloth) wuv(p probe, t Triangle) (wu, wv mathutil.Vec3) {
	uv0 := c.uvs[t[0]]
	duv1 := c.uvs[t[1]].Sub(uv0)
	duv2 := c.uvs[t[2]].Sub(uv0)
	p0 := p.at(t[0])
	dp1 := p.at(t[1]).Sub(p0)
	dp2 := p.at(t[2]).Sub(p0)

	delta := duv1[0]*duv2[1] - duv2[0]*duv1[1]
	for k := 0; k < 3; k++ {
		wu[k] = (dp1[k]*duv2[1] - dp2[k]*duv1[1]) / delta
		wv[k] = (-dp1[k]*duv2[0] + dp2[k]*duv1[0]) / delta
	}
	return wu, wv
}

// WUV returns the UV-space basis derivatives of triangle t at the current
// positions.
func (c *Cloth) WUV(t int) (wu, wv mathutil.Vec3) {
	return c.wuv(c.probe(), c.triangles[t])
}

func (c *Cloth) stretchX(t Triangle, stretchiness float64) condition {
	return func(p probe) float64 {
		wu, _ := c.wuv(p, t)
		return c.uvArea * (wu.Len() - stretchiness)
	}
}

func (c *Cloth) stretchY(t Triangle, stretchiness float64) condition {
	return func(p probe) float64 {
		_, wv := c.wuv(p, t)
		return c.uvArea * (wv.Len() - stretchiness)
	}
}

func (c *Cloth) shear(t Triangle) condition {
	return func(p probe) float64 {
		wu, wv := c.wuv(p, t)
		return c.uvArea * wu.Dot(wv)
	}
}

// bend measures the dihedral angle between triangle t1 and its partner as
// atan2(sin, cos), using the face normals from the last normal pass and the
// live shared edge vector.
func (c *Cloth) bend(t1 int, nb neighbor) condition {
	n1 := c.triNorms[t1]
	n2 := c.triNorms[nb.tri]
	axis := n1.Cross(n2)
	cos := n1.Dot(n2)
	return func(p probe) float64 {
		e := p.at(nb.edge[0]).Sub(p.at(nb.edge[1]))
		return math.Atan2(axis.Dot(e), cos)
	}
}

// CondStretchX evaluates the U stretch condition of triangle t.
func (c *Cloth) CondStretchX(t int, stretchiness float64) float64 {
	return c.stretchX(c.triangles[t], stretchiness)(c.probe())
}

// CondStretchY evaluates the V stretch condition of triangle t.
func (c *Cloth) CondStretchY(t int, stretchiness float64) float64 {
	return c.stretchY(c.triangles[t], stretchiness)(c.probe())
}

// CondShear evaluates the shear condition of triangle t.
func (c *Cloth) CondShear(t int) float64 {
	return c.shear(c.triangles[t])(c.probe())
}

// CondBend evaluates the bend condition between even triangle t1 and its
// partner t2. ok is false when the two are not bending partners.
func (c *Cloth) CondBend(t1, t2 int) (value float64, ok bool) {
	nb, ok := c.partnerOf(t1, t2)
	if !ok {
		return 0, false
	}
	return c.bend(t1, nb)(c.probe()), true
}

func (c *Cloth) partnerOf(t1, t2 int) (neighbor, bool) {
	if t1 < 0 || t1 >= len(c.triangles) || t1%2 != 0 {
		return neighbor{}, false
	}
	for _, nb := range c.adjacency[t1/2] {
		if nb.tri >= 0 && nb.tri == t2 {
			return nb, true
		}
	}
	return neighbor{}, false
}
