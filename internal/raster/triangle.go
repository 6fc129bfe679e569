package raster

import (
	"image"
	"math"

	"github.com/kartiksethi/ClothSimulation/internal/mathutil"
)

// Vertices is a projected mesh: screen position, depth and lighting per
// vertex, plus optional UVs.
type Vertices struct {
	PX, PY, PZ []float64
	Shade      []float64
	UVs        []mathutil.Vec2 // nil disables texturing
	Addressing Addressing
}

// RasterizeTriangle rasterizes one triangle with z-buffer, sRGB color
// space, Gouraud-interpolated lighting and ACES tone mapping. Texels
// replace base when tex is set and the mesh has UVs.
//
// This is the HOT PATH. No allocation in the pixel loop.
func RasterizeTriangle(
	fb *FrameBuffer,
	vs *Vertices,
	idx [3]int,
	tex *image.NRGBA,
	base [4]uint8,
	lc *LightConfig,
) {
	nv := len(vs.PX)
	for _, i := range idx {
		if i < 0 || i >= nv {
			return
		}
	}

	x0, y0, z0 := vs.PX[idx[0]], vs.PY[idx[0]], vs.PZ[idx[0]]
	x1, y1, z1 := vs.PX[idx[1]], vs.PY[idx[1]], vs.PZ[idx[1]]
	x2, y2, z2 := vs.PX[idx[2]], vs.PY[idx[2]], vs.PZ[idx[2]]
	for _, c := range [...]float64{x0, y0, z0, x1, y1, z1, x2, y2, z2} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return
		}
	}
	s0, s1, s2 := vs.Shade[idx[0]], vs.Shade[idx[1]], vs.Shade[idx[2]]

	hasUV := tex != nil && len(vs.UVs) == nv
	var u0, v0uv, u1, v1uv, u2, v2uv float64
	if hasUV {
		u0, v0uv = vs.UVs[idx[0]][0], vs.UVs[idx[0]][1]
		u1, v1uv = vs.UVs[idx[1]][0], vs.UVs[idx[1]][1]
		u2, v2uv = vs.UVs[idx[2]][0], vs.UVs[idx[2]][1]
	}

	// Bounding box
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			cr, cg, cb, ca := base[0], base[1], base[2], base[3]
			if hasUV {
				u := w0*u0 + w1*u1 + w2*u2
				v := w0*v0uv + w1*v1uv + w2*v2uv
				cr, cg, cb, ca = SampleTexture(tex, u, v, vs.Addressing)
			}

			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			shade := w0*s0 + w1*s1 + w2*s2
			pxIdx := zIdx * 4
			fb.Color[pxIdx] = lc.encode(cr, shade)
			fb.Color[pxIdx+1] = lc.encode(cg, shade)
			fb.Color[pxIdx+2] = lc.encode(cb, shade)
			fb.Color[pxIdx+3] = ca
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
