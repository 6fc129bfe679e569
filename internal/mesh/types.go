// Package mesh holds the geometry handed from a simulation engine to a
// rendering consumer once per frame.
package mesh

import "github.com/kartiksethi/ClothSimulation/internal/mathutil"

// Color is an sRGB color with components in [0, 1], the same space as
// texture texels.
type Color struct {
	R, G, B, A float64
}

// RGBA8 quantizes the color to 8-bit channels.
func (c Color) RGBA8() (uint8, uint8, uint8, uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Frame is a copy of one engine's geometry taken between frames.
// Triangles index into Positions, Normals and UVs.
type Frame struct {
	Positions []mathutil.Vec3
	Normals   []mathutil.Vec3 // unit length, one per position
	UVs       []mathutil.Vec2 // nil when the engine has no parameterization
	Triangles [][3]int
	Colors    []Color // per triangle; nil means the renderer's default color
}

// Bounds returns the axis-aligned box of all positions.
func (f *Frame) Bounds() (min, max mathutil.Vec3) {
	if len(f.Positions) == 0 {
		return
	}
	min, max = f.Positions[0], f.Positions[0]
	for _, p := range f.Positions[1:] {
		for k := 0; k < 3; k++ {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}
	return
}

// Append merges other into f, offsetting its triangle indices. Missing
// per-triangle colors on either side are filled with def.
func (f *Frame) Append(other Frame, def Color) {
	base := len(f.Positions)
	if f.Colors != nil || other.Colors != nil {
		for len(f.Colors) < len(f.Triangles) {
			f.Colors = append(f.Colors, def)
		}
	}
	f.Positions = append(f.Positions, other.Positions...)
	f.Normals = append(f.Normals, other.Normals...)
	if f.UVs != nil || other.UVs != nil {
		for len(f.UVs) < base {
			f.UVs = append(f.UVs, mathutil.Vec2{})
		}
		f.UVs = append(f.UVs, other.UVs...)
		for len(f.UVs) < len(f.Positions) {
			f.UVs = append(f.UVs, mathutil.Vec2{})
		}
	}
	for i, t := range other.Triangles {
		f.Triangles = append(f.Triangles, [3]int{t[0] + base, t[1] + base, t[2] + base})
		if f.Colors != nil {
			c := def
			if i < len(other.Colors) {
				c = other.Colors[i]
			}
			f.Colors = append(f.Colors, c)
		}
	}
}
