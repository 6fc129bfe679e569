package mesh

import (
	"math"

	"github.com/kartiksethi/ClothSimulation/internal/mathutil"
)

// Sphere tessellates a UV sphere with the given number of latitude rings
// and longitude segments, all triangles colored c. UVs wrap u around the
// equator and v from pole to pole.
func Sphere(center mathutil.Vec3, radius float64, rings, segments int, c Color) Frame {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}

	var f Frame
	for r := 0; r <= rings; r++ {
		theta := math.Pi * float64(r) / float64(rings)
		st, ct := math.Sin(theta), math.Cos(theta)
		for s := 0; s <= segments; s++ {
			phi := 2 * math.Pi * float64(s) / float64(segments)
			n := mathutil.Vec3{st * math.Cos(phi), ct, st * math.Sin(phi)}
			f.Positions = append(f.Positions, center.Add(n.Scale(radius)))
			f.Normals = append(f.Normals, n)
			f.UVs = append(f.UVs, mathutil.Vec2{float64(s) / float64(segments), float64(r) / float64(rings)})
		}
	}

	row := segments + 1
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := r*row + s
			b := a + row
			if r > 0 {
				f.Triangles = append(f.Triangles, [3]int{a, a + 1, b})
			}
			if r < rings-1 {
				f.Triangles = append(f.Triangles, [3]int{a + 1, b + 1, b})
			}
		}
	}

	f.Colors = make([]Color, len(f.Triangles))
	for i := range f.Colors {
		f.Colors[i] = c
	}
	return f
}
