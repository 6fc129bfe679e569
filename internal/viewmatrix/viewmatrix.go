package viewmatrix

import (
	"math"

	"github.com/kartiksethi/ClothSimulation/internal/mathutil"
	"github.com/kartiksethi/ClothSimulation/internal/mesh"
)

// DefaultFOV is the vertical field of view used when perspective is on and
// no FOV is given.
const DefaultFOV = 40.0

// Camera orbits the scene. Angles are in degrees.
type Camera struct {
	Yaw, Pitch, Roll float64
	Perspective      bool
	FOV              float64
}

// Matrix returns the world-to-view rotation.
func (c Camera) Matrix() mathutil.Mat3 {
	return mathutil.Orbit(c.Yaw, c.Pitch, c.Roll)
}

// Framing maps view space to pixels. It is computed once from a set of
// reference frames so the image does not rescale as the cloth moves.
type Framing struct {
	R      mathutil.Mat3
	Center [3]float64
	Scale  float64
	Size   int

	persp   bool
	camDist float64
	zCenter float64
}

// Fit frames every position of every reference frame into a size×size
// image with margin pixels on each side.
func Fit(cam Camera, frames []mesh.Frame, size, margin int) Framing {
	R := cam.Matrix()
	minV := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	maxV := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	n := 0
	for _, f := range frames {
		for _, p := range f.Positions {
			if !p.IsFinite() {
				continue
			}
			t := R.MulVec3(p)
			for k := 0; k < 3; k++ {
				minV[k] = math.Min(minV[k], t[k])
				maxV[k] = math.Max(maxV[k], t[k])
			}
			n++
		}
	}
	fr := Framing{R: R, Size: size, Scale: 1}
	if n == 0 {
		return fr
	}

	for k := 0; k < 3; k++ {
		fr.Center[k] = (minV[k] + maxV[k]) / 2
	}
	span := math.Max(maxV[0]-minV[0], maxV[1]-minV[1])
	if span < 0.001 {
		span = 0.001
	}

	if cam.Perspective {
		fov := cam.FOV
		if fov == 0 {
			fov = DefaultFOV
		}
		halfFOV := mathutil.Deg2Rad(fov / 2)
		xyMax := math.Max(span/2, 0.001)
		fr.persp = true
		fr.zCenter = fr.Center[2]
		fr.camDist = xyMax / math.Tan(halfFOV)
		// The near half of the scene is magnified; leave room for it.
		span *= fr.camDist / math.Max(fr.camDist-(maxV[2]-fr.zCenter), 0.1)
	}

	avail := size - 2*margin
	if avail < 1 {
		avail = 1
	}
	fr.Scale = float64(avail) / span
	return fr
}

// Project transforms positions to screen X, screen Y and depth. Larger
// depth is closer to the viewer.
func (fr *Framing) Project(pts []mathutil.Vec3) (px, py, pz []float64) {
	n := len(pts)
	px = make([]float64, n)
	py = make([]float64, n)
	pz = make([]float64, n)
	half := float64(fr.Size) / 2

	for i, p := range pts {
		t := fr.R.MulVec3(p)
		x, y := t[0]-fr.Center[0], t[1]-fr.Center[1]
		if fr.persp {
			zOff := t[2] - fr.zCenter
			depth := math.Max(fr.camDist-zOff, 0.1)
			factor := fr.camDist / depth
			x *= factor
			y *= factor
		}
		px[i] = x*fr.Scale + half
		py[i] = -y*fr.Scale + half
		pz[i] = t[2]
	}
	return px, py, pz
}

// ViewNormals rotates normals into view space.
func (fr *Framing) ViewNormals(ns []mathutil.Vec3) []mathutil.Vec3 {
	out := make([]mathutil.Vec3, len(ns))
	for i, n := range ns {
		out[i] = fr.R.MulVec3(n)
	}
	return out
}
