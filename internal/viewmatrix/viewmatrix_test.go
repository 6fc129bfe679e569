package viewmatrix

import (
	"math"
	"testing"

	"github.com/kartiksethi/ClothSimulation/internal/mathutil"
	"github.com/kartiksethi/ClothSimulation/internal/mesh"
	"github.com/stretchr/testify/assert"
)

func square() mesh.Frame {
	return mesh.Frame{Positions: []mathutil.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}}}
}

func TestFitCentersAndScales(t *testing.T) {
	fr := Fit(Camera{}, []mesh.Frame{square()}, 100, 10)
	assert.InDelta(t, 40, fr.Scale, 1e-12)

	px, py, _ := fr.Project(square().Positions)
	assert.InDelta(t, 10, px[0], 1e-9)
	assert.InDelta(t, 90, py[0], 1e-9)
	assert.InDelta(t, 90, px[2], 1e-9)
	assert.InDelta(t, 10, py[2], 1e-9)
}

func TestFitSkipsNonFinite(t *testing.T) {
	f := square()
	f.Positions = append(f.Positions, mathutil.Vec3{math.Inf(1), 0, 0})
	fr := Fit(Camera{}, []mesh.Frame{f}, 100, 10)
	assert.InDelta(t, 40, fr.Scale, 1e-12)
}

func TestFitEmpty(t *testing.T) {
	fr := Fit(Camera{}, nil, 64, 4)
	assert.Equal(t, 1.0, fr.Scale)
	assert.Equal(t, mathutil.Mat3Identity(), fr.R)
}

func TestYawTurnsScene(t *testing.T) {
	// A quarter turn around Y maps +X to -Z in view space.
	fr := Fit(Camera{Yaw: 90}, []mesh.Frame{square()}, 100, 0)
	_, _, pz := fr.Project([]mathutil.Vec3{{1, 0, 0}})
	assert.InDelta(t, -1, pz[0], 1e-9)

	n := fr.ViewNormals([]mathutil.Vec3{{1, 0, 0}})
	assert.InDelta(t, -1, n[0][2], 1e-9)
}

func TestPerspectiveMagnifiesNearPoints(t *testing.T) {
	f := mesh.Frame{Positions: []mathutil.Vec3{{-1, -1, -1}, {1, 1, 1}}}
	fr := Fit(Camera{Perspective: true}, []mesh.Frame{f}, 200, 0)
	px, _, _ := fr.Project([]mathutil.Vec3{{1, 0, 1}, {1, 0, -1}})
	assert.Greater(t, px[0], px[1])
	assert.LessOrEqual(t, px[0], 200.0+1e-9)
}
