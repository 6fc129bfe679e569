package continuum

import (
	"testing"

	"github.com/kartiksethi/ClothSimulation/internal/mathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square is a flat 2×2 cloth. Triangle 0 is (0, 3, 2) with UV
// (0,0), (1,1), (0,1) and UV area 1/2.
func square(t *testing.T, tn *Tuning) *Cloth {
	t.Helper()
	c := newCloth(t, Config{NumX: 2, NumY: 2, Flat: true, Tuning: tn})
	require.Equal(t, Triangle{0, 3, 2}, c.Triangle(0))
	return c
}

func (c *Cloth) zeroForces() {
	for i := range c.forces {
		c.forces[i] = mathutil.Vec3{}
	}
}

func assertVec(t *testing.T, want, got mathutil.Vec3, delta float64, msg string) {
	t.Helper()
	for k := 0; k < 3; k++ {
		assert.InDelta(t, want[k], got[k], delta, "%s axis %d", msg, k)
	}
}

func TestStretchForceSaturatesPerAxis(t *testing.T) {
	c := square(t, nil)
	pts := c.Points()
	// Wu becomes (50, 0, 50): C = 0.5·(50√2 - 1) and the gradient on point
	// 3 is 0.5·Wu/|Wu|, far past the clamp on x and z.
	pts[3] = mathutil.Vec3{50, 1, 50}
	require.NoError(t, c.ChangeState(pts, c.Velocities(), c.MovableFlags(), false))

	tn := DefaultTuning()
	tri := c.Triangle(0)
	c.zeroForces()
	c.addTriangleForces(c.stretchX(tri, tn.StretchX), tri, tn.KStretchX, tn.MaxStretch, tn.MaxStretchDamp)

	lim := tn.MaxStretch
	assertVec(t, mathutil.Vec3{-lim, 0, -lim}, c.Force(3), 1e-8, "point 3")
	assertVec(t, mathutil.Vec3{lim, 0, lim}, c.Force(2), 1e-8, "point 2")
	assertVec(t, mathutil.Vec3{}, c.Force(0), 1e-8, "point 0")
	assert.Equal(t, lim, -c.Force(3)[0])
	assert.Equal(t, lim, c.Force(2)[2])
}

func TestStretchDampingForce(t *testing.T) {
	tn := DefaultTuning()
	c := square(t, &tn)
	vel := c.Velocities()
	vel[3] = mathutil.Vec3{0.3, 0, 0}
	require.NoError(t, c.ChangeState(c.Points(), vel, c.MovableFlags(), false))

	// Flat, so C = 0 and only damping acts. dC/dp3 = (0.5, 0, 0),
	// dC/dp2 = (-0.5, 0, 0), Cdot = 0.15, force = ∇C·Cdot·K·Kdamp.
	tri := c.Triangle(0)
	want := 0.5 * 0.15 * tn.KStretchX * tn.KDamp
	c.zeroForces()
	c.addTriangleForces(c.stretchX(tri, tn.StretchX), tri, tn.KStretchX, tn.MaxStretch, tn.MaxStretchDamp)
	assertVec(t, mathutil.Vec3{-want, 0, 0}, c.Force(3), 1e-9, "point 3")
	assertVec(t, mathutil.Vec3{want, 0, 0}, c.Force(2), 1e-9, "point 2")
	assertVec(t, mathutil.Vec3{}, c.Force(0), 1e-9, "point 0")

	// The damping clamp is separate from the elastic one.
	c.zeroForces()
	c.addTriangleForces(c.stretchX(tri, tn.StretchX), tri, tn.KStretchX, tn.MaxStretch, 0.001)
	assert.Equal(t, -0.001, c.Force(3)[0])
	assert.Equal(t, 0.001, c.Force(2)[0])
}

func TestBendFourthPointUnclamped(t *testing.T) {
	tn := DefaultTuning()
	c := newCloth(t, Config{NumX: 3, NumY: 3, Flat: true})
	pts := [4]int{0, 4, 3, 1}
	one := mathutil.Vec3{1, 0, 0}
	grad := [4]mathutil.Vec3{one, one, one, one}

	c.zeroForces()
	c.applyBend(pts, grad, 1)
	for _, idx := range pts[:3] {
		assert.Equal(t, -tn.MaxBend, c.Force(idx)[0], "point %d", idx)
	}
	assert.InDelta(t, -tn.KBend, c.Force(1)[0], 1e-15)

	// Damping only: Cdot comes from the fourth point's velocity.
	vel := c.Velocities()
	vel[1] = one
	require.NoError(t, c.ChangeState(c.Points(), vel, c.MovableFlags(), false))
	c.zeroForces()
	c.applyBend(pts, grad, 0)
	for _, idx := range pts[:3] {
		assert.Equal(t, -tn.MaxBendDamp, c.Force(idx)[0], "point %d", idx)
	}
	assert.InDelta(t, -tn.KBend*tn.KDamp, c.Force(1)[0], 1e-15)
}

func TestAccumulateForcesResets(t *testing.T) {
	c := newCloth(t, Config{NumX: 5, NumY: 5, Seed: 4})
	for f := 0; f < 3; f++ {
		c.Update()
	}
	c.AccumulateForces()
	first := make([]mathutil.Vec3, c.NumPoints())
	var total float64
	for i := range first {
		first[i] = c.Force(i)
		total += first[i].Len()
	}
	require.Greater(t, total, 0.0)

	c.AccumulateForces()
	for i := range first {
		assert.Equal(t, first[i], c.Force(i), "point %d", i)
	}
}

func TestFlatRestingClothHasNoForces(t *testing.T) {
	c := newCloth(t, Config{NumX: 4, NumY: 4, Flat: true})
	c.AccumulateForces()
	for i := 0; i < c.NumPoints(); i++ {
		assertVec(t, mathutil.Vec3{}, c.Force(i), 1e-12, "point")
	}
}
