package continuum

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kartiksethi/ClothSimulation/internal/mathutil"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCloth(t *testing.T, cfg Config) *Cloth {
	t.Helper()
	c, err := New(cfg)
	require.NoError(t, err)
	return c
}

func TestMeshConstruction(t *testing.T) {
	for _, dims := range [][2]int{{2, 2}, {3, 3}, {10, 30}, {7, 4}} {
		x, y := dims[0], dims[1]
		c := newCloth(t, Config{NumX: x, NumY: y, Seed: 1})
		n := x * y

		assert.Equal(t, n, c.NumPoints(), "%dx%d points", x, y)
		assert.Equal(t, 2*(x-1)*(y-1), c.NumTriangles(), "%dx%d triangles", x, y)

		var pinned []int
		for i := 0; i < n; i++ {
			if !c.Movable(i) {
				pinned = append(pinned, i)
			}
		}
		assert.Equal(t, []int{n - x, n - 1}, pinned, "%dx%d pinned", x, y)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{NumX: 1, NumY: 5})
	assert.Error(t, err)
	_, err = New(Config{NumX: 3, NumY: 3, Mass: -1})
	assert.Error(t, err)
}

func TestUVGrid(t *testing.T) {
	c := newCloth(t, Config{NumX: 3, NumY: 5, Flat: true})
	assert.Equal(t, mathutil.Vec2{0, 0}, c.UV(0))
	assert.Equal(t, mathutil.Vec2{1, 0}, c.UV(2))
	assert.Equal(t, mathutil.Vec2{0.5, 0.25}, c.UV(1+1*3))
	assert.Equal(t, mathutil.Vec3{0.5, 0.25, 0}, c.Point(1+1*3))
}

func TestTriangleLayout(t *testing.T) {
	c := newCloth(t, Config{NumX: 3, NumY: 3, Flat: true})
	// cell (0,0)
	assert.Equal(t, Triangle{0, 4, 3}, c.Triangle(0))
	assert.Equal(t, Triangle{0, 1, 4}, c.Triangle(1))
	// cell (1,1)
	assert.Equal(t, Triangle{4, 8, 7}, c.Triangle(6))
	assert.Equal(t, Triangle{4, 5, 8}, c.Triangle(7))
}

func TestPerturbationIsSmallAndPositive(t *testing.T) {
	flat := newCloth(t, Config{NumX: 6, NumY: 6, Flat: true})
	c := newCloth(t, Config{NumX: 6, NumY: 6, Seed: 42})
	for i := 0; i < c.NumPoints(); i++ {
		d := c.Point(i).Sub(flat.Point(i))
		if !c.Movable(i) {
			assert.Equal(t, mathutil.Vec3{}, d, "pinned point %d moved", i)
			continue
		}
		for k := 0; k < 3; k++ {
			assert.GreaterOrEqual(t, d[k], 0.0)
			assert.Less(t, d[k], 1.0/50)
		}
	}
}

func TestFlatMeshZeroConditions(t *testing.T) {
	c := newCloth(t, Config{NumX: 3, NumY: 3, Flat: true})
	assert.InDelta(t, 0, c.CondStretchX(0, 1.0), 1e-12)

	for tri := 0; tri < c.NumTriangles(); tri++ {
		assert.InDelta(t, 0, c.CondStretchX(tri, 1.0), 1e-12, "stretch x %d", tri)
		assert.InDelta(t, 0, c.CondStretchY(tri, 1.0), 1e-12, "stretch y %d", tri)
		assert.InDelta(t, 0, c.CondShear(tri), 1e-12, "shear %d", tri)

		wu, wv := c.WUV(tri)
		assert.InDelta(t, 1, wu[0], 1e-12)
		assert.InDelta(t, 1, wv[1], 1e-12)
	}
}

func TestStretchConditionScalesWithArea(t *testing.T) {
	c := newCloth(t, Config{NumX: 3, NumY: 3, Flat: true})
	// Doubling the sheet along U doubles |Wu|.
	pts := c.Points()
	for i := range pts {
		pts[i][0] *= 2
	}
	require.NoError(t, c.ChangeState(pts, c.Velocities(), c.MovableFlags(), false))

	area := 1.0 / 8
	assert.InDelta(t, area*(2-1), c.CondStretchX(0, 1.0), 1e-12)
	assert.InDelta(t, 0, c.CondStretchY(0, 1.0), 1e-12)
}

func TestNormalsUnitLength(t *testing.T) {
	c := newCloth(t, Config{NumX: 8, NumY: 6, Seed: 7})
	check := func() {
		for i := 0; i < c.NumPoints(); i++ {
			assert.InDelta(t, 1, c.Normal(i).Len(), 1e-9, "point normal %d", i)
		}
		for i := 0; i < c.NumTriangles(); i++ {
			assert.InDelta(t, 1, c.TriangleNormal(i).Len(), 1e-9, "triangle normal %d", i)
		}
	}
	check()
	for f := 0; f < 20; f++ {
		c.Update()
	}
	check()
}

func TestFlatNormalsFaceZ(t *testing.T) {
	c := newCloth(t, Config{NumX: 4, NumY: 4, Flat: true})
	for i := 0; i < c.NumTriangles(); i++ {
		assert.InDelta(t, 1, c.TriangleNormal(i)[2], 1e-12)
	}
}

func TestAreaWeightedPointNormals(t *testing.T) {
	c := newCloth(t, Config{NumX: 2, NumY: 2, Flat: true})
	// Lift point 2 so the even triangle (0,3,2) tilts while the odd
	// triangle (0,1,3) stays flat. Point 0 is shared by both.
	pts := c.Points()
	pts[2][2] = 1
	require.NoError(t, c.ChangeState(pts, c.Velocities(), c.MovableFlags(), false))

	sum := mathutil.Vec3{}
	for _, tri := range []int{0, 1} {
		tr := c.Triangle(tri)
		p0 := c.Point(tr[0])
		sum = sum.Add(c.Point(tr[1]).Sub(p0).Cross(c.Point(tr[2]).Sub(p0)))
	}
	want := sum.Normalize()
	got := c.Normal(0)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, want[k], got[k], 1e-12)
	}

	// Uniform averaging of unit normals would differ.
	uniform := c.TriangleNormal(0).Add(c.TriangleNormal(1)).Normalize()
	assert.Greater(t, uniform.Sub(got).Len(), 1e-3)
}

func TestPinnedPointsNeverMove(t *testing.T) {
	c := newCloth(t, Config{NumX: 6, NumY: 8, Seed: 3})
	n := c.NumPoints()
	pinned := []int{n - 1, n - 6}
	before := []mathutil.Vec3{c.Point(pinned[0]), c.Point(pinned[1])}

	for f := 0; f < 50; f++ {
		c.Update()
		for j, idx := range pinned {
			require.Equal(t, before[j], c.Point(idx), "frame %d point %d", f, idx)
		}
	}
}

func TestPinnedVelocityStillAccumulates(t *testing.T) {
	c := newCloth(t, Config{NumX: 4, NumY: 4, Flat: true})
	n := c.NumPoints()
	g := DefaultTuning().Gravity
	imass := float64(n) / DefaultMass

	// A flat sheet has no internal forces, so the first frame is pure gravity.
	c.Update()
	assert.InDelta(t, -g, c.Velocity(n-1)[1], 1e-12)

	// Afterwards the pin is pulled by the stretched sheet as well.
	want := c.Velocity(n - 1)
	for f := 0; f < 3; f++ {
		c.Update()
		want = want.Add(c.Force(n - 1).Scale(imass))
		want[1] -= g
		for k := 0; k < 3; k++ {
			assert.InDelta(t, want[k], c.Velocity(n-1)[k], 1e-15, "frame %d axis %d", f, k)
		}
	}
	assert.Less(t, c.Velocity(n-1)[1], -3*g)
	assert.Equal(t, mathutil.Vec3{1, 1, 0}, c.Point(n-1))
}

func TestFlatClothFallsUnderGravity(t *testing.T) {
	c := newCloth(t, Config{NumX: 5, NumY: 5, Flat: true})
	before := c.Points()
	c.Update()
	g := DefaultTuning().Gravity
	for i := 0; i < c.NumPoints(); i++ {
		if !c.Movable(i) {
			continue
		}
		d := c.Point(i).Sub(before[i])
		assert.InDelta(t, -g, d[1], 1e-12, "point %d", i)
		assert.InDelta(t, 0, d[0], 1e-12)
		assert.InDelta(t, 0, d[2], 1e-12)
	}
}

func TestPin(t *testing.T) {
	c := newCloth(t, Config{NumX: 4, NumY: 4, Flat: true})
	require.NoError(t, c.Pin(0))
	assert.False(t, c.Movable(0))
	assert.Error(t, c.Pin(16))
	assert.Error(t, c.Pin(-1))

	c.Update()
	assert.Equal(t, mathutil.Vec3{0, 0, 0}, c.Point(0))
}

func TestChangeState(t *testing.T) {
	c := newCloth(t, Config{NumX: 3, NumY: 3, Seed: 9})
	n := c.NumPoints()

	pts := make([]mathutil.Vec3, n)
	vel := make([]mathutil.Vec3, n)
	mov := make([]bool, n)
	for i := range pts {
		pts[i] = mathutil.Vec3{float64(i % 3), float64(i / 3), 0}
		vel[i] = mathutil.Vec3{0, 0, 0.5}
		mov[i] = i != 4
	}
	require.NoError(t, c.ChangeState(pts, vel, mov, false))

	assert.Equal(t, pts, c.Points())
	assert.Equal(t, vel, c.Velocities())
	assert.Equal(t, mov, c.MovableFlags())
	assert.InDelta(t, 1, c.Normal(0).Len(), 1e-12)

	// The caller's slices are copied, not aliased.
	pts[0][0] = 99
	assert.Equal(t, 0.0, c.Point(0)[0])

	err := c.ChangeState(pts[:2], vel, mov, false)
	assert.Error(t, err)
}

func TestChangeStateReperturbs(t *testing.T) {
	c := newCloth(t, Config{NumX: 3, NumY: 3, Seed: 9})
	pts := make([]mathutil.Vec3, c.NumPoints())
	mov := make([]bool, c.NumPoints())
	mov[0] = true
	require.NoError(t, c.ChangeState(pts, make([]mathutil.Vec3, len(pts)), mov, true))

	assert.NotEqual(t, mathutil.Vec3{}, c.Point(0))
	for i := 1; i < c.NumPoints(); i++ {
		assert.Equal(t, mathutil.Vec3{}, c.Point(i))
	}
}

func dumpPoints(c *Cloth) string {
	var b strings.Builder
	for i := 0; i < c.NumPoints(); i++ {
		p := c.Point(i)
		fmt.Fprintf(&b, "%d %x %x %x\n", i, p[0], p[1], p[2])
	}
	return b.String()
}

func TestDeterministicRuns(t *testing.T) {
	run := func() string {
		c := newCloth(t, Config{NumX: 6, NumY: 9, Seed: 2024})
		for f := 0; f < 40; f++ {
			c.Update()
		}
		return dumpPoints(c)
	}

	a, b := run(), run()
	if a != b {
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(a),
			B:        difflib.SplitLines(b),
			FromFile: "run1",
			ToFile:   "run2",
			Context:  0,
		}
		text, _ := difflib.GetUnifiedDiffString(diff)
		t.Fatalf("runs diverged:\n%s", text)
	}
}

func TestSeedChangesPerturbation(t *testing.T) {
	a := newCloth(t, Config{NumX: 4, NumY: 4, Seed: 1})
	b := newCloth(t, Config{NumX: 4, NumY: 4, Seed: 2})
	assert.NotEqual(t, dumpPoints(a), dumpPoints(b))
}

func TestUpdateStaysFinite(t *testing.T) {
	c := newCloth(t, Config{NumX: 10, NumY: 30, Seed: 5})
	for f := 0; f < 100; f++ {
		c.Update()
	}
	for i := 0; i < c.NumPoints(); i++ {
		require.True(t, c.Point(i).IsFinite(), "point %d", i)
	}
}
