package continuum

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBendNeighborsByOffset(t *testing.T) {
	c := newCloth(t, Config{NumX: 3, NumY: 3, Flat: true})
	assert.Equal(t, [3]int{-1, 1, 4}, c.BendNeighbors(0))
	assert.Equal(t, [3]int{1, 3, 6}, c.BendNeighbors(2))
	assert.Equal(t, [3]int{3, 5, -1}, c.BendNeighbors(4))
	assert.Equal(t, [3]int{5, 7, -1}, c.BendNeighbors(6))

	// Candidates are i-1, i+1 and i+numX+1, even across rows.
	c = newCloth(t, Config{NumX: 10, NumY: 5, Flat: true})
	assert.Equal(t, [3]int{-1, 1, 11}, c.BendNeighbors(0))
	assert.Equal(t, [3]int{17, 19, 29}, c.BendNeighbors(18))
	assert.Equal(t, [3]int{19, 21, 31}, c.BendNeighbors(20))
	assert.Equal(t, [3]int{69, 71, -1}, c.BendNeighbors(70))

	// The offset slot keeps the (v2, v1) edge of the even triangle.
	edge, ok := c.SharedEdge(0, 11)
	require.True(t, ok)
	tri := c.Triangle(0)
	assert.Equal(t, [2]int{tri[2], tri[1]}, edge)
	edge, ok = c.SharedEdge(18, 17)
	require.True(t, ok)
	tri = c.Triangle(18)
	assert.Equal(t, [2]int{tri[0], tri[2]}, edge)
	assert.NotContains(t, edge[:], c.Remaining(edge, 17))
}

func TestBendNeighborsByEdge(t *testing.T) {
	c := newCloth(t, Config{NumX: 10, NumY: 5, Flat: true, Pairing: PairByEdge})
	assert.Equal(t, [3]int{-1, 1, 19}, c.BendNeighbors(0))
	assert.Equal(t, [3]int{-1, 19, 37}, c.BendNeighbors(18))
	assert.Equal(t, [3]int{19, 21, 39}, c.BendNeighbors(20))

	c = newCloth(t, Config{NumX: 3, NumY: 3, Flat: true, Pairing: PairByEdge})
	assert.Equal(t, [3]int{-1, 1, 5}, c.BendNeighbors(0))
	assert.Equal(t, [3]int{1, 3, 7}, c.BendNeighbors(2))
	assert.Equal(t, [3]int{-1, 5, -1}, c.BendNeighbors(4))
	assert.Equal(t, [3]int{5, 7, -1}, c.BendNeighbors(6))

	// Odd triangles and out-of-range indices have no partners.
	assert.Equal(t, [3]int{-1, -1, -1}, c.BendNeighbors(1))
	assert.Equal(t, [3]int{-1, -1, -1}, c.BendNeighbors(99))
}

func TestSharedEdgesByEdge(t *testing.T) {
	c := newCloth(t, Config{NumX: 5, NumY: 4, Flat: true, Pairing: PairByEdge})
	type pair struct{ a, b int }
	seen := map[pair]bool{}

	for t1 := 0; t1 < c.NumTriangles(); t1 += 2 {
		for _, t2 := range c.BendNeighbors(t1) {
			if t2 < 0 {
				continue
			}
			require.False(t, seen[pair{t1, t2}], "pair %d-%d listed twice", t1, t2)
			seen[pair{t1, t2}] = true

			edge, ok := c.SharedEdge(t1, t2)
			require.True(t, ok)
			tri1, tri2 := c.Triangle(t1), c.Triangle(t2)
			for _, p := range edge {
				assert.Contains(t, tri1[:], p, "edge point %d not in %d", p, t1)
				assert.Contains(t, tri2[:], p, "edge point %d not in %d", p, t2)
			}

			rem := c.Remaining(edge, t2)
			assert.Contains(t, tri2[:], rem)
			assert.NotContains(t, edge[:], rem)
			assert.False(t, slices.Contains(tri1[:], rem), "remaining point %d is shared", rem)
		}
	}

	// Every interior edge of the grid appears exactly once.
	x, y := c.Size()
	interior := (x-1)*(y-1) + (x-2)*(y-1) + (x-1)*(y-2)
	assert.Len(t, seen, interior)
}

func TestSharedEdgeRejectsNonPartners(t *testing.T) {
	c := newCloth(t, Config{NumX: 3, NumY: 3, Flat: true})
	_, ok := c.SharedEdge(0, 7)
	assert.False(t, ok)
	_, ok = c.SharedEdge(1, 0)
	assert.False(t, ok)
	_, ok = c.CondBend(0, 3)
	assert.False(t, ok)
	_, ok = c.GradBend(0, 6)
	assert.False(t, ok)
}

func TestLeftCandidateAcrossRows(t *testing.T) {
	byEdge := newCloth(t, Config{NumX: 4, NumY: 4, Flat: true, Pairing: PairByEdge})
	byOffset := newCloth(t, Config{NumX: 4, NumY: 4, Flat: true})
	// The first even triangle of each later row: edge pairing has no left
	// partner, offset pairing takes the last triangle of the row before.
	for y := 1; y < 3; y++ {
		t1 := 2 * (y * 3)
		assert.Equal(t, -1, byEdge.BendNeighbors(t1)[sideLeft], "row %d", y)
		assert.Equal(t, t1-1, byOffset.BendNeighbors(t1)[sideLeft], "row %d", y)
	}
}
