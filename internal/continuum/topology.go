package continuum

// Triangle is an ordered triple of point indices. The order fixes the
// winding and therefore the normal direction.
type Triangle [3]int

// BendPairing selects which triangles an even triangle bends against.
type BendPairing int

const (
	// PairByOffset tries triangles i-1, i+1 and i+numX+1 of even triangle
	// i, skipping only indices outside the mesh. The third candidate shares
	// an edge with i only on 2-wide grids, and i-1 shares none on the first
	// column.
	PairByOffset BendPairing = iota
	// PairByEdge pairs each even triangle with the odd triangles across its
	// three edges: the cell to the left, the same cell, the cell below.
	PairByEdge
)

// Candidate slots of an even triangle. Under PairByOffset they hold
// i-1, i+1 and i+numX+1.
const (
	sideLeft  = iota // across (v0, v2)
	sideDiag         // across (v1, v0)
	sideBelow        // across (v2, v1)
	numSides
)

// neighbor is a bending candidate of an even triangle. tri is -1 when the
// slot has no candidate.
type neighbor struct {
	tri  int
	edge [2]int // edge of the even triangle, in fixed orientation
	rem  int    // first vertex of tri not on edge
}

// buildTriangles lays out 2*(numX-1)*(numY-1) triangles. Cell (x, y) owns
// the even triangle (x,y),(x+1,y+1),(x,y+1) and the odd triangle
// (x,y),(x+1,y),(x+1,y+1), with point index x + y*numX.
func buildTriangles(numX, numY int) []Triangle {
	tris := make([]Triangle, 0, 2*(numX-1)*(numY-1))
	for i := 0; i < 2*(numX-1)*(numY-1); i++ {
		x := (i / 2) % (numX - 1)
		y := (i / 2) / (numX - 1)
		if i%2 == 0 {
			tris = append(tris, Triangle{x + y*numX, x + 1 + (y+1)*numX, x + (y+1)*numX})
		} else {
			tris = append(tris, Triangle{x + y*numX, x + 1 + y*numX, x + 1 + (y+1)*numX})
		}
	}
	return tris
}

// buildAdjacency returns, for every even triangle (indexed by i/2), its
// bending candidates per side.
func buildAdjacency(numX, numY int, tris []Triangle, pairing BendPairing) [][numSides]neighbor {
	cellsX := numX - 1
	adj := make([][numSides]neighbor, len(tris)/2)
	for q := range adj {
		i := 2 * q
		t := tris[i]
		// Shared edge orientation is fixed per slot.
		edges := [numSides][2]int{
			sideLeft:  {t[0], t[2]},
			sideDiag:  {t[1], t[0]},
			sideBelow: {t[2], t[1]},
		}
		var cand [numSides]int
		switch pairing {
		case PairByEdge:
			x, y := q%cellsX, q/cellsX
			cand = [numSides]int{-1, i + 1, -1}
			if x > 0 {
				cand[sideLeft] = i - 1
			}
			if y < numY-2 {
				cand[sideBelow] = i + 2*cellsX + 1
			}
		default:
			cand = [numSides]int{i - 1, i + 1, i + numX + 1}
		}

		var sides [numSides]neighbor
		for s, t2 := range cand {
			if t2 < 0 || t2 >= len(tris) {
				sides[s].tri = -1
				continue
			}
			sides[s] = partner(tris, t2, edges[s])
		}
		adj[q] = sides
	}
	return adj
}

func partner(tris []Triangle, t int, edge [2]int) neighbor {
	return neighbor{tri: t, edge: edge, rem: remaining(tris[t], edge)}
}

// remaining returns the vertex of t that is not on edge.
func remaining(t Triangle, edge [2]int) int {
	if t[0] != edge[0] && t[0] != edge[1] {
		return t[0]
	}
	if t[1] != edge[0] && t[1] != edge[1] {
		return t[1]
	}
	return t[2]
}

// BendNeighbors returns the bending candidates of even triangle t in slot
// order, with -1 where no candidate exists. Odd triangles have no
// candidates of their own.
func (c *Cloth) BendNeighbors(t int) [numSides]int {
	out := [numSides]int{-1, -1, -1}
	if t < 0 || t >= len(c.triangles) || t%2 != 0 {
		return out
	}
	for s, nb := range c.adjacency[t/2] {
		out[s] = nb.tri
	}
	return out
}

// SharedEdge returns the oriented edge of even triangle t1 used to bend it
// against candidate t2. ok is false when t2 is not a candidate of t1.
func (c *Cloth) SharedEdge(t1, t2 int) (edge [2]int, ok bool) {
	nb, ok := c.partnerOf(t1, t2)
	return nb.edge, ok
}

// Remaining returns the vertex of triangle t that is not on edge.
func (c *Cloth) Remaining(edge [2]int, t int) int {
	return remaining(c.triangles[t], edge)
}
