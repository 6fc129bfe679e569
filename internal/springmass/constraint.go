package springmass

// Kind classifies a distance constraint by the neighbor it links.
type Kind int

const (
	Structural Kind = iota // adjacent in a row or column
	Shear                  // adjacent diagonal
	Bend                   // two apart along a row, column or diagonal
)

func (k Kind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Shear:
		return "shear"
	case Bend:
		return "bend"
	}
	return "unknown"
}

// constraint keeps particles a and b at rest apart. rest is fixed at
// construction from the undeformed grid.
type constraint struct {
	a, b int
	rest float64
	kind Kind
}

// satisfy moves both endpoints half of the way to rest length along the
// displacement. Coincident endpoints divide by zero.
func (c constraint) satisfy(ps []particle) {
	d := ps[c.b].pos.Sub(ps[c.a].pos)
	corr := d.Scale((1 - c.rest/d.Len()) / 2)
	ps[c.a].offset(corr)
	ps[c.b].offset(corr.Neg())
}
