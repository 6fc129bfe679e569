package springmass

import "github.com/kartiksethi/ClothSimulation/internal/mathutil"

// particle is a point mass integrated with position Verlet. Velocity is
// implicit in pos - old.
type particle struct {
	pos     mathutil.Vec3
	old     mathutil.Vec3
	acc     mathutil.Vec3
	normal  mathutil.Vec3
	mass    float64
	movable bool
}

func newParticle(pos mathutil.Vec3, mass float64) particle {
	return particle{pos: pos, old: pos, mass: mass, movable: true}
}

func (p *particle) applyForce(f mathutil.Vec3) {
	p.acc = p.acc.Add(f.Scale(1 / p.mass))
}

// offset moves a movable particle by d. Pinned particles ignore it.
func (p *particle) offset(d mathutil.Vec3) {
	if p.movable {
		p.pos = p.pos.Add(d)
	}
}

// step advances a movable particle by one frame. Acceleration is consumed
// only when the particle moves.
func (p *particle) step(damping, dt float64) {
	if !p.movable {
		return
	}
	prev := p.pos
	p.pos = p.pos.Add(p.pos.Sub(p.old).Scale(1 - damping)).Add(p.acc.Scale(dt * dt))
	p.old = prev
	p.acc = mathutil.Vec3{}
}
