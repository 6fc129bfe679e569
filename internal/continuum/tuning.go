package continuum

// Tuning holds the fixed constants of the continuum model. The unit time
// step is folded into Gravity and the stiffness constants.
type Tuning struct {
	Gravity float64 // velocity lost along -Y per frame
	Delta   float64 // central-difference step for numeric gradients

	StretchX float64 // rest stretchiness along U
	StretchY float64 // rest stretchiness along V

	KStretchX float64
	KStretchY float64
	KShear    float64
	KBend     float64
	KDamp     float64 // damping scale applied on top of each stiffness

	// Per-axis force clamps. Bend clamps apply to the three points of the
	// first triangle only.
	MaxStretch     float64
	MaxStretchDamp float64
	MaxShear       float64
	MaxShearDamp   float64
	MaxBend        float64
	MaxBendDamp    float64
}

// DefaultMass is the mass of the whole cloth.
const DefaultMass = 20.0

// DefaultTuning returns the constants the model was tuned with.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity: 0.000002,
		Delta:   0.0001,

		StretchX: 1.0,
		StretchY: 1.0,

		KStretchX: 0.6,
		KStretchY: 0.6,
		KShear:    0.01,
		KBend:     0.01,
		KDamp:     0.1,

		MaxStretch:     0.01,
		MaxStretchDamp: 0.01,
		MaxShear:       0.01,
		MaxShearDamp:   0.01,
		MaxBend:        0.0000001,
		MaxBendDamp:    0.0000001,
	}
}
