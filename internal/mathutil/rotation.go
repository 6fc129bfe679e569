package mathutil

import "math"

// Axis names a coordinate axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Rotation returns the right-handed rotation by rad radians around ax.
func Rotation(ax Axis, rad float64) Mat3 {
	c, s := math.Cos(rad), math.Sin(rad)
	switch ax {
	case AxisX:
		return Mat3{1, 0, 0, 0, c, -s, 0, s, c}
	case AxisY:
		return Mat3{c, 0, s, 0, 1, 0, -s, 0, c}
	default:
		return Mat3{c, -s, 0, s, c, 0, 0, 0, 1}
	}
}

func Deg2Rad(d float64) float64 { return d * math.Pi / 180 }
