package raster

import (
	"math"

	"github.com/kartiksethi/ClothSimulation/internal/mathutil"
)

// viewDir points from the camera into the scene in view space.
var viewDir = mathutil.Vec3{0, 0, -1}

// LightConfig describes the lights of a render. Directions are in view
// space and point from the surface toward the light. Every term uses
// |n·l| because cloth is seen from both sides.
type LightConfig struct {
	Key mathutil.Vec3
	Rim mathutil.Vec3

	Ambient float64
	Fill    float64 // sky fill, strongest on surfaces seen edge-on to Y
	KeyInt  float64
	RimInt  float64
	Spec    float64 // Blinn-Phong highlight of the key light
	Shine   float64
	Sheen   float64 // fabric highlight at grazing view angles

	Exposure float64
	Gamma    float64

	half mathutil.Vec3
}

// DefaultLightConfig lights the cloth from above and in front with a cool
// rim light behind it.
func DefaultLightConfig() LightConfig {
	return NewLightConfig(mathutil.Vec3{120, 260, 220}, mathutil.Vec3{-160, 130, -210})
}

// NewLightConfig builds the default light rig around the given key and rim
// directions. They need not be normalized.
func NewLightConfig(key, rim mathutil.Vec3) LightConfig {
	lc := LightConfig{
		Key:      key.Normalize(),
		Rim:      rim.Normalize(),
		Ambient:  0.35,
		Fill:     0.40,
		KeyInt:   1.20,
		RimInt:   0.45,
		Spec:     0.25,
		Shine:    16,
		Sheen:    0.20,
		Exposure: 1,
		Gamma:    2.2,
	}
	lc.half = lc.Key.Sub(viewDir).Normalize()
	return lc
}

// ComputeShade returns the light reaching a surface with view-space unit
// normal n.
func (lc *LightConfig) ComputeShade(n mathutil.Vec3) float64 {
	fill := lc.Fill * (1 - math.Abs(n[1])*0.5)
	key := lc.KeyInt * math.Abs(n.Dot(lc.Key))
	rim := lc.RimInt * math.Abs(n.Dot(lc.Rim))
	spec := lc.Spec * math.Pow(math.Abs(n.Dot(lc.half)), lc.Shine)

	graze := 1 - math.Abs(n.Dot(viewDir))
	sheen := lc.Sheen * graze * graze

	return lc.Ambient + fill + key + rim + spec + sheen
}

// encode lights one sRGB channel by shade, tone maps it and converts it
// back to sRGB.
func (lc *LightConfig) encode(c uint8, shade float64) uint8 {
	lin := ACESTonemap(srgbToLinear[c] * shade * lc.Exposure)
	return clamp255(math.Pow(lin, 1/lc.Gamma) * 255)
}

var srgbToLinear [256]float64

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = math.Pow(float64(i)/255, 2.2)
	}
}

// ACESTonemap is the Narkowicz fit of the ACES filmic curve. It levels off
// just above 1.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
