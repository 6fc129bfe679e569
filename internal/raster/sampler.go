package raster

import (
	"image"
	"math"
)

// Addressing selects how UVs outside [0, 1] reach the texture.
type Addressing int

const (
	Clamp  Addressing = iota // edges stretch; u = 1 is the last column
	Repeat                   // the texture tiles
)

// SampleTexture performs bilinear filtering and returns RGBA as uint8.
// Accesses tex.Pix directly for performance.
func SampleTexture(tex *image.NRGBA, u, v float64, mode Addressing) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	if mode == Repeat {
		u -= math.Floor(u)
		v -= math.Floor(v)
	} else {
		u = math.Min(math.Max(u, 0), 1)
		v = math.Min(math.Max(v, 0), 1)
	}

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1, y1 := x0+1, y0+1
	if mode == Repeat {
		x1 %= w
		y1 %= h
	} else {
		x1 = min(x1, w-1)
		y1 = min(y1, h-1)
	}
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var out [4]uint8
	for c := 0; c < 4; c++ {
		f := float64(pix[i00+c])*w00 + float64(pix[i10+c])*w10 + float64(pix[i01+c])*w01 + float64(pix[i11+c])*w11
		out[c] = uint8(f + 0.5)
	}
	return out[0], out[1], out[2], out[3]
}
