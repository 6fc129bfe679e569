package raster

import (
	"image"

	"github.com/kartiksethi/ClothSimulation/internal/mathutil"
	"github.com/kartiksethi/ClothSimulation/internal/mesh"
	"github.com/kartiksethi/ClothSimulation/internal/viewmatrix"
)

// DefaultColor is used for triangles without a color of their own.
var DefaultColor = [4]uint8{160, 160, 170, 255}

// Options control one render.
type Options struct {
	Texture    *image.NRGBA // optional; mapped through the frame's UVs
	Tile       int          // repeat the texture Tile times across [0, 1]; 0 or 1 stretches it once
	Background [4]uint8     // zero alpha leaves the image transparent
	Light      *LightConfig // nil means DefaultLightConfig()
}

// RenderFrame rasterizes f through the framing into a Size×Size NRGBA
// image.
func RenderFrame(f mesh.Frame, fr *viewmatrix.Framing, opts Options) *image.NRGBA {
	size := fr.Size
	fb := NewFrameBuffer(size, size)
	if opts.Background[3] > 0 {
		fb.Fill(opts.Background)
	}
	lc := opts.Light
	if lc == nil {
		def := DefaultLightConfig()
		lc = &def
	}

	px, py, pz := fr.Project(f.Positions)
	normals := fr.ViewNormals(f.Normals)
	shade := make([]float64, len(f.Positions))
	for i := range shade {
		if i < len(normals) {
			shade[i] = lc.ComputeShade(normals[i])
		} else {
			shade[i] = lc.Ambient
		}
	}
	vs := &Vertices{PX: px, PY: py, PZ: pz, Shade: shade}

	tex := opts.Texture
	if tex != nil && len(f.UVs) == len(f.Positions) {
		vs.UVs = f.UVs
		if opts.Tile > 1 {
			vs.UVs = make([]mathutil.Vec2, len(f.UVs))
			for i, uv := range f.UVs {
				vs.UVs[i] = mathutil.Vec2{uv[0] * float64(opts.Tile), uv[1] * float64(opts.Tile)}
			}
			vs.Addressing = Repeat
		}
	}
	// Without UVs a texture can only tint.
	def := DefaultColor
	if tex != nil && vs.UVs == nil {
		r, g, b, a := averageColor(tex)
		def = [4]uint8{r, g, b, a}
	}

	for t, tri := range f.Triangles {
		base := def
		if t < len(f.Colors) {
			r, g, b, a := f.Colors[t].RGBA8()
			base = [4]uint8{r, g, b, a}
		}
		RasterizeTriangle(fb, vs, tri, tex, base, lc)
	}

	return fb.Image()
}

func averageColor(tex *image.NRGBA) (uint8, uint8, uint8, uint8) {
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return DefaultColor[0], DefaultColor[1], DefaultColor[2], DefaultColor[3]
	}

	var sumR, sumG, sumB float64
	total := w * h
	stride := tex.Stride
	for y := 0; y < h; y++ {
		off := y * stride
		for x := 0; x < w; x++ {
			i := off + x*4
			sumR += float64(tex.Pix[i])
			sumG += float64(tex.Pix[i+1])
			sumB += float64(tex.Pix[i+2])
		}
	}
	n := float64(total)
	return uint8(sumR/n + 0.5), uint8(sumG/n + 0.5), uint8(sumB/n + 0.5), 255
}
