package render

import (
	"image"
	"image/color"

	"github.com/aquilax/go-perlin"
)

const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3
	paperScale    = 48.0
)

// Paper renders a subtle perlin-noise paper texture.
func Paper(w, h int, seed int64) *image.RGBA {
	p := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := p.Noise2D(float64(x)/paperScale, float64(y)/paperScale)
			v := 235 + n*18
			if v > 255 {
				v = 255
			}
			if v < 205 {
				v = 205
			}
			g := uint8(v)
			img.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}
	return img
}

// OverPaper replaces near-black background pixels with a paper texture so
// exports read as prints on paper rather than on black.
func OverPaper(img image.Image, seed int64) *image.RGBA {
	b := img.Bounds()
	paper := Paper(b.Dx(), b.Dy(), seed)
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r+g+bl < 0x3000 {
				out.Set(x, y, paper.RGBAAt(x-b.Min.X, y-b.Min.Y))
				continue
			}
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}
