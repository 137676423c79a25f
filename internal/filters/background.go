package filters

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
)

// RemoveBackground makes every pixel darker than the luminance threshold
// fully transparent, leaving the subject on an empty background.
func RemoveBackground(img image.Image, threshold uint8) *image.RGBA {
	t := uint32(threshold)
	return adjust.Apply(img, func(c color.RGBA) color.RGBA {
		lum := (uint32(c.R) + uint32(c.G) + uint32(c.B)) / 3
		if lum < t {
			return color.RGBA{}
		}
		return c
	})
}
