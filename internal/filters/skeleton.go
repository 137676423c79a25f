package filters

import (
	"image"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// maxThinPasses bounds the morphological thinning loop; every pass erodes
// the working image by one pixel, so the bound is generous for any sane
// input size.
const maxThinPasses = 1024

// Skeletonize detects edges and reduces them to single-pixel-wide strokes
// via iterative morphological thinning (erode, open, accumulate the
// difference) until the working image is fully eroded.
func Skeletonize(img image.Image, edgeThreshold uint8) *image.RGBA {
	edges := effect.Sobel(img)
	cur := clone.AsRGBA(segment.Threshold(edges, edgeThreshold))

	b := cur.Bounds()
	skel := image.NewRGBA(b)
	for i := 3; i < len(skel.Pix); i += 4 {
		skel.Pix[i] = 0xff
	}

	for pass := 0; pass < maxThinPasses; pass++ {
		eroded := effect.Erode(cur, 1)
		opened := effect.Dilate(eroded, 1)
		diff := blend.Subtract(cur, opened)
		skel = blend.Lighten(skel, diff)
		cur = eroded
		if isBlack(cur) {
			break
		}
	}
	return skel
}

func isBlack(img *image.RGBA) bool {
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			return false
		}
	}
	return true
}
