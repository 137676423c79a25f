// Package filters provides standalone one-shot image filters. Each filter
// is a pure function over an image buffer with no shared state with the
// growth automaton.
package filters

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/convolution"
)

// LaplacianOfGaussian convolves the image with a LoG kernel of the given
// sigma. preBlur applies a gaussian blur of sigma/2 first to reduce
// noise. The kernel side defaults to 6σ+1 (forced odd), or 7 for σ < 1.
func LaplacianOfGaussian(img image.Image, sigma float64, preBlur bool) *image.RGBA {
	src := img
	if preBlur {
		src = blur.Gaussian(img, sigma/2)
	}
	k := logKernel(sigma, 0)
	return convolution.Convolve(src, k, &convolution.Options{KeepAlpha: true})
}

// logKernel builds a Laplacian-of-Gaussian kernel normalized so the sum
// of absolute weights is 1. size ≤ 0 selects the default side length.
func logKernel(sigma float64, size int) *convolution.Kernel {
	if size <= 0 {
		if sigma >= 1 {
			size = int(6*sigma + 1)
		} else {
			size = 7
		}
	}
	if size%2 == 0 {
		size++
	}
	k := convolution.NewKernel(size, size)
	half := size / 2
	twoSigma2 := 2 * sigma * sigma
	sum := 0.0
	for y := -half; y <= half; y++ {
		for x := -half; x <= half; x++ {
			r2 := float64(x*x + y*y)
			v := -(1 / (math.Pi * sigma * sigma * sigma * sigma)) *
				(1 - r2/twoSigma2) * math.Exp(-r2/twoSigma2)
			k.Matrix[(y+half)*size+(x+half)] = v
			sum += math.Abs(v)
		}
	}
	for i := range k.Matrix {
		k.Matrix[i] /= sum
	}
	return k
}
