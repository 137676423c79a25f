package filters

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogKernelDefaults(t *testing.T) {
	k := logKernel(3, 0)
	assert.Equal(t, 19, k.Width, "side defaults to 6σ+1")
	assert.Equal(t, 19, k.Height)

	small := logKernel(0.5, 0)
	assert.Equal(t, 7, small.Width, "sub-unit sigma falls back to 7")

	even := logKernel(3, 4)
	assert.Equal(t, 5, even.Width, "even sizes are forced odd")
}

func TestLogKernelNormalized(t *testing.T) {
	k := logKernel(2, 0)
	sum := 0.0
	for _, v := range k.Matrix {
		sum += math.Abs(v)
	}
	assert.InDelta(t, 1.0, sum, 1e-9, "absolute weights must sum to 1")

	// The center of a LoG kernel is its strongest (negative) response.
	center := k.Matrix[(k.Height/2)*k.Width+k.Width/2]
	assert.Negative(t, center)
}

func TestLaplacianOfGaussianKeepsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 24, 16))
	for x := 10; x < 14; x++ {
		for y := 0; y < 16; y++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	out := LaplacianOfGaussian(img, 1.5, true)
	require.NotNil(t, out)
	assert.Equal(t, img.Bounds().Dx(), out.Bounds().Dx())
	assert.Equal(t, img.Bounds().Dy(), out.Bounds().Dy())
}

func TestRemoveBackground(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 10, B: 10, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	out := RemoveBackground(img, 100)
	assert.Zero(t, out.RGBAAt(0, 0).A, "dark pixels become transparent")
	assert.Equal(t, uint8(255), out.RGBAAt(1, 0).A, "bright pixels survive")
	assert.Equal(t, uint8(200), out.RGBAAt(1, 0).R)
}

func TestSkeletonizeTerminates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 8; x < 24; x++ {
		for y := 12; y < 20; y++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	out := Skeletonize(img, 128)
	require.NotNil(t, out)
	assert.Equal(t, img.Bounds(), out.Bounds())
}
