package render

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"

	"sfgen/internal/core"
	"sfgen/internal/lattice"
)

// xScaleFactor undoes the horizontal stretch the square embedding of the
// hex adjacency introduces: after the 45° rotation the X axis is resized
// by 1/√3.
var xScaleFactor = 1.0 / math.Sqrt(3)

// Options controls image export and post-processing.
type Options struct {
	Scheme *Scheme

	// Post-processing toggles, applied in this order.
	Rotate bool // rotate 45°
	Scale  bool // anisotropic resize by 1/√3 on X
	Crop   bool // crop to the lattice's CropBox

	// CropMargin pads the crop box, in grid units; 0 means the default.
	CropMargin int
	// Resize scales the final image to Resize×Resize; 0 disables.
	Resize int

	// Paper composites the flake over a perlin paper texture.
	Paper     bool
	PaperSeed int64
}

// DefaultOptions enables the full post-processing pipeline.
func DefaultOptions() Options {
	return Options{Rotate: true, Scale: true, Crop: true}
}

// Image assembles the lattice row-major into an RGBA image under the
// given scheme, with no post-processing.
func Image(l *lattice.Lattice, s *Scheme) *image.RGBA {
	size := l.Config().Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	grid := l.Grid()
	for idx := 0; idx < l.Len(); idx++ {
		x, y := grid.XY(idx)
		img.SetRGBA(x, y, CellColor(s, l, idx))
	}
	return img
}

// SaveImage renders the lattice, runs the post-processing pipeline and
// writes a PNG to path.
func SaveImage(l *lattice.Lattice, path string, opts Options) error {
	s := opts.Scheme
	if s == nil {
		s = NewScheme(Grayscale)
	}
	var out image.Image = Image(l, s)
	if opts.Paper {
		out = OverPaper(out, opts.PaperSeed)
	}
	if opts.Rotate {
		out = transform.Rotate(out, 45, nil)
	}
	if opts.Scale {
		size := l.Config().Size
		w := int(math.Round(float64(size) * xScaleFactor))
		out = transform.Resize(out, w, size, transform.Linear)
	}
	if opts.Crop {
		out = transform.Crop(out, l.CropBox(opts.CropMargin))
	}
	if opts.Resize > 0 {
		out = transform.Resize(out, opts.Resize, opts.Resize, transform.Linear)
	}
	if err := imgio.Save(path, out, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

// SaveLayers clusters the crystal into layers and writes one PNG per
// layer. pattern must contain a %d verb for the layer number. The paths
// written are returned in layer order.
func SaveLayers(l *lattice.Lattice, pattern string, layers int, opts Options, rng *core.RNG) ([]string, error) {
	scheme, err := NewLayeredScheme(l, layers, rng)
	if err != nil {
		return nil, err
	}
	opts.Scheme = scheme
	paths := make([]string, 0, layers)
	for layer := 0; layer < layers; layer++ {
		scheme.SelectLayer(layer)
		path := fmt.Sprintf(pattern, layer)
		if err := SaveImage(l, path, opts); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
