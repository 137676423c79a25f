// Package render maps finished lattice state to images: per-cell color
// schemes, PNG export with the 45° rotate / anisotropic resize / crop
// pipeline, and the live-viewer painter.
package render

import (
	"fmt"
	"image/color"
	"math"

	"sfgen/internal/core"
	"sfgen/internal/lattice"
)

// SchemeKind selects how cells map to colors.
type SchemeKind int

const (
	// Grayscale maps cell mass to brightness.
	Grayscale SchemeKind = iota
	// BlackWhite paints attached cells white on black.
	BlackWhite
	// AgeHue sweeps the hue circle by cell age.
	AgeHue
	// Layered paints only the cells of one crystal-mass cluster, for
	// slicing a flake into laser-cuttable layers.
	Layered
)

// ParseSchemeKind maps a config/flag string to a SchemeKind.
func ParseSchemeKind(name string) (SchemeKind, error) {
	switch name {
	case "grayscale", "":
		return Grayscale, nil
	case "blackwhite":
		return BlackWhite, nil
	case "agehue":
		return AgeHue, nil
	case "layered":
		return Layered, nil
	}
	return 0, fmt.Errorf("render: unknown scheme %q", name)
}

// Scheme is a tagged color-mapping variant dispatched by CellColor.
type Scheme struct {
	Kind SchemeKind
	// ShowBoundary additionally lights boundary cells in BlackWhite mode.
	ShowBoundary bool
	// Layer selects which cluster a Layered scheme renders.
	Layer int

	clusters []int // cell index → cluster, -1 for unattached cells
}

// NewScheme returns a scheme of the given kind. Layered schemes must be
// built with NewLayeredScheme instead.
func NewScheme(kind SchemeKind) *Scheme { return &Scheme{Kind: kind} }

// NewLayeredScheme clusters the attached cells of a finished lattice by
// crystal mass into the requested number of layers so each layer can be
// exported as its own mask.
func NewLayeredScheme(l *lattice.Lattice, layers int, rng *core.RNG) (*Scheme, error) {
	var indices []int
	var masses []float64
	for idx := 0; idx < l.Len(); idx++ {
		c := l.At(idx)
		if c.Attached {
			indices = append(indices, idx)
			masses = append(masses, c.CrystalMass)
		}
	}
	assign, err := kmeans1D(masses, layers, rng, 64)
	if err != nil {
		return nil, err
	}
	clusters := make([]int, l.Len())
	for i := range clusters {
		clusters[i] = -1
	}
	for i, idx := range indices {
		clusters[idx] = assign[i]
	}
	return &Scheme{Kind: Layered, clusters: clusters}, nil
}

// SelectLayer switches which cluster a Layered scheme renders.
func (s *Scheme) SelectLayer(layer int) { s.Layer = layer }

// CellColor maps one cell to a color under the scheme. This is the single
// dispatch point for all schemes.
func CellColor(s *Scheme, l *lattice.Lattice, idx int) color.RGBA {
	c := l.At(idx)
	switch s.Kind {
	case BlackWhite:
		if c.Attached || (s.ShowBoundary && c.Boundary) {
			return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		}
		return color.RGBA{A: 0xff}
	case AgeHue:
		iter := l.Iteration()
		if iter < 1 {
			iter = 1
		}
		r, g, b := hsvToRGB(float64(c.Age)/float64(iter), 1, 1)
		return color.RGBA{R: r, G: g, B: b, A: 0xff}
	case Layered:
		if s.clusters != nil && s.clusters[idx] == s.Layer {
			return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		}
		return color.RGBA{A: 0xff}
	default: // Grayscale
		mass := c.DiffusiveMass
		if c.Attached {
			mass = c.CrystalMass
		}
		v := math.Min(255, math.Floor(200*mass))
		if v < 0 {
			v = 0
		}
		g := uint8(v)
		return color.RGBA{R: g, G: g, B: g, A: 0xff}
	}
}

// hsvToRGB converts h, s, v in [0, 1] to 8-bit RGB.
func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	h = h - math.Floor(h)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)
	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return uint8(math.Round(r * 255)), uint8(math.Round(g * 255)), uint8(math.Round(b * 255))
}

// SnowflakePalette indexes the lattice display classes (vapor, boundary,
// attached) for the live viewer.
func SnowflakePalette() []color.RGBA {
	return []color.RGBA{
		{R: 8, G: 10, B: 22, A: 255},
		{R: 70, G: 110, B: 160, A: 255},
		{R: 240, G: 248, B: 255, A: 255},
	}
}
