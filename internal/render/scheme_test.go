package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfgen/internal/core"
	"sfgen/internal/env"
	"sfgen/internal/lattice"
)

func grownLattice(t *testing.T) *lattice.Lattice {
	t.Helper()
	e := env.Default()
	l, err := lattice.New(lattice.Config{Size: 15, MaxSteps: 50, Margin: 0.85, Seed: 3}, &e, nil)
	require.NoError(t, err)
	for i := 0; i < 40; i++ {
		require.NoError(t, l.Step())
	}
	return l
}

func TestParseSchemeKind(t *testing.T) {
	for name, want := range map[string]SchemeKind{
		"":           Grayscale,
		"grayscale":  Grayscale,
		"blackwhite": BlackWhite,
		"agehue":     AgeHue,
		"layered":    Layered,
	} {
		kind, err := ParseSchemeKind(name)
		require.NoError(t, err)
		assert.Equal(t, want, kind, name)
	}
	_, err := ParseSchemeKind("sepia")
	assert.Error(t, err)
}

func TestBlackWhiteScheme(t *testing.T) {
	l := grownLattice(t)
	s := NewScheme(BlackWhite)
	center := l.Grid().Index(7, 7)

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	assert.Equal(t, white, CellColor(s, l, center), "attached cells render white")
	assert.Equal(t, color.RGBA{A: 0xff}, CellColor(s, l, 0), "vapor renders black")
}

func TestGrayscaleScheme(t *testing.T) {
	l := grownLattice(t)
	s := NewScheme(Grayscale)
	center := l.Grid().Index(7, 7)

	c := CellColor(s, l, center)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.G, c.B)
	assert.GreaterOrEqual(t, c.R, uint8(200), "the seed holds at least unit crystal mass")

	v := CellColor(s, l, 0)
	assert.Equal(t, v.R, v.G)
	assert.Greater(t, v.R, uint8(0), "vapor brightness tracks gamma")
	assert.Less(t, v.R, uint8(200))
}

func TestLayeredSchemePartitionsCrystal(t *testing.T) {
	l := grownLattice(t)
	const layers = 2
	s, err := NewLayeredScheme(l, layers, core.NewRNG(1))
	require.NoError(t, err)

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	lit := 0
	for idx := 0; idx < l.Len(); idx++ {
		inLayers := 0
		for layer := 0; layer < layers; layer++ {
			s.SelectLayer(layer)
			if CellColor(s, l, idx) == white {
				inLayers++
			}
		}
		if l.At(idx).Attached {
			assert.Equal(t, 1, inLayers, "attached cell %d must be in exactly one layer", idx)
			lit++
		} else {
			assert.Zero(t, inLayers, "unattached cell %d must stay dark", idx)
		}
	}
	assert.Equal(t, l.AttachedCount(), lit)
}

func TestImageDimensions(t *testing.T) {
	l := grownLattice(t)
	img := Image(l, NewScheme(Grayscale))
	assert.Equal(t, 15, img.Bounds().Dx())
	assert.Equal(t, 15, img.Bounds().Dy())
}
