//go:build ebiten

package ui

import (
	"fmt"
	"strings"

	"sfgen/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws an optional parameter panel over the simulation view.
type Overlay struct {
	sim  core.Sim
	show bool
}

// NewOverlay constructs an overlay for the provided simulation.
func NewOverlay(sim core.Sim) *Overlay {
	return &Overlay{sim: sim}
}

// Update toggles panel visibility.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.show = !o.show
	}
}

// Draw renders the panel when visible and the sim exposes parameters.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	provider, ok := o.sim.(core.ParametersProvider)
	if !ok {
		return
	}
	var b strings.Builder
	for _, group := range provider.Parameters().Groups {
		fmt.Fprintf(&b, "[%s]\n", group.Name)
		for _, param := range group.Params {
			fmt.Fprintf(&b, "  %s: %s\n", param.Label, param.Value)
		}
	}
	ebitenutil.DebugPrint(screen, b.String())
}
