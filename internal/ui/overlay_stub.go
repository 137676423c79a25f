//go:build !ebiten

package ui

import "sfgen/internal/core"

// Overlay is a placeholder for headless builds.
type Overlay struct{}

// NewOverlay returns an inert overlay.
func NewOverlay(core.Sim) *Overlay { return &Overlay{} }

// Update is a no-op placeholder.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
