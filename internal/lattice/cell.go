package lattice

import (
	"sfgen/internal/core"
	"sfgen/internal/env"
)

// Cell is one lattice site. Mass moves between three pools: diffusive
// (vapor, free to spread each iteration), boundary (temporarily held at
// the crystal surface) and crystal (permanently deposited). Once Attached
// a cell is terminal: no further diffusion, freezing, melting or noise
// applies to it and its boundary mass stays zero.
type Cell struct {
	DiffusiveMass float64
	BoundaryMass  float64
	CrystalMass   float64

	// Attached is monotonic: it flips false→true once and never resets.
	Attached bool
	// Boundary is recomputed every iteration: true iff not attached and
	// at least one neighbor is attached.
	Boundary bool
	// Age counts iterations survived unattached; frozen on attachment.
	Age int

	nextDiffusive float64 // phase-1 candidate, committed in phase 2
	wantsAttach   bool    // phase-2 decision, committed in phase 3
	attachedCount int     // attached neighbors counted in phase 1
}

// attach makes the cell a permanent part of the crystal. Terminal.
func (c *Cell) attach(offset float64) {
	c.CrystalMass = c.BoundaryMass + c.CrystalMass + offset
	c.BoundaryMass = 0
	c.Attached = true
}

// freeze moves diffusive mass into the boundary and crystal pools; a
// kappa fraction deposits directly as crystal.
func (c *Cell) freeze(e *env.Environment) {
	if !c.Boundary {
		return
	}
	c.BoundaryMass += (1 - e.Kappa) * c.DiffusiveMass
	c.CrystalMass += e.Kappa * c.DiffusiveMass
	c.DiffusiveMass = 0
}

// melt leaks a small fraction of held mass back into the vapor.
func (c *Cell) melt(e *env.Environment) {
	if !c.Boundary {
		return
	}
	c.DiffusiveMass += e.Mu*c.BoundaryMass + e.Upsilon*c.CrystalMass
	c.BoundaryMass = (1 - e.Mu) * c.BoundaryMass
	c.CrystalMass = (1 - e.Upsilon) * c.CrystalMass
}

// noise perturbs vapor cells multiplicatively by ±sigma.
func (c *Cell) noise(e *env.Environment, rng *core.RNG) {
	if c.Boundary || c.Attached {
		return
	}
	if rng.Coin() {
		c.DiffusiveMass = (1 - e.Sigma) * c.DiffusiveMass
	} else {
		c.DiffusiveMass = (1 + e.Sigma) * c.DiffusiveMass
	}
}
