package lattice

import (
	"testing"

	"sfgen/internal/env"
)

// predicateLattice returns a lattice plus the index of an interior probe
// cell whose state the tests overwrite directly.
func predicateLattice(t *testing.T) (*Lattice, int) {
	t.Helper()
	e := env.Default()
	l, err := New(testConfig(9, 10), &e, nil)
	if err != nil {
		t.Fatal(err)
	}
	return l, l.grid.Index(4, 5)
}

func TestAttachmentPredicateTips(t *testing.T) {
	l, idx := predicateLattice(t)
	beta := l.env.Beta
	c := &l.cells[idx]
	c.Boundary = true

	for _, n := range []int{0, 1, 2} {
		c.attachedCount = n
		c.BoundaryMass = beta + 0.01
		if !l.attachmentDecision(idx) {
			t.Fatalf("n=%d boundary mass just above beta must attach", n)
		}
		c.BoundaryMass = beta - 0.01
		if l.attachmentDecision(idx) {
			t.Fatalf("n=%d boundary mass just below beta must not attach", n)
		}
		// The beta comparison is strict.
		c.BoundaryMass = beta
		if l.attachmentDecision(idx) {
			t.Fatalf("n=%d boundary mass equal to beta must not attach", n)
		}
	}
}

func TestAttachmentPredicateThreeNeighbors(t *testing.T) {
	l, idx := predicateLattice(t)
	c := &l.cells[idx]
	c.Boundary = true
	c.attachedCount = 3

	// Boundary mass at or above 1 attaches regardless of the vapor around
	// (cell and neighbors still hold gamma = 0.5 diffusive mass each).
	c.BoundaryMass = 1.0
	if !l.attachmentDecision(idx) {
		t.Fatal("n=3 with boundary mass 1.0 must attach")
	}
	c.BoundaryMass = 0.99
	if l.attachmentDecision(idx) {
		t.Fatal("n=3 with boundary mass below 1 and vapor above theta must not attach")
	}

	// Starve the vapor: diffusion sum below theta plus boundary mass at
	// least alpha attaches.
	c.DiffusiveMass = 0
	for _, j := range l.neighborsOf(idx) {
		l.cells[j].DiffusiveMass = 0
	}
	c.BoundaryMass = l.env.Alpha
	if !l.attachmentDecision(idx) {
		t.Fatal("n=3 starved vapor with boundary mass at alpha must attach")
	}
	c.BoundaryMass = l.env.Alpha - 0.001
	if l.attachmentDecision(idx) {
		t.Fatal("n=3 with boundary mass below alpha must not attach")
	}
}

func TestAttachmentPredicateConcavities(t *testing.T) {
	l, idx := predicateLattice(t)
	c := &l.cells[idx]
	c.Boundary = true

	for _, n := range []int{4, 5, 6} {
		c.attachedCount = n
		c.BoundaryMass = 0
		if !l.attachmentDecision(idx) {
			t.Fatalf("n=%d must always attach", n)
		}
	}
}

func TestAttachmentPredicateNonBoundary(t *testing.T) {
	l, idx := predicateLattice(t)
	c := &l.cells[idx]
	c.Boundary = false
	c.attachedCount = 6
	c.BoundaryMass = 100
	if l.attachmentDecision(idx) {
		t.Fatal("non-boundary cells never attach")
	}
}

func TestAttachIsTerminal(t *testing.T) {
	var c Cell
	c.BoundaryMass = 0.4
	c.CrystalMass = 0.2
	c.attach(0.1)
	if !c.Attached {
		t.Fatal("attach must set the flag")
	}
	if c.BoundaryMass != 0 {
		t.Fatalf("attach left boundary mass %v", c.BoundaryMass)
	}
	want := 0.4 + 0.2 + 0.1
	if c.CrystalMass != want {
		t.Fatalf("crystal mass = %v, expected %v", c.CrystalMass, want)
	}
}

func TestFreezeSplitsByKappa(t *testing.T) {
	e := env.Default()
	c := Cell{DiffusiveMass: 1, Boundary: true}
	c.freeze(&e)
	if c.DiffusiveMass != 0 {
		t.Fatalf("freeze left diffusive mass %v", c.DiffusiveMass)
	}
	if got, want := c.BoundaryMass, 1-e.Kappa; got != want {
		t.Fatalf("boundary mass = %v, expected %v", got, want)
	}
	if got, want := c.CrystalMass, e.Kappa; got != want {
		t.Fatalf("crystal mass = %v, expected %v", got, want)
	}

	// Non-boundary cells do not freeze.
	v := Cell{DiffusiveMass: 1}
	v.freeze(&e)
	if v.DiffusiveMass != 1 || v.BoundaryMass != 0 {
		t.Fatal("freeze must not touch non-boundary cells")
	}
}

func TestMeltLeaksBackToVapor(t *testing.T) {
	e := env.Default()
	c := Cell{Boundary: true, BoundaryMass: 1, CrystalMass: 1}
	c.melt(&e)
	if got, want := c.DiffusiveMass, e.Mu+e.Upsilon; got != want {
		t.Fatalf("diffusive mass = %v, expected %v", got, want)
	}
	if got, want := c.BoundaryMass, 1-e.Mu; got != want {
		t.Fatalf("boundary mass = %v, expected %v", got, want)
	}
	if got, want := c.CrystalMass, 1-e.Upsilon; got != want {
		t.Fatalf("crystal mass = %v, expected %v", got, want)
	}
}
