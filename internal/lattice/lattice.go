// Package lattice implements the snowflake growth automaton: a square
// grid of cells with hex-like 6-neighbor adjacency, advanced by a
// synchronous three-phase update. A phase reads only state committed by
// the previous phase, never a neighbor's in-progress value.
package lattice

import (
	"fmt"
	"image"
	"math"
	"strconv"

	"sfgen/internal/core"
	"sfgen/internal/env"
)

// DefaultAngle is the ray direction (degrees) used to measure the growth
// radius. Chosen as representative of the overall growth envelope, not a
// true maximum.
const DefaultAngle = 135.0

// DefaultCropMargin pads the crop box around the measured radius, in grid
// units.
const DefaultCropMargin = 15

// xScaleFactor corrects the measured radius for the renderer's 45°
// rotation plus anisotropic resize.
var xScaleFactor = 1.0 / math.Sqrt(3)

// Config controls lattice construction.
type Config struct {
	// Size is the grid edge length; the lattice owns Size×Size cells.
	Size int
	// MaxSteps bounds growth; 0 means unbounded (radius cutoff only).
	MaxSteps int
	// Margin stops growth once the radius exceeds Margin×Size/2.
	Margin float64
	// Seed drives the noise phase and any reseeding.
	Seed int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:     200,
		MaxSteps: 500,
		Margin:   0.85,
		Seed:     1337,
	}
}

// Lattice owns all cells of the automaton and drives the global
// three-phase iteration. No external component may hold cells past the
// lattice's lifetime.
type Lattice struct {
	cfg  Config
	grid core.Grid
	env  env.Environment
	rng  *core.RNG

	cells []Cell

	// Adjacency table, eager-built at construction: cell index →
	// up-to-6 neighbor indices. The grid topology never changes.
	neighbors [][6]int32
	nbrCount  []uint8

	iteration int
	display   []uint8
}

// New constructs a lattice with exactly one attached seed cell at the
// grid center; every other cell starts with the environment's background
// diffusive density gamma. A nil environment gets the fixed defaults and
// a nil rng is seeded from the config.
func New(cfg Config, environment *env.Environment, rng *core.RNG) (*Lattice, error) {
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("lattice: invalid size %d", cfg.Size)
	}
	if cfg.Margin == 0 {
		cfg.Margin = 0.85
	}
	if cfg.Margin < 0 || cfg.Margin > 1 {
		return nil, fmt.Errorf("lattice: margin %v not in (0, 1]", cfg.Margin)
	}
	e := env.Default()
	if environment != nil {
		e = *environment
	}
	if rng == nil {
		rng = core.NewRNG(cfg.Seed)
	}

	l := &Lattice{
		cfg:  cfg,
		grid: core.Grid{Size: cfg.Size},
		env:  e,
		rng:  rng,
	}
	l.initNeighbors()
	l.initCells()
	return l, nil
}

// initNeighbors eager-builds the adjacency table. Adjacency for (x, y) is
// (x,y+1), (x,y-1), (x-1,y), (x+1,y), (x-1,y-1), (x+1,y+1): a 6-neighbor
// connectivity embedded in the square index space, intentionally
// asymmetric to approximate hexagonal crystal symmetry. Out-of-grid
// candidates are dropped.
func (l *Lattice) initNeighbors() {
	n := l.grid.Len()
	l.neighbors = make([][6]int32, n)
	l.nbrCount = make([]uint8, n)
	for y := 0; y < l.cfg.Size; y++ {
		for x := 0; x < l.cfg.Size; x++ {
			idx := l.grid.Index(x, y)
			count := 0
			for _, d := range [6][2]int{
				{0, 1}, {0, -1}, {-1, 0}, {1, 0}, {-1, -1}, {1, 1},
			} {
				nx, ny := x+d[0], y+d[1]
				if !l.grid.InBounds(nx, ny) {
					continue
				}
				l.neighbors[idx][count] = int32(l.grid.Index(nx, ny))
				count++
			}
			l.nbrCount[idx] = uint8(count)
		}
	}
}

func (l *Lattice) initCells() {
	l.cells = make([]Cell, l.grid.Len())
	for i := range l.cells {
		l.cells[i].DiffusiveMass = l.env.Gamma
	}
	center := l.grid.Index(l.cfg.Size/2, l.cfg.Size/2)
	l.cells[center].attach(1)
	l.iteration = 1
	l.display = make([]uint8, len(l.cells))
}

func (l *Lattice) neighborsOf(idx int) []int32 {
	return l.neighbors[idx][:l.nbrCount[idx]]
}

// Step advances the whole grid by one iteration. All non-attached cells
// run phase 1, then all run phase 2, then all run phase 3; attached
// cells are frozen and skipped entirely. The phase barrier guarantees a
// cell's phase-2 read of a neighbor's diffusive mass sees the
// pre-iteration value committed in phase 1.
func (l *Lattice) Step() error {
	for i := range l.cells {
		if l.cells[i].Attached {
			continue
		}
		l.stepOne(i)
	}
	for i := range l.cells {
		if l.cells[i].Attached {
			continue
		}
		l.stepTwo(i)
	}
	for i := range l.cells {
		if l.cells[i].Attached {
			continue
		}
		l.stepThree(i)
	}
	l.iteration++
	if l.Headroom() {
		if err := l.env.Step(l.iteration); err != nil {
			return fmt.Errorf("lattice: iteration %d: %w", l.iteration, err)
		}
	}
	return nil
}

// stepOne recomputes the boundary flag, snapshots the attached-neighbor
// count and computes the diffusion candidate. The candidate averages the
// cell's own diffusive mass with each neighbor's, counting the cell's
// own mass again for attached neighbors (a reflecting boundary at the
// crystal surface). Nothing is committed yet.
func (l *Lattice) stepOne(idx int) {
	c := &l.cells[idx]
	nbrs := l.neighborsOf(idx)

	c.attachedCount = 0
	for _, j := range nbrs {
		if l.cells[j].Attached {
			c.attachedCount++
		}
	}
	c.Boundary = c.attachedCount > 0

	next := c.DiffusiveMass
	for _, j := range nbrs {
		if l.cells[j].Attached {
			next += c.DiffusiveMass
		} else {
			next += l.cells[j].DiffusiveMass
		}
	}
	c.nextDiffusive = next / float64(len(nbrs)+1)
	c.Age++
}

// stepTwo commits the diffusion candidate, freezes, evaluates the
// attachment predicate against the post-freezing boundary mass, then
// melts. The attachment decision is recorded but not committed.
func (l *Lattice) stepTwo(idx int) {
	c := &l.cells[idx]
	c.DiffusiveMass = c.nextDiffusive
	c.freeze(&l.env)
	c.wantsAttach = l.attachmentDecision(idx)
	c.melt(&l.env)
}

// stepThree commits the phase-2 attachment decision, then applies noise
// to cells that are neither boundary nor attached.
func (l *Lattice) stepThree(idx int) {
	c := &l.cells[idx]
	if c.Boundary && c.wantsAttach {
		c.attach(0)
	}
	c.noise(&l.env, l.rng)
}

// attachmentDecision is the core physical rule of the model. Given the
// attached-neighbor count n:
//
//	n ≤ 2: attach iff boundary mass exceeds beta (strict).
//	n = 3: attach iff boundary mass ≥ 1; otherwise iff the summed
//	       diffusive mass of the cell and all its neighbors is below
//	       theta AND boundary mass ≥ alpha.
//	n ≥ 4: always attach.
//
// The mix of strict and non-strict comparisons is part of the model and
// must not be normalized.
func (l *Lattice) attachmentDecision(idx int) bool {
	c := &l.cells[idx]
	if !c.Boundary {
		return false
	}
	switch {
	case c.attachedCount <= 2:
		return c.BoundaryMass > l.env.Beta
	case c.attachedCount == 3:
		if c.BoundaryMass >= 1 {
			return true
		}
		sum := c.DiffusiveMass
		for _, j := range l.neighborsOf(idx) {
			sum += l.cells[j].DiffusiveMass
		}
		return sum < l.env.Theta && c.BoundaryMass >= l.env.Alpha
	default: // 4 or more
		return true
	}
}

// Grow repeatedly steps the lattice until headroom runs out: either the
// configured iteration bound is reached or the crystal approaches the
// grid edge.
func (l *Lattice) Grow() error {
	for {
		if err := l.Step(); err != nil {
			return err
		}
		if !l.Headroom() {
			return nil
		}
	}
}

// Headroom reports whether growth may continue.
func (l *Lattice) Headroom() bool {
	if l.cfg.MaxSteps > 0 && l.iteration >= l.cfg.MaxSteps {
		return false
	}
	cutoff := int(math.Round(l.cfg.Margin * float64(l.cfg.Size) / 2))
	return l.SnowflakeRadius(DefaultAngle) <= cutoff
}

// SnowflakeRadius marches outward from the grid center along one ray
// until the first cell that is neither attached nor boundary, and
// returns the distance of the last attached/boundary step. If the ray
// exits the grid without finding a gap the radius saturates at the grid
// half-width.
func (l *Lattice) SnowflakeRadius(angleDeg float64) int {
	half := float64(l.cfg.Size) / 2
	last := 0
	for d := 1; float64(d) < half; d++ {
		x, y := l.polarToXY(angleDeg, float64(d))
		if !l.grid.InBounds(x, y) {
			return last
		}
		c := &l.cells[l.grid.Index(x, y)]
		if c.Attached || c.Boundary {
			last = d
			continue
		}
		return last
	}
	return int(math.Round(half))
}

func (l *Lattice) polarToXY(angleDeg, distance float64) (int, int) {
	half := float64(l.cfg.Size) / 2
	rad := angleDeg * math.Pi / 180
	x := int(math.Round(half + math.Cos(rad)*distance))
	y := int(math.Round(half - math.Sin(rad)*distance))
	return x, y
}

// CropBox converts the measured radius (scaled by 1/√3 to match the
// renderer's rotation and anisotropic resize) into a bounding box
// centered on the grid, padded by margin grid units and saturated into
// the grid bounds. A non-positive margin selects the default.
func (l *Lattice) CropBox(margin int) image.Rectangle {
	if margin <= 0 {
		margin = DefaultCropMargin
	}
	half := float64(l.cfg.Size) / 2
	radius := math.Round(xScaleFactor * float64(l.SnowflakeRadius(DefaultAngle)))
	distance := math.Min(radius+float64(margin), half)
	halfS := math.Round(xScaleFactor * half)
	box := image.Rect(
		int(halfS-distance), int(half-distance),
		int(halfS+distance), int(half+distance),
	)
	return box.Intersect(image.Rect(0, 0, l.cfg.Size, l.cfg.Size))
}

// At returns a copy of the cell at the given index.
func (l *Lattice) At(idx int) Cell { return l.cells[idx] }

// Len returns the cell count.
func (l *Lattice) Len() int { return len(l.cells) }

// Grid exposes the index arithmetic for the lattice.
func (l *Lattice) Grid() core.Grid { return l.grid }

// Iteration returns the current iteration counter.
func (l *Lattice) Iteration() int { return l.iteration }

// Environment returns the current physical constants.
func (l *Lattice) Environment() env.Environment { return l.env }

// Config returns the construction parameters.
func (l *Lattice) Config() Config { return l.cfg }

// MassTotals sums each mass pool over the whole grid.
func (l *Lattice) MassTotals() (diffusive, boundary, crystal float64) {
	for i := range l.cells {
		diffusive += l.cells[i].DiffusiveMass
		boundary += l.cells[i].BoundaryMass
		crystal += l.cells[i].CrystalMass
	}
	return diffusive, boundary, crystal
}

// AttachedCount returns the number of cells in the crystal.
func (l *Lattice) AttachedCount() int {
	n := 0
	for i := range l.cells {
		if l.cells[i].Attached {
			n++
		}
	}
	return n
}

// Display cell classes for the viewer.
const (
	DisplayVapor uint8 = iota
	DisplayBoundary
	DisplayAttached
)

// Name identifies the simulation.
func (l *Lattice) Name() string { return "snowflake" }

// Size reports the grid dimensions.
func (l *Lattice) Size() core.Size { return core.Size{W: l.cfg.Size, H: l.cfg.Size} }

// Cells exposes a display buffer classifying every cell as vapor,
// boundary or attached.
func (l *Lattice) Cells() []uint8 {
	for i := range l.cells {
		switch {
		case l.cells[i].Attached:
			l.display[i] = DisplayAttached
		case l.cells[i].Boundary:
			l.display[i] = DisplayBoundary
		default:
			l.display[i] = DisplayVapor
		}
	}
	return l.display
}

// Reset rebuilds the lattice from the environment's factory values using
// deterministic randomness. A zero seed falls back to the config seed.
func (l *Lattice) Reset(seed int64) {
	if seed == 0 {
		seed = l.cfg.Seed
	}
	l.rng = core.NewRNG(seed)
	l.env = l.env.Factory()
	l.initCells()
}

// Parameters exposes the current constants for the viewer HUD.
func (l *Lattice) Parameters() core.ParameterSnapshot {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }
	return core.ParameterSnapshot{
		Groups: []core.ParameterGroup{
			{
				Name: "Lattice",
				Params: []core.Parameter{
					{Key: "size", Label: "Size", Value: strconv.Itoa(l.cfg.Size)},
					{Key: "max_steps", Label: "Max steps", Value: strconv.Itoa(l.cfg.MaxSteps)},
					{Key: "margin", Label: "Margin", Value: f(l.cfg.Margin)},
					{Key: "iteration", Label: "Iteration", Value: strconv.Itoa(l.iteration)},
					{Key: "radius", Label: "Radius", Value: strconv.Itoa(l.SnowflakeRadius(DefaultAngle))},
				},
			},
			{
				Name: "Environment",
				Params: []core.Parameter{
					{Key: "beta", Label: "Beta", Value: f(l.env.Beta)},
					{Key: "theta", Label: "Theta", Value: f(l.env.Theta)},
					{Key: "alpha", Label: "Alpha", Value: f(l.env.Alpha)},
					{Key: "kappa", Label: "Kappa", Value: f(l.env.Kappa)},
					{Key: "mu", Label: "Mu", Value: f(l.env.Mu)},
					{Key: "upsilon", Label: "Upsilon", Value: f(l.env.Upsilon)},
					{Key: "sigma", Label: "Sigma", Value: f(l.env.Sigma)},
					{Key: "gamma", Label: "Gamma", Value: f(l.env.Gamma)},
				},
			},
		},
	}
}
