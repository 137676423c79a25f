package core

// Grid provides index arithmetic for a fixed-size square lattice stored
// row-major. The topology never changes after construction.
type Grid struct {
	Size int
}

// Index returns the linear slice index for coordinates (x, y).
func (g Grid) Index(x, y int) int { return y*g.Size + x }

// XY recovers the coordinates for a linear index.
func (g Grid) XY(idx int) (int, int) { return idx % g.Size, idx / g.Size }

// InBounds reports whether (x, y) lies inside the grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Size && y >= 0 && y < g.Size
}

// Len returns the total cell count.
func (g Grid) Len() int { return g.Size * g.Size }
