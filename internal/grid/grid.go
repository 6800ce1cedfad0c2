// Package grid holds the boolean module matrix of an encoded QR symbol.
package grid

import (
	"errors"
	"fmt"
)

// ErrNotSquare is returned when a bitmap is empty or its rows differ in length
// from the number of rows.
var ErrNotSquare = errors.New("grid: bitmap is not square")

// Grid is a square matrix of QR modules. A true value is a dark module.
// Queries outside the matrix are answered, never rejected: everything
// outside [0,N)×[0,N) is light.
type Grid struct {
	size    int
	modules []bool
}

// New returns an all-light grid of size×size modules. It panics if size is
// negative.
func New(size int) *Grid {
	if size < 0 {
		panic(fmt.Sprintf("grid: negative size %d", size))
	}
	return &Grid{size: size, modules: make([]bool, size*size)}
}

// FromBitmap copies a row-major bitmap (bitmap[y][x]) into a new grid.
func FromBitmap(bitmap [][]bool) (*Grid, error) {
	n := len(bitmap)
	if n == 0 {
		return nil, ErrNotSquare
	}
	g := New(n)
	for y, row := range bitmap {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d modules, want %d", ErrNotSquare, y, len(row), n)
		}
		copy(g.modules[y*n:(y+1)*n], row)
	}
	return g, nil
}

// Size returns N, the number of modules per side.
func (g *Grid) Size() int { return g.size }

// IsDark reports whether the module at column x, row y is dark.
func (g *Grid) IsDark(x, y int) bool {
	if !g.inside(x, y) {
		return false
	}
	return g.modules[y*g.size+x]
}

// Set assigns a module. Out-of-range coordinates are ignored.
func (g *Grid) Set(x, y int, dark bool) {
	if !g.inside(x, y) {
		return
	}
	g.modules[y*g.size+x] = dark
}

// ClearRegion makes every module with x0 <= x <= x1 and y0 <= y <= y1 light.
// The region is clipped to the grid.
func (g *Grid) ClearRegion(x0, x1, y0, y1 int) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, g.size-1), min(y1, g.size-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.modules[y*g.size+x] = false
		}
	}
}

// CenterRegion returns the inclusive bounds of the square reserved for a logo.
func (g *Grid) CenterRegion() (lo, hi int) {
	return g.size / 3, 2 * g.size / 3
}

// ClearCenter punches out the logo square so no dark module is drawn under it.
func (g *Grid) ClearCenter() {
	lo, hi := g.CenterRegion()
	g.ClearRegion(lo, hi, lo, hi)
}

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.size && y < g.size
}
