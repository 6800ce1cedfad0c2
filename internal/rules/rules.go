// Package rules classifies QR modules by their neighborhood. Every function is
// a pure predicate over a grid and a module coordinate.
package rules

// Grid is the read-only view of a module matrix the predicates need.
// IsDark must answer false outside the matrix.
type Grid interface {
	Size() int
	IsDark(x, y int) bool
}

// Direction names one of the four corners of a module.
type Direction int

const (
	UpperRight Direction = iota
	LowerRight
	LowerLeft
	UpperLeft
)

// Directions lists the corners in the order patches are drawn.
var Directions = [...]Direction{UpperRight, LowerRight, LowerLeft, UpperLeft}

func (d Direction) String() string {
	switch d {
	case UpperRight:
		return "upper-right"
	case LowerRight:
		return "lower-right"
	case LowerLeft:
		return "lower-left"
	case UpperLeft:
		return "upper-left"
	}
	return "unknown"
}

// inMiddleBand reports whether v lies in [7, n-8], the part of a row or
// column that crosses no finder pattern.
func inMiddleBand(v, n int) bool {
	return v >= 7 && v <= n-8
}

// FinderCornerDark reports whether a dark module at (x, y) belongs to the
// outer ring or the center of a finder pattern. The x+y bound excludes the
// bottom-right corner, which has no finder pattern.
func FinderCornerDark(g Grid, x, y int) bool {
	n := g.Size()
	onLine := func(v int) bool {
		return v == 0 || v == 6 || v == n-1 || v == n-7
	}
	return (onLine(x) || onLine(y)) &&
		x+y < n+6 &&
		!inMiddleBand(x, n) && !inMiddleBand(y, n)
}

// FinderCornerLight reports whether a light module at (x, y) belongs to the
// light ring inside a finder pattern.
func FinderCornerLight(g Grid, x, y int) bool {
	n := g.Size()
	onLine := func(v int) bool {
		return v == 1 || v == 5
	}
	return (onLine(x) || onLine(y)) &&
		!inMiddleBand(x, n) && !inMiddleBand(y, n)
}

// BridgeRight reports whether (x, y) and its right neighbor are both dark.
func BridgeRight(g Grid, x, y int) bool {
	return g.IsDark(x, y) && g.IsDark(x+1, y)
}

// BridgeDown reports whether (x, y) and the module below it are both dark.
func BridgeDown(g Grid, x, y int) bool {
	return g.IsDark(x, y) && g.IsDark(x, y+1)
}

// ConcaveCorner reports whether the light module at (x, y) is enclosed at
// corner d by three dark modules: the two sharing an edge with it on that
// side and the diagonal one between them.
func ConcaveCorner(d Direction, g Grid, x, y int) bool {
	if g.IsDark(x, y) {
		return false
	}
	dx, dy := offset(d)
	return g.IsDark(x+dx, y) && g.IsDark(x, y+dy) && g.IsDark(x+dx, y+dy)
}

// ConcaveCorners returns every direction for which ConcaveCorner holds.
func ConcaveCorners(g Grid, x, y int) []Direction {
	var out []Direction
	for _, d := range Directions {
		if ConcaveCorner(d, g, x, y) {
			out = append(out, d)
		}
	}
	return out
}

func offset(d Direction) (dx, dy int) {
	switch d {
	case UpperRight:
		return 1, -1
	case LowerRight:
		return 1, 1
	case LowerLeft:
		return -1, 1
	default:
		return -1, -1
	}
}
