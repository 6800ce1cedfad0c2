package canvas

import (
	"image/color"

	"github.com/cristianadrielbraun/prettyqr/internal/rules"
	"github.com/cristianadrielbraun/prettyqr/internal/style"
)

// pen tracks the fill color last sent to a canvas so that redundant color
// switches are not emitted.
type pen struct {
	canvas  Canvas
	current color.RGBA
	valid   bool
}

func (p *pen) use(c color.RGBA) {
	if p.valid && p.current == c {
		return
	}
	p.canvas.SetColor(c)
	p.current, p.valid = c, true
}

// cell is the pixel geometry of the module at (x, y).
type cell struct {
	x0, y0, x1, y1 float64
}

func cellAt(x, y, block int) cell {
	b := float64(block)
	return cell{
		x0: float64(x) * b,
		y0: float64(y) * b,
		x1: float64(x+1) * b,
		y1: float64(y+1) * b,
	}
}

// Build draws g onto c: a background fill, then every dark module as a
// rounded square bridged to its dark right and lower neighbors, then every
// light module with its concave corners filled and its interior cut out
// again with a rounded square in the background color.
//
// The light pass has to run after the dark pass. A patch is only visible
// where the light module's rounded square leaves its corner uncovered.
func Build(g rules.Grid, cfg style.Config, c Canvas) {
	p := &pen{canvas: c}
	size := float64(cfg.ImageSize())

	p.use(cfg.Background)
	c.Rectangle(0, 0, size, size)
	p.use(cfg.Foreground)

	n := g.Size()
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			if g.IsDark(x, y) {
				drawDark(g, cfg, p, x, y)
			}
		}
	}
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			if !g.IsDark(x, y) {
				drawLight(g, cfg, p, x, y)
			}
		}
	}
}

func drawDark(g rules.Grid, cfg style.Config, p *pen, x, y int) {
	if rules.FinderCornerDark(g, x, y) {
		p.use(cfg.Corners)
	}
	r := float64(cfg.CornerRadius)
	b := cellAt(x, y, cfg.BlockSize)

	p.canvas.RoundedRectangle(b.x0, b.y0, b.x1, b.y1, r, r)
	if rules.BridgeDown(g, x, y) {
		p.canvas.Rectangle(b.x0, b.y0+r, b.x1, b.y1+r)
	}
	if rules.BridgeRight(g, x, y) {
		p.canvas.Rectangle(b.x0+r, b.y0, b.x1+r, b.y1)
	}
	p.use(cfg.Foreground)
}

func drawLight(g rules.Grid, cfg style.Config, p *pen, x, y int) {
	if rules.FinderCornerLight(g, x, y) {
		p.use(cfg.Corners)
	}
	r := float64(cfg.CornerRadius)
	b := cellAt(x, y, cfg.BlockSize)

	for _, d := range rules.ConcaveCorners(g, x, y) {
		switch d {
		case rules.UpperRight:
			p.canvas.Rectangle(b.x0+r, b.y0, b.x1, b.y0+r)
		case rules.LowerRight:
			p.canvas.Rectangle(b.x0+r, b.y0+r, b.x1, b.y1)
		case rules.LowerLeft:
			p.canvas.Rectangle(b.x0, b.y0+r, b.x0+r, b.y1)
		case rules.UpperLeft:
			p.canvas.Rectangle(b.x0, b.y0, b.x0+r, b.y0+r)
		}
	}

	p.use(cfg.Background)
	p.canvas.RoundedRectangle(b.x0+1, b.y0+1, b.x1-1, b.y1-1, r, r)
	p.use(cfg.Foreground)
}
