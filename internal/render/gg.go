package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// ggCanvas draws through a gg context sharing the destination bitmap.
type ggCanvas struct {
	img *image.RGBA
	dc  *gg.Context
}

func newGGCanvas(img *image.RGBA) *ggCanvas {
	return &ggCanvas{img: img, dc: gg.NewContextForRGBA(img)}
}

func (c *ggCanvas) SetColor(col color.RGBA) {
	c.dc.SetColor(col)
}

func (c *ggCanvas) Rectangle(x0, y0, x1, y1 float64) {
	c.dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	c.dc.Fill()
}

// RoundedRectangle traces the outline with elliptical corner arcs, since
// gg's own rounded rectangle only takes a single radius.
func (c *ggCanvas) RoundedRectangle(x0, y0, x1, y1, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		c.Rectangle(x0, y0, x1, y1)
		return
	}
	rx = math.Min(rx, (x1-x0)/2)
	ry = math.Min(ry, (y1-y0)/2)

	dc := c.dc
	dc.NewSubPath()
	dc.MoveTo(x0+rx, y0)
	dc.LineTo(x1-rx, y0)
	dc.DrawEllipticalArc(x1-rx, y0+ry, rx, ry, gg.Radians(270), gg.Radians(360))
	dc.LineTo(x1, y1-ry)
	dc.DrawEllipticalArc(x1-rx, y1-ry, rx, ry, gg.Radians(0), gg.Radians(90))
	dc.LineTo(x0+rx, y1)
	dc.DrawEllipticalArc(x0+rx, y1-ry, rx, ry, gg.Radians(90), gg.Radians(180))
	dc.LineTo(x0, y0+ry)
	dc.DrawEllipticalArc(x0+rx, y0+ry, rx, ry, gg.Radians(180), gg.Radians(270))
	dc.ClosePath()
	dc.Fill()
}

func (c *ggCanvas) Image() *image.RGBA { return c.img }
