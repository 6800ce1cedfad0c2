package render

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
)

// rasterxCanvas fills shapes with an anti-aliasing scanline filler.
type rasterxCanvas struct {
	img    *image.RGBA
	filler *rasterx.Filler
}

func newRasterxCanvas(img *image.RGBA) *rasterxCanvas {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetColor(color.RGBA{})
	return &rasterxCanvas{img: img, filler: filler}
}

func (c *rasterxCanvas) SetColor(col color.RGBA) {
	c.filler.SetColor(col)
}

func (c *rasterxCanvas) Rectangle(x0, y0, x1, y1 float64) {
	rasterx.AddRect(x0, y0, x1, y1, 0, c.filler)
	c.fill()
}

func (c *rasterxCanvas) RoundedRectangle(x0, y0, x1, y1, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		c.Rectangle(x0, y0, x1, y1)
		return
	}
	rx = math.Min(rx, (x1-x0)/2)
	ry = math.Min(ry, (y1-y0)/2)
	rasterx.AddRoundRect(x0, y0, x1, y1, rx, ry, 0, rasterx.RoundGap, c.filler)
	c.fill()
}

func (c *rasterxCanvas) fill() {
	c.filler.Draw()
	c.filler.Clear()
}

func (c *rasterxCanvas) Image() *image.RGBA { return c.img }
