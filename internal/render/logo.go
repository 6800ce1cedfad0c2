package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"os"
	"path/filepath"
	"strings"

	// Logo formats accepted besides SVG
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

// ErrEmptyLogo is returned for logos without a usable size.
var ErrEmptyLogo = errors.New("render: logo has no area")

// Logo is a decoded logo image, either a bitmap or an SVG icon.
type Logo struct {
	Path   string
	bitmap image.Image
	icon   *oksvg.SvgIcon
}

// LoadLogo reads the logo at path. Files ending in .svg are parsed as SVG,
// anything else is decoded as a bitmap (PNG, JPEG, GIF, WebP or BMP).
func LoadLogo(path string) (*Logo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open logo: %w", err)
	}
	defer f.Close()

	l := &Logo{Path: path}
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		l.icon, err = oksvg.ReadIconStream(f, oksvg.IgnoreErrorMode)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SVG logo: %w", err)
		}
	} else {
		l.bitmap, _, err = image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode logo: %w", err)
		}
	}

	if w, h := l.Size(); w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyLogo, path)
	}
	return l, nil
}

// NewLogo wraps an already decoded bitmap.
func NewLogo(img image.Image) *Logo {
	return &Logo{bitmap: img}
}

// IsVector reports whether the logo was loaded from SVG.
func (l *Logo) IsVector() bool { return l.icon != nil }

// Size returns the natural size of the logo: pixel bounds for bitmaps, the
// viewBox for SVG.
func (l *Logo) Size() (w, h float64) {
	if l.IsVector() {
		return l.icon.ViewBox.W, l.icon.ViewBox.H
	}
	b := l.bitmap.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Fit returns the largest rectangle with the logo's aspect ratio that fits
// in box, centered in it.
func (l *Logo) Fit(box image.Rectangle) image.Rectangle {
	lw, lh := l.Size()
	if lw <= 0 || lh <= 0 || box.Empty() {
		return image.Rectangle{}
	}
	scale := math.Min(float64(box.Dx())/lw, float64(box.Dy())/lh)
	w := max(1, int(math.Round(lw*scale)))
	h := max(1, int(math.Round(lh*scale)))
	x0 := box.Min.X + (box.Dx()-w)/2
	y0 := box.Min.Y + (box.Dy()-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// Rasterize returns the logo scaled to w×h pixels.
func (l *Logo) Rasterize(w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if l.IsVector() {
		l.icon.SetTarget(0, 0, float64(w), float64(h))
		scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
		l.icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), l.bitmap, l.bitmap.Bounds(), xdraw.Src, nil)
	return dst
}

// Overlay scales the logo into box, keeping its aspect ratio, and composites
// it over dst. It returns the rectangle the logo was drawn into.
func Overlay(dst draw.Image, l *Logo, box image.Rectangle) image.Rectangle {
	r := l.Fit(box)
	if r.Empty() {
		return r
	}
	scaled := l.Rasterize(r.Dx(), r.Dy())
	draw.Draw(dst, r, scaled, image.Point{}, draw.Over)
	return r
}
