// Package render turns drawing commands into images: raster bitmaps through
// one of two vector backends, or SVG documents. It also loads logos and
// composites them over a rendered code.
package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/cristianadrielbraun/prettyqr/internal/canvas"
	"github.com/cristianadrielbraun/prettyqr/internal/style"
)

var (
	ErrBackend = errors.New("render: unknown backend")
	ErrSize    = errors.New("render: image size must be positive")
)

// Backend is a Canvas that paints into an RGBA bitmap.
type Backend interface {
	canvas.Canvas
	Image() *image.RGBA
}

// NewBackend returns the named backend drawing onto a transparent
// size×size bitmap.
func NewBackend(name string, size int) (Backend, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSize, size)
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	switch name {
	case "", style.BackendRasterx:
		return newRasterxCanvas(img), nil
	case style.BackendGG:
		return newGGCanvas(img), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrBackend, name)
}

// Rasterize paints cmds in order onto a size×size bitmap that starts out
// fully transparent.
func Rasterize(cmds []canvas.Command, size int, backend string) (*image.RGBA, error) {
	b, err := NewBackend(backend, size)
	if err != nil {
		return nil, err
	}
	canvas.Replay(cmds, b)
	return b.Image(), nil
}
