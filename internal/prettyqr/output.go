package prettyqr

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristianadrielbraun/prettyqr/internal/render"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatJPG = "jpg"
	FormatSVG = "svg"
)

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 92

var ErrFormat = errors.New("prettyqr: unsupported output format")

// ParseFormat normalizes a format name. "jpeg" is accepted for jpg.
func ParseFormat(name string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(name)); f {
	case FormatPNG, FormatSVG, FormatJPG:
		return f, nil
	case "jpeg":
		return FormatJPG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, name)
}

// FormatFromPath picks the output format from a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrFormat, path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type for a normalized format.
func ContentType(format string) string {
	switch format {
	case FormatJPG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "image/png"
}

// Encode writes the result to w in the given format.
func (r *Result) Encode(w io.Writer, format string) error {
	format, err := ParseFormat(format)
	if err != nil {
		return err
	}
	switch format {
	case FormatJPG:
		if err := jpeg.Encode(w, r.Opaque(), &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	case FormatSVG:
		if err := render.WriteSVG(w, r.Commands, r.Config.ImageSize(), r.Logo, r.Config.LogoBox()); err != nil {
			return fmt.Errorf("failed to write SVG: %w", err)
		}
	default:
		if err := png.Encode(w, r.Image); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
	}
	return nil
}

// Opaque composites the image onto its background color with full alpha,
// or onto white when the background is transparent.
func (r *Result) Opaque() *image.RGBA {
	bg := color.NRGBAModel.Convert(r.Config.Background).(color.NRGBA)
	if bg.A == 0 {
		bg = color.NRGBA{255, 255, 255, 255}
	}
	bg.A = 255
	bounds := r.Image.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, &image.Uniform{C: bg}, image.Point{}, draw.Src)
	draw.Draw(out, bounds, r.Image, bounds.Min, draw.Over)
	return out
}

// WriteFile writes the result to path, picking the format from its
// extension.
func (r *Result) WriteFile(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := r.Encode(bw, format); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
