// Package prettyqr renders text as a stylized QR code: rounded modules,
// bridged neighbors, filled concave corners and an optional centered logo.
package prettyqr

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/cristianadrielbraun/prettyqr/internal/canvas"
	"github.com/cristianadrielbraun/prettyqr/internal/encoder"
	"github.com/cristianadrielbraun/prettyqr/internal/grid"
	"github.com/cristianadrielbraun/prettyqr/internal/render"
	"github.com/cristianadrielbraun/prettyqr/internal/style"
)

// Renderer runs the full pipeline from text to bitmap. The zero value uses
// the default encoder and discards debug output.
type Renderer struct {
	Encoder encoder.Encoder
	Logger  *slog.Logger
}

// Result is a finished rendering.
type Result struct {
	Image    *image.RGBA
	Grid     *grid.Grid
	Version  int
	Config   style.Config
	Commands []canvas.Command

	// Logo is nil when no logo was configured. LogoRect is where it was
	// drawn.
	Logo     *render.Logo
	LogoRect image.Rectangle
}

// Render encodes text and draws it with opts.
func (r *Renderer) Render(text string, opts style.Options) (*Result, error) {
	enc := r.Encoder
	if enc == nil {
		enc = encoder.Skip2{}
	}
	log := r.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	g, version, err := encoder.Encode(enc, text)
	if err != nil {
		return nil, err
	}

	cfg, err := style.Resolve(opts, g.Size())
	if err != nil {
		return nil, err
	}

	res := &Result{Grid: g, Version: version, Config: cfg}
	if cfg.HasLogo() {
		logo, err := render.LoadLogo(cfg.LogoPath)
		if err != nil {
			return nil, err
		}
		res.Logo = logo
		g.ClearCenter()
	}

	log.Debug("rendering QR code",
		"version", version,
		"modules", g.Size(),
		"block_size", cfg.BlockSize,
		"corner_radius", cfg.CornerRadius,
		"backend", cfg.Backend,
		"logo", cfg.LogoPath,
		"logo_vector", res.Logo != nil && res.Logo.IsVector(),
	)

	var rec canvas.Recorder
	canvas.Build(g, cfg, &rec)
	res.Commands = rec.Commands

	res.Image, err = render.Rasterize(rec.Commands, cfg.ImageSize(), cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize: %w", err)
	}
	if res.Logo != nil {
		res.LogoRect = render.Overlay(res.Image, res.Logo, cfg.LogoBox())
	}
	return res, nil
}

// Render is a convenience wrapper around a zero Renderer.
func Render(text string, opts style.Options) (*Result, error) {
	var r Renderer
	return r.Render(text, opts)
}
