// Package style resolves user-facing rendering options into the validated
// parameters the canvas builder works with.
package style

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"
)

const (
	// DefaultBlockSize is the edge length of one module in pixels.
	DefaultBlockSize = 16

	DefaultForeground = "black"
	DefaultBackground = "white"

	// MaxImageSize caps the edge length of the rendered bitmap in pixels.
	MaxImageSize = 8192

	BackendRasterx = "rasterx"
	BackendGG      = "gg"
)

var (
	ErrEmptyGrid    = errors.New("style: grid has no modules")
	ErrBlockSize    = errors.New("style: invalid block size")
	ErrImageSize    = errors.New("style: invalid image size")
	ErrCornerRadius = errors.New("style: corner radius must be a percentage between 0 and 100")
	ErrColor        = errors.New("style: invalid color")
	ErrBackend      = errors.New("style: unknown backend")
)

// Options are the recognized rendering options, as found in config files,
// CLI flags and query strings. Zero values select defaults.
type Options struct {
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	// Corners colors the finder patterns; empty means Foreground.
	Corners string `yaml:"corners,omitempty"`

	BlockSize int `yaml:"block_size,omitempty"`
	// ImageSize, when set, overrides BlockSize with ImageSize / N.
	ImageSize int `yaml:"image_size,omitempty"`
	// CornerRadius is a percentage of the block size; nil means one third.
	CornerRadius *int `yaml:"corner_radius,omitempty"`

	Logo    string `yaml:"logo,omitempty"`
	Backend string `yaml:"backend,omitempty"`
}

// Config is the resolved render configuration for a grid of N modules.
type Config struct {
	Foreground color.RGBA
	Background color.RGBA
	Corners    color.RGBA

	Modules      int
	BlockSize    int
	CornerRadius int

	LogoPath string
	Backend  string
}

// Resolve validates opts against a grid of n modules per side.
func Resolve(opts Options, n int) (Config, error) {
	if n <= 0 {
		return Config{}, ErrEmptyGrid
	}
	cfg := Config{Modules: n}

	var err error
	if cfg.Foreground, err = colorOr(opts.Foreground, DefaultForeground); err != nil {
		return Config{}, fmt.Errorf("foreground: %w", err)
	}
	if cfg.Background, err = colorOr(opts.Background, DefaultBackground); err != nil {
		return Config{}, fmt.Errorf("background: %w", err)
	}
	cfg.Corners = cfg.Foreground
	if opts.Corners != "" {
		if cfg.Corners, err = ParseColor(opts.Corners); err != nil {
			return Config{}, fmt.Errorf("corners: %w", err)
		}
	}

	// The final image size is derived from the block size, not the
	// requested size itself
	switch {
	case opts.ImageSize < 0:
		return Config{}, fmt.Errorf("%w: %d", ErrImageSize, opts.ImageSize)
	case opts.ImageSize > MaxImageSize:
		return Config{}, fmt.Errorf("%w: %d exceeds %dpx", ErrImageSize, opts.ImageSize, MaxImageSize)
	case opts.ImageSize > 0:
		cfg.BlockSize = opts.ImageSize / n
		if cfg.BlockSize == 0 {
			return Config{}, fmt.Errorf("%w: image size %d is smaller than %d modules", ErrBlockSize, opts.ImageSize, n)
		}
	case opts.BlockSize < 0:
		return Config{}, fmt.Errorf("%w: %d", ErrBlockSize, opts.BlockSize)
	case opts.BlockSize == 0:
		cfg.BlockSize = DefaultBlockSize
	default:
		cfg.BlockSize = opts.BlockSize
	}
	// Compared by division so block*n cannot overflow
	if cfg.BlockSize > MaxImageSize/n {
		return Config{}, fmt.Errorf("%w: %d px blocks for %d modules exceed %dpx", ErrBlockSize, cfg.BlockSize, n, MaxImageSize)
	}

	cfg.CornerRadius = cfg.BlockSize / 3
	if opts.CornerRadius != nil {
		pct := *opts.CornerRadius
		if pct < 0 || pct > 100 {
			return Config{}, fmt.Errorf("%w: %d", ErrCornerRadius, pct)
		}
		cfg.CornerRadius = cfg.BlockSize * pct / 100
	}

	switch b := strings.ToLower(strings.TrimSpace(opts.Backend)); b {
	case "", BackendRasterx:
		cfg.Backend = BackendRasterx
	case BackendGG:
		cfg.Backend = BackendGG
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrBackend, opts.Backend)
	}

	if opts.Logo != "" {
		if _, err := os.Stat(opts.Logo); err != nil {
			return Config{}, fmt.Errorf("logo: %w", err)
		}
		cfg.LogoPath = opts.Logo
	}
	return cfg, nil
}

// ImageSize is the edge length of the rendered bitmap in pixels.
func (c Config) ImageSize() int { return c.BlockSize * c.Modules }

// HasLogo reports whether a logo overlay is configured.
func (c Config) HasLogo() bool { return c.LogoPath != "" }

// LogoBox is the area, centered in the image, a logo is fitted into.
func (c Config) LogoBox() image.Rectangle {
	third := c.Modules / 3
	w := (third + 1) * c.BlockSize
	h := (third*3/4 + 1) * c.BlockSize
	size := c.ImageSize()
	x0 := (size - w) / 2
	y0 := (size - h) / 2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// Percent returns a pointer to p, for filling Options.CornerRadius.
func Percent(p int) *int { return &p }

func colorOr(v, def string) (color.RGBA, error) {
	if v == "" {
		v = def
	}
	return ParseColor(v)
}
