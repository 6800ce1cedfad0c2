// Package encoder produces QR module grids. The symbol is always encoded at
// error correction level H, in the smallest version from a fixed table that
// holds the input.
package encoder

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/cristianadrielbraun/prettyqr/internal/grid"
)

const (
	NameSkip2  = "skip2"
	NameYeqown = "yeqown"
)

var (
	ErrNotText  = errors.New("encoder: data is not text")
	ErrCapacity = errors.New("encoder: data exceeds the largest supported version")
	ErrVersion  = errors.New("encoder: unsupported version")
	ErrSize     = errors.New("encoder: module count does not match version")
	ErrUnknown  = errors.New("encoder: unknown encoder")
)

// capacities holds the byte-mode capacity at level H for versions 1..14.
var capacities = [...]int{7, 14, 24, 34, 44, 58, 64, 84, 98, 119, 137, 155, 177, 194}

// MaxVersion is the largest version MinimumVersion returns.
const MaxVersion = len(capacities)

// MaxLength is the longest input MinimumVersion accepts.
var MaxLength = capacities[len(capacities)-1]

// MinimumVersion returns the smallest version whose capacity is at least
// length. Inputs longer than MaxLength fail with ErrCapacity.
func MinimumVersion(length int) (int, error) {
	for i, c := range capacities {
		if length <= c {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %d bytes, at most %d supported", ErrCapacity, length, MaxLength)
}

// Modules returns the number of modules per side of a symbol of version v.
func Modules(v int) int { return 17 + 4*v }

// Text checks that data is a string of valid UTF-8 and returns it.
func Text(data any) (string, error) {
	var s string
	switch v := data.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case fmt.Stringer:
		s = v.String()
	default:
		return "", fmt.Errorf("%w: got %T", ErrNotText, data)
	}
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("%w: invalid UTF-8", ErrNotText)
	}
	return s, nil
}

// Encoder encodes text into a module grid of the given version at level H.
type Encoder interface {
	Encode(text string, version int) (*grid.Grid, error)
}

// New returns the named encoder. The empty name selects skip2.
func New(name string) (Encoder, error) {
	switch name {
	case "", NameSkip2:
		return Skip2{}, nil
	case NameYeqown:
		return Yeqown{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Encode picks the minimum version for text and encodes it with enc.
func Encode(enc Encoder, text string) (*grid.Grid, int, error) {
	if !utf8.ValidString(text) {
		return nil, 0, fmt.Errorf("%w: invalid UTF-8", ErrNotText)
	}
	version, err := MinimumVersion(len(text))
	if err != nil {
		return nil, 0, err
	}
	g, err := enc.Encode(text, version)
	if err != nil {
		return nil, 0, err
	}
	return g, version, nil
}

func checkVersion(v int) error {
	if v < 1 || v > 40 {
		return fmt.Errorf("%w: %d", ErrVersion, v)
	}
	return nil
}

func checkSize(g *grid.Grid, version int) error {
	if g.Size() != Modules(version) {
		return fmt.Errorf("%w: got %d, want %d for version %d", ErrSize, g.Size(), Modules(version), version)
	}
	return nil
}
