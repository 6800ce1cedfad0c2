package encoder

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/cristianadrielbraun/prettyqr/internal/grid"
)

// Skip2 encodes with github.com/skip2/go-qrcode.
type Skip2 struct{}

func (Skip2) Encode(text string, version int) (*grid.Grid, error) {
	if err := checkVersion(version); err != nil {
		return nil, err
	}
	q, err := qrcode.NewWithForcedVersion(text, version, qrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}
	q.DisableBorder = true

	g, err := grid.FromBitmap(q.Bitmap())
	if err != nil {
		return nil, err
	}
	if err := checkSize(g, version); err != nil {
		return nil, err
	}
	return g, nil
}
