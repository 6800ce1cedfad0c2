package encoder

import (
	"fmt"

	"github.com/yeqown/go-qrcode/v2"

	"github.com/cristianadrielbraun/prettyqr/internal/grid"
)

// Yeqown encodes with github.com/yeqown/go-qrcode/v2.
type Yeqown struct{}

func (Yeqown) Encode(text string, version int) (*grid.Grid, error) {
	if err := checkVersion(version); err != nil {
		return nil, err
	}
	qrc, err := qrcode.NewWith(text,
		qrcode.WithVersion(version),
		qrcode.WithEncodingMode(qrcode.EncModeByte),
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	w := &matrixWriter{}
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("failed to read QR matrix: %w", err)
	}
	if w.grid == nil {
		return nil, fmt.Errorf("failed to read QR matrix: no matrix written")
	}
	if err := checkSize(w.grid, version); err != nil {
		return nil, err
	}
	return w.grid, nil
}

// matrixWriter is a qrcode.Writer that keeps the module matrix instead of
// producing an image.
type matrixWriter struct {
	grid *grid.Grid
}

func (w *matrixWriter) Write(mat qrcode.Matrix) error {
	if mat.Width() != mat.Height() {
		return fmt.Errorf("%w: %dx%d matrix", grid.ErrNotSquare, mat.Width(), mat.Height())
	}
	g := grid.New(mat.Width())
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		g.Set(x, y, v.IsSet())
	})
	w.grid = g
	return nil
}

func (w *matrixWriter) Close() error { return nil }
