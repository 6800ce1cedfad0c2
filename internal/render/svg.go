package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strconv"
	"strings"

	"github.com/cristianadrielbraun/prettyqr/internal/canvas"
	"github.com/cristianadrielbraun/prettyqr/internal/style"
)

// WriteSVG writes cmds as a size×size SVG document. When logo is not nil it
// is embedded as a PNG fitted into box.
func WriteSVG(w io.Writer, cmds []canvas.Command, size int, logo *Logo, box image.Rectangle) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrSize, size)
	}

	svgBuilder := strings.Builder{}
	svgBuilder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	svgBuilder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		size, size, size, size))

	var fill color.RGBA
	for _, cmd := range cmds {
		if cmd.Op == canvas.OpSetColor {
			fill = cmd.Color
			continue
		}
		// Fully transparent shapes paint nothing
		if fill.A == 0 {
			continue
		}
		svgBuilder.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s"`,
			num(cmd.X0), num(cmd.Y0), num(cmd.X1-cmd.X0), num(cmd.Y1-cmd.Y0)))
		if cmd.Op == canvas.OpRoundedRectangle && cmd.RX > 0 && cmd.RY > 0 {
			svgBuilder.WriteString(fmt.Sprintf(` rx="%s" ry="%s"`, num(cmd.RX), num(cmd.RY)))
		}
		svgBuilder.WriteString(fillAttrs(fill))
		svgBuilder.WriteString("/>\n")
	}

	if logo != nil {
		r := logo.Fit(box)
		if !r.Empty() {
			var buf bytes.Buffer
			if err := png.Encode(&buf, logo.Rasterize(r.Dx(), r.Dy())); err != nil {
				return fmt.Errorf("failed to encode logo: %w", err)
			}
			svgBuilder.WriteString(fmt.Sprintf(`<image x="%d" y="%d" width="%d" height="%d" href="data:image/png;base64,%s"/>`+"\n",
				r.Min.X, r.Min.Y, r.Dx(), r.Dy(), base64.StdEncoding.EncodeToString(buf.Bytes())))
		}
	}

	svgBuilder.WriteString("</svg>\n")
	_, err := io.WriteString(w, svgBuilder.String())
	return err
}

func fillAttrs(c color.RGBA) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	opaque := n
	opaque.A = 0xff
	s := fmt.Sprintf(` fill="%s"`, style.Hex(opaque))
	if n.A != 0xff {
		s += fmt.Sprintf(` fill-opacity="%s"`, strconv.FormatFloat(float64(n.A)/255, 'f', 3, 64))
	}
	return s
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
