package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses a paint color. It accepts "transparent", SVG color
// names ("black", "cornflowerblue"), and hex values in #rgb, #rrggbb or
// #rrggbbaa form, with or without the leading '#'.
func ParseColor(param string) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(param))
	if v == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty value", ErrColor)
	}

	// Handle transparent background
	if v == "transparent" || v == "none" {
		return color.RGBA{0, 0, 0, 0}, nil
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(v, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrColor, param)
	}

	var comps [4]uint8
	for i := range comps {
		n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrColor, param)
		}
		comps[i] = uint8(n)
	}

	// color.RGBA is alpha-premultiplied
	c := color.NRGBA{comps[0], comps[1], comps[2], comps[3]}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}

// Hex formats c as #rrggbb, or #rrggbbaa when it is not opaque.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
