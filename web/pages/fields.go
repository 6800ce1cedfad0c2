package pages

import (
	"strconv"

	"github.com/cristianadrielbraun/prettyqr/web/components"
)

const (
	inputClass = "w-full rounded-md border border-gray-300 px-3 py-2 text-sm"
	labelClass = "block text-sm font-medium text-gray-700"
)

var (
	backends = []string{"rasterx", "gg"}
	formats  = []string{"png", "jpg", "svg"}
)

// field is one text or number input of the preview form.
type field struct {
	name  string
	label string
	value string
	typ   string
	extra string
}

func formFields(data components.PreviewData) []field {
	blockSize := ""
	if data.BlockSize > 0 {
		blockSize = strconv.Itoa(data.BlockSize)
	}
	radius := ""
	if data.Radius != nil {
		radius = strconv.Itoa(*data.Radius)
	}
	return []field{
		{"text", "Text or URL", data.Text, "text", ""},
		{"fg", "Foreground", data.Foreground, "text", "font-mono"},
		{"bg", "Background", data.Background, "text", "font-mono"},
		{"corners", "Finder corners", data.Corners, "text", "font-mono"},
		{"blockSize", "Block size (px)", blockSize, "number", "w-32"},
		{"radius", "Corner radius (%)", radius, "number", "w-32"},
	}
}
