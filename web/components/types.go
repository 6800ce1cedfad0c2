package components

import (
	"net/url"
	"strconv"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

// PreviewData is the state of the preview form. It builds the /api/qr URL
// the preview image points at.
type PreviewData struct {
	Text       string
	Foreground string
	Background string
	Corners    string
	BlockSize  int
	// Radius is nil when no corner radius was chosen; 0 means square modules.
	Radius  *int
	Backend string
	Format  string
}

// QRURL returns the /api/qr URL for the current form values. Empty fields
// are left out so the server defaults apply.
func (d PreviewData) QRURL() string {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("text", d.Text)
	set("fg", d.Foreground)
	set("bg", d.Background)
	set("corners", d.Corners)
	set("backend", d.Backend)
	set("format", d.Format)
	if d.BlockSize > 0 {
		q.Set("blockSize", strconv.Itoa(d.BlockSize))
	}
	if d.Radius != nil {
		q.Set("radius", strconv.Itoa(*d.Radius))
	}
	return "/api/qr?" + q.Encode()
}

// Class merges tailwind classes; later ones win over conflicting earlier ones.
func Class(classes ...string) string {
	return twmerge.Merge(classes...)
}
