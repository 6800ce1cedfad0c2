package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/prettyqr/internal/config"
	"github.com/cristianadrielbraun/prettyqr/internal/prettyqr"
)

func newTestServer(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Defaults()
	cfg.Server.UploadDir = t.TempDir()
	cfg.Server.MaxImageSize = 1024

	r := gin.New()
	New(cfg, &prettyqr.Renderer{}, nil).Register(r)
	return r, cfg
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body %q is not JSON: %v", w.Body.String(), err)
	}
	return body.Error
}

func TestNormalizeHTTPURL(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"example.com", "https://example.com", false},
		{"  http://example.com/a?b=c ", "http://example.com/a?b=c", false},
		{"ftp://example.com", "", true},
		{"https://", "", true},
		{"", "", true},
	}
	for _, c := range cases {
		got, err := normalizeHTTPURL(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("normalizeHTTPURL(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if got != c.want {
			t.Errorf("normalizeHTTPURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestQRCodeHandler_PNG(t *testing.T) {
	r, _ := newTestServer(t)
	w := get(r, "/api/qr?text=HELLO")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", cc)
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if img.Bounds().Dx() != 336 || img.Bounds().Dy() != 336 {
		t.Errorf("image size = %v, want 336x336", img.Bounds())
	}
}

func TestQRCodeHandler_Formats(t *testing.T) {
	r, _ := newTestServer(t)

	w := get(r, "/api/qr?url=example.com&format=jpeg&blockSize=4")
	if w.Code != http.StatusOK {
		t.Fatalf("jpeg status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", ct)
	}
	if _, err := jpeg.Decode(w.Body); err != nil {
		t.Errorf("jpeg.Decode() error: %v", err)
	}

	w = get(r, "/api/qr?text=HELLO&format=svg&fg=%23ff0000")
	if w.Code != http.StatusOK {
		t.Fatalf("svg status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if !strings.Contains(w.Body.String(), `fill="#ff0000"`) {
		t.Error("svg does not use the requested foreground")
	}
}

func TestQRCodeHandler_Options(t *testing.T) {
	r, _ := newTestServer(t)
	w := get(r, "/api/qr?text=HELLO&size=100&radius=50&backend=gg&bg=transparent&corners=blue")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	// 100 / 21 modules = 4px blocks
	if img.Bounds().Dx() != 84 {
		t.Errorf("width = %d, want 84", img.Bounds().Dx())
	}
	if _, _, _, a := img.At(6, 6).RGBA(); a != 0 {
		t.Errorf("light module alpha = %d, want 0", a)
	}
	if dbg := w.Header().Get("X-QR-Debug"); !strings.Contains(dbg, "backend=gg") {
		t.Errorf("X-QR-Debug = %q", dbg)
	}
}

func TestQRCodeHandler_BadRequests(t *testing.T) {
	r, _ := newTestServer(t)
	cases := []struct {
		name, query, want string
	}{
		{"missing", "", "required"},
		{"bad url", "url=ftp://example.com", "http and https"},
		{"too long", "text=" + strings.Repeat("x", 195), "too long"},
		{"format", "text=a&format=gif", "format"},
		{"color", "text=a&fg=nocolor", "color"},
		{"block size", "text=a&blockSize=abc", "blockSize"},
		{"negative block", "text=a&blockSize=-2", "block size"},
		{"radius", "text=a&radius=150", "corner radius"},
		{"backend", "text=a&backend=cairo", "backend"},
		{"image size", "text=a&blockSize=100", "too large"},
		{"block overflows", "text=HELLO&blockSize=878416384462359601", "too large"},
		{"target size", "text=a&size=5000", "too large"},
		{"traversal", "text=a&logoFile=" + url.QueryEscape("../config.yaml"), "logo"},
		{"missing logo", "text=a&logoFile=nope.png", "no such file"},
	}
	for _, c := range cases {
		w := get(r, "/api/qr?"+c.query)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400 (body %s)", c.name, w.Code, w.Body.String())
			continue
		}
		if msg := errorMessage(t, w); !strings.Contains(msg, c.want) {
			t.Errorf("%s: error = %q, want it to mention %q", c.name, msg, c.want)
		}
	}
}

func TestQRCodeHandler_CapacityBeyondLimit(t *testing.T) {
	r, cfg := newTestServer(t)
	cfg.Server.MaxTextLength = 0
	w := get(r, "/api/qr?text="+strings.Repeat("x", 200))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if msg := errorMessage(t, w); !strings.Contains(msg, "largest supported version") {
		t.Errorf("error = %q", msg)
	}
}

func TestQRCodeHandler_Logo(t *testing.T) {
	r, cfg := newTestServer(t)

	logo := image.NewRGBA(image.Rect(0, 0, 8, 8))
	draw.Draw(logo, logo.Bounds(), &image.Uniform{C: color.RGBA{0, 0, 255, 255}}, image.Point{}, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, logo); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.Server.UploadDir, "logo.png"), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	w := get(r, "/api/qr?text=HELLO&logoFile=logo.png")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b, _ := img.At(168, 168).RGBA(); r != 0 || g != 0 || b != 0xffff {
		t.Errorf("center pixel = %v, want logo blue", img.At(168, 168))
	}
}

func TestLogoPath(t *testing.T) {
	h := New(&config.Config{Server: config.ServerConfig{UploadDir: "uploads"}}, nil, nil)
	if p, err := h.logoPath("brand.png"); err != nil || p != filepath.Join("uploads", "brand.png") {
		t.Errorf("logoPath(brand.png) = %q, %v", p, err)
	}
	for _, name := range []string{"../secret.png", "a/b.png", `a\b.png`, "..", "."} {
		if _, err := h.logoPath(name); err == nil {
			t.Errorf("logoPath(%q) accepted", name)
		}
	}
}

func TestHomePage(t *testing.T) {
	r, _ := newTestServer(t)
	w := get(r, "/?text=a%26b&fg=red&blockSize=8")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`<form method="get" action="/"`,
		`value="a&amp;b"`,
		`src="/api/qr?`,
		`fg=red`,
		`blockSize=8`,
		`<option value="png" selected>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestHomePage_ZeroRadius(t *testing.T) {
	r, _ := newTestServer(t)
	w := get(r, "/?radius=0")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`radius=0`, `name="radius" value="0"`} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestHealthz(t *testing.T) {
	r, _ := newTestServer(t)
	w := get(r, "/healthz")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("healthz = %d %s", w.Code, w.Body.String())
	}
}

func TestSitemapXML(t *testing.T) {
	r, _ := newTestServer(t)
	w := get(r, "/sitemap.xml")
	// httptest requests are addressed to example.com
	if !strings.Contains(w.Body.String(), "<loc>https://example.com/</loc>") {
		t.Errorf("sitemap = %s", w.Body.String())
	}
}

func TestQRCodeHandler_BlockSizeCeilingWithoutServerLimit(t *testing.T) {
	r, cfg := newTestServer(t)
	cfg.Server.MaxImageSize = 0
	w := get(r, "/api/qr?text=HELLO&blockSize=878416384462359601")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
	}
	if msg := errorMessage(t, w); !strings.Contains(msg, "block size") {
		t.Errorf("error = %q, want a block size error", msg)
	}
}
