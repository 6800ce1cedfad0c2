package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/prettyqr/internal/encoder"
	"github.com/cristianadrielbraun/prettyqr/internal/prettyqr"
	"github.com/cristianadrielbraun/prettyqr/internal/render"
	"github.com/cristianadrielbraun/prettyqr/internal/style"
)

var (
	errBadParam  = errors.New("invalid parameter")
	errTooLarge  = errors.New("requested image is too large")
	errLogoName  = errors.New("invalid logo file name")
	errTextLimit = errors.New("text is too long")
)

// normalizeHTTPURL validates and normalizes a URL string for QR generation.
// It ensures an http/https scheme, a non-empty hostname, and returns a cleaned absolute URL.
func normalizeHTTPURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("URL parameter is required")
	}
	// If missing scheme, default to https
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("only http and https URLs are supported")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must include a valid host")
	}
	return u.String(), nil
}

// QRCodeHandler renders a stylized QR code for the text or url query
// parameter.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	text, err := h.requestText(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	format, err := prettyqr.ParseFormat(c.DefaultQuery("format", prettyqr.FormatPNG))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts, err := h.parseOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.checkImageSize(text, opts); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	h.log.Debug("qr request", "bytes", len(text), "format", format, "backend", opts.Backend, "logo", opts.Logo != "")

	res, err := h.renderer.Render(text, opts)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.log.Error("failed to render QR code", "err", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := res.Encode(&buf, format); err != nil {
		h.log.Error("failed to encode QR code", "format", format, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to encode QR code: %v", err)})
		return
	}

	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", h.cfg.Server.CacheMaxAge))
	c.Header("X-QR-Debug", fmt.Sprintf("format=%s;version=%d;modules=%d;backend=%s",
		format, res.Version, res.Grid.Size(), res.Config.Backend))
	c.Data(http.StatusOK, prettyqr.ContentType(format), buf.Bytes())
}

// requestText returns the payload: text verbatim, or url normalized.
func (h *Handler) requestText(c *gin.Context) (string, error) {
	text := c.Query("text")
	if text == "" {
		rawURL := strings.TrimSpace(c.Query("url"))
		if rawURL == "" {
			return "", fmt.Errorf("text or url parameter is required")
		}
		var err error
		if text, err = normalizeHTTPURL(rawURL); err != nil {
			return "", err
		}
	}
	if limit := h.cfg.Server.MaxTextLength; limit > 0 && len(text) > limit {
		return "", fmt.Errorf("%w: %d bytes, at most %d allowed", errTextLimit, len(text), limit)
	}
	return text, nil
}

// parseOptions layers the query parameters over the configured defaults.
func (h *Handler) parseOptions(c *gin.Context) (style.Options, error) {
	opts := h.cfg.Render
	opts.Logo = ""

	if v := c.Query("fg"); v != "" {
		opts.Foreground = v
	}
	if v := c.Query("bg"); v != "" {
		opts.Background = v
	}
	if v := c.Query("corners"); v != "" {
		opts.Corners = v
	}
	if v := c.Query("backend"); v != "" {
		opts.Backend = v
	}

	var err error
	if opts.BlockSize, err = intParam(c, "blockSize", opts.BlockSize); err != nil {
		return opts, err
	}
	if opts.ImageSize, err = intParam(c, "size", opts.ImageSize); err != nil {
		return opts, err
	}
	if v := c.Query("radius"); v != "" {
		pct, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("%w: radius %q", errBadParam, v)
		}
		opts.CornerRadius = style.Percent(pct)
	}

	if name := c.Query("logoFile"); name != "" {
		path, err := h.logoPath(name)
		if err != nil {
			return opts, err
		}
		opts.Logo = path
	}
	return opts, nil
}

// logoPath resolves a logo name inside the upload directory. Names with a
// directory component are rejected.
func (h *Handler) logoPath(name string) (string, error) {
	if name != filepath.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", errLogoName, name)
	}
	return filepath.Join(h.cfg.Server.UploadDir, name), nil
}

// checkImageSize rejects requests whose bitmap would exceed MaxImageSize,
// before anything is rendered.
func (h *Handler) checkImageSize(text string, opts style.Options) error {
	limit := h.cfg.Server.MaxImageSize
	if limit <= 0 {
		return nil
	}
	version, err := encoder.MinimumVersion(len(text))
	if err != nil {
		return err
	}
	n := encoder.Modules(version)
	if opts.ImageSize > 0 {
		if opts.ImageSize > limit {
			return fmt.Errorf("%w: %dpx, at most %dpx allowed", errTooLarge, opts.ImageSize, limit)
		}
		return nil
	}
	block := opts.BlockSize
	if block == 0 {
		block = style.DefaultBlockSize
	}
	// block*n may overflow, limit/n cannot
	if block > limit/n {
		return fmt.Errorf("%w: %d modules of %dpx, at most %dpx allowed", errTooLarge, n, block, limit)
	}
	return nil
}

func intParam(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", errBadParam, key, v)
	}
	return n, nil
}

// statusFor maps render errors to HTTP status codes.
func statusFor(err error) int {
	for _, target := range []error{
		encoder.ErrCapacity,
		encoder.ErrNotText,
		style.ErrBlockSize,
		style.ErrImageSize,
		style.ErrCornerRadius,
		style.ErrColor,
		style.ErrBackend,
		prettyqr.ErrFormat,
		render.ErrEmptyLogo,
		image.ErrFormat,
		errTooLarge,
		os.ErrNotExist,
	} {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
