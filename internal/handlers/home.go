package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/prettyqr/web/components"
	"github.com/cristianadrielbraun/prettyqr/web/pages"
)

// HomePage serves the preview page, prefilled from the query string.
func (h *Handler) HomePage(c *gin.Context) {
	def := h.cfg.Render
	data := components.PreviewData{
		Text:       c.DefaultQuery("text", "https://example.com"),
		Foreground: c.DefaultQuery("fg", def.Foreground),
		Background: c.DefaultQuery("bg", def.Background),
		Corners:    c.DefaultQuery("corners", def.Corners),
		Backend:    c.DefaultQuery("backend", def.Backend),
		Format:     c.DefaultQuery("format", "png"),
		BlockSize:  def.BlockSize,
	}
	if def.CornerRadius != nil {
		r := *def.CornerRadius
		data.Radius = &r
	}
	if n, err := strconv.Atoi(c.Query("blockSize")); err == nil {
		data.BlockSize = n
	}
	if n, err := strconv.Atoi(c.Query("radius")); err == nil {
		data.Radius = &n
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pages.HomePage(data).Render(c.Request.Context(), c.Writer); err != nil {
		h.log.Error("failed to render home page", "err", err)
		c.String(http.StatusInternalServerError, err.Error())
	}
}
