package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/prettyqr/internal/config"
	"github.com/cristianadrielbraun/prettyqr/internal/prettyqr"
)

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	cfg      *config.Config
	renderer *prettyqr.Renderer
	log      *slog.Logger
}

// New returns a new Handler instance. A nil logger uses slog.Default.
func New(cfg *config.Config, renderer *prettyqr.Renderer, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{cfg: cfg, renderer: renderer, log: log}
}

// Register mounts all routes on r.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
	}
	r.GET("/", h.HomePage)
	r.GET("/healthz", h.Healthz)
	r.GET("/sitemap.xml", h.SitemapXML)
}

// Healthz reports that the server is up.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SitemapXML serves a minimal sitemap for the site.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && (strings.HasPrefix(host, "localhost:") || strings.HasPrefix(host, "127.0.0.1:")) {
		scheme = "http"
	}
	base := scheme + "://" + host
	xml := "" +
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"  <url>\n" +
		"    <loc>" + base + "/" + "</loc>\n" +
		"    <changefreq>monthly</changefreq>\n" +
		"    <priority>1.0</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(http.StatusOK, xml)
}
