package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/prettyqr/internal/config"
	"github.com/cristianadrielbraun/prettyqr/internal/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the QR API and preview page",
	RunE:  runServe,
}

var flagListen string

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "listen address (overrides config and PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	renderer, err := newRenderer(cfg.Encoder)
	if err != nil {
		return err
	}

	r := newEngine(cfg)
	handlers.New(cfg, renderer, slog.Default()).Register(r)

	addr := getAddr(cfg)
	announce(cmd.OutOrStdout(), addr)
	return r.Run(addr)
}

func announce(w io.Writer, addr string) {
	slog.Info("prettyqr listening", "addr", addr)
	fmt.Fprintf(w, "prettyqr listening on %s\n", addr)
}

func newEngine(cfg *config.Config) *gin.Engine {
	if level, _ := config.ParseLevel(cfg.LogLevel); level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	return r
}

func getAddr(cfg *config.Config) string {
	if flagListen != "" {
		return flagListen
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	if cfg.Listen != "" {
		return cfg.Listen
	}
	return ":8080"
}
