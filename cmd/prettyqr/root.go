package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/prettyqr/internal/config"
	"github.com/cristianadrielbraun/prettyqr/internal/encoder"
	"github.com/cristianadrielbraun/prettyqr/internal/prettyqr"
)

var rootCmd = &cobra.Command{
	Use:           "prettyqr",
	Short:         "Render stylized QR codes",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var flagConfig string

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.prettyqr/config.yaml)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultPath()
}

// loadConfig reads the config file and installs the slog default logger at
// the configured level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return cfg, nil
}

func newRenderer(name string) (*prettyqr.Renderer, error) {
	enc, err := encoder.New(name)
	if err != nil {
		return nil, err
	}
	return &prettyqr.Renderer{Encoder: enc, Logger: slog.Default()}, nil
}
