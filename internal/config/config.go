package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cristianadrielbraun/prettyqr/internal/style"
)

type Config struct {
	Listen   string `yaml:"listen"`
	LogLevel string `yaml:"loglevel"`
	// Encoder selects the QR encoder: skip2 or yeqown.
	Encoder string `yaml:"encoder"`

	Server ServerConfig  `yaml:"server"`
	Render style.Options `yaml:"render"`
}

type ServerConfig struct {
	// UploadDir holds the logos /api/qr may reference by file name.
	UploadDir     string `yaml:"upload_dir"`
	MaxImageSize  int    `yaml:"max_image_size"`  // largest rendered side in pixels
	MaxTextLength int    `yaml:"max_text_length"` // longest accepted input in bytes
	CacheMaxAge   int    `yaml:"cache_max_age"`   // seconds
}

// Defaults returns a Config populated with all default values.
func Defaults() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Listen:   ":8080",
		LogLevel: "warn",
		Encoder:  "skip2",
		Server: ServerConfig{
			UploadDir:     "./uploads",
			MaxImageSize:  4096,
			MaxTextLength: 194,
			CacheMaxAge:   3600,
		},
		Render: style.Options{
			Foreground: style.DefaultForeground,
			Background: style.DefaultBackground,
			BlockSize:  style.DefaultBlockSize,
			Backend:    style.BackendRasterx,
		},
	}
}

// DefaultPath is ~/.prettyqr/config.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".prettyqr", "config.yaml")
}

func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, falling back to defaults when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		slog.Info("no config file found, using defaults", "path", path)
		return defaults(), nil
	}
	return cfg, err
}

// Save writes cfg to path in YAML format, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ParseLevel maps a loglevel value to a slog level. Empty selects warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
}
