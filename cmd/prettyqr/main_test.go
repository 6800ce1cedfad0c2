package main

import (
	"bytes"
	"errors"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cristianadrielbraun/prettyqr/internal/config"
	"github.com/cristianadrielbraun/prettyqr/internal/encoder"
	"github.com/cristianadrielbraun/prettyqr/internal/style"
)

func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "hello.png")
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"render", "HELLO", "-o", out, "--config", emptyConfig(t), "--block-size", "2", "--corners", "red"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("render error: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != out {
		t.Errorf("stdout = %q, want %q", stdout.String(), out)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("png.DecodeConfig() error: %v", err)
	}
	if cfg.Width != 42 {
		t.Errorf("width = %d, want 42", cfg.Width)
	}
}

func TestRenderCommand_TooLong(t *testing.T) {
	rootCmd.SetArgs([]string{"render", strings.Repeat("x", 200), "-o", filepath.Join(t.TempDir(), "x.png"), "--config", emptyConfig(t)})
	if err := rootCmd.Execute(); err == nil {
		t.Error("render of 200 bytes succeeded")
	}
}

func TestRenderCommand_Stdin(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stdin.svg")
	rootCmd.SetIn(strings.NewReader("HELLO"))
	rootCmd.SetArgs([]string{"render", "-", "-o", out, "--config", emptyConfig(t), "--block-size", "2"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("render - error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `viewBox="0 0 42 42"`) {
		t.Errorf("svg does not describe a 21 module code at 2px:\n%.200s", data)
	}
}

func TestRenderCommand_StdinNotText(t *testing.T) {
	rootCmd.SetIn(bytes.NewReader([]byte{0xff, 0xfe, 0x00}))
	rootCmd.SetArgs([]string{"render", "-", "-o", filepath.Join(t.TempDir(), "x.png"), "--config", emptyConfig(t), "--block-size", "2"})
	if err := rootCmd.Execute(); !errors.Is(err, encoder.ErrNotText) {
		t.Errorf("render of binary stdin error = %v, want ErrNotText", err)
	}
}

func TestRenderCommand_HugeBlockSize(t *testing.T) {
	out := filepath.Join(t.TempDir(), "huge.png")
	rootCmd.SetArgs([]string{"render", "HELLO", "-o", out, "--config", emptyConfig(t), "--block-size", "100000"})
	err := rootCmd.Execute()
	if !errors.Is(err, style.ErrBlockSize) {
		t.Errorf("render --block-size 100000 error = %v, want ErrBlockSize", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("output file written despite error")
	}
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := stdout.String(); got != "prettyqr dev\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestAnnounce(t *testing.T) {
	var logs, stdout bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	defer slog.SetDefault(prev)

	announce(&stdout, ":8080")
	if got := stdout.String(); got != "prettyqr listening on :8080\n" {
		t.Errorf("stdout = %q", got)
	}
	if !strings.Contains(logs.String(), "level=INFO") || !strings.Contains(logs.String(), "addr=:8080") {
		t.Errorf("log = %q, want an INFO record with the address", logs.String())
	}
}

func TestGetAddr(t *testing.T) {
	cfg := &config.Config{Listen: ":9000"}

	t.Setenv("PORT", "")
	if got := getAddr(cfg); got != ":9000" {
		t.Errorf("getAddr() = %q, want %q", got, ":9000")
	}

	t.Setenv("PORT", "3000")
	if got := getAddr(cfg); got != ":3000" {
		t.Errorf("getAddr() with PORT = %q, want %q", got, ":3000")
	}

	flagListen = "127.0.0.1:7000"
	defer func() { flagListen = "" }()
	if got := getAddr(cfg); got != "127.0.0.1:7000" {
		t.Errorf("getAddr() with --listen = %q, want %q", got, "127.0.0.1:7000")
	}
}
