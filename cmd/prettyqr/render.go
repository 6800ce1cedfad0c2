package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/prettyqr/internal/encoder"
	"github.com/cristianadrielbraun/prettyqr/internal/style"
)

var renderCmd = &cobra.Command{
	Use:   "render TEXT",
	Short: "Render TEXT as a QR code image",
	Long: `Render TEXT as a stylized QR code and write it to the --output file.
The format follows the file extension: .png, .jpg/.jpeg or .svg.
A TEXT of "-" reads the content from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var (
	flagOutput    string
	flagFg        string
	flagBg        string
	flagCorners   string
	flagBlockSize int
	flagSize      int
	flagRadius    int
	flagLogo      string
	flagBackend   string
	flagEncoder   string
)

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&flagOutput, "output", "o", "qr.png", "output file")
	f.StringVar(&flagFg, "fg", "", "foreground color (overrides config)")
	f.StringVar(&flagBg, "bg", "", "background color, or transparent (overrides config)")
	f.StringVar(&flagCorners, "corners", "", "finder pattern color (default: foreground)")
	f.IntVar(&flagBlockSize, "block-size", 0, "module size in pixels")
	f.IntVar(&flagSize, "size", 0, "target image size in pixels; overrides --block-size")
	f.IntVar(&flagRadius, "radius", -1, "corner radius as a percentage of the block size")
	f.StringVar(&flagLogo, "logo", "", "logo image (png, jpeg, gif, webp, bmp or svg)")
	f.StringVar(&flagBackend, "backend", "", "rasterizer: rasterx or gg")
	f.StringVar(&flagEncoder, "encoder", "", "QR encoder: skip2 or yeqown")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := renderOptions(cmd, cfg.Render)
	encName := cfg.Encoder
	if flagEncoder != "" {
		encName = flagEncoder
	}
	r, err := newRenderer(encName)
	if err != nil {
		return err
	}

	text, err := inputText(cmd, args[0])
	if err != nil {
		return err
	}
	res, err := r.Render(text, opts)
	if err != nil {
		return err
	}
	if err := res.WriteFile(flagOutput); err != nil {
		return err
	}
	slog.Info("wrote QR code", "path", flagOutput, "version", res.Version, "size", res.Config.ImageSize())
	fmt.Fprintln(cmd.OutOrStdout(), flagOutput)
	return nil
}

// inputText returns arg, or all of stdin when arg is "-".
func inputText(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return encoder.Text(arg)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return encoder.Text(data)
}

// renderOptions applies the flags that were set on top of the configured
// defaults.
func renderOptions(cmd *cobra.Command, opts style.Options) style.Options {
	f := cmd.Flags()
	if f.Changed("fg") {
		opts.Foreground = flagFg
	}
	if f.Changed("bg") {
		opts.Background = flagBg
	}
	if f.Changed("corners") {
		opts.Corners = flagCorners
	}
	if f.Changed("block-size") {
		opts.BlockSize = flagBlockSize
	}
	if f.Changed("size") {
		opts.ImageSize = flagSize
	}
	if f.Changed("radius") {
		opts.CornerRadius = style.Percent(flagRadius)
	}
	if f.Changed("logo") {
		opts.Logo = flagLogo
	}
	if f.Changed("backend") {
		opts.Backend = flagBackend
	}
	return opts
}
