// Package config collects the startup constants of pixelpad. Defaults can be
// overridden from the environment (optionally via a .env file) and then by flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvWidth       = "PIXELPAD_WIDTH"
	EnvHeight      = "PIXELPAD_HEIGHT"
	EnvCellSize    = "PIXELPAD_CELL_SIZE"
	EnvExportDir   = "PIXELPAD_EXPORT_DIR"
	EnvExportScale = "PIXELPAD_EXPORT_SCALE"
	EnvFramebuffer = "PIXELPAD_FB"
	EnvInputGlob   = "PIXELPAD_INPUT"
	EnvListenAddr  = "PIXELPAD_LISTEN"
	EnvGalleryHost = "PIXELPAD_GALLERY_HOST"
	EnvDevMode     = "PIXELPAD_DEV"
	EnvStdioLog    = "PIXELPAD_STDIO_LOG"
)

type Config struct {
	Width    int
	Height   int
	CellSize int

	ExportDir   string
	ExportScale int

	Framebuffer string
	InputGlob   string

	// ListenAddr enables the export gallery server when non-empty.
	ListenAddr string
	// GalleryHost is the host name put into the gallery QR code.
	GalleryHost string
	DevMode     bool

	StdioLog string
}

func Default() Config {
	return Config{
		Width:       800,
		Height:      600,
		CellSize:    16,
		ExportDir:   "images",
		ExportScale: 1,
		Framebuffer: "/dev/fb0",
		InputGlob:   "/dev/input/event*",
	}
}

// LoadDotEnv loads path into the environment without overriding variables that
// are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// FromEnv applies PIXELPAD_* variables on top of Default.
func FromEnv() (Config, error) {
	cfg := Default()

	ints := []struct {
		name   string
		target *int
	}{
		{EnvWidth, &cfg.Width},
		{EnvHeight, &cfg.Height},
		{EnvCellSize, &cfg.CellSize},
		{EnvExportScale, &cfg.ExportScale},
	}
	for _, v := range ints {
		raw := os.Getenv(v.name)
		if raw == "" {
			continue
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be an integer (got %q): %w", v.name, raw, err)
		}
		*v.target = parsed
	}

	strs := []struct {
		name   string
		target *string
	}{
		{EnvExportDir, &cfg.ExportDir},
		{EnvFramebuffer, &cfg.Framebuffer},
		{EnvInputGlob, &cfg.InputGlob},
		{EnvListenAddr, &cfg.ListenAddr},
		{EnvGalleryHost, &cfg.GalleryHost},
		{EnvStdioLog, &cfg.StdioLog},
	}
	for _, v := range strs {
		if raw := os.Getenv(v.name); raw != "" {
			*v.target = raw
		}
	}

	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		cfg.DevMode = parsed
	}

	return cfg, cfg.Validate()
}

// Validate rejects sizes the grid and exporter cannot work with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas size must be positive (got %dx%d)", c.Width, c.Height)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("cell size must be positive (got %d)", c.CellSize)
	}
	if c.ExportScale <= 0 {
		return fmt.Errorf("export scale must be positive (got %d)", c.ExportScale)
	}
	if c.ExportDir == "" {
		return errors.New("export dir must not be empty")
	}
	return nil
}
