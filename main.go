package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/pixelpad/internal/app"
	"github.com/rook-computer/pixelpad/internal/config"
	"github.com/rook-computer/pixelpad/internal/export"
	"github.com/rook-computer/pixelpad/internal/input"
	"github.com/rook-computer/pixelpad/internal/render"
	"github.com/rook-computer/pixelpad/internal/state"
	"github.com/rook-computer/pixelpad/internal/system"
	"github.com/rook-computer/pixelpad/internal/web"
)

func main() {
	fmt.Println("pixelpad starting")

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Println("env file error:", err)
	}
	defaults, err := config.FromEnv()
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	debug := flag.Bool("debug", false, "enable debug logging to ./pixelpad-debug.log")
	exportDir := flag.String("export-dir", defaults.ExportDir, "directory for exported images; also configurable via "+config.EnvExportDir)
	exportScale := flag.Int("export-scale", defaults.ExportScale, "integer upscale factor for exported images; also configurable via "+config.EnvExportScale)
	fbDevice := flag.String("fb", defaults.Framebuffer, "framebuffer device; also configurable via "+config.EnvFramebuffer)
	inputGlob := flag.String("input", defaults.InputGlob, "evdev device glob; also configurable via "+config.EnvInputGlob)
	listenAddr := flag.String("listen", defaults.ListenAddr, "serve the export gallery on this address (disabled when empty); also configurable via "+config.EnvListenAddr)
	galleryHost := flag.String("gallery-host", defaults.GalleryHost, "host name shown in the gallery QR code; also configurable via "+config.EnvGalleryHost)
	devMode := flag.Bool("dev", defaults.DevMode, "enable permissive CORS on the gallery; also configurable via "+config.EnvDevMode)
	stdioLog := flag.String("stdio-log", defaults.StdioLog, "redirect stdout+stderr (including panics) to this file; also configurable via "+config.EnvStdioLog)
	flag.Parse()

	cfg := defaults
	cfg.ExportDir = *exportDir
	cfg.ExportScale = *exportScale
	cfg.Framebuffer = *fbDevice
	cfg.InputGlob = *inputGlob
	cfg.ListenAddr = *listenAddr
	cfg.GalleryHost = *galleryHost
	cfg.DevMode = *devMode
	cfg.StdioLog = *stdioLog
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	// The console is in graphics mode while drawing, so crashes are only visible in a file.
	if err := system.RedirectStdIO(cfg.StdioLog); err != nil {
		fmt.Println("stdio log redirect error:", err)
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./pixelpad-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := state.NewSession(cfg.Width, cfg.Height, cfg.CellSize)

	renderer := render.NewFBRenderer(cfg.Framebuffer, cfg.Width, cfg.Height)
	renderer.Logger = logger
	renderer.Debug = *debug

	source := input.NewEvdevSource(cfg.InputGlob, image.Rect(0, 0, cfg.Width, cfg.Height))
	source.Logger = logger

	exporter := export.NewExporter(cfg.ExportDir)
	exporter.Scale = cfg.ExportScale
	exporter.Logger = logger

	var server web.Server = &web.NoopServer{}
	var galleryURL func() string
	if cfg.ListenAddr != "" {
		httpServer := web.NewHTTPServer(web.ServerConfig{ListenAddr: cfg.ListenAddr, DevMode: cfg.DevMode, ExportDir: cfg.ExportDir})
		httpServer.Logger = logger
		server = httpServer
		host := system.GalleryHost(cfg.GalleryHost, logger)
		galleryURL = func() string { return httpServer.URL(host) }
	}

	a := app.New(session, renderer, source, server, exporter)
	a.Logger = logger
	a.Console = true
	a.Debug = *debug
	a.SetGalleryURL(galleryURL)

	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("pixelpad error:", err)
		os.Exit(1)
	}
	if session.LastExport != "" {
		fmt.Println("last export:", session.LastExport)
	}
}
