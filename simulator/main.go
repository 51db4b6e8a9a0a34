package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/pixelpad/internal/app"
	"github.com/rook-computer/pixelpad/internal/config"
	"github.com/rook-computer/pixelpad/internal/export"
	"github.com/rook-computer/pixelpad/internal/input"
	"github.com/rook-computer/pixelpad/internal/render"
	"github.com/rook-computer/pixelpad/internal/state"
	"github.com/rook-computer/pixelpad/internal/web"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Println("env file error:", err)
	}
	defaults, err := config.FromEnv()
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	scriptPath := flag.String("script", "-", "input script to replay; - reads stdin")
	screenshot := flag.String("screenshot", "pixelpad-sim.png", "write the final frame to this PNG (empty disables)")
	exportDir := flag.String("export-dir", defaults.ExportDir, "directory for exported images; also configurable via "+config.EnvExportDir)
	exportScale := flag.Int("export-scale", defaults.ExportScale, "integer upscale factor for exported images")
	listenAddr := flag.String("listen", defaults.ListenAddr, "after the replay, serve the export gallery on this address until interrupted")
	devMode := flag.Bool("dev", defaults.DevMode, "enable permissive CORS on the gallery")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	cfg := defaults
	cfg.ExportDir = *exportDir
	cfg.ExportScale = *exportScale
	cfg.ListenAddr = *listenAddr
	cfg.DevMode = *devMode
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	script, err := readScript(*scriptPath)
	if err != nil {
		fmt.Println("script error:", err)
		os.Exit(2)
	}

	var logger app.Logger = app.NoopLogger{}
	if *verbose {
		logger = app.NewFileLogger(os.Stderr)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := state.NewSession(cfg.Width, cfg.Height, cfg.CellSize)
	renderer := render.NewImageRenderer(cfg.Width, cfg.Height)
	renderer.Logger = logger

	exporter := export.NewExporter(cfg.ExportDir)
	exporter.Scale = cfg.ExportScale
	exporter.Logger = logger

	var server web.Server = &web.NoopServer{}
	var httpServer *web.HTTPServer
	if cfg.ListenAddr != "" {
		httpServer = web.NewHTTPServer(web.ServerConfig{ListenAddr: cfg.ListenAddr, DevMode: cfg.DevMode, ExportDir: cfg.ExportDir})
		httpServer.Logger = logger
		server = httpServer
	}

	a := app.New(session, renderer, nil, server, exporter)
	a.Logger = logger
	a.Debug = *verbose
	if httpServer != nil {
		a.SetGalleryURL(func() string { return httpServer.URL("") })
	}

	if err := a.Start(processCtx); err != nil {
		fmt.Println("simulator start error:", err)
		os.Exit(1)
	}
	frames, replayErr := a.Replay(script)

	if *screenshot != "" {
		if err := renderer.SavePNG(*screenshot); err != nil {
			fmt.Println("screenshot error:", err)
		} else {
			fmt.Println("Screenshot:", *screenshot)
		}
	}
	fmt.Printf("Replayed %d frames, %d exports, mode=%s\n", frames, session.Exports, session.Mode)
	if session.LastExport != "" {
		fmt.Println("Last export:", session.LastExport)
	}
	if replayErr != nil {
		fmt.Println("replay error:", replayErr)
		_ = a.Stop()
		os.Exit(1)
	}

	if httpServer != nil {
		fmt.Println("Gallery:", httpServer.URL(""))
		<-processCtx.Done()
	}
	_ = a.Stop()
}

func readScript(path string) (input.Script, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return input.Script{}, err
		}
		defer f.Close()
		r = f
	}
	return input.ParseScript(r)
}
