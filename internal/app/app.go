package app

import (
	"context"
	"errors"
	"time"

	"github.com/rook-computer/pixelpad/internal/app/screens"
	"github.com/rook-computer/pixelpad/internal/input"
	"github.com/rook-computer/pixelpad/internal/render"
	"github.com/rook-computer/pixelpad/internal/state"
	"github.com/rook-computer/pixelpad/internal/system"
	"github.com/rook-computer/pixelpad/internal/web"
)

const (
	defaultFPS = 30

	// maxBatch caps how many queued events one frame consumes.
	maxBatch = 256
)

// App drives the single-threaded drawing loop: drain input, route, paint, redraw.
type App struct {
	Session *state.Session
	Router  *Router
	Render  render.Renderer
	Input   input.Source
	Web     web.Server
	Logger  Logger

	// Console switches the active VT to graphics mode while running.
	Console bool
	FPS     int
	Debug   bool

	canvasScreen  render.Screen
	galleryScreen render.Screen
	currentScreen render.Screen
}

func New(session *state.Session, renderer render.Renderer, source input.Source, server web.Server, exporter Exporter) *App {
	a := &App{
		Session:      session,
		Render:       renderer,
		Input:        source,
		Web:          server,
		Logger:       NoopLogger{},
		FPS:          defaultFPS,
		canvasScreen: screens.CanvasScreen{},
	}
	a.Router = NewRouter(session, exporter, a.Logger)
	a.Router.OnGallery = a.toggleGallery
	return a
}

// SetGalleryURL configures the overlay shown by the gallery key. urlFunc is asked for
// the address each time the overlay opens.
func (a *App) SetGalleryURL(urlFunc func() string) {
	a.galleryScreen = screens.NewGalleryScreen(urlFunc, a.Logger)
}

// Run starts every subsystem, loops until quit, context cancellation or a fatal
// error, then stops them again. A quit request returns nil.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = a.Stop() }()

	fps := a.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := a.Input.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		batch, open := input.Drain(events, maxBatch)
		err := a.Step(batch)
		if errors.Is(err, ErrQuit) {
			a.Logger.Infof("app", "quit requested")
			return nil
		}
		if err != nil {
			a.Logger.Errorf("app", "%v", err)
			return err
		}
		if !open {
			a.Logger.Infof("app", "input closed")
			return nil
		}
	}
}

// Start prepares rendering, console, input and the gallery server, and draws the first frame.
func (a *App) Start(ctx context.Context) error {
	a.Router.Logger = a.Logger
	if a.Render == nil {
		a.Render = &render.NoopRenderer{}
	}
	if a.Input == nil {
		a.Input = input.NewNoopSource()
	}
	if a.Web == nil {
		a.Web = &web.NoopServer{}
	}

	if err := a.Render.Start(ctx); err != nil {
		a.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}

	if a.Console {
		// Best-effort: a missing VT must not stop drawing.
		_ = system.SetGraphicsModeWithLog(a.Logger)
		_ = system.HideCursorWithLog(a.Logger)
	}

	if err := a.Web.Start(ctx); err != nil {
		a.Logger.Errorf("app", "gallery server start error: %v", err)
		_ = a.Render.Stop()
		return err
	}
	if err := a.Input.Start(ctx); err != nil {
		a.Logger.Errorf("app", "input start error: %v", err)
		_ = a.Web.Stop()
		_ = a.Render.Stop()
		return err
	}

	if err := a.setScreen(ctx, a.canvasScreen); err != nil {
		return err
	}
	a.Render.Redraw(a.Session)
	return nil
}

// Stop shuts the subsystems down in reverse order and restores the console.
func (a *App) Stop() error {
	var errs []error
	if a.currentScreen != nil {
		errs = append(errs, a.currentScreen.Stop())
	}
	if a.Input != nil {
		errs = append(errs, a.Input.Stop())
	}
	if a.Web != nil {
		errs = append(errs, a.Web.Stop())
	}
	if a.Console {
		_ = system.ShowCursorWithLog(a.Logger)
		_ = system.RestoreTextModeWithLog(a.Logger)
	}
	if a.Render != nil {
		errs = append(errs, a.Render.Stop())
	}
	return errors.Join(errs...)
}

// Step processes one frame: the batch of events, the paint step and a redraw.
func (a *App) Step(batch []input.Event) error {
	for _, ev := range batch {
		if a.Debug {
			a.Logger.Infof("input", "%s", ev)
		}
		if a.ShowingGallery() && isPointerPress(ev) {
			// the overlay covers the canvas; nothing behind it takes input
			continue
		}
		if err := a.Router.Handle(ev); err != nil {
			return err
		}
	}
	a.Router.Frame()
	a.Render.Redraw(a.Session)
	return nil
}

// ShowingGallery reports whether the gallery overlay is the current screen.
func (a *App) ShowingGallery() bool {
	return a.galleryScreen != nil && a.currentScreen == a.galleryScreen
}

func (a *App) toggleGallery() {
	if a.galleryScreen == nil {
		a.SetGalleryURL(nil)
	}
	next := a.galleryScreen
	if a.currentScreen == a.galleryScreen {
		next = a.canvasScreen
	} else {
		a.Session.Mode = state.Idle
	}
	if err := a.setScreen(context.Background(), next); err != nil {
		a.Logger.Errorf("app", "switch screen: %v", err)
		_ = a.setScreen(context.Background(), a.canvasScreen)
	}
}

func isPointerPress(ev input.Event) bool {
	return ev.Kind == input.PointerDown || ev.Kind == input.PointerMove
}

func (a *App) setScreen(ctx context.Context, screen render.Screen) error {
	if a.currentScreen != nil {
		_ = a.currentScreen.Stop()
	}
	a.currentScreen = screen
	a.Render.SetScreen(screen)
	return screen.Start(ctx)
}

// Replay feeds a recorded script through Step, one frame per batch, and returns
// the number of frames processed. A quit event ends the replay early without error.
func (a *App) Replay(script input.Script) (int, error) {
	for i, frame := range script.Frames {
		err := a.Step(frame)
		if errors.Is(err, ErrQuit) {
			return i + 1, nil
		}
		if err != nil {
			return i + 1, err
		}
	}
	return len(script.Frames), nil
}
