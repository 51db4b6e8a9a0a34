package app

import (
	"errors"
	"fmt"
	"image"

	"github.com/rook-computer/pixelpad/internal/canvas"
	"github.com/rook-computer/pixelpad/internal/input"
	"github.com/rook-computer/pixelpad/internal/state"
)

// ErrQuit ends the app loop without an error.
var ErrQuit = errors.New("quit requested")

// Exporter persists the painted part of a grid.
type Exporter interface {
	Export(g *canvas.Grid) (string, error)
}

// Router turns input events into session changes. It implements the Idle/Painting
// state machine: a press outside reserved UI starts painting, a release stops it.
type Router struct {
	Session  *state.Session
	Exporter Exporter
	Logger   Logger

	// OnGallery is called for the gallery toggle key.
	OnGallery func()

	pointer image.Point
	last    image.Point
}

func NewRouter(session *state.Session, exporter Exporter, logger Logger) *Router {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Router{Session: session, Exporter: exporter, Logger: logger}
}

// Pointer is the last known pointer position.
func (r *Router) Pointer() image.Point { return r.pointer }

// Handle applies one event. Export failures are returned and are fatal to the loop.
func (r *Router) Handle(ev input.Event) error {
	s := r.Session
	switch ev.Kind {
	case input.PointerDown:
		r.pointer = ev.Pos
		if s.Mode == state.Painting {
			return nil
		}
		r.press(ev.Pos)
	case input.PointerMove:
		r.pointer = ev.Pos
	case input.PointerUp:
		s.Mode = state.Idle
	case input.Clear:
		s.Grid.Clear()
		r.Logger.Infof("router", "canvas cleared")
	case input.Save:
		return r.save()
	case input.Gallery:
		if r.OnGallery != nil {
			r.OnGallery()
		}
	case input.Quit:
		return ErrQuit
	}
	return nil
}

func (r *Router) press(p image.Point) {
	s := r.Session
	switch {
	case p.In(s.Layout.Container()):
		index, ok := s.Layout.HitTest(p)
		if ok && s.SelectColor(index) {
			r.Logger.Infof("router", "selected color %d %v", index, s.Color)
		}
	case p.In(s.ClearButton):
		s.Grid.Clear()
		r.Logger.Infof("router", "canvas cleared")
	default:
		s.Mode = state.Painting
		s.Grid.PaintAt(p, s.Color)
		r.last = p
	}
}

// Frame runs the per-frame paint step: while painting, every cell between the
// previous and the current pointer sample gets the current color.
func (r *Router) Frame() {
	s := r.Session
	if s.Mode != state.Painting {
		return
	}
	s.Grid.PaintLine(r.last, r.pointer, s.Color)
	r.last = r.pointer
}

func (r *Router) save() error {
	if r.Exporter == nil {
		return errors.New("export: no exporter configured")
	}
	path, err := r.Exporter.Export(r.Session.Grid)
	if err != nil {
		r.Logger.Errorf("router", "export failed: %v", err)
		return fmt.Errorf("export: %w", err)
	}
	if path == "" {
		return nil
	}
	r.Session.LastExport = path
	r.Session.Exports++
	return nil
}
