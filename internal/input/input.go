// Package input turns pointer and keyboard activity into drawing events.
package input

import (
	"context"
	"fmt"
	"image"
)

type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	Clear
	Save
	Gallery
	Quit
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case Clear:
		return "clear"
	case Save:
		return "save"
	case Gallery:
		return "gallery"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a single input action. Pos is only meaningful for pointer events.
type Event struct {
	Kind Kind
	Pos  image.Point
}

func (e Event) String() string {
	switch e.Kind {
	case PointerDown, PointerMove:
		return fmt.Sprintf("%s %d %d", e.Kind, e.Pos.X, e.Pos.Y)
	default:
		return e.Kind.String()
	}
}

// Source delivers events on a channel until it is stopped.
type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

type NoopSource struct{ ch chan Event }

func NewNoopSource() *NoopSource { return &NoopSource{ch: make(chan Event)} }

func (n *NoopSource) Start(ctx context.Context) error { return nil }
func (n *NoopSource) Stop() error                     { return nil }
func (n *NoopSource) Events() <-chan Event            { return n.ch }

// Drain returns the events currently queued on ch without blocking.
// The second result is false once ch is closed.
func Drain(ch <-chan Event, max int) ([]Event, bool) {
	var batch []Event
	for max <= 0 || len(batch) < max {
		select {
		case ev, ok := <-ch:
			if !ok {
				return batch, false
			}
			batch = append(batch, ev)
		default:
			return batch, true
		}
	}
	return batch, true
}
