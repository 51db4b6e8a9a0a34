//go:build !linux

package input

import (
	"context"
	"image"
)

// EvdevSource is only functional on Linux. Elsewhere it starts without devices.
type EvdevSource struct {
	Glob   string
	Bounds image.Rectangle
	Logger Logger

	ch chan Event
}

func NewEvdevSource(glob string, bounds image.Rectangle) *EvdevSource {
	return &EvdevSource{Glob: glob, Bounds: bounds, ch: make(chan Event)}
}

func (s *EvdevSource) Start(ctx context.Context) error {
	if s.Logger != nil {
		s.Logger.Infof("input", "evdev input is not available on this platform")
	}
	return nil
}

func (s *EvdevSource) Stop() error          { return nil }
func (s *EvdevSource) Events() <-chan Event { return s.ch }
