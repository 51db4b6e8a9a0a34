//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// EvdevSource reads pointer and keyboard events from Linux evdev devices.
// Each matching device gets its own reader goroutine; all of them share one pointer.
type EvdevSource struct {
	// Glob selects the device nodes, e.g. /dev/input/event*.
	Glob   string
	Bounds image.Rectangle
	Logger Logger

	ch      chan Event
	pointer *pointer
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewEvdevSource(glob string, bounds image.Rectangle) *EvdevSource {
	return &EvdevSource{Glob: glob, Bounds: bounds, ch: make(chan Event, 256)}
}

func (s *EvdevSource) Events() <-chan Event { return s.ch }

// Start opens every device matching Glob. Devices that cannot be opened are skipped;
// having none at all is not an error, the app then only redraws.
func (s *EvdevSource) Start(ctx context.Context) error {
	if s.ch == nil {
		s.ch = make(chan Event, 256)
	}
	s.pointer = newPointer(s.Bounds)

	paths, err := filepath.Glob(s.Glob)
	if err != nil {
		return fmt.Errorf("input glob %q: %w", s.Glob, err)
	}
	if len(paths) == 0 {
		s.infof("no evdev devices match %s", s.Glob)
		return nil
	}

	readCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			s.errorf("open %s: %v", path, err)
			continue
		}
		x, y := absRange(fd, absX), absRange(fd, absY)
		s.infof("reading %s (abs x=%v y=%v)", path, x, y)

		s.wg.Add(1)
		go func(fd int, path string) {
			defer s.wg.Done()
			s.readDevice(readCtx, fd, path, newDecoder(s.pointer, x, y))
		}(fd, path)
	}
	return nil
}

func (s *EvdevSource) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	return nil
}

func (s *EvdevSource) readDevice(ctx context.Context, fd int, path string, dec *decoder) {
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4
	buf := make([]byte, eventSize*64)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			s.errorf("poll %s: %v", path, err)
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			s.errorf("read %s: %v", path, err)
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			for _, ev := range dec.feed(typ, code, value) {
				select {
				case s.ch <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// absRange queries EVIOCGABS for an axis. Devices without the axis report an empty range.
func absRange(fd int, axis uint) AxisRange {
	var info struct {
		Value, Minimum, Maximum, Fuzz, Flat, Resolution int32
	}
	// _IOR('E', 0x40 + axis, struct input_absinfo)
	req := uintptr(2)<<30 | unsafe.Sizeof(info)<<16 | uintptr('E')<<8 | uintptr(0x40+axis)
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return AxisRange{}
	}
	return AxisRange{Min: info.Minimum, Max: info.Maximum}
}

func (s *EvdevSource) infof(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Infof("input", format, args...)
	}
}

func (s *EvdevSource) errorf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Errorf("input", format, args...)
	}
}
