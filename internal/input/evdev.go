package input

import (
	"image"
	"sync"
)

// Linux input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	synReport = 0

	relX = 0x00
	relY = 0x01
	absX = 0x00
	absY = 0x01

	keyEsc = 1
	keyS   = 31
	keyG   = 34
	keyC   = 46
	keyF4  = 62

	btnLeft  = 0x110
	btnTouch = 0x14a
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// AxisRange is the reported value range of an absolute axis.
type AxisRange struct {
	Min, Max int32
}

// pointer is the on-screen cursor shared by every device reader.
type pointer struct {
	mu     sync.Mutex
	pos    image.Point
	bounds image.Rectangle
}

func newPointer(bounds image.Rectangle) *pointer {
	return &pointer{bounds: bounds, pos: image.Pt(bounds.Min.X+bounds.Dx()/2, bounds.Min.Y+bounds.Dy()/2)}
}

func (p *pointer) moveBy(dx, dy int) image.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = clampPoint(p.pos.Add(image.Pt(dx, dy)), p.bounds)
	return p.pos
}

func (p *pointer) setAxis(axis int, v int) image.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	next := p.pos
	if axis == absX {
		next.X = v
	} else {
		next.Y = v
	}
	p.pos = clampPoint(next, p.bounds)
	return p.pos
}

func (p *pointer) position() image.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

func clampPoint(pt image.Point, bounds image.Rectangle) image.Point {
	if bounds.Empty() {
		return pt
	}
	if pt.X < bounds.Min.X {
		pt.X = bounds.Min.X
	}
	if pt.X >= bounds.Max.X {
		pt.X = bounds.Max.X - 1
	}
	if pt.Y < bounds.Min.Y {
		pt.Y = bounds.Min.Y
	}
	if pt.Y >= bounds.Max.Y {
		pt.Y = bounds.Max.Y - 1
	}
	return pt
}

// decoder converts the raw record stream of one device into events.
// Pointer motion and button changes are held until the next SYN_REPORT so that a
// touch down is reported at the position delivered in the same report.
type decoder struct {
	pointer *pointer
	absX    AxisRange
	absY    AxisRange

	moved   bool
	buttons []Kind
}

func newDecoder(p *pointer, x, y AxisRange) *decoder {
	return &decoder{pointer: p, absX: x, absY: y}
}

func (d *decoder) feed(typ, code uint16, value int32) []Event {
	switch typ {
	case evRel:
		switch code {
		case relX:
			d.pointer.moveBy(int(value), 0)
			d.moved = true
		case relY:
			d.pointer.moveBy(0, int(value))
			d.moved = true
		}
	case evAbs:
		switch code {
		case absX:
			d.pointer.setAxis(absX, scaleAxis(value, d.absX, d.pointer.bounds.Min.X, d.pointer.bounds.Dx()))
			d.moved = true
		case absY:
			d.pointer.setAxis(absY, scaleAxis(value, d.absY, d.pointer.bounds.Min.Y, d.pointer.bounds.Dy()))
			d.moved = true
		}
	case evKey:
		// value: 0 release, 1 press, 2 autorepeat
		switch code {
		case btnLeft, btnTouch:
			if value == 1 {
				d.buttons = append(d.buttons, PointerDown)
			} else if value == 0 {
				d.buttons = append(d.buttons, PointerUp)
			}
			return nil
		}
		if value != 1 {
			return nil
		}
		switch code {
		case keyS:
			return []Event{{Kind: Save}}
		case keyC:
			return []Event{{Kind: Clear}}
		case keyG:
			return []Event{{Kind: Gallery}}
		case keyEsc, keyF4:
			return []Event{{Kind: Quit}}
		}
	case evSyn:
		if code != synReport {
			return nil
		}
		return d.flush()
	}
	return nil
}

func (d *decoder) flush() []Event {
	if !d.moved && len(d.buttons) == 0 {
		return nil
	}
	pos := d.pointer.position()
	var out []Event
	if d.moved {
		out = append(out, Event{Kind: PointerMove, Pos: pos})
		d.moved = false
	}
	for _, kind := range d.buttons {
		ev := Event{Kind: kind}
		if kind == PointerDown {
			ev.Pos = pos
		}
		out = append(out, ev)
	}
	d.buttons = d.buttons[:0]
	return out
}

// scaleAxis maps an absolute axis value onto [origin, origin+size).
// Without a usable range the raw value is taken as a pixel coordinate.
func scaleAxis(value int32, r AxisRange, origin, size int) int {
	if r.Max <= r.Min || size <= 0 {
		return int(value)
	}
	return origin + int((int64(value)-int64(r.Min))*int64(size-1)/(int64(r.Max)-int64(r.Min)))
}
