package palette

import (
	"image/color"
	"math"
)

// Size is the number of entries in the palette.
const Size = 256

// Palette is the fixed, ordered set of selectable colors.
type Palette [Size]color.RGBA

// Generate builds the palette from a hue/saturation/value sweep.
// Entry i has hue i/256, saturation (i mod 16)/15 and value 1-(i div 16)/15.
func Generate() Palette {
	var p Palette
	for i := range p {
		hue := float64(i) / Size
		saturation := float64(i%16) / 15
		value := 1 - float64(i/16)/15
		r, g, b := hsvToRGB(hue, saturation, value)
		p[i] = color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 0xFF}
	}
	return p
}

// Color returns entry i, or false when i is outside the palette.
func (p *Palette) Color(i int) (color.RGBA, bool) {
	if i < 0 || i >= Size {
		return color.RGBA{}, false
	}
	return p[i], true
}

func channel(c float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, c)) * 255))
}

func hsvToRGB(h, s, v float64) (r, g, b float64) {
	if s == 0 {
		return v, v, v
	}
	h *= 6
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch int(i) % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
