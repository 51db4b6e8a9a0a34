package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/pixelpad/internal/assets"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// surface implements Drawer on an offscreen RGBA canvas. Text goes through freetype
// when the embedded font parses, and falls back to basicfont otherwise.
type surface struct {
	canvas *image.RGBA
	ttFont *truetype.Font
	faces  map[int]font.Face
}

func newSurface(width, height int, log logger) *surface {
	s := &surface{
		canvas: image.NewRGBA(image.Rect(0, 0, width, height)),
		faces:  make(map[int]font.Face),
	}
	tt, err := truetype.Parse(assets.FontTTF)
	if err != nil {
		if log != nil {
			log.Errorf("render", "truetype parse failed, using basicfont: %v", err)
		}
		return s
	}
	s.ttFont = tt
	return s
}

func (s *surface) Size() (int, int) {
	b := s.canvas.Bounds()
	return b.Dx(), b.Dy()
}

func (s *surface) FillBackground() {
	draw.Draw(s.canvas, s.canvas.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)
}

func (s *surface) FillRect(rect image.Rectangle, c color.Color) {
	op := draw.Src
	if _, _, _, a := c.RGBA(); a != 0xFFFF {
		op = draw.Over
	}
	draw.Draw(s.canvas, rect.Intersect(s.canvas.Bounds()), &image.Uniform{C: c}, image.Point{}, op)
}

func (s *surface) face(size int) font.Face {
	if size <= 0 {
		size = DefaultTextSize
	}
	if s.ttFont == nil {
		return basicfont.Face7x13
	}
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(s.ttFont, &truetype.Options{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
	s.faces[size] = f
	return f
}

func (s *surface) MeasureText(text string, style TextStyle) TextMetrics {
	face := s.face(style.Size)
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	return TextMetrics{
		Width:      font.MeasureString(face, text).Ceil(),
		Height:     ascent + descent,
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: metrics.Height.Ceil(),
	}
}

func (s *surface) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	m := s.MeasureText(text, style)
	switch style.Align {
	case TextAlignCenter:
		x -= m.Width / 2
	case TextAlignRight:
		x -= m.Width
	}
	textColor := style.Color
	if textColor == nil {
		textColor = Text
	}
	baseline := y + m.Ascent

	if s.ttFont != nil {
		size := style.Size
		if size <= 0 {
			size = DefaultTextSize
		}
		ctx := freetype.NewContext()
		ctx.SetDPI(72)
		ctx.SetFont(s.ttFont)
		ctx.SetFontSize(float64(size))
		ctx.SetHinting(font.HintingFull)
		ctx.SetClip(s.canvas.Bounds())
		ctx.SetDst(s.canvas)
		ctx.SetSrc(image.NewUniform(textColor))
		if _, err := ctx.DrawString(text, freetype.Pt(x, baseline)); err == nil {
			return m
		}
	}

	drawer := &font.Drawer{Dst: s.canvas, Src: image.NewUniform(textColor), Face: s.face(style.Size)}
	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(text)
	return m
}

func (s *surface) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil || rect.Empty() {
		return
	}
	dst := rect
	if mode == ScaleModeFit {
		srcW, srcH := img.Bounds().Dx(), img.Bounds().Dy()
		if srcW == 0 || srcH == 0 {
			return
		}
		w, h := rect.Dx(), rect.Dx()*srcH/srcW
		if h > rect.Dy() {
			w, h = rect.Dy()*srcW/srcH, rect.Dy()
		}
		minPoint := rect.Min.Add(image.Pt((rect.Dx()-w)/2, (rect.Dy()-h)/2))
		dst = image.Rectangle{Min: minPoint, Max: minPoint.Add(image.Pt(w, h))}
	}
	xdraw.NearestNeighbor.Scale(s.canvas, dst, img, img.Bounds(), xdraw.Over, nil)
}
