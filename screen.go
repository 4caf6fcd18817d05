package kiosk

import (
	"image"
	"log"

	"github.com/BeatGlow/kiosk/brush"
	"github.com/BeatGlow/kiosk/draw"
	"github.com/BeatGlow/kiosk/pixel"
	"github.com/BeatGlow/kiosk/text"
)

// Border of a rectangle.
type Border struct {
	Brush     brush.Source
	Thickness int
}

// Screen draws onto a surface. A Screen is not safe for concurrent use.
//
// Drawing primitives take their colors from a [brush.Source], one color per
// pixel. Opaque colors overwrite the surface, translucent colors are blended
// over it and fully transparent colors leave it untouched.
type Screen struct {
	surface Surface
	geom    pixel.Geometry
	layout  pixel.Layout
	bounds  image.Rectangle
	bpp     int
	buf     []byte
}

// NewScreen returns a screen that draws onto s.
func NewScreen(s Surface) *Screen {
	g := s.Geometry()
	if debug {
		log.Printf("kiosk: screen %s", g)
	}
	return &Screen{
		surface: s,
		geom:    g,
		layout:  g.Layout,
		bounds:  g.Bounds(),
		bpp:     g.Layout.BytesPerPixel(),
	}
}

// Bounds of the screen.
func (s *Screen) Bounds() image.Rectangle {
	return s.bounds
}

// Geometry of the underlying surface.
func (s *Screen) Geometry() pixel.Geometry {
	return s.geom
}

func (s *Screen) scratch(n int) []byte {
	if cap(s.buf) < n {
		s.buf = make([]byte, n)
	}
	return s.buf[:n]
}

// SetPixel overwrites the pixel at (x, y); the alpha of c is ignored.
func (s *Screen) SetPixel(x, y int, c pixel.Color) error {
	if !(image.Point{X: x, Y: y}).In(s.bounds) {
		return nil
	}
	px := s.scratch(s.bpp)
	s.layout.Put(px, pixel.Coerce(c, s.layout))
	return s.surface.WriteRegion(x, y, 1, 1, px)
}

// BlendPixel composites c over the pixel at (x, y).
func (s *Screen) BlendPixel(x, y int, c pixel.Color) error {
	if !(image.Point{X: x, Y: y}).In(s.bounds) {
		return nil
	}
	switch c.A {
	case 0x00:
		return nil
	case 0xff:
		return s.SetPixel(x, y, c)
	}
	px := s.scratch(s.bpp)
	if err := s.surface.ReadRegion(x, y, 1, 1, px); err != nil {
		return err
	}
	bg := pixel.Decode(s.layout.Get(px), s.layout)
	s.layout.Put(px, pixel.Coerce(pixel.Blend(c, bg), s.layout))
	return s.surface.WriteRegion(x, y, 1, 1, px)
}

// plot draws a single color from a brush.
func (s *Screen) plot(x, y int, c pixel.Color) error {
	if c.A == 0xff {
		return s.SetPixel(x, y, c)
	}
	return s.BlendPixel(x, y, c)
}

// Fill the whole screen.
func (s *Screen) Fill(src brush.Source) error {
	for y := s.bounds.Min.Y; y < s.bounds.Max.Y; y++ {
		if err := s.span(y, s.bounds.Min.X, s.bounds.Max.X, src); err != nil {
			return err
		}
	}
	return nil
}

// Clear the screen to black.
func (s *Screen) Clear() error {
	return s.Fill(brush.Solid(pixel.Black))
}

// span draws the pixels [x0, x1) of row y.
func (s *Screen) span(y, x0, x1 int, src brush.Source) error {
	if y < s.bounds.Min.Y || y >= s.bounds.Max.Y {
		return nil
	}
	x0, x1 = max(x0, s.bounds.Min.X), min(x1, s.bounds.Max.X)
	if x0 >= x1 {
		return nil
	}

	var (
		n   = x1 - x0
		row = s.scratch(n * s.bpp)
	)
	if c, ok := src.Uniform(); ok {
		switch c.A {
		case 0x00:
			return nil
		case 0xff:
			v := pixel.Coerce(c, s.layout)
			for i := 0; i < len(row); i += s.bpp {
				s.layout.Put(row[i:], v)
			}
			return s.surface.WriteRegion(x0, y, n, 1, row)
		}
	}

	if err := s.surface.ReadRegion(x0, y, n, 1, row); err != nil {
		return err
	}
	for i := 0; i < len(row); i += s.bpp {
		c := src.Next()
		switch c.A {
		case 0x00:
			continue
		case 0xff:
		default:
			c = pixel.Blend(c, pixel.Decode(s.layout.Get(row[i:]), s.layout))
		}
		s.layout.Put(row[i:], pixel.Coerce(c, s.layout))
	}
	return s.surface.WriteRegion(x0, y, n, 1, row)
}

// DrawLine draws a line from (x0,y0) to (x1,y1), both inclusive. Every pixel
// on the line is drawn once, pixels outside of the screen are skipped and do
// not advance src.
func (s *Screen) DrawLine(x0, y0, x1, y1 int, src brush.Source) error {
	var err error
	draw.BresenhamClip(x0, y0, x1, y1, s.bounds, func(x, y int) {
		if err == nil {
			err = s.plot(x, y, src.Next())
		}
	})
	return err
}

// DrawRect draws a rectangle with radius pixels rounded corners. The fill is
// drawn first, the border on top of it. A zero Border or fill source draws
// nothing.
func (s *Screen) DrawRect(r image.Rectangle, radius int, border Border, fill brush.Source) error {
	r = r.Canon()
	if !r.Overlaps(s.bounds) {
		return nil
	}

	var err error
	draw.RoundedSpans(r, radius, func(y, x0, x1 int) {
		if err == nil {
			err = s.span(y, x0, x1, fill)
		}
	})
	if err != nil {
		return err
	}
	draw.BorderSpans(r, radius, border.Thickness, func(y, x0, x1 int) {
		if err == nil {
			err = s.span(y, x0, x1, border.Brush)
		}
	})
	return err
}

// DrawImage draws img with its top left corner at (x, y). With composite set,
// the pixels are blended over the screen by their alpha; otherwise they
// overwrite it and alpha is ignored.
func (s *Screen) DrawImage(x, y int, img *Bitmap, composite bool) error {
	if img.Width < 0 || img.Height < 0 || len(img.Pix) < img.Width*img.Height {
		return ErrBitmapSize
	}
	clip := image.Rect(x, y, x+img.Width, y+img.Height).Intersect(s.bounds)
	if clip.Empty() {
		return nil
	}

	var (
		w   = clip.Dx()
		h   = clip.Dy()
		buf = s.scratch(w * h * s.bpp)
	)
	if composite {
		if err := s.surface.ReadRegion(clip.Min.X, clip.Min.Y, w, h, buf); err != nil {
			return err
		}
	}
	for py := 0; py < h; py++ {
		var (
			row = buf[py*w*s.bpp:]
			src = img.Pix[(clip.Min.Y-y+py)*img.Width+clip.Min.X-x:]
		)
		for px := 0; px < w; px++ {
			c := src[px]
			if composite {
				if c.A == 0x00 {
					continue
				}
				if c.A != 0xff {
					c = pixel.Blend(c, pixel.Decode(s.layout.Get(row[px*s.bpp:]), s.layout))
				}
			}
			s.layout.Put(row[px*s.bpp:], pixel.Coerce(c, s.layout))
		}
	}
	return s.surface.WriteRegion(clip.Min.X, clip.Min.Y, w, h, buf)
}

// DrawText draws the glyphs with the text origin at (x, y), which is on the
// baseline. Glyph coverage scales the alpha of c.
func (s *Screen) DrawText(x, y int, glyphs []text.Glyph, c pixel.Color) error {
	if c.A == 0 {
		return nil
	}
	mask, at := text.Rasterize(glyphs)
	if mask == nil {
		return nil
	}

	origin := image.Pt(x, y).Add(at)
	clip := mask.Bounds().Add(origin).Intersect(s.bounds)
	if clip.Empty() {
		return nil
	}

	var (
		w   = clip.Dx()
		h   = clip.Dy()
		buf = s.scratch(w * h * s.bpp)
	)
	if err := s.surface.ReadRegion(clip.Min.X, clip.Min.Y, w, h, buf); err != nil {
		return err
	}
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			coverage := mask.AlphaAt(clip.Min.X-origin.X+px, clip.Min.Y-origin.Y+py).A
			if coverage == 0 {
				continue
			}
			var (
				i  = (py*w + px) * s.bpp
				fg = c
			)
			fg.A = uint8((uint32(c.A)*uint32(coverage) + 127) / 0xff)
			bg := pixel.Decode(s.layout.Get(buf[i:]), s.layout)
			s.layout.Put(buf[i:], pixel.Coerce(pixel.Blend(fg, bg), s.layout))
		}
	}
	return s.surface.WriteRegion(clip.Min.X, clip.Min.Y, w, h, buf)
}
