package pixel

import (
	"image"
	"image/color"

	"github.com/BeatGlow/kiosk/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	clear(p.Pix)
}

// Packed is an image whose pixels are packed according to a [Layout].
type Packed struct {
	Buffer
	Layout Layout
}

// NewPacked allocates an image for the geometry.
func NewPacked(g Geometry) *Packed {
	return NewPackedFrom(g, make([]byte, g.Size()))
}

// NewPackedFrom returns an image backed by pix, which must hold at least
// g.Size() bytes.
func NewPackedFrom(g Geometry, pix []byte) *Packed {
	return &Packed{
		Buffer: Buffer{
			Rect:   g.Bounds(),
			Pix:    pix,
			Stride: g.Stride,
		},
		Layout: g.Layout,
	}
}

// Geometry of the image.
func (p *Packed) Geometry() Geometry {
	return Geometry{
		Width:  p.Rect.Dx(),
		Height: p.Rect.Dy(),
		Stride: p.Stride,
		Layout: p.Layout,
	}
}

func (p *Packed) ColorModel() color.Model {
	return Model
}

func (p *Packed) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*p.Layout.BytesPerPixel()
}

func (p *Packed) At(x, y int) color.Color {
	return p.ColorAt(x, y)
}

// ColorAt is like At, but returns a Color.
func (p *Packed) ColorAt(x, y int) Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return Transparent
	}
	return Decode(p.Layout.Get(p.Pix[p.PixOffset(x, y):]), p.Layout)
}

func (p *Packed) Set(x, y int, c color.Color) {
	p.SetColor(x, y, FromColor(c))
}

// SetColor is like Set, but takes a Color.
func (p *Packed) SetColor(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.Layout.Put(p.Pix[p.PixOffset(x, y):], Coerce(c, p.Layout))
}

func (p *Packed) Fill(c color.Color) {
	var (
		n     = p.Layout.BytesPerPixel()
		value = make([]byte, n)
		w     = p.Rect.Dx() * n
	)
	p.Layout.Put(value, Coerce(FromColor(c), p.Layout))
	for y := 0; y < p.Rect.Dy(); y++ {
		row := p.Pix[y*p.Stride : y*p.Stride+w]
		for i := 0; i < w; i += n {
			copy(row[i:], value)
		}
	}
}

// Interface checks.
var (
	_ Image = (*Packed)(nil)
)
