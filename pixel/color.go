package pixel

import "image/color"

// Model converts any [color.Color] to a [Color].
var Model color.Model = color.ModelFunc(model)

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{0x00, 0x00, 0x00, 0xff}
	White       = Color{0xff, 0xff, 0xff, 0xff}
	Red         = Color{0xff, 0x00, 0x00, 0xff}
	Green       = Color{0x00, 0xff, 0x00, 0xff}
	Blue        = Color{0x00, 0x00, 0xff, 0xff}
	Yellow      = Color{0xff, 0xff, 0x00, 0xff}
	Cyan        = Color{0x00, 0xff, 0xff, 0xff}
	Magenta     = Color{0xff, 0x00, 0xff, 0xff}
)

// Color is a device independent color with 8 bits per channel and a straight
// (non-premultiplied) alpha. An alpha of 0xff is fully opaque.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 0xff}
}

// RGBA implements [color.Color].
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Opaque returns c with the alpha channel set to 0xff.
func (c Color) Opaque() Color {
	c.A = 0xff
	return c
}

func model(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B, n.A}
}

// FromColor converts any [color.Color] to a Color.
func FromColor(c color.Color) Color {
	return model(c).(Color)
}

// Blend composites fg over bg using the alpha of fg:
//
//	out = (fg*a + bg*(255-a)) / 255, rounded
//
// Blending an opaque color yields fg, blending a fully transparent color
// yields bg.
func Blend(fg, bg Color) Color {
	switch fg.A {
	case 0xff:
		return fg
	case 0x00:
		return bg
	}
	a := uint32(fg.A)
	ia := 0xff - a
	return Color{
		R: blend(fg.R, bg.R, a, ia),
		G: blend(fg.G, bg.G, a, ia),
		B: blend(fg.B, bg.B, a, ia),
		A: uint8(a + (uint32(bg.A)*ia+127)/0xff),
	}
}

func blend(fg, bg uint8, a, ia uint32) uint8 {
	return uint8((uint32(fg)*a + uint32(bg)*ia + 127) / 0xff)
}

// Coerce packs c into the native pixel value described by layout. Every
// channel is rescaled from 8 bits to its field width with rounding; channels
// the layout lacks are dropped.
func Coerce(c Color, layout Layout) uint32 {
	return layout.Red.quantize(c.R) |
		layout.Green.quantize(c.G) |
		layout.Blue.quantize(c.B) |
		layout.Alpha.quantize(c.A)
}

// Decode unpacks a native pixel value into a Color. Layouts without an alpha
// field decode as opaque.
func Decode(v uint32, layout Layout) Color {
	c := Color{
		R: layout.Red.expand(v),
		G: layout.Green.expand(v),
		B: layout.Blue.expand(v),
		A: 0xff,
	}
	if layout.Alpha.Length > 0 {
		c.A = layout.Alpha.expand(v)
	}
	return c
}
