package pixel

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceRoundTrip(t *testing.T) {
	for name, layout := range Layouts() {
		t.Run(name, func(it *testing.T) {
			fields := []struct {
				name  string
				field Field
				get   func(Color) uint8
			}{
				{"red", layout.Red, func(c Color) uint8 { return c.R }},
				{"green", layout.Green, func(c Color) uint8 { return c.G }},
				{"blue", layout.Blue, func(c Color) uint8 { return c.B }},
			}
			for _, f := range fields {
				// One quantization step of an N bit channel spans 255/(2^N-1).
				step := (0xff + int(f.field.mask()) - 1) / int(f.field.mask())
				for v := 0; v < 0x100; v++ {
					c := Color{uint8(v), uint8(v), uint8(v), 0xff}
					out := f.get(Decode(Coerce(c, layout), layout))
					if d := abs(int(out) - v); d > step {
						it.Fatalf("%s %d decoded as %d, error %d exceeds %d", f.name, v, out, d, step)
					}
				}
			}
		})
	}
}

func TestCoerceRGB565(t *testing.T) {
	tests := []struct {
		c    Color
		want uint32
	}{
		{Black, 0x0000},
		{White, 0xffff},
		{Red, 0xf800},
		{Green, 0x07e0},
		{Blue, 0x001f},
		{RGB(0x80, 0x80, 0x80), 0x8410},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, Coerce(test.c, RGB565), "%+v", test.c)
	}
	assert.Equal(t, uint32(0x001f), Coerce(Red, BGR565))
	assert.Equal(t, Red, Decode(0xf800, RGB565))
}

func TestCoerceAlpha(t *testing.T) {
	c := Color{0x11, 0x22, 0x33, 0x44}
	assert.Equal(t, uint32(0x44112233), Coerce(c, ARGB8888))
	assert.Equal(t, uint32(0x00112233), Coerce(c, XRGB8888), "layout without alpha drops it")
	assert.Equal(t, c, Decode(0x44112233, ARGB8888))
	assert.Equal(t, c.Opaque(), Decode(0x44112233, XRGB8888), "layout without alpha decodes opaque")
}

func TestBlend(t *testing.T) {
	bg := RGB(0x10, 0x80, 0xf0)
	t.Run("opaque", func(it *testing.T) {
		fg := RGB(1, 2, 3)
		assert.Equal(it, fg, Blend(fg, bg))
	})
	t.Run("transparent", func(it *testing.T) {
		assert.Equal(it, bg, Blend(Color{0xff, 0xff, 0xff, 0}, bg))
	})
	t.Run("half", func(it *testing.T) {
		out := Blend(Color{0xff, 0xff, 0xff, 0x80}, Black)
		assert.Equal(it, RGB(0x80, 0x80, 0x80), out)
	})
	t.Run("bounded", func(it *testing.T) {
		for a := 0; a < 0x100; a++ {
			out := Blend(Color{0xff, 0x00, 0xff, uint8(a)}, Color{0x00, 0xff, 0xff, 0xff})
			assert.Equal(it, uint8(0xff), out.B)
			assert.Equal(it, uint8(0xff), out.A)
			assert.Equal(it, 0xff, int(out.R)+int(out.G), "channels must sum to 255 at a=%d", a)
		}
	})
}

func TestLayoutPutGet(t *testing.T) {
	buf := make([]byte, 4)

	RGB888.Put(buf, 0x112233)
	assert.Equal(t, []byte{0x33, 0x22, 0x11, 0x00}, buf)
	assert.Equal(t, uint32(0x112233), RGB888.Get(buf))

	be := RGB565
	be.Order = binary.BigEndian
	be.Put(buf, 0xf800)
	assert.Equal(t, []byte{0xf8, 0x00}, buf[:2])
	assert.Equal(t, uint32(0xf800), be.Get(buf))
	assert.Equal(t, "RGB565/be", be.String())
}

func TestLayoutValidate(t *testing.T) {
	for name, layout := range Layouts() {
		assert.NoError(t, layout.Validate(), name)
		assert.Equal(t, name, layout.String())
	}
	tests := []struct {
		name   string
		layout Layout
	}{
		{"8bpp", Layout{BitsPerPixel: 8, Red: Field{5, 3}, Green: Field{2, 3}, Blue: Field{0, 2}}},
		{"wide channel", Layout{BitsPerPixel: 32, Red: Field{20, 10}, Green: Field{10, 10}, Blue: Field{0, 10}}},
		{"overlap", Layout{BitsPerPixel: 16, Red: Field{8, 8}, Green: Field{4, 8}, Blue: Field{0, 4}}},
		{"outside", Layout{BitsPerPixel: 16, Red: Field{12, 8}, Green: Field{5, 6}, Blue: Field{0, 5}}},
		{"no channels", Layout{BitsPerPixel: 32}},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			assert.ErrorIs(it, test.layout.Validate(), ErrLayout)
		})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
