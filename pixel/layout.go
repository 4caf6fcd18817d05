package pixel

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
)

// ErrLayout is returned by [Layout.Validate] for layouts that can not be packed.
var ErrLayout = errors.New("pixel: invalid layout")

// Field is a color channel within a packed pixel value.
type Field struct {
	// Offset of the least significant bit.
	Offset uint8

	// Length in bits, zero if the channel is absent.
	Length uint8
}

func (f Field) mask() uint32 {
	return uint32(1)<<f.Length - 1
}

func (f Field) quantize(v uint8) uint32 {
	if f.Length == 0 {
		return 0
	}
	n := f.mask()
	return (uint32(v)*n + 127) / 0xff << f.Offset
}

func (f Field) expand(v uint32) uint8 {
	if f.Length == 0 {
		return 0
	}
	n := f.mask()
	q := v >> f.Offset & n
	return uint8((q*0xff + n/2) / n)
}

// Layout describes how a pixel is packed in memory.
type Layout struct {
	// BitsPerPixel as reported by the device; 15 is stored in two bytes.
	BitsPerPixel int

	Red, Green, Blue, Alpha Field

	// Order of the bytes of a pixel value in memory. A nil Order means
	// little endian, which is what framebuffers on common hardware use.
	Order binary.ByteOrder
}

// Common layouts, named after the channel order from most to least
// significant bit of the (little endian) pixel value.
var (
	RGB565   = Layout{BitsPerPixel: 16, Red: Field{11, 5}, Green: Field{5, 6}, Blue: Field{0, 5}}
	BGR565   = Layout{BitsPerPixel: 16, Red: Field{0, 5}, Green: Field{5, 6}, Blue: Field{11, 5}}
	RGB555   = Layout{BitsPerPixel: 16, Red: Field{10, 5}, Green: Field{5, 5}, Blue: Field{0, 5}}
	BGR555   = Layout{BitsPerPixel: 16, Red: Field{0, 5}, Green: Field{5, 5}, Blue: Field{10, 5}}
	RGB888   = Layout{BitsPerPixel: 24, Red: Field{16, 8}, Green: Field{8, 8}, Blue: Field{0, 8}}
	BGR888   = Layout{BitsPerPixel: 24, Red: Field{0, 8}, Green: Field{8, 8}, Blue: Field{16, 8}}
	XRGB8888 = Layout{BitsPerPixel: 32, Red: Field{16, 8}, Green: Field{8, 8}, Blue: Field{0, 8}}
	ARGB8888 = Layout{BitsPerPixel: 32, Red: Field{16, 8}, Green: Field{8, 8}, Blue: Field{0, 8}, Alpha: Field{24, 8}}
	XBGR8888 = Layout{BitsPerPixel: 32, Red: Field{0, 8}, Green: Field{8, 8}, Blue: Field{16, 8}}
	ABGR8888 = Layout{BitsPerPixel: 32, Red: Field{0, 8}, Green: Field{8, 8}, Blue: Field{16, 8}, Alpha: Field{24, 8}}
)

var namedLayouts = []struct {
	name   string
	layout Layout
}{
	{"RGB565", RGB565},
	{"BGR565", BGR565},
	{"RGB555", RGB555},
	{"BGR555", BGR555},
	{"RGB888", RGB888},
	{"BGR888", BGR888},
	{"XRGB8888", XRGB8888},
	{"ARGB8888", ARGB8888},
	{"XBGR8888", XBGR8888},
	{"ABGR8888", ABGR8888},
}

// Layouts returns the named layouts.
func Layouts() map[string]Layout {
	m := make(map[string]Layout, len(namedLayouts))
	for _, l := range namedLayouts {
		m[l.name] = l.layout
	}
	return m
}

// BytesPerPixel is the number of bytes a single pixel occupies in memory.
func (l Layout) BytesPerPixel() int {
	return (l.BitsPerPixel + 7) / 8
}

// HasAlpha reports if the layout stores an alpha channel.
func (l Layout) HasAlpha() bool {
	return l.Alpha.Length > 0
}

func (l Layout) bigEndian() bool {
	return l.Order == binary.ByteOrder(binary.BigEndian)
}

func (l Layout) same(o Layout) bool {
	return l.BitsPerPixel == o.BitsPerPixel &&
		l.Red == o.Red && l.Green == o.Green && l.Blue == o.Blue && l.Alpha == o.Alpha &&
		l.bigEndian() == o.bigEndian()
}

// Validate checks that the layout can be packed: 15, 16, 24 or 32 bits per
// pixel, channels of at most 8 bits that fit the pixel and do not overlap.
func (l Layout) Validate() error {
	switch l.BitsPerPixel {
	case 15, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d bits per pixel", ErrLayout, l.BitsPerPixel)
	}
	if l.Red.Length == 0 && l.Green.Length == 0 && l.Blue.Length == 0 {
		return fmt.Errorf("%w: no color channels", ErrLayout)
	}

	var used uint64
	for _, f := range []Field{l.Red, l.Green, l.Blue, l.Alpha} {
		if f.Length == 0 {
			continue
		}
		if f.Length > 8 {
			return fmt.Errorf("%w: %d bit channel", ErrLayout, f.Length)
		}
		if int(f.Offset)+int(f.Length) > l.BytesPerPixel()*8 {
			return fmt.Errorf("%w: channel at bit %d exceeds pixel", ErrLayout, f.Offset)
		}
		bits := uint64(f.mask()) << f.Offset
		if used&bits != 0 {
			return fmt.Errorf("%w: overlapping channels", ErrLayout)
		}
		used |= bits
	}
	return nil
}

// Put stores the pixel value v in the first BytesPerPixel bytes of dst.
func (l Layout) Put(dst []byte, v uint32) {
	switch n := l.BytesPerPixel(); {
	case n == 2 && l.bigEndian():
		binary.BigEndian.PutUint16(dst, uint16(v))
	case n == 2:
		binary.LittleEndian.PutUint16(dst, uint16(v))
	case n == 3 && l.bigEndian():
		_ = dst[2]
		dst[0], dst[1], dst[2] = byte(v>>16), byte(v>>8), byte(v)
	case n == 3:
		_ = dst[2]
		dst[0], dst[1], dst[2] = byte(v), byte(v>>8), byte(v>>16)
	case n == 4 && l.bigEndian():
		binary.BigEndian.PutUint32(dst, v)
	case n == 4:
		binary.LittleEndian.PutUint32(dst, v)
	}
}

// Get loads the pixel value stored in the first BytesPerPixel bytes of src.
func (l Layout) Get(src []byte) uint32 {
	switch n := l.BytesPerPixel(); {
	case n == 2 && l.bigEndian():
		return uint32(binary.BigEndian.Uint16(src))
	case n == 2:
		return uint32(binary.LittleEndian.Uint16(src))
	case n == 3 && l.bigEndian():
		_ = src[2]
		return uint32(src[0])<<16 | uint32(src[1])<<8 | uint32(src[2])
	case n == 3:
		_ = src[2]
		return uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16
	case n == 4 && l.bigEndian():
		return binary.BigEndian.Uint32(src)
	case n == 4:
		return binary.LittleEndian.Uint32(src)
	}
	return 0
}

func (l Layout) String() string {
	for _, named := range namedLayouts {
		if l.same(named.layout) {
			if l.bigEndian() {
				return named.name + "/be"
			}
			return named.name
		}
	}
	return fmt.Sprintf("%dbpp r%d@%d g%d@%d b%d@%d a%d@%d",
		l.BitsPerPixel,
		l.Red.Length, l.Red.Offset,
		l.Green.Length, l.Green.Offset,
		l.Blue.Length, l.Blue.Offset,
		l.Alpha.Length, l.Alpha.Offset)
}

// Geometry describes a packed pixel surface.
type Geometry struct {
	Width, Height int

	// Stride is the number of bytes between vertically adjacent pixels. It may
	// exceed Width * BytesPerPixel.
	Stride int

	Layout Layout
}

// NewGeometry returns a geometry without row padding.
func NewGeometry(w, h int, layout Layout) Geometry {
	return Geometry{
		Width:  w,
		Height: h,
		Stride: w * layout.BytesPerPixel(),
		Layout: layout,
	}
}

// Bounds is the rectangle of addressable pixels.
func (g Geometry) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// PixOffset is the byte offset of pixel (x, y).
func (g Geometry) PixOffset(x, y int) int {
	return y*g.Stride + x*g.Layout.BytesPerPixel()
}

// Size is the number of bytes spanned by all rows.
func (g Geometry) Size() int {
	if g.Height <= 0 {
		return 0
	}
	return (g.Height-1)*g.Stride + g.Width*g.Layout.BytesPerPixel()
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d %s stride %d", g.Width, g.Height, g.Layout, g.Stride)
}
