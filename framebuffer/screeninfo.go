package framebuffer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/BeatGlow/kiosk/pixel"
)

// From <linux/fb.h>
const (
	fbTypePackedPixels  = 0
	fbVisualTrueColor   = 2
	fbVisualDirectColor = 4
)

const (
	// Size of struct fb_var_screeninfo, all members are 32 bits.
	varScreenInfoSize = 160

	// Buffer size for struct fb_fix_screeninfo, which is 68 bytes on 32-bit
	// and 80 bytes on 64-bit hosts.
	fixScreenInfoSize = 128

	// Size of a C long.
	longSize = strconv.IntSize / 8
)

// fixScreenInfo contains the fixed properties of a framebuffer.
type fixScreenInfo struct {
	ID         string
	SmemLen    uint32
	Type       uint32
	Visual     uint32
	LineLength uint32
}

// decodeFixScreenInfo decodes struct fb_fix_screeninfo with the given size of a C long.
func decodeFixScreenInfo(b []byte, long int, order binary.ByteOrder) (fixScreenInfo, error) {
	// smem_len follows the id and the unsigned long smem_start, line_length
	// follows four u32 and three (padded) u16 members.
	var (
		smem       = 16 + long
		lineLength = smem + 4*4 + 4*2
	)
	if len(b) < lineLength+4 {
		return fixScreenInfo{}, fmt.Errorf("%w: short fix screen info (%d bytes)", ErrUnsupportedFormat, len(b))
	}
	id := b[:16]
	if i := bytes.IndexByte(id, 0); i >= 0 {
		id = id[:i]
	}
	return fixScreenInfo{
		ID:         string(id),
		SmemLen:    order.Uint32(b[smem:]),
		Type:       order.Uint32(b[smem+4:]),
		Visual:     order.Uint32(b[smem+12:]),
		LineLength: order.Uint32(b[lineLength:]),
	}, nil
}

type bitField struct {
	Offset, Length, MSBRight uint32
}

// varScreenInfo contains the (changeable) video mode of a framebuffer.
type varScreenInfo struct {
	Xres, Yres               uint32
	XresVirtual, YresVirtual uint32
	Xoffset, Yoffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp bitField
}

func decodeVarScreenInfo(b []byte, order binary.ByteOrder) (varScreenInfo, error) {
	if len(b) < varScreenInfoSize {
		return varScreenInfo{}, fmt.Errorf("%w: short var screen info (%d bytes)", ErrUnsupportedFormat, len(b))
	}
	u32 := func(off int) uint32 { return order.Uint32(b[off:]) }
	field := func(off int) bitField { return bitField{u32(off), u32(off + 4), u32(off + 8)} }
	return varScreenInfo{
		Xres:         u32(0),
		Yres:         u32(4),
		XresVirtual:  u32(8),
		YresVirtual:  u32(12),
		Xoffset:      u32(16),
		Yoffset:      u32(20),
		BitsPerPixel: u32(24),
		Grayscale:    u32(28),
		Red:          field(32),
		Green:        field(44),
		Blue:         field(56),
		Transp:       field(68),
	}, nil
}

// geometry derives the visible screen geometry and its offset in the mapped
// memory from the screen info.
func geometry(fix fixScreenInfo, info varScreenInfo, order binary.ByteOrder) (pixel.Geometry, int, error) {
	if fix.Type != fbTypePackedPixels {
		return pixel.Geometry{}, 0, fmt.Errorf("%w: framebuffer type %d", ErrUnsupportedFormat, fix.Type)
	}
	if fix.Visual != fbVisualTrueColor && fix.Visual != fbVisualDirectColor {
		return pixel.Geometry{}, 0, fmt.Errorf("%w: visual %d", ErrUnsupportedFormat, fix.Visual)
	}
	if info.Grayscale != 0 {
		return pixel.Geometry{}, 0, fmt.Errorf("%w: grayscale", ErrUnsupportedFormat)
	}

	var fields []pixel.Field
	for _, f := range []bitField{info.Red, info.Green, info.Blue, info.Transp} {
		if f.MSBRight != 0 || f.Offset > 31 || f.Length > 32 {
			return pixel.Geometry{}, 0, fmt.Errorf("%w: channel %+v", ErrUnsupportedFormat, f)
		}
		fields = append(fields, pixel.Field{Offset: uint8(f.Offset), Length: uint8(f.Length)})
	}
	layout := pixel.Layout{
		BitsPerPixel: int(info.BitsPerPixel),
		Red:          fields[0],
		Green:        fields[1],
		Blue:         fields[2],
		Alpha:        fields[3],
	}
	if order == binary.ByteOrder(binary.BigEndian) {
		layout.Order = order
	}
	if err := layout.Validate(); err != nil {
		return pixel.Geometry{}, 0, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	bpp := layout.BytesPerPixel()
	g := pixel.Geometry{
		Width:  int(info.Xres),
		Height: int(info.Yres),
		Stride: int(fix.LineLength),
		Layout: layout,
	}
	if g.Stride == 0 {
		g.Stride = int(info.XresVirtual) * bpp
	}
	if g.Width == 0 || g.Height == 0 || g.Stride < g.Width*bpp {
		return pixel.Geometry{}, 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, g)
	}

	base := int(info.Yoffset)*g.Stride + int(info.Xoffset)*bpp
	if base+g.Size() > int(fix.SmemLen) {
		return pixel.Geometry{}, 0, fmt.Errorf("%w: %s at offset %d exceeds %d bytes of memory", ErrUnsupportedFormat, g, base, fix.SmemLen)
	}
	return g, base, nil
}

// nativeOrder is the byte order of this host.
func nativeOrder() binary.ByteOrder {
	if binary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 0x0001 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
