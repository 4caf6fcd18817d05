// Package framebuffer provides access to the operating system's native framebuffer
//
// This requires framebuffer device support in the operating system. The framebuffer
// can be opened with the [Open] call, which maps the visible screen into memory.
// Pixels are exchanged as raw packed rows in the device [pixel.Layout] using
// [Device.WriteRegion] and [Device.ReadRegion]; regions are clipped to the screen.
//
// A [Memory] framebuffer implements the same operations on a plain byte slice.
package framebuffer

import (
	"errors"
	"image"
	"log"
	"os"

	"github.com/BeatGlow/kiosk/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("KIOSK_DEBUG") != ""
}

// Errors.
var (
	ErrNotFound          = errors.New("framebuffer: device not found")
	ErrPermissionDenied  = errors.New("framebuffer: permission denied")
	ErrUnsupportedFormat = errors.New("framebuffer: unsupported format")
	ErrShortBuffer       = errors.New("framebuffer: buffer too short for region")
	ErrClosed            = errors.New("framebuffer: closed")
)

// region implements clipped raw row transfers over a packed pixel buffer.
type region struct {
	geom pixel.Geometry
	pix  []byte
	base int
}

// Geometry of the visible screen.
func (r *region) Geometry() pixel.Geometry {
	return r.geom
}

// WriteRegion copies a w x h block of packed pixels with rows of w pixels to
// (x, y). Parts of the block outside of the screen are skipped.
func (r *region) WriteRegion(x, y, w, h int, raw []byte) error {
	return r.transfer(x, y, w, h, raw, true)
}

// ReadRegion is the inverse of WriteRegion. Bytes of raw that correspond to
// pixels outside of the screen are left untouched.
func (r *region) ReadRegion(x, y, w, h int, raw []byte) error {
	return r.transfer(x, y, w, h, raw, false)
}

func (r *region) transfer(x, y, w, h int, raw []byte, write bool) error {
	if r.pix == nil {
		return ErrClosed
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	bpp := r.geom.Layout.BytesPerPixel()
	if len(raw) < w*h*bpp {
		return ErrShortBuffer
	}

	clip := image.Rect(x, y, x+w, y+h).Intersect(r.geom.Bounds())
	if clip.Empty() {
		return nil
	}

	var (
		stride = w * bpp
		n      = clip.Dx() * bpp
	)
	for py := clip.Min.Y; py < clip.Max.Y; py++ {
		src := (py-y)*stride + (clip.Min.X-x)*bpp
		dst := r.base + r.geom.PixOffset(clip.Min.X, py)
		if write {
			copy(r.pix[dst:dst+n], raw[src:src+n])
		} else {
			copy(raw[src:src+n], r.pix[dst:dst+n])
		}
	}
	return nil
}

// Memory is a framebuffer backed by process memory.
type Memory struct {
	region
}

// NewMemory allocates a framebuffer; the layout of g must be valid.
func NewMemory(g pixel.Geometry) (*Memory, error) {
	if err := g.Layout.Validate(); err != nil {
		return nil, errors.Join(ErrUnsupportedFormat, err)
	}
	if g.Width < 0 || g.Height < 0 || g.Stride < g.Width*g.Layout.BytesPerPixel() {
		return nil, ErrUnsupportedFormat
	}
	return &Memory{
		region: region{
			geom: g,
			pix:  make([]byte, g.Size()),
		},
	}, nil
}

// Image returns an image that shares the framebuffer memory.
func (m *Memory) Image() *pixel.Packed {
	return pixel.NewPackedFrom(m.geom, m.pix)
}

// Bytes returns the framebuffer memory.
func (m *Memory) Bytes() []byte {
	return m.pix
}

func debugf(format string, args ...any) {
	if debug {
		log.Printf("framebuffer: "+format, args...)
	}
}
