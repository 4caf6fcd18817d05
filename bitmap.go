package kiosk

import (
	"image"

	"github.com/BeatGlow/kiosk/draw"
	"github.com/BeatGlow/kiosk/pixel"
)

// Bitmap is a row-major block of device independent pixels.
type Bitmap struct {
	Width, Height int
	Pix           []pixel.Color
}

// NewBitmap allocates a transparent bitmap.
func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{
		Width:  w,
		Height: h,
		Pix:    make([]pixel.Color, w*h),
	}
}

// BitmapFromImage converts any image to a bitmap.
func BitmapFromImage(img image.Image) *Bitmap {
	var (
		b    = img.Bounds()
		nrgb = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		bm   = NewBitmap(b.Dx(), b.Dy())
	)
	draw.Draw(nrgb, nrgb.Bounds(), img, b.Min, draw.Src)
	for i := range bm.Pix {
		p := nrgb.Pix[i*4 : i*4+4 : i*4+4]
		bm.Pix[i] = pixel.Color{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	return bm
}

// At returns the pixel at (x, y), transparent if it is out of bounds.
func (b *Bitmap) At(x, y int) pixel.Color {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return pixel.Transparent
	}
	return b.Pix[y*b.Width+x]
}

// Set the pixel at (x, y).
func (b *Bitmap) Set(x, y int, c pixel.Color) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = c
}
