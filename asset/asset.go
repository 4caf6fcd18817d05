// Package asset loads image files into bitmaps sized for a screen.
//
// PNG, JPEG, GIF, BMP, TIFF and WebP files are supported. Images are scaled
// with a Lanczos filter.
package asset

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF support
	_ "image/jpeg" // JPEG support
	_ "image/png"  // PNG support
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // BMP support
	_ "golang.org/x/image/tiff" // TIFF support
	_ "golang.org/x/image/webp" // WebP support

	"github.com/BeatGlow/kiosk"
)

// Mode selects how an image is scaled to the target size.
type Mode uint8

// Scaling modes.
const (
	// Fit scales the image down to fit within the target, keeping its aspect
	// ratio. Smaller images are not enlarged.
	Fit Mode = iota

	// Fill scales and crops the image to cover the target exactly, keeping
	// its aspect ratio.
	Fill

	// Stretch scales the image to the target, ignoring its aspect ratio.
	Stretch

	// Original keeps the image size.
	Original
)

func (m Mode) String() string {
	switch m {
	case Fit:
		return "fit"
	case Fill:
		return "fill"
	case Stretch:
		return "stretch"
	case Original:
		return "original"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode parses the name of a scaling mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{Fit, Fill, Stretch, Original} {
		if m.String() == s {
			return m, nil
		}
	}
	return Fit, fmt.Errorf("asset: unknown scaling mode %q", s)
}

// Load decodes the image file at path and scales it to w x h pixels.
// EXIF orientation is applied to JPEG files.
func Load(path string, w, h int, mode Mode) (*kiosk.Bitmap, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("asset: %w", err)
	}
	return Scale(img, w, h, mode), nil
}

// Decode an image from r and scale it to w x h pixels.
func Decode(r io.Reader, w, h int, mode Mode) (*kiosk.Bitmap, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("asset: %w", err)
	}
	return Scale(img, w, h, mode), nil
}

// Scale img to w x h pixels and convert it to a bitmap.
func Scale(img image.Image, w, h int, mode Mode) *kiosk.Bitmap {
	if w > 0 && h > 0 {
		switch mode {
		case Fit:
			img = imaging.Fit(img, w, h, imaging.Lanczos)
		case Fill:
			img = imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
		case Stretch:
			img = imaging.Resize(img, w, h, imaging.Lanczos)
		}
	}
	return kiosk.BitmapFromImage(img)
}
