// Package kiosk renders to framebuffer surfaces for touchscreen kiosk displays.
//
// A [Screen] draws pixels, lines, (rounded) rectangles, bitmaps and text onto
// any [Surface], such as a [framebuffer.Device]. All drawing operations clip to
// the surface: coordinates outside of it are skipped, never an error.
//
// Touch input lives in the evdev and touch packages.
package kiosk

import (
	"errors"
	"os"
	"strings"

	"github.com/BeatGlow/kiosk/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("KIOSK_DEBUG") != ""
}

// Errors.
var (
	ErrBitmapSize  = errors.New("kiosk: bitmap has fewer pixels than its dimensions")
	ErrNoBacklight = errors.New("kiosk: no backlight pin")
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// ParseRotation parses a rotation in degrees or one of its aliases.
func ParseRotation(s string) (Rotation, bool) {
	switch strings.ToLower(s) {
	case "", "no", "none", "0":
		return NoRotation, true
	case "90", "right", "cw":
		return Rotate90, true
	case "180", "flip":
		return Rotate180, true
	case "270", "left", "ccw":
		return Rotate270, true
	default:
		return NoRotation, false
	}
}

// Surface is a packed pixel surface that exchanges raw rows.
//
// Regions are w x h blocks of packed pixels in the surface layout, with rows of
// exactly w pixels. Implementations clip regions to the surface.
type Surface interface {
	// Geometry of the surface.
	Geometry() pixel.Geometry

	// WriteRegion copies raw pixels to the block at (x, y).
	WriteRegion(x, y, w, h int, raw []byte) error

	// ReadRegion copies the block at (x, y) to raw.
	ReadRegion(x, y, w, h int, raw []byte) error
}
