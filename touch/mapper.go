package touch

import (
	"math"

	"github.com/BeatGlow/kiosk"
	"github.com/BeatGlow/kiosk/evdev"
)

// Mapper maps device coordinates to screen pixels.
//
// Raw positions are normalized to the axis ranges, rotated and scaled to the
// screen. Positions outside of the axis ranges are clamped to the screen edge.
type Mapper struct {
	X, Y evdev.AbsInfo

	// Screen size in pixels.
	Width, Height int

	// Rotation of the screen relative to the touch panel.
	Rotation kiosk.Rotation
}

// Map a raw position to screen pixels in [0, Width-1] x [0, Height-1].
func (m Mapper) Map(rawX, rawY int32) (x, y int) {
	u, v := normalize(rawX, m.X), normalize(rawY, m.Y)
	switch m.Rotation % 4 {
	case kiosk.Rotate90:
		u, v = 1-v, u
	case kiosk.Rotate180:
		u, v = 1-u, 1-v
	case kiosk.Rotate270:
		u, v = v, 1-u
	}
	return scale(u, m.Width), scale(v, m.Height)
}

func normalize(raw int32, axis evdev.AbsInfo) float64 {
	span := float64(axis.Maximum) - float64(axis.Minimum)
	if span <= 0 {
		return 0
	}
	return min(max((float64(raw)-float64(axis.Minimum))/span, 0), 1)
}

func scale(v float64, size int) int {
	if size <= 1 {
		return 0
	}
	return int(math.Round(v * float64(size-1)))
}
