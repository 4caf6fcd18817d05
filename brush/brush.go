// Package brush provides color sources for drawing primitives.
//
// A [Source] yields one color per plotted pixel. A solid source always yields
// the same color; a cycling source walks a (possibly infinite) color sequence,
// such as a palette or a rainbow.
package brush

import (
	"errors"
	"iter"

	"github.com/BeatGlow/kiosk/pixel"
)

// ErrNotRestartable is returned when restarting a cycling source. Its sequence
// may be stateful, construct a new source to replay it.
var ErrNotRestartable = errors.New("brush: source can not be restarted")

// Source of colors. The zero value is a solid transparent source, which draws
// nothing.
//
// Copies of a cycling source share their position in the sequence.
type Source struct {
	color  pixel.Color
	cursor *cursor
}

type cursor struct {
	seq  iter.Seq[pixel.Color]
	next func() (pixel.Color, bool)
	stop func()
	last pixel.Color
	done bool
}

// Solid yields c for every pixel.
func Solid(c pixel.Color) Source {
	return Source{color: c}
}

// Cycle yields the colors of seq in order. Once a finite sequence is exhausted,
// its last color repeats; an empty sequence yields transparent.
func Cycle(seq iter.Seq[pixel.Color]) Source {
	return Source{cursor: &cursor{seq: seq}}
}

// Palette cycles through colors, wrapping around after the last one.
func Palette(colors ...pixel.Color) Source {
	switch len(colors) {
	case 0:
		return Solid(pixel.Transparent)
	case 1:
		return Solid(colors[0])
	}
	colors = append([]pixel.Color(nil), colors...)
	return Cycle(func(yield func(pixel.Color) bool) {
		for i := 0; ; i = (i + 1) % len(colors) {
			if !yield(colors[i]) {
				return
			}
		}
	})
}

// Rainbow walks the hue circle, advancing one step per pixel.
func Rainbow() Source {
	return Cycle(func(yield func(pixel.Color) bool) {
		for hue := uint8(1); ; hue++ {
			if !yield(Hue(hue)) {
				return
			}
		}
	})
}

// Hue returns the fully saturated color at position hue on a 256 step hue
// circle.
func Hue(hue uint8) pixel.Color {
	var (
		h      = int(hue) * 192 / 256
		sector = h / 32
		f      = (h % 32) * 8
		q      = uint8(128 * (256 - 255*f/256) / 256)
		t      = uint8(128 * (256 - 255*(255-f)/256) / 256)
	)
	switch sector {
	case 0:
		return pixel.RGB(0xff, t, 0)
	case 1:
		return pixel.RGB(q, 0xff, 0)
	case 2:
		return pixel.RGB(0, 0xff, t)
	case 3:
		return pixel.RGB(0, q, 0xff)
	case 4:
		return pixel.RGB(t, 0, 0xff)
	default:
		return pixel.RGB(0xff, 0, q)
	}
}

// Next color.
func (s Source) Next() pixel.Color {
	c := s.cursor
	if c == nil {
		return s.color
	}
	if c.done {
		return c.last
	}
	if c.next == nil {
		c.next, c.stop = iter.Pull(c.seq)
	}
	v, ok := c.next()
	if !ok {
		c.done = true
		return c.last
	}
	c.last = v
	return v
}

// Uniform returns the color of a solid source.
func (s Source) Uniform() (pixel.Color, bool) {
	if s.cursor != nil {
		return pixel.Color{}, false
	}
	return s.color, true
}

// Restart positions the source at its first color. Solid sources have no
// position; cycling sources return ErrNotRestartable and keep their position.
func (s Source) Restart() error {
	if s.cursor != nil {
		return ErrNotRestartable
	}
	return nil
}

// Stop releases the resources held by a cycling source. The source yields its
// last color afterwards.
func (s Source) Stop() {
	if c := s.cursor; c != nil {
		c.release()
		c.done = true
	}
}

func (c *cursor) release() {
	if c.stop != nil {
		c.stop()
		c.next, c.stop = nil, nil
	}
}
