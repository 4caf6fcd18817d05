package brush

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BeatGlow/kiosk/pixel"
)

func TestSolid(t *testing.T) {
	s := Solid(pixel.Red)
	for i := 0; i < 4; i++ {
		assert.Equal(t, pixel.Red, s.Next())
	}
	c, ok := s.Uniform()
	assert.True(t, ok)
	assert.Equal(t, pixel.Red, c)
	assert.NoError(t, s.Restart())
	assert.Equal(t, pixel.Red, s.Next())

	var zero Source
	assert.Equal(t, pixel.Transparent, zero.Next())
}

func TestPalette(t *testing.T) {
	s := Palette(pixel.Red, pixel.Green, pixel.Blue)
	defer s.Stop()

	_, ok := s.Uniform()
	assert.False(t, ok)

	var got []pixel.Color
	for i := 0; i < 7; i++ {
		got = append(got, s.Next())
	}
	assert.Equal(t, []pixel.Color{
		pixel.Red, pixel.Green, pixel.Blue,
		pixel.Red, pixel.Green, pixel.Blue,
		pixel.Red,
	}, got)

	// Copies share the position.
	c := s
	assert.Equal(t, pixel.Green, c.Next())
	assert.Equal(t, pixel.Blue, s.Next())

	assert.ErrorIs(t, s.Restart(), ErrNotRestartable)
	assert.Equal(t, pixel.Red, s.Next(), "a failed restart keeps the position")
}

func TestCycleFinite(t *testing.T) {
	s := Cycle(slices.Values([]pixel.Color{pixel.White, pixel.Black}))
	assert.Equal(t, pixel.White, s.Next())
	assert.Equal(t, pixel.Black, s.Next())
	assert.Equal(t, pixel.Black, s.Next(), "exhausted sequence repeats its last color")

	assert.ErrorIs(t, s.Restart(), ErrNotRestartable)
	assert.Equal(t, pixel.Black, s.Next())

	s.Stop()
	assert.Equal(t, pixel.Black, s.Next())

	empty := Cycle(slices.Values([]pixel.Color(nil)))
	assert.Equal(t, pixel.Transparent, empty.Next())
}

func TestCycleStateful(t *testing.T) {
	var n uint8
	s := Cycle(func(yield func(pixel.Color) bool) {
		for {
			if !yield(pixel.RGB(n, 0, 0)) {
				return
			}
			n++
		}
	})
	defer s.Stop()

	assert.Equal(t, uint8(0), s.Next().R)
	assert.Equal(t, uint8(1), s.Next().R)
	assert.ErrorIs(t, s.Restart(), ErrNotRestartable)
	assert.Equal(t, uint8(2), s.Next().R)

	r := Rainbow()
	defer r.Stop()
	first := r.Next()
	assert.ErrorIs(t, r.Restart(), ErrNotRestartable)
	assert.NotEqual(t, first, r.Next())
}

func TestRainbow(t *testing.T) {
	s := Rainbow()
	defer s.Stop()

	seen := make(map[pixel.Color]bool)
	for i := 0; i < 512; i++ {
		c := s.Next()
		assert.Equal(t, uint8(0xff), c.A)
		seen[c] = true
	}
	assert.Greater(t, len(seen), 100)
}

func TestHue(t *testing.T) {
	assert.Equal(t, pixel.RGB(0xff, 1, 0), Hue(0), "sector 0 starts at red")
	for h := 0; h < 256; h++ {
		c := Hue(uint8(h))
		assert.True(t, c.R == 0xff || c.G == 0xff || c.B == 0xff, "hue %d has no saturated channel: %+v", h, c)
	}
}
