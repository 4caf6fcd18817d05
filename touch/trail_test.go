package touch

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrail(t *testing.T) {
	var trail Trail
	assert.False(t, trail.Feed(Event{Slot: 0, TrackingID: 1, State: Moving, X: 1, Y: 1}), "not following a contact")

	assert.True(t, trail.Feed(Event{Slot: 1, TrackingID: 4, State: Down, X: 10, Y: 10}))
	assert.True(t, trail.Active())
	assert.False(t, trail.Feed(Event{Slot: 0, TrackingID: 5, State: Down, X: 50, Y: 50}), "other contact")
	assert.True(t, trail.Feed(Event{Slot: 1, TrackingID: 4, State: Moving, X: 12, Y: 11}))
	assert.True(t, trail.Feed(Event{Slot: 1, TrackingID: 4, State: Moving, X: 15, Y: 13}))
	assert.True(t, trail.Feed(Event{Slot: 1, TrackingID: 4, State: Up, X: 15, Y: 13}))

	assert.False(t, trail.Active())
	assert.True(t, trail.Ended())
	assert.Equal(t, []image.Point{{10, 10}, {12, 11}, {15, 13}}, trail.Points())
	assert.Equal(t, image.Pt(10, 10), trail.Start())
	assert.Equal(t, image.Pt(15, 13), trail.Last())
	assert.Equal(t, image.Pt(5, 3), trail.Delta())

	_, tap := trail.Tap(4)
	assert.False(t, tap)
	at, tap := trail.Tap(5)
	assert.True(t, tap)
	assert.Equal(t, image.Pt(10, 10), at)

	// The next contact starts a new trail.
	assert.True(t, trail.Feed(Event{Slot: 0, TrackingID: 6, State: Down, X: 1, Y: 2}))
	assert.Equal(t, []image.Point{{1, 2}}, trail.Points())

	trail.Reset()
	assert.False(t, trail.Ended())
	assert.Empty(t, trail.Points())
}

func TestIsTap(t *testing.T) {
	down := Event{Slot: 2, TrackingID: 9, State: Down, X: 100, Y: 100}
	up := Event{Slot: 2, TrackingID: 9, State: Up, X: 103, Y: 98}
	assert.True(t, IsTap(down, up, 3))
	assert.False(t, IsTap(down, up, 2))

	other := up
	other.TrackingID = 10
	assert.False(t, IsTap(down, other, 10))

	assert.False(t, IsTap(up, down, 10))
}
