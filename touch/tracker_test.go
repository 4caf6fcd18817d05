package touch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/kiosk/evdev"
)

func abs(code uint16, v int32) evdev.Event {
	return evdev.Event{Type: evdev.EvAbs, Code: code, Value: v}
}

func key(code uint16, v int32) evdev.Event {
	return evdev.Event{Type: evdev.EvKey, Code: code, Value: v}
}

func syn(code uint16) evdev.Event {
	return evdev.Event{Type: evdev.EvSyn, Code: code}
}

var report = syn(evdev.SynReport)

// feed returns the events emitted by the packets in events. Events must only
// be emitted at packet boundaries.
func feed(t *testing.T, tr *Tracker, events ...evdev.Event) []Event {
	t.Helper()
	var out []Event
	for _, ev := range events {
		emitted := tr.Feed(ev)
		if !ev.IsSync() {
			require.Nil(t, emitted, "event emitted before the end of the packet at %s", ev)
		}
		out = append(out, emitted...)
	}
	return out
}

func states(events []Event) []State {
	out := make([]State, len(events))
	for i, e := range events {
		out[i] = e.State
	}
	return out
}

func TestTrackerLifecycle(t *testing.T) {
	tr := NewTracker(nil)

	down := feed(t, tr,
		abs(evdev.AbsMTSlot, 0),
		abs(evdev.AbsMTTrackingID, 7),
		abs(evdev.AbsMTPositionX, 100),
		abs(evdev.AbsMTPositionY, 200),
		key(evdev.BtnTouch, 1),
		report,
	)
	require.Len(t, down, 1)
	assert.Equal(t, Event{Slot: 0, TrackingID: 7, State: Down, X: 100, Y: 200, RawX: 100, RawY: 200}, down[0])

	var moves []Event
	for i := int32(1); i <= 3; i++ {
		moves = append(moves, feed(t, tr,
			abs(evdev.AbsMTPositionX, 100+i),
			report,
		)...)
	}
	assert.Equal(t, []State{Moving, Moving, Moving}, states(moves))
	assert.Equal(t, 103, moves[2].X)
	assert.Equal(t, 200, moves[2].Y)

	assert.Empty(t, feed(t, tr, report), "empty packet")
	assert.Empty(t, feed(t, tr, abs(evdev.AbsMTPositionX, 103), report), "unchanged position")

	up := feed(t, tr,
		abs(evdev.AbsMTTrackingID, -1),
		key(evdev.BtnTouch, 0),
		report,
	)
	require.Len(t, up, 1)
	assert.Equal(t, Up, up[0].State)
	assert.Equal(t, int32(7), up[0].TrackingID)
	assert.Equal(t, 103, up[0].X)

	slots := tr.Slots()
	require.Len(t, slots, 1)
	assert.Equal(t, Released, slots[0].State)
	assert.False(t, slots[0].Active())

	// The slot is reused for the next contact.
	again := feed(t, tr,
		abs(evdev.AbsMTTrackingID, 8),
		abs(evdev.AbsMTPositionX, 5),
		abs(evdev.AbsMTPositionY, 6),
		report,
	)
	require.Len(t, again, 1)
	assert.Equal(t, Down, again[0].State)
	assert.Equal(t, int32(8), again[0].TrackingID)
	assert.Equal(t, 5, again[0].X)
}

func TestTrackerPacket(t *testing.T) {
	t.Run("atomic", func(it *testing.T) {
		tr := NewTracker(nil)
		events := feed(it, tr,
			abs(evdev.AbsMTSlot, 2),
			abs(evdev.AbsMTTrackingID, 20),
			abs(evdev.AbsMTPositionX, 20),
			abs(evdev.AbsMTPositionY, 21),
			abs(evdev.AbsMTSlot, 0),
			abs(evdev.AbsMTTrackingID, 10),
			abs(evdev.AbsMTPositionX, 10),
			abs(evdev.AbsMTPositionY, 11),
			abs(evdev.AbsMTPressure, 50),
			report,
		)
		require.Len(it, events, 2)
		assert.Equal(it, 0, events[0].Slot, "increasing slot order")
		assert.Equal(it, int32(50), events[0].Pressure)
		assert.Equal(it, 2, events[1].Slot)
		assert.Equal(it, 21, events[1].Y)
	})

	t.Run("x and y together", func(it *testing.T) {
		tr := NewTracker(nil)
		feed(it, tr, abs(evdev.AbsMTTrackingID, 1), abs(evdev.AbsMTPositionX, 1), abs(evdev.AbsMTPositionY, 1), report)
		events := feed(it, tr, abs(evdev.AbsMTPositionX, 9), abs(evdev.AbsMTPositionY, 9), report)
		require.Len(it, events, 1, "one event per slot")
		assert.Equal(it, 9, events[0].X)
		assert.Equal(it, 9, events[0].Y)
	})

	t.Run("last selected slot", func(it *testing.T) {
		tr := NewTracker(nil)
		feed(it, tr,
			abs(evdev.AbsMTSlot, 1), abs(evdev.AbsMTTrackingID, 3), abs(evdev.AbsMTPositionX, 1), report,
		)
		events := feed(it, tr, abs(evdev.AbsMTPositionX, 2), report)
		require.Len(it, events, 1)
		assert.Equal(it, 1, events[0].Slot)
	})

	t.Run("slot out of range", func(it *testing.T) {
		tr := NewTracker(nil)
		events := feed(it, tr,
			abs(evdev.AbsMTSlot, MaxSlots), abs(evdev.AbsMTTrackingID, 3), abs(evdev.AbsMTPositionX, 1), report,
		)
		assert.Empty(it, events)
	})
}

func TestTrackerRelaxed(t *testing.T) {
	t.Run("implicit down", func(it *testing.T) {
		tr := NewTracker(nil)
		events := feed(it, tr, abs(evdev.AbsMTPositionX, 4), abs(evdev.AbsMTPositionY, 5), report)
		require.Len(it, events, 1)
		assert.Equal(it, Down, events[0].State)
		assert.Greater(it, events[0].TrackingID, int32(0xffff))

		events = feed(it, tr, abs(evdev.AbsMTPositionX, 6), report)
		require.Len(it, events, 1)
		assert.Equal(it, Moving, events[0].State)
	})

	t.Run("pressure only", func(it *testing.T) {
		tr := NewTracker(nil)
		assert.Empty(it, feed(it, tr, abs(evdev.AbsMTPressure, 4), report))
	})

	t.Run("new tracking id", func(it *testing.T) {
		tr := NewTracker(nil)
		feed(it, tr, abs(evdev.AbsMTTrackingID, 1), abs(evdev.AbsMTPositionX, 1), report)
		events := feed(it, tr, abs(evdev.AbsMTTrackingID, 2), abs(evdev.AbsMTPositionX, 50), report)
		require.Len(it, events, 1)
		assert.Equal(it, Down, events[0].State)
		assert.Equal(it, int32(2), events[0].TrackingID)
	})

	t.Run("release of released slot", func(it *testing.T) {
		tr := NewTracker(nil)
		assert.Empty(it, feed(it, tr, abs(evdev.AbsMTTrackingID, -1), report))
	})
}

func TestTrackerDropped(t *testing.T) {
	tr := NewTracker(nil)
	feed(t, tr, abs(evdev.AbsMTTrackingID, 1), abs(evdev.AbsMTPositionX, 1), report)

	events := feed(t, tr,
		abs(evdev.AbsMTPositionX, 2),
		syn(evdev.SynDropped),
		abs(evdev.AbsMTPositionX, 3),
		abs(evdev.AbsMTTrackingID, -1),
		report,
	)
	assert.Empty(t, events)
	assert.Equal(t, int32(1), tr.Slots()[0].RawX)
	assert.True(t, tr.Slots()[0].Active())

	events = feed(t, tr, abs(evdev.AbsMTPositionX, 4), report)
	require.Len(t, events, 1)
	assert.Equal(t, Moving, events[0].State)
	assert.Equal(t, 4, events[0].X)
}

func TestTrackerTypeA(t *testing.T) {
	tr := NewTracker(nil)
	mt := syn(evdev.SynMTReport)

	events := feed(t, tr,
		abs(evdev.AbsMTPositionX, 10), abs(evdev.AbsMTPositionY, 11), mt,
		abs(evdev.AbsMTPositionX, 20), abs(evdev.AbsMTPositionY, 21), mt,
		report,
	)
	assert.Equal(t, []State{Down, Down}, states(events))
	assert.Equal(t, 0, events[0].Slot)
	assert.Equal(t, 1, events[1].Slot)
	assert.Equal(t, 20, events[1].X)

	events = feed(t, tr,
		abs(evdev.AbsMTPositionX, 12), abs(evdev.AbsMTPositionY, 11), mt,
		report,
	)
	assert.Equal(t, []State{Moving, Up}, states(events))
	assert.Equal(t, 1, events[1].Slot)

	events = feed(t, tr, mt, report)
	assert.Equal(t, []State{Up}, states(events))
	assert.Empty(t, feed(t, tr, report))
}

func TestTrackerSingleTouch(t *testing.T) {
	t.Run("button", func(it *testing.T) {
		tr := NewTracker(nil)
		events := feed(it, tr, abs(evdev.AbsX, 300), abs(evdev.AbsY, 400), key(evdev.BtnTouch, 1), report)
		require.Len(it, events, 1)
		assert.Equal(it, Down, events[0].State)
		assert.Equal(it, 300, events[0].X)

		events = feed(it, tr, abs(evdev.AbsY, 410), report)
		assert.Equal(it, []State{Moving}, states(events))

		events = feed(it, tr, key(evdev.BtnTouch, 0), report)
		assert.Equal(it, []State{Up}, states(events))
		assert.Equal(it, 410, events[0].Y)

		assert.Empty(it, feed(it, tr, key(evdev.BtnTouch, 0), report))
	})

	t.Run("ignored with multi touch", func(it *testing.T) {
		tr := NewTracker(nil)
		events := feed(it, tr,
			abs(evdev.AbsMTTrackingID, 5), abs(evdev.AbsMTPositionX, 1), abs(evdev.AbsMTPositionY, 1),
			abs(evdev.AbsX, 1), abs(evdev.AbsY, 1), key(evdev.BtnTouch, 1),
			report,
		)
		require.Len(it, events, 1)
		assert.Equal(it, int32(5), events[0].TrackingID)

		assert.Empty(it, feed(it, tr, abs(evdev.AbsX, 2), report))
	})
}

func TestTrackerMapped(t *testing.T) {
	m := &Mapper{
		X:      evdev.AbsInfo{Maximum: 1000},
		Y:      evdev.AbsInfo{Maximum: 1000},
		Width:  101,
		Height: 51,
	}
	tr := NewTracker(m)
	events := feed(t, tr, abs(evdev.AbsMTTrackingID, 1), abs(evdev.AbsMTPositionX, 500), abs(evdev.AbsMTPositionY, 1000), report)
	require.Len(t, events, 1)
	assert.Equal(t, 50, events[0].X)
	assert.Equal(t, 50, events[0].Y)
	assert.Equal(t, int32(500), events[0].RawX)
}
