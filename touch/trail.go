package touch

import "image"

// Trail collects the positions of a single contact, from the moment it goes
// down until it is lifted. It is used for dragging and drawing strokes.
type Trail struct {
	slot   int
	id     int32
	points []image.Point
	active bool
}

// Feed an event and report if it belongs to the followed contact. An idle or
// ended trail starts following the next contact that goes down.
func (t *Trail) Feed(e Event) bool {
	p := image.Pt(e.X, e.Y)
	if !t.active {
		if e.State != Down {
			return false
		}
		t.slot, t.id, t.active = e.Slot, e.TrackingID, true
		t.points = append(t.points[:0], p)
		return true
	}
	if e.Slot != t.slot || e.TrackingID != t.id {
		return false
	}

	switch e.State {
	case Down:
		// Same id reused for a new contact.
		t.points = append(t.points[:0], p)
	case Up:
		t.active = false
		fallthrough
	default:
		if p != t.Last() {
			t.points = append(t.points, p)
		}
	}
	return true
}

// Active reports if the followed contact is down.
func (t *Trail) Active() bool {
	return t.active
}

// Ended reports if the followed contact has been lifted.
func (t *Trail) Ended() bool {
	return !t.active && len(t.points) > 0
}

// Points returns the positions of the contact, oldest first.
func (t *Trail) Points() []image.Point {
	return t.points
}

// Start returns the position the contact went down at.
func (t *Trail) Start() image.Point {
	if len(t.points) == 0 {
		return image.Point{}
	}
	return t.points[0]
}

// Last returns the most recent position.
func (t *Trail) Last() image.Point {
	if len(t.points) == 0 {
		return image.Point{}
	}
	return t.points[len(t.points)-1]
}

// Delta is the offset of the most recent position from the start.
func (t *Trail) Delta() image.Point {
	return t.Last().Sub(t.Start())
}

// Tap reports if the ended contact never strayed further than slop pixels
// from where it went down.
func (t *Trail) Tap(slop int) (image.Point, bool) {
	if !t.Ended() {
		return image.Point{}, false
	}
	start := t.Start()
	for _, p := range t.points {
		if !within(p.Sub(start), slop) {
			return image.Point{}, false
		}
	}
	return start, true
}

// Reset forgets the followed contact.
func (t *Trail) Reset() {
	t.points = t.points[:0]
	t.active = false
}

// IsTap reports if down and up are the start and end of the same contact and
// the contact was lifted within slop pixels of where it went down.
func IsTap(down, up Event, slop int) bool {
	return down.State == Down && up.State == Up &&
		down.Slot == up.Slot && down.TrackingID == up.TrackingID &&
		within(image.Pt(up.X-down.X, up.Y-down.Y), slop)
}

func within(d image.Point, slop int) bool {
	return d.X >= -slop && d.X <= slop && d.Y >= -slop && d.Y <= slop
}
