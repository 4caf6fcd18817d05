package touch

import (
	"math"
	"time"

	"github.com/BeatGlow/kiosk/evdev"
)

// MaxSlots is the number of contact slots a Tracker follows.
const MaxSlots = 64

type field uint8

const (
	hasID field = 1 << iota
	hasX
	hasY
	hasPressure
	hasMajor
)

// delta collects the changes to a slot until the end of a packet.
type delta struct {
	set                       field
	id, x, y, pressure, major int32
}

func (d *delta) put(f field, v int32) {
	d.set |= f
	switch f {
	case hasID:
		d.id = v
	case hasX:
		d.x = v
	case hasY:
		d.y = v
	case hasPressure:
		d.pressure = v
	case hasMajor:
		d.major = v
	}
}

func (d delta) has(f field) bool {
	return d.set&f != 0
}

const (
	touchUnset int8 = iota
	touchUp
	touchDown
)

// Tracker follows contacts through a stream of raw input events.
//
// Changes are collected per slot and applied together at the end of each
// packet (SYN_REPORT). The zero value is ready to use and reports positions
// in device coordinates.
type Tracker struct {
	mapper   *Mapper
	slots    []Slot
	pending  []delta
	current  int
	dropped  bool
	multi    bool
	typeA    bool
	contacts []delta
	single   delta
	touch    int8
	nextID   int32
}

// NewTracker returns a tracker that maps positions with m, which may be nil.
func NewTracker(m *Mapper) *Tracker {
	return &Tracker{mapper: m}
}

// Feed the next raw event. At the end of a packet the events of all slots that
// changed are returned in increasing slot order; nil is returned otherwise.
func (t *Tracker) Feed(ev evdev.Event) []Event {
	if ev.Type == evdev.EvSyn {
		switch ev.Code {
		case evdev.SynReport:
			if t.dropped {
				// Resynchronized, the next packet starts clean.
				t.dropped = false
				t.reset()
				return nil
			}
			return t.commit(ev.Time)
		case evdev.SynDropped:
			debugf("events dropped, discarding packet")
			t.dropped = true
			t.reset()
		case evdev.SynMTReport:
			if !t.dropped {
				t.multi, t.typeA = true, true
				t.endContact()
			}
		}
		return nil
	}
	if t.dropped {
		return nil
	}

	switch ev.Type {
	case evdev.EvAbs:
		t.abs(ev.Code, ev.Value)
	case evdev.EvKey:
		if ev.Code == evdev.BtnTouch {
			if ev.Value != 0 {
				t.touch = touchDown
			} else {
				t.touch = touchUp
			}
		}
	}
	return nil
}

// Slots returns a snapshot of all slots seen so far.
func (t *Tracker) Slots() []Slot {
	return append([]Slot(nil), t.slots...)
}

func (t *Tracker) abs(code uint16, v int32) {
	var f field
	switch code {
	case evdev.AbsMTSlot:
		t.multi = true
		t.current = int(v)
		return
	case evdev.AbsMTTrackingID:
		f = hasID
	case evdev.AbsMTPositionX:
		f = hasX
	case evdev.AbsMTPositionY:
		f = hasY
	case evdev.AbsMTPressure:
		f = hasPressure
	case evdev.AbsMTTouchMajor:
		f = hasMajor
	case evdev.AbsX:
		t.single.put(hasX, v)
		return
	case evdev.AbsY:
		t.single.put(hasY, v)
		return
	case evdev.AbsPressure:
		t.single.put(hasPressure, v)
		return
	default:
		return
	}

	t.multi = true
	if d := t.delta(t.current); d != nil {
		d.put(f, v)
	}
}

// delta returns the pending changes of slot i, nil if i is out of range.
func (t *Tracker) delta(i int) *delta {
	if i < 0 || i >= MaxSlots {
		debugf("slot %d out of range", i)
		return nil
	}
	t.grow(i)
	return &t.pending[i]
}

func (t *Tracker) grow(i int) {
	for n := len(t.slots); n <= i; n++ {
		t.slots = append(t.slots, Slot{Index: n, TrackingID: -1})
		t.pending = append(t.pending, delta{})
	}
}

// endContact closes an anonymous type A contact.
func (t *Tracker) endContact() {
	d := t.delta(t.current)
	if d == nil || d.set == 0 {
		return
	}
	t.contacts = append(t.contacts, *d)
	*d = delta{}
}

func (t *Tracker) reset() {
	for i := range t.pending {
		t.pending[i] = delta{}
	}
	t.contacts = t.contacts[:0]
	t.single = delta{}
	t.touch = touchUnset
}

func (t *Tracker) commit(tm time.Time) []Event {
	var out []Event
	switch {
	case t.typeA:
		out = t.commitContacts(out, tm)
	case t.multi:
		for i := range t.pending {
			if t.pending[i].set != 0 {
				out = t.apply(out, i, t.pending[i], tm)
			}
		}
	default:
		out = t.commitSingle(out, tm)
	}
	t.reset()
	return out
}

// commitContacts assigns the anonymous contacts of a type A packet to slots
// in report order. Active slots beyond the last contact are released.
func (t *Tracker) commitContacts(out []Event, tm time.Time) []Event {
	n := min(len(t.contacts), MaxSlots)
	if n > 0 {
		t.grow(n - 1)
	}
	for i := 0; i < n; i++ {
		out = t.apply(out, i, t.contacts[i], tm)
	}
	for i := n; i < len(t.slots); i++ {
		if t.slots[i].Active() {
			out = t.apply(out, i, delta{set: hasID, id: -1}, tm)
		}
	}
	return out
}

// commitSingle applies a single-touch packet to slot 0.
func (t *Tracker) commitSingle(out []Event, tm time.Time) []Event {
	t.grow(0)
	var (
		d      = t.single
		active = t.slots[0].Active()
	)
	switch {
	case t.touch == touchUp && active:
		d.put(hasID, -1)
	case t.touch == touchUp:
		return out
	case t.touch == touchDown && !active:
		d.put(hasID, t.syntheticID())
	}
	if d.set == 0 {
		return out
	}
	return t.apply(out, 0, d, tm)
}

// apply the changes d to slot i.
func (t *Tracker) apply(out []Event, i int, d delta, tm time.Time) []Event {
	s := &t.slots[i]
	if d.has(hasID) {
		if d.id < 0 {
			if !s.Active() {
				return out
			}
			t.update(s, d)
			out = append(out, t.event(s, Up, tm))
			s.TrackingID, s.State = -1, Released
			return out
		}
		if !s.Active() || d.id != s.TrackingID {
			t.update(s, d)
			s.TrackingID, s.State = d.id, Down
			return append(out, t.event(s, Down, tm))
		}
	}

	if !s.Active() {
		t.update(s, d)
		if !d.has(hasX) && !d.has(hasY) {
			return out
		}
		// A position without a contact; some drivers omit the tracking id.
		s.TrackingID, s.State = t.syntheticID(), Down
		return append(out, t.event(s, Down, tm))
	}

	if !t.update(s, d) {
		return out
	}
	s.State = Moving
	return append(out, t.event(s, Moving, tm))
}

// update applies the values of d and reports if the position changed.
func (t *Tracker) update(s *Slot, d delta) (moved bool) {
	if d.has(hasX) && d.x != s.RawX {
		s.RawX, moved = d.x, true
	}
	if d.has(hasY) && d.y != s.RawY {
		s.RawY, moved = d.y, true
	}
	if d.has(hasPressure) {
		s.Pressure = d.pressure
	}
	if d.has(hasMajor) {
		s.TouchMajor = d.major
	}
	if t.mapper != nil {
		s.X, s.Y = t.mapper.Map(s.RawX, s.RawY)
	} else {
		s.X, s.Y = int(s.RawX), int(s.RawY)
	}
	return
}

func (t *Tracker) event(s *Slot, state State, tm time.Time) Event {
	return Event{
		Slot:       s.Index,
		TrackingID: s.TrackingID,
		State:      state,
		X:          s.X,
		Y:          s.Y,
		RawX:       s.RawX,
		RawY:       s.RawY,
		Pressure:   s.Pressure,
		TouchMajor: s.TouchMajor,
		Time:       tm,
	}
}

// syntheticID allocates a tracking id for contacts the device did not assign
// one to, counting down from the top of the range the kernel never uses.
func (t *Tracker) syntheticID() int32 {
	if t.nextID <= math.MaxUint16 {
		t.nextID = math.MaxInt32
	}
	id := t.nextID
	t.nextID--
	return id
}
