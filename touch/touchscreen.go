package touch

import (
	"fmt"
	"time"

	"github.com/BeatGlow/kiosk"
	"github.com/BeatGlow/kiosk/evdev"
	"github.com/BeatGlow/kiosk/pixel"
)

// EventSource is a stream of raw input events, such as an [evdev.Device].
type EventSource interface {
	// ReadNext blocks until the next event is available.
	ReadNext() (evdev.Event, error)

	// Wait until an event can be read or the timeout expires.
	Wait(timeout time.Duration) (bool, error)

	// Buffered returns the number of events that can be read without
	// blocking.
	Buffered() int

	Close() error
}

// Touchscreen reports the contacts of a touch device in screen pixels.
//
// Poll and Pump must not be used at the same time. Close may be called from
// any goroutine and ends a running Pump.
type Touchscreen struct {
	src     EventSource
	tracker *Tracker
	mapper  Mapper
}

// Open the event device at path for a screen of geometry g. The axis ranges
// are taken from the multi-touch position axes if the device has them, and
// from the single-touch axes otherwise.
func Open(path string, g pixel.Geometry, r kiosk.Rotation) (*Touchscreen, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, err
	}

	m, err := deviceMapper(dev, g, r)
	if err != nil {
		_ = dev.Close()
		return nil, err
	}
	debugf("%s: x %s, y %s, %dx%d rotated %s", path, m.X, m.Y, m.Width, m.Height, m.Rotation)
	return New(dev, m), nil
}

func deviceMapper(dev *evdev.Device, g pixel.Geometry, r kiosk.Rotation) (Mapper, error) {
	caps, err := dev.Capabilities()
	if err != nil {
		return Mapper{}, err
	}
	codeX, codeY := uint16(evdev.AbsMTPositionX), uint16(evdev.AbsMTPositionY)
	if !caps.Has(evdev.EvAbs, codeX) || !caps.Has(evdev.EvAbs, codeY) {
		codeX, codeY = evdev.AbsX, evdev.AbsY
	}

	m := Mapper{Width: g.Width, Height: g.Height, Rotation: r}
	if m.X, err = dev.AbsInfo(codeX); err != nil {
		return Mapper{}, fmt.Errorf("x axis: %w", err)
	}
	if m.Y, err = dev.AbsInfo(codeY); err != nil {
		return Mapper{}, fmt.Errorf("y axis: %w", err)
	}
	return m, nil
}

// New returns a touchscreen reading from src.
func New(src EventSource, m Mapper) *Touchscreen {
	t := &Touchscreen{
		src:    src,
		mapper: m,
	}
	t.tracker = NewTracker(&t.mapper)
	return t
}

// Mapper returns the coordinate mapping in use.
func (t *Touchscreen) Mapper() Mapper {
	return t.mapper
}

// Poll waits up to timeout for input, then reads everything that is readable
// and returns the events of all completed packets. A zero timeout does not
// block; a negative timeout waits indefinitely.
//
// Errors wrapping evdev.ErrDisconnected end the stream; the events completed
// before the error are returned along with it.
func (t *Touchscreen) Poll(timeout time.Duration) ([]Event, error) {
	ok, err := t.src.Wait(timeout)
	if err != nil || !ok {
		return nil, err
	}

	var out []Event
	for {
		ev, err := t.src.ReadNext()
		if err != nil {
			return out, err
		}
		out = append(out, t.tracker.Feed(ev)...)

		if t.src.Buffered() > 0 {
			continue
		}
		if ok, err = t.src.Wait(0); err != nil || !ok {
			return out, err
		}
	}
}

// Slots returns a snapshot of all contact slots.
func (t *Touchscreen) Slots() []Slot {
	return t.tracker.Slots()
}

// Pump reads events until the stream ends and pushes them to q. It returns
// the error that ended the stream and is meant to run in its own goroutine.
func (t *Touchscreen) Pump(q *Queue) error {
	for {
		ev, err := t.src.ReadNext()
		if err != nil {
			return err
		}
		for _, e := range t.tracker.Feed(ev) {
			q.Push(e)
		}
	}
}

// Grab exclusive access to the device, so its events do not reach other
// readers such as a console. Sources that can not be grabbed are ignored.
func (t *Touchscreen) Grab(grab bool) error {
	if g, ok := t.src.(interface{ Grab(bool) error }); ok {
		return g.Grab(grab)
	}
	return nil
}

// Close the underlying device.
func (t *Touchscreen) Close() error {
	return t.src.Close()
}
