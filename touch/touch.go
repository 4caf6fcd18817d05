// Package touch tracks multi-touch contacts reported by an event device.
//
// A [Tracker] turns the raw evdev stream into one [Event] per changed contact
// per packet. Contacts live in slots, each going through the phases
// Released, Down, Moving, Up and back to Released. The multi-touch slot
// protocol (type B), the anonymous contact protocol (type A) and single-touch
// devices are supported.
//
// A [Touchscreen] combines a device, a tracker and a [Mapper] from raw device
// coordinates to screen pixels. It can be polled from a single-threaded loop,
// or pumped into a [Queue] from a reader goroutine.
package touch

import (
	"log"
	"os"
	"time"
)

var debug bool

func init() {
	debug = os.Getenv("KIOSK_DEBUG") != ""
}

// State of a contact.
type State uint8

// Contact states.
const (
	Released State = iota
	Down
	Moving
	Up
)

func (s State) String() string {
	switch s {
	case Released:
		return "released"
	case Down:
		return "down"
	case Moving:
		return "moving"
	case Up:
		return "up"
	default:
		return "invalid"
	}
}

// Slot is the state of one contact slot.
type Slot struct {
	Index      int
	TrackingID int32 // -1 when released
	State      State

	// Position in screen pixels.
	X, Y int

	// Position in device coordinates.
	RawX, RawY int32

	// Pressure and TouchMajor are zero if the device does not report them.
	Pressure   int32
	TouchMajor int32
}

// Active reports if the slot holds a contact.
func (s Slot) Active() bool {
	return s.TrackingID >= 0
}

// Event is a change of one contact.
type Event struct {
	Slot       int
	TrackingID int32
	State      State // Down, Moving or Up
	X, Y       int
	RawX, RawY int32
	Pressure   int32
	TouchMajor int32
	Time       time.Time
}

func debugf(format string, args ...any) {
	if debug {
		log.Printf("touch: "+format, args...)
	}
}
