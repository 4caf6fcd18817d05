// Package evdev reads raw input events from Linux event devices.
//
// Event devices (/dev/input/event*) produce a stream of fixed size records,
// each carrying a timestamp, an event type, an event code and a value. The
// [Decoder] turns such a stream into [Event] values in exactly the order the
// kernel emitted them; a [Device] adds the ioctl queries needed to inspect the
// capabilities of the device. [Discover] finds the touchscreen among all event
// devices.
package evdev

import (
	"errors"
	"log"
	"os"
)

var debug bool

func init() {
	debug = os.Getenv("KIOSK_DEBUG") != ""
}

// Errors.
var (
	ErrNotFound         = errors.New("evdev: device not found")
	ErrPermissionDenied = errors.New("evdev: permission denied")
	ErrDisconnected     = errors.New("evdev: device disconnected")
	ErrNoTouchscreen    = errors.New("evdev: no touchscreen found")
	ErrNotSupported     = errors.New("evdev: not supported on this platform")
)

func debugf(format string, args ...any) {
	if debug {
		log.Printf("evdev: "+format, args...)
	}
}
