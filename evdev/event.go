package evdev

import (
	"fmt"
	"time"
)

// Event is a single raw input event.
type Event struct {
	Time  time.Time
	Type  uint16
	Code  uint16
	Value int32
}

// IsSync reports if the event is a SYN_REPORT packet boundary.
func (ev Event) IsSync() bool {
	return ev.Type == EvSyn && ev.Code == SynReport
}

func (ev Event) String() string {
	return fmt.Sprintf("%s %s %d", TypeName(ev.Type), CodeName(ev.Type, ev.Code), ev.Value)
}
