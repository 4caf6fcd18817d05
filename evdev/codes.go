package evdev

import "fmt"

// Event types, from <linux/input-event-codes.h>.
const (
	EvSyn = 0x00
	EvKey = 0x01
	EvRel = 0x02
	EvAbs = 0x03
	EvMsc = 0x04
	EvSw  = 0x05
	EvLed = 0x11
	EvSnd = 0x12
	EvRep = 0x14
	EvFF  = 0x15
	EvMax = 0x1f
)

// Synchronization codes.
const (
	SynReport   = 0
	SynConfig   = 1
	SynMTReport = 2
	SynDropped  = 3
)

// Key codes used by touch devices.
const (
	BtnLeft   = 0x110
	BtnTouch  = 0x14a
	BtnStylus = 0x14b
	KeyMax    = 0x2ff
)

// Absolute axes.
const (
	AbsX             = 0x00
	AbsY             = 0x01
	AbsPressure      = 0x18
	AbsMTSlot        = 0x2f
	AbsMTTouchMajor  = 0x30
	AbsMTTouchMinor  = 0x31
	AbsMTOrientation = 0x34
	AbsMTPositionX   = 0x35
	AbsMTPositionY   = 0x36
	AbsMTToolType    = 0x37
	AbsMTTrackingID  = 0x39
	AbsMTPressure    = 0x3a
	AbsMax           = 0x3f
)

const absMTFirst, absMTLast = AbsMTTouchMajor, AbsMTPressure

// Input properties.
const (
	InputPropPointer = 0x00
	InputPropDirect  = 0x01
	InputPropMax     = 0x1f
)

var typeNames = map[uint16]string{
	EvSyn: "EV_SYN",
	EvKey: "EV_KEY",
	EvRel: "EV_REL",
	EvAbs: "EV_ABS",
	EvMsc: "EV_MSC",
	EvSw:  "EV_SW",
	EvLed: "EV_LED",
	EvSnd: "EV_SND",
	EvRep: "EV_REP",
	EvFF:  "EV_FF",
}

var codeNames = map[uint16]map[uint16]string{
	EvSyn: {
		SynReport:   "SYN_REPORT",
		SynConfig:   "SYN_CONFIG",
		SynMTReport: "SYN_MT_REPORT",
		SynDropped:  "SYN_DROPPED",
	},
	EvKey: {
		BtnLeft:   "BTN_LEFT",
		BtnTouch:  "BTN_TOUCH",
		BtnStylus: "BTN_STYLUS",
	},
	EvAbs: {
		AbsX:             "ABS_X",
		AbsY:             "ABS_Y",
		AbsPressure:      "ABS_PRESSURE",
		AbsMTSlot:        "ABS_MT_SLOT",
		AbsMTTouchMajor:  "ABS_MT_TOUCH_MAJOR",
		AbsMTTouchMinor:  "ABS_MT_TOUCH_MINOR",
		AbsMTOrientation: "ABS_MT_ORIENTATION",
		AbsMTPositionX:   "ABS_MT_POSITION_X",
		AbsMTPositionY:   "ABS_MT_POSITION_Y",
		AbsMTToolType:    "ABS_MT_TOOL_TYPE",
		AbsMTTrackingID:  "ABS_MT_TRACKING_ID",
		AbsMTPressure:    "ABS_MT_PRESSURE",
	},
}

// TypeName returns the symbolic name of an event type.
func TypeName(typ uint16) string {
	if name, ok := typeNames[typ]; ok {
		return name
	}
	return fmt.Sprintf("EV_%#02x", typ)
}

// CodeName returns the symbolic name of an event code.
func CodeName(typ, code uint16) string {
	if name, ok := codeNames[typ][code]; ok {
		return name
	}
	return fmt.Sprintf("%#03x", code)
}

// IsMultiTouch reports if code is one of the ABS_MT_* axes.
func IsMultiTouch(code uint16) bool {
	return code == AbsMTSlot || (code >= absMTFirst && code <= absMTLast)
}
