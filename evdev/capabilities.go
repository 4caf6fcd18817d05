package evdev

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"
)

// Bits is a kernel bitmap, as returned by EVIOCGBIT and EVIOCGPROP.
type Bits []byte

// Has reports if bit n is set.
func (b Bits) Has(n uint16) bool {
	i := int(n / 8)
	return i < len(b) && b[i]&(1<<(n%8)) != 0
}

// Set bit n, growing the bitmap as needed.
func (b Bits) Set(n uint16) Bits {
	if i := int(n / 8); i >= len(b) {
		b = append(b, make([]byte, i-len(b)+1)...)
	}
	b[n/8] |= 1 << (n % 8)
	return b
}

// Capabilities maps the supported event types to their supported codes.
type Capabilities map[uint16]Bits

// Has reports if the device emits events of type typ with the given code.
func (c Capabilities) Has(typ, code uint16) bool {
	return c[typ].Has(code)
}

// HasType reports if the device emits events of type typ.
func (c Capabilities) HasType(typ uint16) bool {
	_, ok := c[typ]
	return ok
}

// Types returns the supported event types in ascending order.
func (c Capabilities) Types() []uint16 {
	types := make([]uint16, 0, len(c))
	for typ := range c {
		types = append(types, typ)
	}
	slices.Sort(types)
	return types
}

// Add marks code of type typ as supported.
func (c Capabilities) Add(typ uint16, codes ...uint16) {
	b := c[typ]
	if b == nil {
		b = Bits{}
	}
	for _, code := range codes {
		b = b.Set(code)
	}
	c[typ] = b
}

// String summarizes the capabilities relevant to touch input.
func (c Capabilities) String() string {
	var parts []string
	for _, typ := range c.Types() {
		parts = append(parts, TypeName(typ))
	}
	for _, code := range []uint16{AbsMTPositionX, AbsMTPositionY, AbsMTSlot, AbsMTTrackingID, AbsX, AbsY} {
		if c.Has(EvAbs, code) {
			parts = append(parts, CodeName(EvAbs, code))
		}
	}
	if c.Has(EvKey, BtnTouch) {
		parts = append(parts, CodeName(EvKey, BtnTouch))
	}
	return strings.Join(parts, " ")
}

// AbsInfo describes an absolute axis, as struct input_absinfo.
type AbsInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

const absInfoSize = 6 * 4

func decodeAbsInfo(b []byte) AbsInfo {
	order := binary.NativeEndian
	return AbsInfo{
		Value:      int32(order.Uint32(b[0:])),
		Minimum:    int32(order.Uint32(b[4:])),
		Maximum:    int32(order.Uint32(b[8:])),
		Fuzz:       int32(order.Uint32(b[12:])),
		Flat:       int32(order.Uint32(b[16:])),
		Resolution: int32(order.Uint32(b[20:])),
	}
}

func (a AbsInfo) String() string {
	return fmt.Sprintf("[%d, %d]", a.Minimum, a.Maximum)
}
