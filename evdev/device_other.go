//go:build !linux

package evdev

import "time"

// Device is an opened event device.
type Device struct {
	*Decoder
	path string
}

// Open is not supported on this platform.
func Open(path string) (*Device, error) {
	return nil, ErrNotSupported
}

func (d *Device) Path() string                         { return d.path }
func (d *Device) String() string                       { return d.path }
func (d *Device) Close() error                         { return nil }
func (d *Device) Wait(time.Duration) (bool, error)     { return false, ErrNotSupported }
func (d *Device) Name() (string, error)                { return "", ErrNotSupported }
func (d *Device) Capabilities() (Capabilities, error)  { return nil, ErrNotSupported }
func (d *Device) Properties() (Bits, error)            { return nil, ErrNotSupported }
func (d *Device) AbsInfo(code uint16) (AbsInfo, error) { return AbsInfo{}, ErrNotSupported }
func (d *Device) Grab(grab bool) error                 { return ErrNotSupported }
