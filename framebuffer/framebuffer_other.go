//go:build !linux

package framebuffer

import "errors"

var ErrNotSupported = errors.New("framebuffer: not supported")

// Device is a framebuffer device, which is only available on Linux.
type Device struct {
	region
}

func Open(_ string) (*Device, error) {
	return nil, ErrNotSupported
}

func (d *Device) Close() error {
	return nil
}
