package evdev

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/BeatGlow/kiosk/internal/ioctl"
)

// ioctl commands, from <linux/input.h>.
var (
	eviocGName = ioctl.Encode(ioctl.Read, nameSize, ioctl.Type('E', 0x06))
	eviocGProp = ioctl.Encode(ioctl.Read, (InputPropMax+1)/8, ioctl.Type('E', 0x09))
	eviocGrab  = ioctl.Encode(ioctl.Write, 4, ioctl.Type('E', 0x90))
)

const (
	nameSize = 256
	bitsSize = (KeyMax + 1) / 8
)

func eviocGBit(typ uint16, size uint16) ioctl.Command {
	return ioctl.Encode(ioctl.Read, size, ioctl.Type('E', uint8(0x20+typ)))
}

func eviocGAbs(code uint16) ioctl.Command {
	return ioctl.Encode(ioctl.Read, absInfoSize, ioctl.Type('E', uint8(0x40+code)))
}

// Device is an opened event device.
//
// Reading events is not safe for concurrent use; Close may be called from
// another goroutine to end a blocked read.
type Device struct {
	*Decoder
	path string
	f    *os.File
}

// Open an event device, typically /dev/input/event[0..x].
//
// The returned errors wrap one of ErrNotFound or ErrPermissionDenied.
func Open(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	return &Device{
		Decoder: NewDecoder(f, RecordSize),
		path:    path,
		f:       f,
	}, nil
}

// Path of the device node.
func (d *Device) Path() string {
	return d.path
}

func (d *Device) String() string {
	return d.path
}

// Close the device, a blocked ReadNext returns ErrDisconnected.
func (d *Device) Close() error {
	return d.f.Close()
}

// Wait until at least one event can be read or the timeout expires. A negative
// timeout waits indefinitely.
func (d *Device) Wait(timeout time.Duration) (bool, error) {
	if d.Buffered() > 0 {
		return true, nil
	}
	ms := -1
	if timeout >= 0 {
		ms = int(timeout.Milliseconds())
	}

	var (
		n       int
		pollErr error
	)
	err := d.control(func(fd uintptr) {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		for {
			n, pollErr = unix.Poll(fds, ms)
			if pollErr != unix.EINTR {
				break
			}
		}
		if n > 0 && fds[0].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
			// Let the next read report the failure.
			pollErr = nil
		}
	})
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrDisconnected, d.path, err)
	}
	if pollErr != nil {
		return false, os.NewSyscallError("poll", pollErr)
	}
	return n > 0, nil
}

// Name returns the device name reported by the driver.
func (d *Device) Name() (string, error) {
	var buf [nameSize]byte
	if err := d.ioctl(eviocGName, unsafe.Pointer(&buf[0])); err != nil {
		return "", err
	}
	if i := bytes.IndexByte(buf[:], 0); i >= 0 {
		return string(buf[:i]), nil
	}
	return string(buf[:]), nil
}

// Capabilities queries the supported event types and codes.
func (d *Device) Capabilities() (Capabilities, error) {
	var types [(EvMax + 1) / 8]byte
	if err := d.ioctl(eviocGBit(0, uint16(len(types))), unsafe.Pointer(&types[0])); err != nil {
		return nil, err
	}

	caps := make(Capabilities)
	for typ := uint16(0); typ <= EvMax; typ++ {
		if !Bits(types[:]).Has(typ) {
			continue
		}
		if typ == EvSyn {
			caps[typ] = Bits{types[0]}
			continue
		}
		buf := make(Bits, bitsSize)
		if err := d.ioctl(eviocGBit(typ, bitsSize), unsafe.Pointer(&buf[0])); err != nil {
			return nil, err
		}
		caps[typ] = bytes.TrimRight(buf, "\x00")
	}
	return caps, nil
}

// Properties queries the input properties, such as InputPropDirect.
func (d *Device) Properties() (Bits, error) {
	buf := make(Bits, (InputPropMax+1)/8)
	if err := d.ioctl(eviocGProp, unsafe.Pointer(&buf[0])); err != nil {
		return nil, err
	}
	return buf, nil
}

// AbsInfo queries the range of an absolute axis.
func (d *Device) AbsInfo(code uint16) (AbsInfo, error) {
	var buf [absInfoSize]byte
	if err := d.ioctl(eviocGAbs(code), unsafe.Pointer(&buf[0])); err != nil {
		return AbsInfo{}, err
	}
	return decodeAbsInfo(buf[:]), nil
}

// Grab or release exclusive access to the device. While grabbed, no other
// reader receives its events.
func (d *Device) Grab(grab bool) error {
	var arg uintptr
	if grab {
		arg = 1
	}
	var err error
	if cerr := d.control(func(fd uintptr) {
		err = ioctl.Call(fd, eviocGrab, arg)
	}); cerr != nil {
		return cerr
	}
	if err != nil {
		return fmt.Errorf("evdev: %s: %w", d.path, err)
	}
	return nil
}

func (d *Device) ioctl(cmd ioctl.Command, arg unsafe.Pointer) error {
	var err error
	if cerr := d.control(func(fd uintptr) {
		err = ioctl.Do(fd, cmd, arg)
	}); cerr != nil {
		return cerr
	}
	if err != nil {
		return fmt.Errorf("evdev: %s: %w", d.path, err)
	}
	return nil
}

func (d *Device) control(fn func(fd uintptr)) error {
	rc, err := d.f.SyscallConn()
	if err != nil {
		return err
	}
	return rc.Control(fn)
}
