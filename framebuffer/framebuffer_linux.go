package framebuffer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/BeatGlow/kiosk/internal/ioctl"
)

const (
	// From <linux/fb.h>
	fbioGetVScreenInfo ioctl.Command = 0x4600
	fbioGetFScreenInfo ioctl.Command = 0x4602
)

// Device is an opened and memory mapped Linux framebuffer device (fbdev).
//
// A Device is not safe for concurrent use.
type Device struct {
	region
	name string
	f    *os.File
	mem  []byte
}

// Open a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x].
//
// The returned errors wrap one of ErrNotFound, ErrPermissionDenied or
// ErrUnsupportedFormat.
func Open(name string) (*Device, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, openError(name, err)
	}

	d := &Device{
		name: name,
		f:    f,
	}
	if err = d.init(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return d, nil
}

func (d *Device) init() error {
	var (
		fixBuf [fixScreenInfoSize]byte
		varBuf [varScreenInfoSize]byte
	)
	if err := d.ioctl(fbioGetFScreenInfo, unsafe.Pointer(&fixBuf[0])); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnsupportedFormat, d.name, err)
	}
	if err := d.ioctl(fbioGetVScreenInfo, unsafe.Pointer(&varBuf[0])); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnsupportedFormat, d.name, err)
	}

	order := nativeOrder()
	fix, err := decodeFixScreenInfo(fixBuf[:], longSize, order)
	if err != nil {
		return err
	}
	info, err := decodeVarScreenInfo(varBuf[:], order)
	if err != nil {
		return err
	}
	if d.geom, d.base, err = geometry(fix, info, order); err != nil {
		return err
	}

	var mapErr error
	rc, err := d.f.SyscallConn()
	if err != nil {
		return err
	}
	if err = rc.Control(func(fd uintptr) {
		d.mem, mapErr = unix.Mmap(int(fd), 0, int(fix.SmemLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	}); err != nil {
		return err
	}
	if mapErr != nil {
		return fmt.Errorf("%w: %s: mmap: %w", ErrUnsupportedFormat, d.name, mapErr)
	}
	d.pix = d.mem

	debugf("%s (%s): %s, offset %d, %d bytes mapped", d.name, fix.ID, d.geom, d.base, len(d.mem))
	return nil
}

func (d *Device) ioctl(cmd ioctl.Command, arg unsafe.Pointer) (err error) {
	rc, err := d.f.SyscallConn()
	if err != nil {
		return err
	}
	if cerr := rc.Control(func(fd uintptr) {
		err = ioctl.Do(fd, cmd, arg)
	}); cerr != nil {
		return cerr
	}
	return err
}

// Close unmaps the framebuffer and closes the device. Closing twice is a no-op.
func (d *Device) Close() error {
	if d.f == nil {
		return nil
	}
	var err error
	if d.mem != nil {
		err = unix.Munmap(d.mem)
		d.mem, d.pix = nil, nil
	}
	err = errors.Join(err, d.f.Close())
	d.f = nil
	return err
}

// String returns the device name.
func (d *Device) String() string {
	return d.name
}

func openError(name string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, name, err)
	}
	// ENOENT, ENODEV and ENXIO all mean there is no such device.
	return fmt.Errorf("%w: %s: %w", ErrNotFound, name, err)
}
