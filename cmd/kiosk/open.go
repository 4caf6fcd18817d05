package main

import (
	"fmt"
	"log"

	"github.com/go-errors/errors"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/kiosk"
	"github.com/BeatGlow/kiosk/evdev"
	"github.com/BeatGlow/kiosk/framebuffer"
	"github.com/BeatGlow/kiosk/touch"
)

// display is an opened framebuffer with a screen drawing onto it.
type display struct {
	*kiosk.Screen
	fb *framebuffer.Device
}

func openDisplay() (*display, error) {
	fb, err := framebuffer.Open(fbFlag)
	if err != nil {
		return nil, wrap(err)
	}
	log.Printf("using framebuffer %s: %s", fb, fb.Geometry())

	if err = setupBacklight(); err != nil {
		_ = fb.Close()
		return nil, err
	}
	return &display{
		Screen: kiosk.NewScreen(fb),
		fb:     fb,
	}, nil
}

func (d *display) Close() error {
	return d.fb.Close()
}

func setupBacklight() error {
	if backlightFlag == "" {
		return nil
	}
	if _, err := host.Init(); err != nil {
		return wrap(err)
	}
	pin := gpioreg.ByName(backlightFlag)
	if pin == nil {
		return errors.Errorf("no such backlight pin %q", backlightFlag)
	}

	bl := kiosk.Backlight{Pin: pin}
	if brightnessFlag < 0xff {
		return wrap(bl.SetLevel(brightnessFlag))
	}
	return wrap(bl.Show(true))
}

func rotation() (kiosk.Rotation, error) {
	r, ok := kiosk.ParseRotation(rotateFlag)
	if !ok {
		return r, errors.Errorf("invalid rotation %q specified", rotateFlag)
	}
	return r, nil
}

func openTouchscreen(d *display) (*touch.Touchscreen, error) {
	r, err := rotation()
	if err != nil {
		return nil, err
	}

	path := inputFlag
	if path == "" {
		if path, err = (evdev.Discoverer{AllowSingleTouch: singleTouchFlag}).Discover(); err != nil {
			return nil, wrap(err)
		}
	}

	ts, err := touch.Open(path, d.Geometry(), r)
	if err != nil {
		return nil, wrap(fmt.Errorf("%s: %w", path, err))
	}
	m := ts.Mapper()
	log.Printf("using touchscreen %s: x %s, y %s, rotation %s", path, m.X, m.Y, m.Rotation)
	return ts, nil
}
