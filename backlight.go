package kiosk

import (
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Backlight controls a panel backlight wired to a GPIO pin.
type Backlight struct {
	Pin gpio.PinOut
}

// Show switches the backlight fully on or off.
func (b Backlight) Show(show bool) error {
	if b.Pin == nil {
		return ErrNoBacklight
	}
	return b.Pin.Out(gpio.Level(show))
}

// SetLevel dims the backlight using PWM, 0xff is full brightness.
func (b Backlight) SetLevel(level uint8) error {
	if b.Pin == nil {
		return ErrNoBacklight
	}
	const (
		step = gpio.DutyMax / 0xFF
		rate = 2 * physic.KiloHertz
	)
	if debug {
		log.Printf("kiosk: backlight duty cycle to %s at %s", step*gpio.Duty(level), rate)
	}
	return b.Pin.PWM(step*gpio.Duty(level), rate)
}
