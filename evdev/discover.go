package evdev

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// DefaultPattern matches all event devices.
const DefaultPattern = "/dev/input/event*"

// Prober is an event device that can be inspected.
type Prober interface {
	Name() (string, error)
	Capabilities() (Capabilities, error)
	Properties() (Bits, error)
	Close() error
}

// Discoverer scans event devices for a touchscreen.
type Discoverer struct {
	// Pattern to glob for devices, DefaultPattern if empty.
	Pattern string

	// Open a device for probing, opens an event device if nil.
	Open func(path string) (Prober, error)

	// AllowSingleTouch admits single-touch devices reporting ABS_X, ABS_Y and
	// BTN_TOUCH, scored below any multi-touch device.
	AllowSingleTouch bool
}

// Candidate is a probed device.
type Candidate struct {
	Path         string
	Name         string
	Capabilities Capabilities
	Direct       bool

	// Score ranks touchscreens, zero if the device is not one.
	Score int

	// Err is set if the device could not be probed.
	Err error
}

func (c Candidate) String() string {
	if c.Err != nil {
		return fmt.Sprintf("%s: %v", c.Path, c.Err)
	}
	return fmt.Sprintf("%s %q score %d", c.Path, c.Name, c.Score)
}

// Discover the touchscreen among the event devices.
func Discover() (string, error) {
	return Discoverer{}.Discover()
}

// Discover returns the path of the best scoring touchscreen. Of equally scored
// devices the first in numeric order wins. Devices that can not be opened are
// skipped.
func (d Discoverer) Discover() (string, error) {
	candidates, err := d.List()
	if err != nil {
		return "", err
	}
	var best *Candidate
	for i, c := range candidates {
		if c.Err != nil || c.Score == 0 {
			continue
		}
		if best == nil || c.Score > best.Score {
			best = &candidates[i]
		}
	}
	if best == nil {
		return "", fmt.Errorf("%w: probed %d devices", ErrNoTouchscreen, len(candidates))
	}
	debugf("discovered %s", best)
	return best.Path, nil
}

// List probes every device matching the pattern, in numeric order.
func (d Discoverer) List() ([]Candidate, error) {
	pattern := d.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(paths, func(a, b string) int {
		if c := cmp.Compare(deviceNumber(a), deviceNumber(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	candidates := make([]Candidate, 0, len(paths))
	for _, path := range paths {
		c := d.probe(path)
		debugf("probed %s", c)
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func (d Discoverer) probe(path string) (c Candidate) {
	c.Path = path

	open := d.Open
	if open == nil {
		open = openProber
	}
	dev, err := open(path)
	if err != nil {
		c.Err = err
		return
	}
	defer func() { _ = dev.Close() }()

	if c.Capabilities, c.Err = dev.Capabilities(); c.Err != nil {
		return
	}
	// Not all drivers report a name or properties.
	c.Name, _ = dev.Name()
	if props, err := dev.Properties(); err == nil {
		c.Direct = props.Has(InputPropDirect)
	}
	c.Score = score(c.Capabilities, c.Direct, d.AllowSingleTouch)
	return
}

func openProber(path string) (Prober, error) {
	dev, err := Open(path)
	if err != nil {
		return nil, err
	}
	return dev, nil
}

// score ranks touch capabilities. Multi-touch devices need both position axes
// and score at least 10; single-touch devices score at most 7.
func score(caps Capabilities, direct, allowSingleTouch bool) int {
	if !caps.HasType(EvAbs) {
		return 0
	}
	var s int
	switch {
	case caps.Has(EvAbs, AbsMTPositionX) && caps.Has(EvAbs, AbsMTPositionY):
		s = 10
		if caps.Has(EvAbs, AbsMTSlot) {
			s += 4
		}
		if caps.Has(EvAbs, AbsMTTrackingID) {
			s += 2
		}
		if caps.Has(EvKey, BtnTouch) {
			s++
		}
	case allowSingleTouch && caps.Has(EvAbs, AbsX) && caps.Has(EvAbs, AbsY) && caps.Has(EvKey, BtnTouch):
		s = 5
	default:
		return 0
	}
	if direct {
		s += 2
	}
	return s
}

// deviceNumber returns the trailing number of a device name, such that
// event10 sorts after event9.
func deviceNumber(path string) int {
	var (
		base = filepath.Base(path)
		i    = len(base)
	)
	for i > 0 && base[i-1] >= '0' && base[i-1] <= '9' {
		i--
	}
	n, err := strconv.Atoi(base[i:])
	if err != nil {
		return -1
	}
	return n
}
