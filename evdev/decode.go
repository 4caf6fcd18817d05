package evdev

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// RecordSize is the size of struct input_event on this host: a timeval of two
// C longs followed by the type, code and value.
const RecordSize = 2*strconv.IntSize/8 + 8

// Number of records read from the device at once.
const recordBuffer = 64

// Decoder decodes input_event records from a stream.
//
// Once the stream ends or fails, every following call to ReadNext returns the
// same error wrapping ErrDisconnected. Read deadline errors are returned as
// is and do not end the stream.
type Decoder struct {
	r          io.Reader
	size       int
	order      binary.ByteOrder
	buf        []byte
	start, end int
	err        error
}

// NewDecoder returns a decoder for records of size bytes, which must be 16 or
// 24. Records are decoded in native byte order.
func NewDecoder(r io.Reader, size int) *Decoder {
	if size != 16 && size != 24 {
		panic("evdev: invalid record size " + strconv.Itoa(size))
	}
	return &Decoder{
		r:     r,
		size:  size,
		order: binary.NativeEndian,
		buf:   make([]byte, size*recordBuffer),
	}
}

// Buffered returns the number of complete records that can be decoded
// without reading from the stream.
func (d *Decoder) Buffered() int {
	return (d.end - d.start) / d.size
}

// ReadNext returns the next event, blocking until a complete record is
// available.
func (d *Decoder) ReadNext() (Event, error) {
	for d.end-d.start < d.size {
		if d.err != nil {
			return Event{}, d.err
		}
		if err := d.fill(); err != nil {
			return Event{}, err
		}
	}

	ev := d.decode(d.buf[d.start : d.start+d.size])
	d.start += d.size
	if debug && ev.Type == EvSyn && ev.Code == SynDropped {
		debugf("events dropped by the kernel, resynchronizing")
	}
	return ev, nil
}

func (d *Decoder) fill() error {
	if d.start > 0 {
		d.end = copy(d.buf, d.buf[d.start:d.end])
		d.start = 0
	}

	var (
		n   int
		err error
	)
	for i := 0; n == 0 && err == nil; i++ {
		if i == 100 {
			err = io.ErrNoProgress
			break
		}
		n, err = d.r.Read(d.buf[d.end:])
	}
	d.end += n

	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrDeadlineExceeded):
		return err
	case errors.Is(err, io.EOF) && d.end-d.start > 0 && d.end-d.start < d.size:
		d.err = fmt.Errorf("%w: short record of %d bytes", ErrDisconnected, d.end-d.start)
	default:
		d.err = fmt.Errorf("%w: %w", ErrDisconnected, err)
	}
	// Complete records that came with the error are still decoded.
	return nil
}

func (d *Decoder) decode(b []byte) Event {
	var sec, usec int64
	if d.size == 24 {
		sec = int64(d.order.Uint64(b[0:]))
		usec = int64(d.order.Uint64(b[8:]))
	} else {
		sec = int64(int32(d.order.Uint32(b[0:])))
		usec = int64(int32(d.order.Uint32(b[4:])))
	}
	b = b[d.size-8:]
	return Event{
		Time:  time.Unix(sec, usec*int64(time.Microsecond)),
		Type:  d.order.Uint16(b[0:]),
		Code:  d.order.Uint16(b[2:]),
		Value: int32(d.order.Uint32(b[4:])),
	}
}

// AppendRecord appends ev encoded as a record of size bytes in native byte
// order to b.
func AppendRecord(b []byte, size int, ev Event) []byte {
	var (
		order = binary.NativeEndian
		sec   = ev.Time.Unix()
		usec  = int64(ev.Time.Nanosecond()) / int64(time.Microsecond)
	)
	if ev.Time.IsZero() {
		sec, usec = 0, 0
	}
	if size == 24 {
		b = order.AppendUint64(b, uint64(sec))
		b = order.AppendUint64(b, uint64(usec))
	} else {
		b = order.AppendUint32(b, uint32(sec))
		b = order.AppendUint32(b, uint32(usec))
	}
	b = order.AppendUint16(b, ev.Type)
	b = order.AppendUint16(b, ev.Code)
	return order.AppendUint32(b, uint32(ev.Value))
}
