package evdev

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStream(size int, events ...Event) []byte {
	var b []byte
	for _, ev := range events {
		b = AppendRecord(b, size, ev)
	}
	return b
}

var testEvents = []Event{
	{Time: time.Unix(1700000000, 250000000), Type: EvAbs, Code: AbsMTSlot, Value: 1},
	{Time: time.Unix(1700000000, 250000000), Type: EvAbs, Code: AbsMTTrackingID, Value: -1},
	{Time: time.Unix(1700000000, 250001000), Type: EvAbs, Code: AbsMTPositionX, Value: 4095},
	{Time: time.Unix(1700000000, 250001000), Type: EvSyn, Code: SynReport},
}

func assertEvent(t *testing.T, want, got Event) {
	t.Helper()
	assert.True(t, want.Time.Equal(got.Time), "time %s, want %s", got.Time, want.Time)
	assert.Equal(t, want.Type, got.Type)
	assert.Equal(t, want.Code, got.Code)
	assert.Equal(t, want.Value, got.Value)
}

func TestDecoder(t *testing.T) {
	for _, size := range []int{16, 24} {
		t.Run(strconv.Itoa(size), func(it *testing.T) {
			b := testStream(size, testEvents...)
			require.Len(it, b, size*len(testEvents))

			d := NewDecoder(bytes.NewReader(b), size)
			for _, want := range testEvents {
				ev, err := d.ReadNext()
				require.NoError(it, err)
				assertEvent(it, want, ev)
			}
			_, err := d.ReadNext()
			assert.ErrorIs(it, err, ErrDisconnected)
			assert.ErrorIs(it, err, io.EOF)
		})
	}

	t.Run("one byte reads", func(it *testing.T) {
		d := NewDecoder(iotest.OneByteReader(bytes.NewReader(testStream(24, testEvents...))), 24)
		for _, want := range testEvents {
			ev, err := d.ReadNext()
			require.NoError(it, err)
			assertEvent(it, want, ev)
		}
	})

	t.Run("buffered", func(it *testing.T) {
		d := NewDecoder(bytes.NewReader(testStream(24, testEvents...)), 24)
		assert.Equal(it, 0, d.Buffered())
		_, err := d.ReadNext()
		require.NoError(it, err)
		assert.Equal(it, len(testEvents)-1, d.Buffered())
	})
}

func TestDecoderTruncated(t *testing.T) {
	b := testStream(24, testEvents[:2]...)
	b = b[:24+10]

	d := NewDecoder(bytes.NewReader(b), 24)
	ev, err := d.ReadNext()
	require.NoError(t, err)
	assertEvent(t, testEvents[0], ev)

	_, err = d.ReadNext()
	require.ErrorIs(t, err, ErrDisconnected)
	for i := 0; i < 3; i++ {
		_, again := d.ReadNext()
		assert.Equal(t, err, again, "disconnect is sticky")
	}
}

type errReader struct {
	data []byte
	err  error
}

func (r *errReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestDecoderErrors(t *testing.T) {
	t.Run("device gone", func(it *testing.T) {
		d := NewDecoder(&errReader{err: errors.New("no such device")}, 16)
		_, err := d.ReadNext()
		assert.ErrorIs(it, err, ErrDisconnected)
	})

	t.Run("deadline", func(it *testing.T) {
		r := &errReader{err: os.ErrDeadlineExceeded}
		d := NewDecoder(r, 16)
		_, err := d.ReadNext()
		assert.ErrorIs(it, err, os.ErrDeadlineExceeded)
		assert.NotErrorIs(it, err, ErrDisconnected)

		r.data = testStream(16, testEvents[0])
		ev, err := d.ReadNext()
		require.NoError(it, err)
		assertEvent(it, testEvents[0], ev)
	})

	t.Run("no progress", func(it *testing.T) {
		d := NewDecoder(&errReader{}, 16)
		_, err := d.ReadNext()
		assert.ErrorIs(it, err, ErrDisconnected)
		assert.ErrorIs(it, err, io.ErrNoProgress)
	})

	t.Run("invalid size", func(it *testing.T) {
		assert.Panics(it, func() { NewDecoder(nil, 8) })
	})
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "EV_ABS ABS_MT_POSITION_X 12", Event{Type: EvAbs, Code: AbsMTPositionX, Value: 12}.String())
	assert.Equal(t, "EV_SYN SYN_REPORT 0", Event{Type: EvSyn}.String())
	assert.True(t, Event{Type: EvSyn}.IsSync())
	assert.False(t, Event{Type: EvSyn, Code: SynDropped}.IsSync())
	assert.Contains(t, []int{16, 24}, RecordSize)
}
