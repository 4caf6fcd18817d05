package main

import (
	"context"
	"image"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/BeatGlow/kiosk"
	"github.com/BeatGlow/kiosk/brush"
	"github.com/BeatGlow/kiosk/pixel"
	"github.com/BeatGlow/kiosk/touch"
)

func init() { rootCmd.AddCommand(paintCmd) }

var paintCmd = &cobra.Command{
	Use:   "paint",
	Short: "paint with your fingers",
	Long:  `draw rainbow strokes following every contact on the touchscreen; tap the top left corner to exit`,
	Run: func(cmd *cobra.Command, args []string) {
		run(paint)
	},
}

const (
	exitSize = 50
	tapSlop  = 10
)

type painter struct {
	screen *kiosk.Screen
	trails [touch.MaxSlots]touch.Trail
	brush  brush.Source
	exit   image.Rectangle
}

func paint() error {
	d, err := openDisplay()
	if err != nil {
		return err
	}
	defer d.Close()

	ts, err := openTouchscreen(d)
	if err != nil {
		return err
	}
	defer ts.Close()
	if err = ts.Grab(true); err != nil {
		log.Printf("not grabbing touchscreen: %v", err)
	}

	p := &painter{
		screen: d.Screen,
		brush:  brush.Rainbow(),
		exit:   image.Rect(0, 0, exitSize, exitSize),
	}
	defer p.brush.Stop()
	if err = p.clear(); err != nil {
		return wrap(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("tap the top left corner to exit")
	if queueFlag > 0 {
		err = p.pump(ctx, ts, touch.NewQueue(queueFlag))
	} else {
		err = p.poll(ctx, ts)
	}
	if err != nil {
		return wrap(err)
	}
	return d.Clear()
}

// poll runs a single-threaded event loop.
func (p *painter) poll(ctx context.Context, ts *touch.Touchscreen) error {
	for ctx.Err() == nil {
		events, err := ts.Poll(100 * time.Millisecond)
		for _, e := range events {
			if done, herr := p.handle(e); herr != nil || done {
				return herr
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// pump reads events in a separate goroutine and consumes them from q.
func (p *painter) pump(ctx context.Context, ts *touch.Touchscreen, q *touch.Queue) error {
	errs := make(chan error, 1)
	go func() { errs <- ts.Pump(q) }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			return err
		case e := <-q.C():
			if done, err := p.handle(e); err != nil || done {
				if n := q.Dropped(); n > 0 {
					log.Printf("dropped %d touch events", n)
				}
				return err
			}
		}
	}
}

func (p *painter) clear() error {
	if err := p.screen.Clear(); err != nil {
		return err
	}
	return p.screen.DrawRect(p.exit, 8,
		kiosk.Border{Brush: brush.Solid(pixel.Red), Thickness: 2},
		brush.Solid(pixel.Color{R: 0xff, A: 0x40}))
}

func (p *painter) handle(e touch.Event) (done bool, err error) {
	if e.Slot < 0 || e.Slot >= len(p.trails) {
		return false, nil
	}
	var (
		trail = &p.trails[e.Slot]
		prev  = trail.Last()
	)
	if !trail.Feed(e) {
		return false, nil
	}

	switch e.State {
	case touch.Down:
		err = p.screen.DrawRect(image.Rect(e.X-2, e.Y-2, e.X+3, e.Y+3), 2, kiosk.Border{}, p.brush)
	case touch.Moving, touch.Up:
		err = p.screen.DrawLine(prev.X, prev.Y, e.X, e.Y, p.brush)
	}
	if err != nil || e.State != touch.Up {
		return false, err
	}

	at, tap := trail.Tap(tapSlop)
	return tap && at.In(p.exit), nil
}
