package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/BeatGlow/kiosk"
	"github.com/BeatGlow/kiosk/brush"
	"github.com/BeatGlow/kiosk/framebuffer"
	"github.com/BeatGlow/kiosk/pixel"
	"github.com/BeatGlow/kiosk/text/ttf"
)

func init() {
	rootCmd.AddCommand(patternCmd)
	flags := patternCmd.Flags()
	flags.IntVar(&framesFlag, `frames`, 0, `number of frames to draw (default: until interrupted)`)
	flags.StringVar(&outFlag, `out`, ``, `render one frame off-screen and save it to this image file instead`)
	flags.StringVar(&sizeFlag, `size`, `800x480`, `off-screen size`)
	flags.StringVar(&layoutFlag, `layout`, pixel.RGB565.String(), `off-screen pixel layout`)
}

var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "draw a test pattern",
	Long:  `draw an animated test pattern with a gradient, rounded boxes, text and a rainbow line fan`,
	Run: func(cmd *cobra.Command, args []string) {
		run(pattern)
	},
}

var (
	framesFlag int
	outFlag    string
	sizeFlag   string
	layoutFlag string
)

func pattern() error {
	if outFlag != "" {
		var w, h int
		if _, err := fmt.Sscanf(sizeFlag, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
			return errors.Errorf("invalid size %q, expected WIDTHxHEIGHT", sizeFlag)
		}
		layout, ok := pixel.Layouts()[strings.ToUpper(layoutFlag)]
		if !ok {
			return errors.Errorf("unknown pixel layout %q", layoutFlag)
		}
		return snapshot(outFlag, pixel.NewGeometry(w, h, layout), framesFlag)
	}

	d, err := openDisplay()
	if err != nil {
		return err
	}
	defer d.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		offset   int
		ticker   = time.NewTicker(50 * time.Millisecond)
		r        = d.Bounds()
		gradient = kiosk.NewBitmap(r.Dx(), r.Dy())
	)
	defer ticker.Stop()

	fmt.Println("hit control-c to stop...")
	for frame := 0; framesFlag == 0 || frame < framesFlag; frame++ {
		if err = drawPattern(d.Screen, gradient, offset); err != nil {
			return wrap(err)
		}
		offset++

		select {
		case <-ctx.Done():
			return d.Clear()
		case <-ticker.C:
		}
	}
	return nil
}

// snapshot renders frame of the pattern into memory and saves it as an image.
func snapshot(name string, g pixel.Geometry, frame int) error {
	m, err := framebuffer.NewMemory(g)
	if err != nil {
		return wrap(err)
	}
	if err = drawPattern(kiosk.NewScreen(m), kiosk.NewBitmap(g.Width, g.Height), frame); err != nil {
		return wrap(err)
	}
	log.Printf("saving %s frame %d to %s", g, frame, name)
	return wrap(imaging.Save(m.Image(), name))
}

func drawPattern(s *kiosk.Screen, gradient *kiosk.Bitmap, offset int) error {
	r := s.Bounds()

	// Gradient inside box
	for y := 0; y < gradient.Height; y++ {
		for x := 0; x < gradient.Width; x++ {
			gradient.Set(x, y, pixel.RGB(uint8(x+y+offset), uint8(x-y+offset), uint8(x+y-offset)))
		}
	}
	if err := s.DrawImage(0, 0, gradient, false); err != nil {
		return err
	}

	// Box around edge
	if err := s.DrawRect(r, 0, kiosk.Border{Brush: brush.Solid(pixel.White), Thickness: 1}, brush.Source{}); err != nil {
		return err
	}

	// Rounded boxes with increasing radius and opacity
	var (
		size = max(min(r.Dx()/10, r.Dy()/4), 8)
		gap  = size / 8
	)
	for i := 0; i <= 8; i++ {
		box := image.Rect(0, 0, size, size).Add(image.Pt(gap+i*(size+gap), gap*2))
		fill := pixel.Color{R: 0x10, G: 0x10, B: 0x40, A: uint8(0x1f * i)}
		border := kiosk.Border{Brush: brush.Solid(pixel.Yellow), Thickness: 1 + i/4}
		if err := s.DrawRect(box, i, border, brush.Solid(fill)); err != nil {
			return err
		}
	}

	// Text banner
	var (
		face     = ttf.Default()
		textSize = float32(r.Dy()) / 8
		banner   = fmt.Sprintf("kiosk %dx%d", r.Dx(), r.Dy())
		width    = int(face.Advance(banner, textSize))
	)
	ascent, _ := face.Metrics(textSize)
	top := r.Dy()/2 - int(ascent)
	plate := image.Rect(r.Dx()/2-width/2-gap*2, top-gap*2, r.Dx()/2+width/2+gap*2, top+int(face.LineHeight(textSize))+gap*2)
	if err := s.DrawRect(plate, gap*2, kiosk.Border{}, brush.Solid(pixel.Color{A: 0xa0})); err != nil {
		return err
	}
	if err := s.DrawText(r.Dx()/2-width/2, r.Dy()/2, face.Layout(banner, textSize), pixel.White); err != nil {
		return err
	}

	// Rainbow line fan from the bottom center
	rainbow := brush.Rainbow()
	defer rainbow.Stop()
	var (
		origin = image.Pt(r.Dx()/2, r.Dy()-1)
		length = float64(r.Dy()) / 3
	)
	for i := 0; i <= 12; i++ {
		a := math.Pi + math.Pi*float64(i)/12 + float64(offset%24)*math.Pi/288
		end := origin.Add(image.Pt(int(length*math.Cos(a)), int(length*math.Sin(a))))
		if err := s.DrawLine(origin.X, origin.Y, end.X, end.Y, rainbow); err != nil {
			return err
		}
	}
	return nil
}
