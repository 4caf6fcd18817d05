// Package ttf lays out strings as glyph outlines using TrueType fonts.
package ttf

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/BeatGlow/kiosk/text"
)

// Glyphs are loaded at this many pixels per em, and normalized to em units.
const emScale = 1024

var scale = fixed.I(emScale)

// Face lays out text using a parsed TrueType font. It is safe for concurrent use.
type Face struct {
	font *truetype.Font
	mu   sync.Mutex
	buf  truetype.GlyphBuf
}

// Parse a TrueType font.
func Parse(ttf []byte) (*Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return &Face{font: f}, nil
}

var defaultFace = sync.OnceValue(func() *Face {
	f, err := Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	return f
})

// Default returns the Go Regular font face.
func Default() *Face {
	return defaultFace()
}

// Name of the font.
func (f *Face) Name() string {
	return f.font.Name(truetype.NameIDFontFullName)
}

// Metrics returns the ascent (above the baseline) and descent (below the
// baseline) in pixels at size pixels per em.
func (f *Face) Metrics(size float32) (ascent, descent float32) {
	b := f.font.Bounds(scale)
	return norm(b.Max.Y) * size, -norm(b.Min.Y) * size
}

// LineHeight is the distance between baselines in pixels.
func (f *Face) LineHeight(size float32) float32 {
	ascent, descent := f.Metrics(size)
	return ascent + descent
}

// Layout returns the outlines for s at size pixels per em, with the text
// origin on the baseline of the first line. A newline starts a new line.
func (f *Face) Layout(s string, size float32) []text.Glyph {
	glyphs, _ := f.layout(s, size)
	return glyphs
}

// Advance is the width of the widest line of s in pixels.
func (f *Face) Advance(s string, size float32) float32 {
	_, width := f.layout(s, size)
	return width
}

func (f *Face) layout(s string, size float32) ([]text.Glyph, float32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		glyphs  []text.Glyph
		x, y    float32
		width   float32
		prev    truetype.Index
		hasPrev bool
		line    = f.LineHeight(size)
	)
	for _, r := range s {
		if r == '\n' {
			width = max(width, x)
			x, y = 0, y+line
			hasPrev = false
			continue
		}

		i := f.font.Index(r)
		if hasPrev {
			x += norm(f.font.Kern(scale, prev, i)) * size
		}
		prev, hasPrev = i, true

		if err := f.buf.Load(f.font, scale, i, font.HintingNone); err != nil {
			continue
		}
		if outline := f.outline(); len(outline) > 0 {
			glyphs = append(glyphs, text.Glyph{
				Origin:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y)},
				Size:    size,
				Outline: outline,
			})
		}
		x += norm(f.buf.AdvanceWidth) * size
	}
	return glyphs, max(width, x)
}

// outline converts the contours of the loaded glyph. Two consecutive off-curve
// points imply an on-curve point in the middle of those two.
func (f *Face) outline() []text.Segment {
	var (
		segments []text.Segment
		e0       int
	)
	for _, e1 := range f.buf.Ends {
		segments = appendContour(segments, f.buf.Points[e0:e1])
		e0 = e1
	}
	return segments
}

func appendContour(segments []text.Segment, ps []truetype.Point) []text.Segment {
	if len(ps) == 0 {
		return segments
	}

	start := point(ps[0])
	others := ps[1:]
	if !onCurve(ps[0]) {
		last := ps[len(ps)-1]
		if onCurve(last) {
			start = point(last)
			others = ps[:len(ps)-1]
		} else {
			start = mid(start, point(last))
			others = ps
		}
	}

	segments = append(segments, text.Segment{Op: text.MoveTo, Args: [3]text.Point{start}})
	q0, on0 := start, true
	for _, p := range others {
		q, on := point(p), onCurve(p)
		switch {
		case on && on0:
			segments = append(segments, text.Segment{Op: text.LineTo, Args: [3]text.Point{q}})
		case on:
			segments = append(segments, text.Segment{Op: text.QuadTo, Args: [3]text.Point{q0, q}})
		case !on0:
			segments = append(segments, text.Segment{Op: text.QuadTo, Args: [3]text.Point{q0, mid(q0, q)}})
		}
		q0, on0 = q, on
	}
	if on0 {
		segments = append(segments, text.Segment{Op: text.LineTo, Args: [3]text.Point{start}})
	} else {
		segments = append(segments, text.Segment{Op: text.QuadTo, Args: [3]text.Point{q0, start}})
	}
	return segments
}

func onCurve(p truetype.Point) bool {
	return p.Flags&0x01 != 0
}

func point(p truetype.Point) text.Point {
	return text.Point{X: norm(p.X), Y: norm(p.Y)}
}

func mid(a, b text.Point) text.Point {
	return text.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func norm(v fixed.Int26_6) float32 {
	return float32(v) / (64 * emScale)
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
