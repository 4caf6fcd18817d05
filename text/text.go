// Package text rasterizes glyph outlines into coverage masks.
//
// Outlines are expressed in em units with the origin on the baseline and Y
// growing upwards, as fonts define them. A [Glyph] places an outline at a pixel
// position and size; [Rasterize] turns a run of glyphs into an anti-aliased
// [image.Alpha] mask that can be composited onto any surface.
package text

import (
	"image"
	"math"

	"github.com/golang/freetype/raster"
	"golang.org/x/image/math/fixed"
)

// Point in em units.
type Point struct {
	X, Y float32
}

// Op is an outline drawing command.
type Op uint8

// Outline commands.
const (
	MoveTo  Op = iota // start a new contour at Args[0]
	LineTo            // line to Args[0]
	QuadTo            // quadratic curve through control point Args[0] to Args[1]
	CubicTo           // cubic curve through Args[0] and Args[1] to Args[2]
)

// Segment of an outline.
type Segment struct {
	Op   Op
	Args [3]Point
}

// Glyph is an outline placed relative to the text origin.
type Glyph struct {
	// Origin of the glyph relative to the text origin, in pixels with Y
	// growing downwards.
	Origin fixed.Point26_6

	// Size of one em in pixels.
	Size float32

	// Outline of the glyph; contours are closed implicitly.
	Outline []Segment
}

func (g Glyph) point(p Point) (x, y float32) {
	return float32(g.Origin.X)/64 + p.X*g.Size, float32(g.Origin.Y)/64 - p.Y*g.Size
}

func (g Glyph) fixed(p Point, off image.Point) fixed.Point26_6 {
	x, y := g.point(p)
	return fixed.Point26_6{
		X: toFixed(x - float32(off.X)),
		Y: toFixed(y - float32(off.Y)),
	}
}

// Bounds returns the pixel rectangle, relative to the text origin, that
// contains all glyph outlines. The control points of curves are included.
func Bounds(glyphs []Glyph) image.Rectangle {
	var (
		minX, minY = float32(math.Inf(1)), float32(math.Inf(1))
		maxX, maxY = float32(math.Inf(-1)), float32(math.Inf(-1))
	)
	for _, g := range glyphs {
		for _, s := range g.Outline {
			for _, p := range s.Args[:s.Op.args()] {
				x, y := g.point(p)
				minX, maxX = min(minX, x), max(maxX, x)
				minY, maxY = min(minY, y), max(maxY, y)
			}
		}
	}
	if minX > maxX {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	)
}

// Rasterize renders the glyphs into a coverage mask. The mask covers Bounds,
// the returned point is the position of the mask origin relative to the text
// origin. A nil mask is returned if there is nothing to draw.
func Rasterize(glyphs []Glyph) (*image.Alpha, image.Point) {
	bounds := Bounds(glyphs)
	if bounds.Empty() {
		return nil, image.Point{}
	}

	r := raster.NewRasterizer(bounds.Dx(), bounds.Dy())
	r.UseNonZeroWinding = true
	for _, g := range glyphs {
		addGlyph(r, g, bounds.Min)
	}

	mask := image.NewAlpha(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	r.Rasterize(raster.NewAlphaSrcPainter(mask))
	return mask, bounds.Min
}

func addGlyph(r *raster.Rasterizer, g Glyph, off image.Point) {
	var (
		start, cur fixed.Point26_6
		open       bool
	)
	closeContour := func() {
		if open && cur != start {
			r.Add1(start)
		}
	}
	for _, s := range g.Outline {
		if !open && s.Op != MoveTo {
			start = g.fixed(Point{}, off)
			cur = start
			r.Start(start)
			open = true
		}
		switch s.Op {
		case MoveTo:
			closeContour()
			start = g.fixed(s.Args[0], off)
			cur = start
			r.Start(start)
			open = true
		case LineTo:
			cur = g.fixed(s.Args[0], off)
			r.Add1(cur)
		case QuadTo:
			cur = g.fixed(s.Args[1], off)
			r.Add2(g.fixed(s.Args[0], off), cur)
		case CubicTo:
			cur = g.fixed(s.Args[2], off)
			r.Add3(g.fixed(s.Args[0], off), g.fixed(s.Args[1], off), cur)
		}
	}
	closeContour()
}

func (op Op) args() int {
	switch op {
	case QuadTo:
		return 2
	case CubicTo:
		return 3
	default:
		return 1
	}
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(float64(v) * 64))
}
