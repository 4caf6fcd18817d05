package draw

import (
	"image"
	"math/bits"
)

// Bresenham calls plot for every pixel on the line between (x0,y0) and
// (x1,y1), both inclusive. Each pixel is visited exactly once, in order from
// the first to the second point.
func Bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	var (
		dx = abs(x1 - x0)
		dy = -abs(y1 - y0)
		sx = 1
		sy = 1
	)
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// BresenhamClip visits the pixels of Bresenham(x0, y0, x1, y1) that lie within
// clip, in the same order. Only the steps whose major axis coordinate is
// inside clip are walked.
func BresenhamClip(x0, y0, x1, y1 int, clip image.Rectangle, plot func(x, y int)) {
	var (
		dx, dy      = x1 - x0, y1 - y0
		n, m        = abs(dx), abs(dy)
		sx, sy      = sign(dx), sign(dy)
		xMajor      = n >= m
		first, last int
	)
	if xMajor {
		first, last = stepRange(x0, sx, n, clip.Min.X, clip.Max.X)
	} else {
		n, m = m, n
		first, last = stepRange(y0, sy, n, clip.Min.Y, clip.Max.Y)
	}
	for k := first; k <= last; k++ {
		var x, y int
		if xMajor {
			x, y = x0+sx*k, y0+sy*minorStep(k, n, m)
		} else {
			x, y = x0+sx*minorStep(k, n, m), y0+sy*k
		}
		if (image.Point{X: x, Y: y}).In(clip) {
			plot(x, y)
		}
	}
}

// stepRange returns the steps k in [0, n] for which a+s*k is in [lo, hi).
func stepRange(a, s, n, lo, hi int) (first, last int) {
	first, last = 0, n
	if s >= 0 {
		first, last = max(first, lo-a), min(last, hi-1-a)
	} else {
		first, last = max(first, a-hi+1), min(last, a-lo)
	}
	return first, last
}

// minorStep is the minor axis offset of step k on a line with n major and m
// minor axis steps, floor((2mk + n) / 2n), which is where Bresenham's error
// term places it.
func minorStep(k, n, m int) int {
	if m == 0 {
		return 0
	}
	if m == n {
		return k
	}
	hi, lo := bits.Mul64(2*uint64(m), uint64(k))
	lo, carry := bits.Add64(lo, uint64(n), 0)
	q, _ := bits.Div64(hi+carry, lo, 2*uint64(n))
	return int(q)
}

// RoundedSpans calls fn for every row of rect with the half-open horizontal
// span [x0, x1) covered by the rectangle with radius pixels rounded corners.
//
// The radius is limited to half the shortest side.
func RoundedSpans(rect image.Rectangle, radius int, fn func(y, x0, x1 int)) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	var (
		h      = rect.Dy()
		r      = clampRadius(radius, rect)
		extent = arcExtents(r)
	)
	for i := 0; i < h; i++ {
		inset := cornerInset(i, h, r, extent)
		fn(rect.Min.Y+i, rect.Min.X+inset, rect.Max.X-inset)
	}
}

// BorderSpans is like RoundedSpans, but only reports the pixels within
// thickness pixels of the outline. A row may yield two spans.
func BorderSpans(rect image.Rectangle, radius, thickness int, fn func(y, x0, x1 int)) {
	rect = rect.Canon()
	if rect.Empty() || thickness <= 0 {
		return
	}
	inner := rect.Inset(thickness)
	if inner.Dx() < rect.Dx()-2*thickness || inner.Dy() < rect.Dy()-2*thickness || inner.Empty() {
		// Inset collapsed the rectangle, the border covers all of it.
		RoundedSpans(rect, radius, fn)
		return
	}

	var (
		h           = rect.Dy()
		r           = clampRadius(radius, rect)
		extent      = arcExtents(r)
		ih          = inner.Dy()
		ir          = clampRadius(r-thickness, inner)
		innerExtent = arcExtents(ir)
	)
	for i := 0; i < h; i++ {
		var (
			y     = rect.Min.Y + i
			inset = cornerInset(i, h, r, extent)
			x0    = rect.Min.X + inset
			x1    = rect.Max.X - inset
		)
		if y < inner.Min.Y || y >= inner.Max.Y {
			fn(y, x0, x1)
			continue
		}
		innerInset := cornerInset(y-inner.Min.Y, ih, ir, innerExtent)
		if ix := inner.Min.X + innerInset; ix > x0 {
			fn(y, x0, ix)
		}
		if ix := inner.Max.X - innerInset; ix < x1 {
			fn(y, ix, x1)
		}
	}
}

func clampRadius(radius int, rect image.Rectangle) int {
	if radius < 0 {
		return 0
	}
	return min(radius, rect.Dx()/2, rect.Dy()/2)
}

// cornerInset is the number of pixels row i of h rows is indented by the
// corner arcs.
func cornerInset(i, h, r int, extent []int) int {
	switch {
	case i < r:
		return r - extent[r-i]
	case h-1-i < r:
		return r - extent[r-(h-1-i)]
	default:
		return 0
	}
}

// arcExtents traces one octant of a midpoint circle with radius r and mirrors
// it to a quadrant. The result holds, for every vertical distance from the
// center in [0, r], the horizontal extent of the arc.
func arcExtents(r int) []int {
	var (
		extent = make([]int, r+1)
		f      = 1 - r
		ddFx   = 1
		ddFy   = -2 * r
		x      = 0
		y      = r
	)
	set := func(dx, dy int) {
		if dx > extent[dy] {
			extent[dy] = dx
		}
	}
	set(0, r)
	set(r, 0)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		set(x, y)
		set(y, x)
	}
	return extent
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
