package draw

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBresenham(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           []image.Point
	}{
		{"point", 3, 3, 3, 3, []image.Point{{3, 3}}},
		{"horizontal", 0, 0, 4, 0, []image.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}},
		{"vertical-reverse", 1, 3, 1, 0, []image.Point{{1, 3}, {1, 2}, {1, 1}, {1, 0}}},
		{"diagonal", 0, 0, 4, 4, []image.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}}},
		{"shallow", 0, 0, 4, 2, []image.Point{{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			var got []image.Point
			Bresenham(test.x0, test.y0, test.x1, test.y1, func(x, y int) {
				got = append(got, image.Pt(x, y))
			})
			assert.Equal(it, test.want, got)
		})
	}
}

func TestBresenhamVisitsOnce(t *testing.T) {
	ends := []image.Point{{0, 0}, {17, 5}, {-9, 13}, {3, -21}, {-8, -8}, {0, 12}}
	for _, a := range ends {
		for _, b := range ends {
			var (
				seen = make(map[image.Point]bool)
				last image.Point
				n    int
			)
			Bresenham(a.X, a.Y, b.X, b.Y, func(x, y int) {
				p := image.Pt(x, y)
				if seen[p] {
					t.Fatalf("%s-%s: pixel %s visited twice", a, b, p)
				}
				if n > 0 && (abs(p.X-last.X) > 1 || abs(p.Y-last.Y) > 1) {
					t.Fatalf("%s-%s: gap between %s and %s", a, b, last, p)
				}
				seen[p] = true
				last = p
				n++
			})
			assert.True(t, seen[a], "%s-%s: start not visited", a, b)
			assert.True(t, seen[b], "%s-%s: end not visited", a, b)
			assert.Equal(t, max(abs(b.X-a.X), abs(b.Y-a.Y))+1, n, "%s-%s", a, b)
		}
	}
}

func TestBresenhamClip(t *testing.T) {
	var (
		ends  = []image.Point{{0, 0}, {17, 5}, {-9, 13}, {3, -21}, {-8, -8}, {0, 12}, {30, 2}}
		clips = []image.Rectangle{
			image.Rect(0, 0, 10, 10),
			image.Rect(-5, -5, 5, 5),
			image.Rect(2, -30, 4, 30),
			image.Rect(-20, 3, 40, 4),
			image.Rect(100, 100, 110, 110),
		}
	)
	for _, clip := range clips {
		for _, a := range ends {
			for _, b := range ends {
				var want, got []image.Point
				Bresenham(a.X, a.Y, b.X, b.Y, func(x, y int) {
					if p := image.Pt(x, y); p.In(clip) {
						want = append(want, p)
					}
				})
				BresenhamClip(a.X, a.Y, b.X, b.Y, clip, func(x, y int) {
					got = append(got, image.Pt(x, y))
				})
				assert.Equal(t, want, got, "%s-%s in %s", a, b, clip)
			}
		}
	}
}

func TestBresenhamClipFar(t *testing.T) {
	clip := image.Rect(0, 0, 16, 16)

	var got []image.Point
	BresenhamClip(-1<<40, 5, 10, 5, clip, func(x, y int) {
		got = append(got, image.Pt(x, y))
	})
	assert.Len(t, got, 11)
	assert.Equal(t, image.Pt(0, 5), got[0])
	assert.Equal(t, image.Pt(10, 5), got[10])

	got = got[:0]
	BresenhamClip(1<<40, 1<<40, 3, 3, clip, func(x, y int) {
		got = append(got, image.Pt(x, y))
	})
	require.Len(t, got, 13)
	assert.Equal(t, image.Pt(15, 15), got[0])
	assert.Equal(t, image.Pt(3, 3), got[12])

	var n int
	BresenhamClip(0, -1<<40, 3, 1<<40, clip, func(x, y int) {
		assert.True(t, image.Pt(x, y).In(clip))
		n++
	})
	assert.Equal(t, 16, n, "one pixel per row of a steep line")
}

func TestRoundedSpans(t *testing.T) {
	t.Run("square", func(it *testing.T) {
		rect := image.Rect(2, 3, 12, 8)
		var rows int
		RoundedSpans(rect, 0, func(y, x0, x1 int) {
			assert.Equal(it, rect.Min.Y+rows, y)
			assert.Equal(it, 2, x0)
			assert.Equal(it, 12, x1)
			rows++
		})
		assert.Equal(it, 5, rows)
	})

	t.Run("rounded", func(it *testing.T) {
		rect := image.Rect(0, 0, 20, 20)
		spans := make(map[int][2]int)
		RoundedSpans(rect, 6, func(y, x0, x1 int) {
			spans[y] = [2]int{x0, x1}
		})
		assert.Len(it, spans, 20)
		assert.Greater(it, spans[0][0], 0, "corner pixel must be cut")
		assert.Equal(it, [2]int{0, 20}, spans[10])
		for y := 0; y < 20; y++ {
			// Symmetric in both axes.
			assert.Equal(it, 20-spans[y][1], spans[y][0], "row %d", y)
			assert.Equal(it, spans[19-y], spans[y], "row %d", y)
		}
		for y := 1; y < 10; y++ {
			assert.LessOrEqual(it, spans[y][0], spans[y-1][0], "row %d", y)
		}
	})

	t.Run("oversized radius", func(it *testing.T) {
		var rows int
		RoundedSpans(image.Rect(0, 0, 4, 4), 100, func(y, x0, x1 int) {
			assert.Less(it, x0, x1)
			rows++
		})
		assert.Equal(it, 4, rows)
	})

	t.Run("empty", func(it *testing.T) {
		RoundedSpans(image.Rectangle{}, 3, func(y, x0, x1 int) {
			it.Fatal("empty rectangle yields spans")
		})
	})
}

func TestBorderSpans(t *testing.T) {
	rect := image.Rect(0, 0, 10, 8)
	covered := make(map[image.Point]int)
	BorderSpans(rect, 0, 2, func(y, x0, x1 int) {
		for x := x0; x < x1; x++ {
			covered[image.Pt(x, y)]++
		}
	})
	for y := 0; y < 8; y++ {
		for x := 0; x < 10; x++ {
			p := image.Pt(x, y)
			if p.In(rect.Inset(2)) {
				assert.Zero(t, covered[p], "%s inside border", p)
			} else {
				assert.Equal(t, 1, covered[p], "%s on border", p)
			}
		}
	}

	var rows int
	BorderSpans(image.Rect(0, 0, 3, 3), 0, 5, func(y, x0, x1 int) {
		assert.Equal(t, [2]int{0, 3}, [2]int{x0, x1})
		rows++
	})
	assert.Equal(t, 3, rows, "thick border covers the whole rectangle")
}
