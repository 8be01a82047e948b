package sky

import (
	"image"
	"image/color"
)

type fill struct {
	x, y, w, h int
	c          color.NRGBA
}

// recordSurface captures draw calls instead of painting.
type recordSurface struct {
	w, h  int
	fills []fill
	blits int
}

func newRecordSurface(w, h int) *recordSurface { return &recordSurface{w: w, h: h} }

func (r *recordSurface) Size() (int, int) { return r.w, r.h }

func (r *recordSurface) FillRect(x, y, w, h int, c color.NRGBA) {
	r.fills = append(r.fills, fill{x, y, w, h, c})
}

func (r *recordSurface) DrawImage(src image.Image, dst image.Rectangle) { r.blits++ }

func (r *recordSurface) reset() {
	r.fills = r.fills[:0]
	r.blits = 0
}

// constRand always returns the same values.
type constRand struct {
	f float64
	n int
}

func (c constRand) Float64() float64 { return c.f }

func (c constRand) IntN(n int) int {
	if c.n >= n {
		return n - 1
	}
	return c.n
}

// fakeClock is advanced by hand.
type fakeClock struct{ now float64 }

func (f *fakeClock) clock() Clock { return func() float64 { return f.now } }

func (f *fakeClock) advance(ms float64) float64 {
	f.now += ms
	return f.now
}
