package sky

import (
	"image"
	"image/color"
	"math/rand/v2"
	"time"
)

// Surface is the drawable raster target a frame is painted on.
type Surface interface {
	Size() (width, height int)
	FillRect(x, y, w, h int, c color.NRGBA)
	DrawImage(src image.Image, dst image.Rectangle)
}

// Rand is the randomness the generators draw from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG-backed generator. A zero seed picks one from the wall clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Clock returns the current time in milliseconds on a monotonic timeline.
type Clock func() float64

// WallClock measures milliseconds since the call that created it.
func WallClock() Clock {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start)) / float64(time.Millisecond)
	}
}

// DeviceClass selects which optional passes a viewport can afford.
type DeviceClass int

const (
	Desktop DeviceClass = iota
	Mobile
)

func (d DeviceClass) String() string {
	switch d {
	case Mobile:
		return "mobile"
	default:
		return "desktop"
	}
}

func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	if alpha <= 0 {
		return color.NRGBA{R: c.R, G: c.G, B: c.B}
	}
	if alpha >= 1 {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha*255 + 0.5)}
}
