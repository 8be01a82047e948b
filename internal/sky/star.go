package sky

import (
	"image/color"
	"math"
)

const (
	tau = 2 * math.Pi

	starWrapLimit  = 1.02 // x wraps once it drifts past this
	starDriftScale = 0.06
	starMinAlpha   = 0.2
	starStillAlpha = 0.7 // fixed alpha under reduced motion
	starMaxY       = 0.95
	clusterPercent = 15
	clusterSpread  = 0.04
)

// Star is a point light in normalized surface coordinates.
type Star struct {
	X, Y       float64
	Size       int
	Period     float64 // twinkle period, ms
	Phase      float64 // radians
	Color      color.RGBA
	BaseAlpha  float64
	DriftSpeed float64
}

// GenerateStars builds count stars plus a 15% cluster pass grouped around them.
func GenerateStars(rng Rand, count int) []Star {
	if count <= 0 {
		return nil
	}
	clusters := count * clusterPercent / 100
	stars := make([]Star, 0, count+clusters)

	for i := 0; i < count; i++ {
		hue := starHue(rng)
		y := math.Pow(rng.Float64(), 0.7) * starMaxY

		size := 3
		switch roll := rng.Float64(); {
		case roll < 0.60:
			size = 1
		case roll < 0.90:
			size = 2
		}

		stars = append(stars, Star{
			X:          rng.Float64(),
			Y:          y,
			Size:       size,
			Period:     2000 + rng.Float64()*3000,
			Phase:      rng.Float64() * tau,
			Color:      hue,
			BaseAlpha:  starBaseAlpha(y),
			DriftSpeed: driftForSize(size),
		})
	}

	for i := 0; i < clusters; i++ {
		parent := stars[rng.IntN(len(stars))]
		hue := starHue(rng)
		y := clamp(parent.Y+(rng.Float64()-0.5)*clusterSpread, 0, starMaxY)
		size := 2
		if rng.Float64() < 0.7 {
			size = 1
		}
		stars = append(stars, Star{
			X:          clamp(parent.X+(rng.Float64()-0.5)*clusterSpread, 0, 1),
			Y:          y,
			Size:       size,
			Period:     2000 + rng.Float64()*3000,
			Phase:      rng.Float64() * tau,
			Color:      hue,
			BaseAlpha:  starBaseAlpha(y),
			DriftSpeed: driftForSize(size),
		})
	}
	return stars
}

// 80% white, 8% gold, 12% blue.
func starHue(rng Rand) color.RGBA {
	roll := rng.Float64()
	switch {
	case roll > 0.92:
		return starGold
	case roll > 0.80:
		return starBlue
	default:
		return starWhite
	}
}

func starBaseAlpha(y float64) float64 {
	return 0.5 + (1-y/starMaxY)*0.4
}

// larger stars read as closer, so they drift faster
func driftForSize(size int) float64 {
	switch size {
	case 1:
		return 0.0001
	case 2:
		return 0.0003
	default:
		return 0.0005
	}
}

// Alpha is the twinkle brightness at timestamp ms, never below 0.2.
func (s *Star) Alpha(timestamp float64) float64 {
	a := s.BaseAlpha * (0.5 + 0.5*math.Sin(timestamp/s.Period*tau+s.Phase))
	if a < starMinAlpha {
		a = starMinAlpha
	}
	return a
}

// Drift advances the star horizontally and wraps it back to the left edge.
func (s *Star) Drift(dt float64) {
	s.X += s.DriftSpeed * dt * starDriftScale
	for s.X > starWrapLimit {
		s.X -= starWrapLimit
	}
}

func drawStars(surf Surface, stars []Star, w, h int, timestamp, dt float64, reduced bool) {
	fw, fh := float64(w), float64(h)
	for i := range stars {
		star := &stars[i]
		if !reduced {
			star.Drift(dt)
		}

		sx := int(math.Floor(star.X * fw))
		sy := int(math.Floor(star.Y * fh))

		alpha := starStillAlpha
		if !reduced {
			alpha = star.Alpha(timestamp)
		}
		surf.FillRect(sx, sy, star.Size, star.Size, withAlpha(star.Color, alpha))

		if star.Size == 3 && !reduced {
			glint := withAlpha(star.Color, alpha*0.4)
			surf.FillRect(sx-1, sy+1, 1, 1, glint)
			surf.FillRect(sx+3, sy+1, 1, 1, glint)
			surf.FillRect(sx+1, sy-1, 1, 1, glint)
			surf.FillRect(sx+1, sy+3, 1, 1, glint)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
