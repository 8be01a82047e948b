package sky

import "math"

const (
	// leaving this far past any edge ends the streak
	shootingMargin = 0.1
)

// Point is a normalized trail sample.
type Point struct{ X, Y float64 }

// ShootingStar is a short-lived streak with a bounded trail, newest sample first.
type ShootingStar struct {
	X, Y     float64 // normalized
	VX, VY   float64 // pixels per rendered frame
	Trail    []Point
	MaxTrail int
	Life     float64 // ms
	MaxLife  float64 // ms
}

// TrySpawnShootingStar returns a new streak with probability chance, else nil.
// Streaks enter from the upper-left/central band and head down and to the right.
func TrySpawnShootingStar(rng Rand, chance float64) *ShootingStar {
	if rng.Float64() >= chance {
		return nil
	}
	angle := (20 + rng.Float64()*50) * math.Pi / 180
	speed := 3 + rng.Float64()*3
	maxTrail := 8 + rng.IntN(5)
	return &ShootingStar{
		X:        rng.Float64() * 0.7,
		Y:        rng.Float64() * 0.3,
		VX:       math.Cos(angle) * speed,
		VY:       math.Sin(angle) * speed,
		Trail:    make([]Point, 0, maxTrail),
		MaxTrail: maxTrail,
		MaxLife:  500 + rng.Float64()*700,
	}
}

// Step ages the streak, moves it and records the new head in the trail.
// It returns false once the streak has expired or left the extended viewport.
func (s *ShootingStar) Step(dt float64, width, height int) bool {
	s.Life += dt
	if s.Life >= s.MaxLife || width <= 0 || height <= 0 {
		return false
	}
	s.X += s.VX / float64(width)
	s.Y += s.VY / float64(height)
	s.pushTrail(Point{X: s.X, Y: s.Y})
	return true
}

// InBounds reports whether the head is still within the extended viewport.
func (s *ShootingStar) InBounds() bool {
	return s.X >= -shootingMargin && s.X <= 1+shootingMargin &&
		s.Y >= -shootingMargin && s.Y <= 1+shootingMargin
}

func (s *ShootingStar) pushTrail(p Point) {
	if s.MaxTrail <= 0 {
		s.Trail = s.Trail[:0]
		return
	}
	if len(s.Trail) < s.MaxTrail {
		s.Trail = append(s.Trail, Point{})
	}
	copy(s.Trail[1:], s.Trail[:len(s.Trail)-1])
	s.Trail[0] = p
}

func drawShootingStar(surf Surface, s *ShootingStar, w, h int) {
	fw, fh := float64(w), float64(h)
	remaining := 1 - s.Life/s.MaxLife
	n := float64(len(s.Trail))
	for i, t := range s.Trail {
		px := int(math.Floor(t.X * fw))
		py := int(math.Floor(t.Y * fh))
		alpha := (1 - float64(i)/n) * remaining
		if i == 0 {
			surf.FillRect(px, py, 2, 2, withAlpha(starWhite, alpha))
			continue
		}
		surf.FillRect(px, py, 1, 1, withAlpha(starBlue, alpha*0.7))
	}
}
