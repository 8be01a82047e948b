package sky

import (
	"image/color"
	"math"
)

// Particle is a firefly drifting upward with a pulsing glow.
type Particle struct {
	X, Y       float64
	VY         float64 // pixels per rendered frame, negative is up
	Age        float64 // ms
	MaxLife    float64 // ms
	Color      color.RGBA
	PhaseX     float64
	PulseSpeed float64
	Phase      float64

	dead bool
}

// Envelope is the fade curve over a lifetime ratio: ramp in over the first 10%,
// hold, ramp out over the last 30%.
func Envelope(lifeRatio float64) float64 {
	switch {
	case lifeRatio < 0:
		return 0
	case lifeRatio < 0.1:
		return lifeRatio / 0.1
	case lifeRatio > 1:
		return 0
	case lifeRatio > 0.7:
		return (1 - lifeRatio) / 0.3
	default:
		return 1
	}
}

// Alpha combines the fade envelope with the sine pulse.
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	pulse := 0.6 + 0.4*math.Sin(p.Phase+p.Age*0.001*p.PulseSpeed)
	return Envelope(p.Age/p.MaxLife) * pulse
}

// SpawnParticle places a firefly somewhere in the lower 70% of the surface.
func SpawnParticle(rng Rand, width, height int) Particle {
	c := fireflyGold
	if rng.Float64() > 0.4 {
		c = fireflyTeal
	}
	return Particle{
		X:          rng.Float64() * float64(width),
		Y:          float64(height) * (0.3 + rng.Float64()*0.7),
		VY:         -(0.1 + rng.Float64()*0.2),
		MaxLife:    5000 + rng.Float64()*5000,
		Color:      c,
		PhaseX:     rng.Float64() * tau,
		PulseSpeed: 1.5 + rng.Float64()*2,
		Phase:      rng.Float64() * tau,
	}
}

// ParticlePool is a fixed-capacity arena of live particles.
// Expired slots are marked during a pass and compacted after it.
type ParticlePool struct {
	items []Particle
}

// NewParticlePool allocates room for capacity particles.
func NewParticlePool(capacity int) *ParticlePool {
	if capacity < 0 {
		capacity = 0
	}
	return &ParticlePool{items: make([]Particle, 0, capacity)}
}

// Len is the number of live particles.
func (pp *ParticlePool) Len() int { return len(pp.items) }

// Cap is the pool capacity.
func (pp *ParticlePool) Cap() int { return cap(pp.items) }

// Full reports whether no more particles fit.
func (pp *ParticlePool) Full() bool { return len(pp.items) >= cap(pp.items) }

// Add appends p if there is room.
func (pp *ParticlePool) Add(p Particle) bool {
	if pp.Full() {
		return false
	}
	p.dead = false
	pp.items = append(pp.items, p)
	return true
}

// At returns a pointer to the i-th live particle.
func (pp *ParticlePool) At(i int) *Particle { return &pp.items[i] }

// Clear drops every particle.
func (pp *ParticlePool) Clear() { pp.items = pp.items[:0] }

// Age advances every particle by dt and removes those that reached their lifespan.
// Survivors are integrated one step. It returns the number removed.
func (pp *ParticlePool) Age(dt float64) int {
	removed := 0
	for i := range pp.items {
		p := &pp.items[i]
		p.Age += dt
		if p.Age >= p.MaxLife {
			p.dead = true
			removed++
			continue
		}
		p.Y += p.VY
		p.X += math.Sin(p.PhaseX+p.Age*0.0015) * 0.3
	}
	if removed > 0 {
		pp.compact()
	}
	return removed
}

func (pp *ParticlePool) compact() {
	live := pp.items[:0]
	for _, p := range pp.items {
		if !p.dead {
			live = append(live, p)
		}
	}
	pp.items = live
}

func drawParticles(surf Surface, pool *ParticlePool) {
	for i := range pool.items {
		p := &pool.items[i]
		alpha := p.Alpha()
		px := int(math.Floor(p.X))
		py := int(math.Floor(p.Y))
		surf.FillRect(px-1, py-1, 4, 4, withAlpha(p.Color, alpha*0.20))
		surf.FillRect(px, py, 2, 2, withAlpha(p.Color, alpha*0.9))
	}
}
