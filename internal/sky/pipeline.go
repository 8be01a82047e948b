package sky

import (
	"image"
	"strings"
)

// Pass identifies one draw pass of a frame.
type Pass uint16

const (
	PassSky Pass = 1 << iota
	PassStars
	PassAurora
	PassClouds
	PassParticles
	PassShootingStar
	PassScanlines
)

var passNames = []struct {
	pass Pass
	name string
}{
	{PassSky, "sky"},
	{PassStars, "stars"},
	{PassAurora, "aurora"},
	{PassClouds, "clouds"},
	{PassParticles, "particles"},
	{PassShootingStar, "shooting-star"},
	{PassScanlines, "scanlines"},
}

// Has reports whether every pass in q ran.
func (p Pass) Has(q Pass) bool { return p&q == q }

func (p Pass) String() string {
	if p == 0 {
		return "none"
	}
	var parts []string
	for _, pn := range passNames {
		if p.Has(pn.pass) {
			parts = append(parts, pn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Config tunes the entity pools and the frame scheduler.
type Config struct {
	StarCount           int
	ParticleCap         int
	ParticleSpawnChance float64 // per rendered frame
	ShootingStarChance  float64 // per rendered frame while none is live
	MaxFrameDelta       float64 // ms
	HalfRate            bool    // render every other host callback
}

// DefaultConfig is the desktop configuration.
func DefaultConfig() Config {
	return Config{
		StarCount:           300,
		ParticleCap:         50,
		ParticleSpawnChance: 0.05,
		ShootingStarChance:  0.001,
		MaxFrameDelta:       100,
		HalfRate:            true,
	}
}

// Scene owns every entity pool and the cached static layer.
type Scene struct {
	cfg Config
	rng Rand

	width, height int
	pixelRatio    float64
	static        *image.RGBA

	stars     []Star
	clouds    []Cloud
	particles *ParticlePool
	shooting  *ShootingStar

	reduced bool
	device  DeviceClass
}

// NewScene creates the star pool. Clouds and the static layer wait for the first Resize.
func NewScene(cfg Config, rng Rand) *Scene {
	return &Scene{
		cfg:        cfg,
		rng:        rng,
		pixelRatio: 1,
		stars:      GenerateStars(rng, cfg.StarCount),
		particles:  NewParticlePool(cfg.ParticleCap),
	}
}

// Resize rebuilds the static layer and regenerates clouds. Stars are kept.
func (sc *Scene) Resize(width, height int, pixelRatio float64) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	sc.width, sc.height, sc.pixelRatio = width, height, pixelRatio
	sc.static = BuildStaticLayer(width, height)
	sc.clouds = GenerateClouds(sc.rng, width, height)
}

// Size is the logical size from the last Resize.
func (sc *Scene) Size() (int, int) { return sc.width, sc.height }

// PixelRatio is the device pixel ratio from the last Resize.
func (sc *Scene) PixelRatio() float64 { return sc.pixelRatio }

// Static is the cached gradient and nebula layer, nil before the first usable Resize.
func (sc *Scene) Static() *image.RGBA { return sc.static }

// Stars exposes the star pool.
func (sc *Scene) Stars() []Star { return sc.stars }

// Clouds exposes the cloud pool.
func (sc *Scene) Clouds() []Cloud { return sc.clouds }

// Particles exposes the firefly arena.
func (sc *Scene) Particles() *ParticlePool { return sc.particles }

// ShootingStar returns the live streak, if any.
func (sc *Scene) ShootingStar() *ShootingStar { return sc.shooting }

// ReducedMotion reports the motion preference the scene composes with.
func (sc *Scene) ReducedMotion() bool { return sc.reduced }

// Device reports the device class the scene composes for.
func (sc *Scene) Device() DeviceClass { return sc.device }

// Compose advances every entity by dt and paints one frame, in pass order.
// A zero-sized scene or surface produces an empty frame.
func (sc *Scene) Compose(surf Surface, timestamp, dt float64) Pass {
	w, h := sc.width, sc.height
	sw, sh := surf.Size()
	if w <= 0 || h <= 0 || sw <= 0 || sh <= 0 {
		return 0
	}

	if sc.static != nil {
		surf.DrawImage(sc.static, image.Rect(0, 0, sw, sh))
	} else {
		surf.FillRect(0, 0, sw, sh, withAlpha(BackgroundColor, 1))
	}
	passes := PassSky

	drawStars(surf, sc.stars, w, h, timestamp, dt, sc.reduced)
	passes |= PassStars

	if sc.reduced {
		return passes
	}

	desktop := sc.device == Desktop
	if desktop {
		drawAurora(surf, w, h, timestamp)
		passes |= PassAurora
	}

	drawClouds(surf, sc.clouds, w)
	passes |= PassClouds

	sc.particles.Age(dt)
	drawParticles(surf, sc.particles)
	if sc.rng.Float64() < sc.cfg.ParticleSpawnChance && !sc.particles.Full() {
		sc.particles.Add(SpawnParticle(sc.rng, w, h))
	}
	passes |= PassParticles

	if ss := sc.shooting; ss != nil {
		if ss.Step(dt, w, h) {
			drawShootingStar(surf, ss, w, h)
			if !ss.InBounds() {
				sc.shooting = nil
			}
		} else {
			sc.shooting = nil
		}
	} else {
		sc.shooting = TrySpawnShootingStar(sc.rng, sc.cfg.ShootingStarChance)
	}
	passes |= PassShootingStar

	if desktop {
		drawScanlines(surf, w, h)
		passes |= PassScanlines
	}
	return passes
}

func (sc *Scene) release() {
	sc.static = nil
	sc.stars = nil
	sc.clouds = nil
	sc.particles.Clear()
	sc.shooting = nil
}
