// Package host holds what every output (framebuffer, window, terminal,
// headless) shares: a mounted scheduler painting onto its own canvas.
package host

import (
	"image"

	"github.com/rook-computer/pixelsky/internal/config"
	"github.com/rook-computer/pixelsky/internal/raster"
	"github.com/rook-computer/pixelsky/internal/sky"
	"github.com/rook-computer/pixelsky/internal/state"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// FollowWidthEvent undoes a posted DeviceClassEvent: an auto config picks
// the class from width again, starting with the current one. The embedded
// class is unused.
type FollowWidthEvent struct{ sky.DeviceClassEvent }

// Stage owns one scheduler and the canvas it is attached to.
// Like the scheduler it is confined to the host's frame loop.
type Stage struct {
	Config config.Config
	Canvas *raster.Canvas
	Sched  *sky.Scheduler

	logger Logger
	// pinned is set once a DeviceClassEvent arrives; width no longer picks the class
	// until a FollowWidthEvent clears it.
	pinned bool
}

// Mount builds the canvas and the scheduler for a logical size. The device
// class comes from the config, or from width when the config says auto.
func Mount(cfg config.Config, width, height int, pixelRatio float64, clock sky.Clock, logger Logger) *Stage {
	class := cfg.DeviceClassFor(width)

	s := &Stage{
		Config: cfg,
		Canvas: raster.NewCanvas(width, height),
		Sched:  sky.NewScheduler(cfg.Sky(class), sky.NewRand(cfg.Seed), clock),
		logger: logger,
	}
	if logger != nil {
		s.Sched.Logger = logger
	}
	s.Sched.Attach(s.Canvas)
	s.Sched.Resize(width, height, pixelRatio)
	s.Sched.SetDeviceClass(class)
	if cfg.ReducedMotion {
		s.Sched.SetReducedMotion(true)
	}
	s.infof("mounted %dx%d device=%s stars=%d", width, height, class, len(s.Sched.Scene().Stars()))
	return s
}

// Apply routes one external event. Resizes reach the canvas as well.
func (s *Stage) Apply(ev sky.Event) sky.Frame {
	switch e := ev.(type) {
	case sky.ResizeEvent:
		s.Resize(e.Width, e.Height, e.PixelRatio)
		return sky.Frame{}
	case sky.DeviceClassEvent:
		s.pinned = true
	case FollowWidthEvent:
		s.pinned = false
		if s.Config.Device == config.DeviceAuto {
			w, _ := s.Canvas.Size()
			s.Sched.SetDeviceClass(s.Config.DeviceClassFor(w))
		}
		return sky.Frame{}
	}
	return s.Sched.Update(ev)
}

// Drain applies every queued event. Visibility changes also move store
// between RUNNING and SUSPENDED.
func (s *Stage) Drain(q *Queue, store *state.Store) {
	q.Drain(func(ev sky.Event) {
		s.Apply(ev)
		v, ok := ev.(sky.VisibilityEvent)
		if !ok || store == nil {
			return
		}
		if v.Visible {
			store.SetPhase(state.RUNNING)
		} else {
			store.SetPhase(state.SUSPENDED)
		}
	})
}

// Resize resizes the canvas and the scene, then reclassifies the device
// when the config leaves it on auto and nothing pinned it.
func (s *Stage) Resize(width, height int, pixelRatio float64) {
	if w, h := s.Canvas.Size(); w != width || h != height {
		s.Canvas.Resize(width, height)
	}
	s.Sched.Resize(width, height, pixelRatio)
	if s.Config.Device == config.DeviceAuto && !s.pinned {
		s.Sched.SetDeviceClass(s.Config.DeviceClassFor(width))
	}
}

// Tick renders one native refresh stamped with the scheduler clock.
func (s *Stage) Tick() sky.Frame { return s.Sched.Tick() }

func (s *Stage) Stats() sky.Stats { return s.Sched.Stats() }

// Image is the live canvas. It changes on the next Tick.
func (s *Stage) Image() *image.RGBA { return s.Canvas.Image() }

func (s *Stage) Close() { s.Sched.Close() }

func (s *Stage) infof(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Infof("stage", format, args...)
	}
}
