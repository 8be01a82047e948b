package sky

// Event is an external input consumed by Scheduler.Update.
type Event interface{ event() }

// FrameEvent is one native refresh callback from the host, timestamp in ms.
type FrameEvent struct{ Timestamp float64 }

// ResizeEvent reports a new logical surface size.
type ResizeEvent struct {
	Width, Height int
	PixelRatio    float64
}

// VisibilityEvent reports the host surface being shown or hidden.
type VisibilityEvent struct{ Visible bool }

// ReducedMotionEvent reports a change of the reduced-motion preference.
type ReducedMotionEvent struct{ Reduced bool }

// DeviceClassEvent reports a change of viewport class.
type DeviceClassEvent struct{ Class DeviceClass }

func (FrameEvent) event()         {}
func (ResizeEvent) event()        {}
func (VisibilityEvent) event()    {}
func (ReducedMotionEvent) event() {}
func (DeviceClassEvent) event()   {}

// Frame is the outcome of one FrameEvent.
type Frame struct {
	Rendered  bool
	Timestamp float64
	DT        float64
	Passes    Pass
}

// Stats are running counters for observers.
type Stats struct {
	Rendered  uint64 // frames composed
	Throttled uint64 // callbacks dropped by the half-rate toggle
	Suspended uint64 // callbacks ignored while hidden
	Skipped   uint64 // callbacks with no surface attached

	LastDT     float64
	LastPasses Pass

	Width, Height int
	Stars         int
	Clouds        int
	Particles     int
	ShootingStar  bool

	Visible       bool
	ReducedMotion bool
	Device        DeviceClass
}

// Scheduler drives the render loop for one mounted surface.
// It is not safe for concurrent use; hosts call it from their frame loop only.
type Scheduler struct {
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	cfg     Config
	scene   *Scene
	clock   Clock
	surface Surface

	visible bool
	closed  bool
	parity  bool
	last    float64

	stats Stats
}

// NewScheduler mounts a scene: the star pool is generated here and only here.
func NewScheduler(cfg Config, rng Rand, clock Clock) *Scheduler {
	if rng == nil {
		rng = NewRand(0)
	}
	if clock == nil {
		clock = WallClock()
	}
	if cfg.MaxFrameDelta <= 0 {
		cfg.MaxFrameDelta = DefaultConfig().MaxFrameDelta
	}
	return &Scheduler{
		cfg:     cfg,
		scene:   NewScene(cfg, rng),
		clock:   clock,
		visible: true,
		last:    clock(),
	}
}

// Attach binds the live surface. A nil surface makes frames skip until one is attached.
func (s *Scheduler) Attach(surface Surface) { s.surface = surface }

// Scene exposes the owned scene.
func (s *Scheduler) Scene() *Scene { return s.scene }

// Now samples the scheduler clock.
func (s *Scheduler) Now() float64 { return s.clock() }

// Update is the single entry point for every external event.
func (s *Scheduler) Update(ev Event) Frame {
	if s.closed {
		return Frame{}
	}
	switch e := ev.(type) {
	case FrameEvent:
		return s.frame(e.Timestamp)
	case ResizeEvent:
		s.scene.Resize(e.Width, e.Height, e.PixelRatio)
		s.infof("resize %dx%d ratio=%.2f clouds=%d", e.Width, e.Height, s.scene.PixelRatio(), len(s.scene.clouds))
	case VisibilityEvent:
		if e.Visible == s.visible {
			return Frame{}
		}
		s.visible = e.Visible
		if e.Visible {
			s.restart()
			s.infof("resumed")
		} else {
			s.infof("suspended")
		}
	case ReducedMotionEvent:
		s.scene.reduced = e.Reduced
		s.restart()
		s.infof("reduced motion=%t", e.Reduced)
	case DeviceClassEvent:
		if s.scene.device != e.Class {
			s.scene.device = e.Class
			s.infof("device class=%s", e.Class)
		}
	}
	return Frame{}
}

// RenderFrame advances and paints one frame at timestamp ms.
func (s *Scheduler) RenderFrame(timestamp float64) Frame {
	return s.Update(FrameEvent{Timestamp: timestamp})
}

// Tick renders a frame stamped with the scheduler clock.
func (s *Scheduler) Tick() Frame { return s.RenderFrame(s.clock()) }

// Resize rebuilds the static layer and the cloud pool. The star pool is untouched.
func (s *Scheduler) Resize(width, height int, pixelRatio float64) {
	s.Update(ResizeEvent{Width: width, Height: height, PixelRatio: pixelRatio})
}

// SetVisible suspends or resumes the loop. Hidden time is discarded, not simulated.
func (s *Scheduler) SetVisible(visible bool) { s.Update(VisibilityEvent{Visible: visible}) }

// SetReducedMotion switches the preference and restarts timing from a fresh sample.
func (s *Scheduler) SetReducedMotion(reduced bool) { s.Update(ReducedMotionEvent{Reduced: reduced}) }

// SetDeviceClass gates the aurora and scanline passes.
func (s *Scheduler) SetDeviceClass(class DeviceClass) { s.Update(DeviceClassEvent{Class: class}) }

// Close unmounts the scheduler and drops every pool. Later calls are no-ops.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.surface = nil
	s.scene.release()
	s.infof("closed after %d frames", s.stats.Rendered)
}

// Closed reports whether Close was called.
func (s *Scheduler) Closed() bool { return s.closed }

// Stats returns a copy of the counters with current pool sizes.
func (s *Scheduler) Stats() Stats {
	st := s.stats
	st.Width, st.Height = s.scene.Size()
	st.Stars = len(s.scene.stars)
	st.Clouds = len(s.scene.clouds)
	st.Particles = s.scene.particles.Len()
	st.ShootingStar = s.scene.shooting != nil
	st.Visible = s.visible
	st.ReducedMotion = s.scene.reduced
	st.Device = s.scene.device
	return st
}

func (s *Scheduler) frame(timestamp float64) Frame {
	if !s.visible {
		s.stats.Suspended++
		return Frame{}
	}
	if s.surface == nil {
		s.stats.Skipped++
		return Frame{}
	}
	if s.cfg.HalfRate {
		s.parity = !s.parity
		if s.parity {
			s.stats.Throttled++
			return Frame{}
		}
	}

	dt := timestamp - s.last
	if dt < 0 {
		dt = 0
	}
	if dt > s.cfg.MaxFrameDelta {
		dt = s.cfg.MaxFrameDelta
	}
	s.last = timestamp

	passes := s.scene.Compose(s.surface, timestamp, dt)
	s.stats.Rendered++
	s.stats.LastDT = dt
	s.stats.LastPasses = passes
	return Frame{Rendered: true, Timestamp: timestamp, DT: dt, Passes: passes}
}

func (s *Scheduler) restart() {
	s.last = s.clock()
}

func (s *Scheduler) infof(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Infof("sky", format, args...)
	}
}
