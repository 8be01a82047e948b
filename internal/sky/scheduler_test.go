package sky

import (
	"bytes"
	"fmt"
	"testing"
)

func newTestScheduler(t *testing.T, halfRate bool) (*Scheduler, *fakeClock, *recordSurface) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.HalfRate = halfRate
	fc := &fakeClock{}
	s := NewScheduler(cfg, NewRand(1), fc.clock())
	surf := newRecordSurface(320, 200)
	s.Attach(surf)
	s.Resize(320, 200, 1)
	return s, fc, surf
}

type recordLogger struct{ lines []string }

func (l *recordLogger) Infof(component, format string, args ...interface{}) {
	l.lines = append(l.lines, component+": "+fmt.Sprintf(format, args...))
}

func (l *recordLogger) Errorf(component, format string, args ...interface{}) {
	l.lines = append(l.lines, component+": "+fmt.Sprintf(format, args...))
}

func TestScheduler_StarsStayInWrapRange(t *testing.T) {
	s, fc, _ := newTestScheduler(t, true)
	if n := len(s.Scene().Stars()); n != 345 {
		t.Fatalf("star pool = %d, want 300 plus clusters", n)
	}

	for elapsed := 0.0; elapsed < 10000; elapsed += 16 {
		s.RenderFrame(fc.advance(16))
		for i, star := range s.Scene().Stars() {
			if star.X < 0 || star.X > starWrapLimit {
				t.Fatalf("at %vms star %d x = %v, want [0, %v]", elapsed, i, star.X, starWrapLimit)
			}
		}
	}
	if st := s.Stats(); st.Rendered == 0 || st.Throttled == 0 {
		t.Errorf("rendered=%d throttled=%d, want both non-zero at half rate", st.Rendered, st.Throttled)
	}
}

func TestScheduler_HalfRate(t *testing.T) {
	s, fc, _ := newTestScheduler(t, true)
	rendered := 0
	for i := 0; i < 10; i++ {
		if f := s.RenderFrame(fc.advance(16)); f.Rendered {
			rendered++
			if f.DT != 32 {
				t.Errorf("rendered frame dt = %v, want 32 across the dropped callback", f.DT)
			}
		}
	}
	st := s.Stats()
	if rendered != 5 || st.Rendered != 5 || st.Throttled != 5 {
		t.Errorf("rendered=%d stats=%d/%d, want 5 rendered and 5 throttled", rendered, st.Rendered, st.Throttled)
	}
}

func TestScheduler_DeltaClamp(t *testing.T) {
	tests := []struct {
		name string
		next float64
		want float64
	}{
		{"normal", 32, 16},
		{"long stall", 5016, 100},
		{"clock went backwards", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestScheduler(t, false)
			s.RenderFrame(16)
			if f := s.RenderFrame(tt.next); f.DT != tt.want {
				t.Errorf("dt = %v, want %v", f.DT, tt.want)
			}
		})
	}
}

func TestScheduler_ReducedMotion(t *testing.T) {
	s, fc, surf := newTestScheduler(t, false)
	s.SetReducedMotion(true)

	before := append([]Star(nil), s.Scene().Stars()...)
	wantAlpha := withAlpha(starWhite, starStillAlpha).A

	for i := 0; i < 2; i++ {
		surf.reset()
		f := s.RenderFrame(fc.advance(16))
		if !f.Rendered {
			t.Fatalf("frame %d not rendered", i)
		}
		if f.Passes != PassSky|PassStars {
			t.Errorf("frame %d passes = %v, want sky|stars", i, f.Passes)
		}
		if len(surf.fills) != len(before) {
			t.Fatalf("frame %d: %d fills for %d stars", i, len(surf.fills), len(before))
		}
		for j, fl := range surf.fills {
			if fl.c.A != wantAlpha {
				t.Fatalf("frame %d star %d alpha = %d, want %d", i, j, fl.c.A, wantAlpha)
			}
		}
	}
	for i, star := range s.Scene().Stars() {
		if star.X != before[i].X {
			t.Fatalf("star %d moved under reduced motion", i)
		}
	}
	if s.Scene().Particles().Len() != 0 || s.Scene().ShootingStar() != nil {
		t.Error("entities spawned under reduced motion")
	}
}

func TestScheduler_HiddenTimeDiscarded(t *testing.T) {
	s, fc, _ := newTestScheduler(t, false)
	s.RenderFrame(fc.advance(16))

	snapshot := append([]Star(nil), s.Scene().Stars()...)
	clouds := append([]Cloud(nil), s.Scene().Clouds()...)

	s.SetVisible(false)
	for i := 0; i < 100; i++ {
		if f := s.RenderFrame(fc.advance(600)); f.Rendered {
			t.Fatal("rendered while hidden")
		}
	}
	s.SetVisible(true)

	f := s.RenderFrame(fc.advance(16))
	if !f.Rendered || f.DT != 16 {
		t.Fatalf("first frame after resume: rendered=%t dt=%v, want dt 16", f.Rendered, f.DT)
	}
	for i, star := range s.Scene().Stars() {
		maxStep := star.DriftSpeed * 16 * starDriftScale
		moved := star.X - snapshot[i].X
		if moved < 0 {
			moved += starWrapLimit
		}
		if moved > maxStep+1e-12 {
			t.Fatalf("star %d moved %v after resume, more than one frame (%v)", i, moved, maxStep)
		}
	}
	for i, c := range s.Scene().Clouds() {
		if c.X != clouds[i].X+c.Speed && c.X != -c.Width() {
			t.Fatalf("cloud %d advanced more than one frame", i)
		}
	}
	if st := s.Stats(); st.Suspended != 100 {
		t.Errorf("suspended = %d, want 100", st.Suspended)
	}
}

func TestScheduler_NoSurfaceSkips(t *testing.T) {
	s := NewScheduler(DefaultConfig(), NewRand(2), (&fakeClock{}).clock())
	s.Resize(100, 100, 1)
	if f := s.RenderFrame(16); f.Rendered {
		t.Error("rendered without a surface")
	}
	if st := s.Stats(); st.Skipped != 1 || st.Rendered != 0 {
		t.Errorf("skipped=%d rendered=%d", st.Skipped, st.Rendered)
	}
}

func TestScheduler_ZeroSizeIsEmptyFrame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HalfRate = false
	s := NewScheduler(cfg, NewRand(3), (&fakeClock{}).clock())
	surf := newRecordSurface(0, 0)
	s.Attach(surf)
	s.Resize(0, 0, 1)

	f := s.RenderFrame(16)
	if f.Passes != 0 {
		t.Errorf("passes = %v, want none", f.Passes)
	}
	if len(surf.fills) != 0 || surf.blits != 0 {
		t.Errorf("zero-size frame painted %d fills %d blits", len(surf.fills), surf.blits)
	}
	if s.Scene().Static() != nil {
		t.Error("static layer built for a zero-size surface")
	}
}

func TestScheduler_DesktopPasses(t *testing.T) {
	s, fc, surf := newTestScheduler(t, false)
	f := s.RenderFrame(fc.advance(16))

	want := PassSky | PassStars | PassAurora | PassClouds | PassParticles | PassShootingStar | PassScanlines
	if f.Passes != want {
		t.Errorf("passes = %v, want %v", f.Passes, want)
	}
	if surf.blits != 1 {
		t.Errorf("static layer blitted %d times, want 1", surf.blits)
	}
}

func TestScheduler_MobileSkipsAuroraAndScanlines(t *testing.T) {
	s, fc, _ := newTestScheduler(t, false)
	s.SetDeviceClass(Mobile)
	f := s.RenderFrame(fc.advance(16))

	if f.Passes.Has(PassAurora) || f.Passes.Has(PassScanlines) {
		t.Errorf("mobile passes = %v, want no aurora or scanlines", f.Passes)
	}
	if !f.Passes.Has(PassClouds | PassParticles) {
		t.Errorf("mobile passes = %v, want clouds and particles", f.Passes)
	}
}

func TestScheduler_ResizeKeepsStarsAndRegeneratesClouds(t *testing.T) {
	s, _, _ := newTestScheduler(t, false)
	stars := append([]Star(nil), s.Scene().Stars()...)
	firstStatic := s.Scene().Static()
	firstClouds := append([]Cloud(nil), s.Scene().Clouds()...)

	s.Resize(320, 200, 2)

	if got := s.Scene().Stars(); len(got) != len(stars) || got[0] != stars[0] || got[len(got)-1] != stars[len(stars)-1] {
		t.Error("star pool changed on resize")
	}
	if !bytes.Equal(firstStatic.Pix, s.Scene().Static().Pix) {
		t.Error("static layer differs after a same-size resize")
	}
	if s.Scene().PixelRatio() != 2 {
		t.Errorf("pixel ratio = %v, want 2", s.Scene().PixelRatio())
	}

	// Known behavior: clouds are re-randomized on every resize.
	same := len(firstClouds) == len(s.Scene().Clouds())
	if same {
		for i, c := range s.Scene().Clouds() {
			if c.X != firstClouds[i].X || c.Y != firstClouds[i].Y {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("cloud pool was not regenerated on resize")
	}
}

func TestScheduler_Close(t *testing.T) {
	s, fc, surf := newTestScheduler(t, false)
	log := &recordLogger{}
	s.Logger = log
	s.RenderFrame(fc.advance(16))

	s.Close()
	s.Close()
	if !s.Closed() {
		t.Fatal("Closed() = false after Close")
	}

	surf.reset()
	if f := s.RenderFrame(fc.advance(16)); f.Rendered {
		t.Error("rendered after Close")
	}
	if len(surf.fills) != 0 {
		t.Error("painted after Close")
	}
	st := s.Stats()
	if st.Stars != 0 || st.Clouds != 0 || st.Particles != 0 || st.ShootingStar {
		t.Errorf("pools survived Close: %+v", st)
	}
	if len(log.lines) != 1 || log.lines[0] != "sky: closed after 1 frames" {
		t.Errorf("log = %q", log.lines)
	}
}

func TestScheduler_StatsReflectEvents(t *testing.T) {
	s, _, _ := newTestScheduler(t, false)
	s.Update(DeviceClassEvent{Class: Mobile})
	s.Update(ReducedMotionEvent{Reduced: true})
	s.Update(VisibilityEvent{Visible: false})

	st := s.Stats()
	if st.Width != 320 || st.Height != 200 {
		t.Errorf("size = %dx%d", st.Width, st.Height)
	}
	if st.Device != Mobile || !st.ReducedMotion || st.Visible {
		t.Errorf("device=%v reduced=%t visible=%t", st.Device, st.ReducedMotion, st.Visible)
	}
	if st.Clouds < 6 || st.Clouds > 10 {
		t.Errorf("clouds = %d", st.Clouds)
	}
}

func TestPassString(t *testing.T) {
	tests := []struct {
		p    Pass
		want string
	}{
		{0, "none"},
		{PassSky, "sky"},
		{PassSky | PassStars, "sky|stars"},
		{PassScanlines | PassShootingStar, "shooting-star|scanlines"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", uint16(tt.p), got, tt.want)
		}
	}
}
