package host

import (
	"testing"

	"github.com/rook-computer/pixelsky/internal/config"
	"github.com/rook-computer/pixelsky/internal/sky"
	"github.com/rook-computer/pixelsky/internal/state"
)

func mountTest(t *testing.T, device string, width int) *Stage {
	t.Helper()
	cfg := config.Default()
	cfg.Device = device
	cfg.Seed = 3
	now := 0.0
	return Mount(cfg, width, 200, 1, func() float64 { return now }, nil)
}

func TestMount_DeviceClass(t *testing.T) {
	tests := []struct {
		device    string
		width     int
		wantClass sky.DeviceClass
		wantCount int
	}{
		{config.DeviceAuto, 320, sky.Mobile, 120},
		{config.DeviceAuto, 1024, sky.Desktop, 300},
		{config.DeviceDesktop, 320, sky.Desktop, 300},
		{config.DeviceMobile, 1024, sky.Mobile, 120},
	}
	for _, tt := range tests {
		s := mountTest(t, tt.device, tt.width)
		st := s.Stats()
		// the cluster pass adds 15% on top of the configured count
		wantPool := tt.wantCount + tt.wantCount*15/100
		if st.Device != tt.wantClass || st.Stars != wantPool {
			t.Errorf("%s at %dpx: device=%v stars=%d, want %v/%d", tt.device, tt.width, st.Device, st.Stars, tt.wantClass, wantPool)
		}
		if w, h := s.Canvas.Size(); w != tt.width || h != 200 {
			t.Errorf("canvas %dx%d", w, h)
		}
	}
}

func TestStage_ResizeReclassifies(t *testing.T) {
	s := mountTest(t, config.DeviceAuto, 320)
	mounted := s.Stats().Stars

	s.Apply(sky.ResizeEvent{Width: 1024, Height: 600, PixelRatio: 1})
	st := s.Stats()
	if st.Device != sky.Desktop {
		t.Errorf("device after widening = %v, want desktop", st.Device)
	}
	if st.Stars != mounted {
		t.Errorf("stars = %d, want the pool of %d from mount kept", st.Stars, mounted)
	}
	if w, h := s.Canvas.Size(); w != 1024 || h != 600 {
		t.Errorf("canvas %dx%d, want 1024x600", w, h)
	}
	if st.Width != 1024 || st.Height != 600 {
		t.Errorf("scene %dx%d, want 1024x600", st.Width, st.Height)
	}
}

func TestStage_DeviceEventPins(t *testing.T) {
	s := mountTest(t, config.DeviceAuto, 1024)
	s.Apply(sky.DeviceClassEvent{Class: sky.Mobile})
	s.Apply(sky.ResizeEvent{Width: 1280, Height: 720, PixelRatio: 1})

	if got := s.Stats().Device; got != sky.Mobile {
		t.Errorf("device after resize = %v, want the posted class to stick", got)
	}
}

func TestStage_FollowWidthUnpins(t *testing.T) {
	s := mountTest(t, config.DeviceAuto, 1024)
	s.Apply(sky.DeviceClassEvent{Class: sky.Mobile})

	s.Apply(FollowWidthEvent{})
	if got := s.Stats().Device; got != sky.Desktop {
		t.Errorf("device after unpin = %v, want desktop at 1024px", got)
	}
	s.Apply(sky.ResizeEvent{Width: 320, Height: 200, PixelRatio: 1})
	if got := s.Stats().Device; got != sky.Mobile {
		t.Errorf("device after narrowing = %v, want mobile", got)
	}

	fixed := mountTest(t, config.DeviceMobile, 1024)
	fixed.Apply(FollowWidthEvent{})
	if got := fixed.Stats().Device; got != sky.Mobile {
		t.Errorf("fixed device = %v, want mobile from config", got)
	}
}

func TestStage_FixedDeviceIgnoresWidth(t *testing.T) {
	s := mountTest(t, config.DeviceMobile, 320)
	s.Resize(1920, 1080, 1)
	if got := s.Stats().Device; got != sky.Mobile {
		t.Errorf("device = %v, want mobile from config", got)
	}
}

func TestStage_TickPaints(t *testing.T) {
	s := mountTest(t, config.DeviceAuto, 64)
	if f := s.Tick(); f.Rendered {
		t.Fatal("first tick rendered, want it dropped at half rate")
	}
	if f := s.Tick(); !f.Rendered {
		t.Fatal("second tick did not render")
	}
	if s.Image().RGBAAt(0, 0).A != 0xFF {
		t.Error("sky not painted")
	}
	s.Close()
	if !s.Sched.Closed() {
		t.Error("Close did not close the scheduler")
	}
}

func TestStage_DrainTracksPhase(t *testing.T) {
	s := mountTest(t, config.DeviceAuto, 320)
	store := state.NewStore()
	q := NewQueue(4)

	q.Post(sky.VisibilityEvent{Visible: false})
	s.Drain(q, store)
	if got := store.Snapshot().Phase; got != state.SUSPENDED {
		t.Errorf("phase = %v, want suspended", got)
	}
	if s.Stats().Visible {
		t.Error("scheduler still visible")
	}

	q.Post(sky.VisibilityEvent{Visible: true})
	q.Post(sky.ReducedMotionEvent{Reduced: true})
	s.Drain(q, store)
	if got := store.Snapshot().Phase; got != state.RUNNING {
		t.Errorf("phase = %v, want running", got)
	}
	if !s.Stats().ReducedMotion {
		t.Error("reduced motion not applied")
	}

	q.Post(sky.VisibilityEvent{Visible: false})
	s.Drain(q, nil)
}

func TestQueue(t *testing.T) {
	q := NewQueue(2)
	if !q.Post(sky.VisibilityEvent{Visible: false}) || !q.Post(sky.VisibilityEvent{Visible: true}) {
		t.Fatal("post within capacity failed")
	}
	if q.Post(sky.ReducedMotionEvent{Reduced: true}) {
		t.Error("post beyond capacity succeeded")
	}

	var got []sky.Event
	q.Drain(func(ev sky.Event) { got = append(got, ev) })
	if len(got) != 2 || got[0] != (sky.VisibilityEvent{Visible: false}) || got[1] != (sky.VisibilityEvent{Visible: true}) {
		t.Errorf("drained %v", got)
	}

	q.Close()
	if q.Post(sky.VisibilityEvent{Visible: true}) {
		t.Error("post after Close succeeded")
	}
	if NewQueue(0).Cap() != 1 {
		t.Error("zero size queue has no room")
	}
}
