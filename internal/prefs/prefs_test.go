package prefs

import (
	"testing"

	"github.com/quasilyte/gdata/v2"

	"github.com/rook-computer/pixelsky/internal/config"
)

func openTestStorage(t *testing.T) *gdata.Manager {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_DATA_HOME", home)
	data, err := gdata.Open(gdata.Config{AppName: "pixelsky_test"})
	if err != nil {
		t.Fatalf("open gdata: %v", err)
	}
	return data
}

func TestManager_DefaultsWhenEmpty(t *testing.T) {
	m := New(openTestStorage(t))
	if err := m.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := m.Get(); got != (Prefs{}) {
		t.Errorf("fresh prefs = %+v, want zero value", got)
	}
}

func TestManager_RoundTrip(t *testing.T) {
	data := openTestStorage(t)

	m := New(data)
	err := m.Update(func(p *Prefs) {
		p.ReducedMotion = true
		p.Device = "mobile"
		p.Scale = 3
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	reloaded := New(data)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := Prefs{ReducedMotion: true, Device: "mobile", Scale: 3}
	if got := reloaded.Get(); got != want {
		t.Errorf("reloaded prefs = %+v, want %+v", got, want)
	}
}

func TestManager_CorruptData(t *testing.T) {
	data := openTestStorage(t)
	if err := data.SaveObjectProp(prefsObject, prefsProperty, []byte("hud: [")); err != nil {
		t.Fatalf("seed corrupt prefs: %v", err)
	}

	m := New(data)
	if err := m.Load(); err == nil {
		t.Error("Load of corrupt prefs succeeded")
	}
	if got := m.Get(); got != (Prefs{}) {
		t.Errorf("corrupt load left %+v, want zero value", got)
	}
}

func TestManager_NilStorage(t *testing.T) {
	m := New(nil)
	if err := m.Update(func(p *Prefs) { p.HUD = true }); err != nil {
		t.Fatalf("Update without storage: %v", err)
	}
	if !m.Get().HUD {
		t.Error("in-memory update lost")
	}
	if err := m.Load(); err != nil {
		t.Fatalf("Load without storage: %v", err)
	}
	if m.Get().HUD {
		t.Error("Load without storage kept stale prefs")
	}
}

func TestPrefs_Apply(t *testing.T) {
	cfg := config.Default()
	Prefs{ReducedMotion: true, Device: "mobile", HUD: true, Scale: 4}.Apply(&cfg)
	if !cfg.ReducedMotion || cfg.Device != config.DeviceMobile || !cfg.Display.HUD || cfg.Display.PixelScale != 4 {
		t.Errorf("applied config = %+v", cfg)
	}

	cfg = config.Default()
	Prefs{Device: "tablet"}.Apply(&cfg)
	if cfg != config.Default() {
		t.Errorf("zero prefs changed config to %+v", cfg)
	}
}
