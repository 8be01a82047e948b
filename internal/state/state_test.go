package state

import (
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/rook-computer/pixelsky/internal/sky"
)

func TestStore_Phase(t *testing.T) {
	store := NewStore()
	if got := store.Snapshot().Phase; got != BOOTING {
		t.Fatalf("initial phase = %v, want booting", got)
	}
	store.SetPhase(RUNNING)
	if got := store.Snapshot().Phase.String(); got != "running" {
		t.Errorf("phase = %q, want running", got)
	}

	store.Fail(errors.New("fb0 missing"))
	snap := store.Snapshot()
	if snap.Phase != ERROR || snap.Err != "fb0 missing" {
		t.Errorf("after Fail: phase=%v err=%q", snap.Phase, snap.Err)
	}
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	store := NewStore()
	store.UpdateSky(sky.Stats{Rendered: 3, Stars: 345})
	snap := store.Snapshot()

	store.UpdateSky(sky.Stats{Rendered: 4})
	if snap.Sky.Rendered != 3 || snap.Sky.Stars != 345 {
		t.Errorf("snapshot changed after update: %+v", snap.Sky)
	}
}

func TestStore_ToggleHUD(t *testing.T) {
	store := NewStore()
	if !store.ToggleHUD() || !store.Snapshot().HUD {
		t.Error("first toggle did not enable the HUD")
	}
	if store.ToggleHUD() {
		t.Error("second toggle did not disable the HUD")
	}
	store.SetHUD(true)
	if !store.Snapshot().HUD {
		t.Error("SetHUD(true) ignored")
	}
}

func TestStore_PublishFrame(t *testing.T) {
	store := NewStore()
	if img, seq := store.Frame(); img != nil || seq != 0 {
		t.Fatalf("empty store frame = %v, %d", img, seq)
	}

	first := image.NewRGBA(image.Rect(0, 0, 2, 2))
	second := image.NewRGBA(image.Rect(0, 0, 3, 3))
	store.PublishFrame(first)
	if seq := store.PublishFrame(second); seq != 2 {
		t.Errorf("sequence = %d, want 2", seq)
	}

	img, seq := store.Frame()
	if img != second || seq != 2 || store.Snapshot().Frame != 2 {
		t.Errorf("Frame() = %p/%d, want the second frame", img, seq)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.UpdateSky(sky.Stats{Rendered: uint64(j)})
				store.PublishFrame(image.NewRGBA(image.Rect(0, 0, 1, 1)))
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = store.Snapshot()
				_, _ = store.Frame()
			}
		}()
	}
	wg.Wait()
	if _, seq := store.Frame(); seq != 800 {
		t.Errorf("sequence = %d, want 800", seq)
	}
}
