package sky

import (
	"math"
	"testing"
)

func TestTrySpawnShootingStar_Chance(t *testing.T) {
	if s := TrySpawnShootingStar(constRand{f: 0.5}, 0.001); s != nil {
		t.Error("spawned with a roll above the chance")
	}
	if s := TrySpawnShootingStar(constRand{f: 0.0005}, 0.001); s == nil {
		t.Error("no spawn with a roll below the chance")
	}
	if s := TrySpawnShootingStar(constRand{f: 0}, 0); s != nil {
		t.Error("zero chance spawned")
	}
}

func TestTrySpawnShootingStar_Direction(t *testing.T) {
	rng := NewRand(21)
	for i := 0; i < 500; i++ {
		s := TrySpawnShootingStar(rng, 1)
		if s == nil {
			t.Fatal("chance 1 did not spawn")
		}
		if s.X < 0 || s.X > 0.7 || s.Y < 0 || s.Y > 0.3 {
			t.Fatalf("spawn %d enters at (%v,%v)", i, s.X, s.Y)
		}
		if s.VX <= 0 || s.VY <= 0 {
			t.Fatalf("spawn %d heads (%v,%v), want down and right", i, s.VX, s.VY)
		}
		if speed := math.Hypot(s.VX, s.VY); speed < 3 || speed > 6 {
			t.Fatalf("spawn %d speed %v", i, speed)
		}
		if s.MaxTrail < 8 || s.MaxTrail > 12 {
			t.Fatalf("spawn %d maxTrail %d", i, s.MaxTrail)
		}
		if s.MaxLife < 500 || s.MaxLife >= 1200 {
			t.Fatalf("spawn %d maxLife %v", i, s.MaxLife)
		}
	}
}

func TestShootingStarStep_TrailBounded(t *testing.T) {
	s := &ShootingStar{X: 0.1, Y: 0.1, VX: 1, VY: 0.5, MaxTrail: 8, MaxLife: 100000}
	for i := 0; i < 50; i++ {
		if !s.Step(16, 1000, 1000) {
			t.Fatalf("step %d ended early", i)
		}
		if len(s.Trail) > s.MaxTrail {
			t.Fatalf("step %d: trail length %d > %d", i, len(s.Trail), s.MaxTrail)
		}
		if s.Trail[0].X != s.X || s.Trail[0].Y != s.Y {
			t.Fatalf("step %d: trail head %v is not the current position", i, s.Trail[0])
		}
	}
	if len(s.Trail) != 8 {
		t.Errorf("trail length %d, want full at 8", len(s.Trail))
	}
	if s.Trail[1].X >= s.Trail[0].X {
		t.Error("trail is not ordered newest first")
	}
}

func TestShootingStarStep_Expires(t *testing.T) {
	s := &ShootingStar{X: 0.5, Y: 0.2, VX: 1, VY: 1, MaxTrail: 8, MaxLife: 48}
	if !s.Step(16, 100, 100) || !s.Step(16, 100, 100) {
		t.Fatal("expired before its lifespan")
	}
	if s.Step(16, 100, 100) {
		t.Error("still live at life == maxLife")
	}
}

func TestShootingStarInBounds(t *testing.T) {
	tests := []struct {
		x, y float64
		want bool
	}{
		{0.5, 0.5, true},
		{1.09, 0.5, true},
		{-0.09, -0.09, true},
		{1.11, 0.5, false},
		{0.5, 1.2, false},
		{-0.2, 0.5, false},
	}
	for _, tt := range tests {
		s := ShootingStar{X: tt.x, Y: tt.y}
		if got := s.InBounds(); got != tt.want {
			t.Errorf("InBounds(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawShootingStar_HeadBrightest(t *testing.T) {
	s := &ShootingStar{X: 0.2, Y: 0.2, VX: 2, VY: 1, MaxTrail: 10, MaxLife: 1000}
	for i := 0; i < 5; i++ {
		s.Step(16, 200, 200)
	}
	surf := newRecordSurface(200, 200)
	drawShootingStar(surf, s, 200, 200)

	if len(surf.fills) != len(s.Trail) {
		t.Fatalf("got %d fills for %d trail samples", len(surf.fills), len(s.Trail))
	}
	head := surf.fills[0]
	if head.w != 2 || head.c.R != starWhite.R || head.c.B != starWhite.B {
		t.Errorf("head fill %+v, want a 2px white block", head)
	}
	for i := 1; i < len(surf.fills); i++ {
		if surf.fills[i].c.A > surf.fills[i-1].c.A {
			t.Errorf("sample %d brighter than the newer sample before it", i)
		}
	}
}
