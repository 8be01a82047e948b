// Package desktop shows the sky in a resizable ebiten window.
package desktop

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/rook-computer/pixelsky/internal/buttons"
	"github.com/rook-computer/pixelsky/internal/config"
	"github.com/rook-computer/pixelsky/internal/host"
	"github.com/rook-computer/pixelsky/internal/sky"
	"github.com/rook-computer/pixelsky/internal/state"
)

const (
	defaultWidth    = 960
	defaultHeight   = 540
	publishInterval = 250 * time.Millisecond
)

var keyActions = []struct {
	key    ebiten.Key
	action buttons.Event
}{
	{ebiten.KeyEscape, buttons.Exit},
	{ebiten.KeyF4, buttons.Exit},
	{ebiten.KeyF5, buttons.ToggleMotion},
	{ebiten.KeyF6, buttons.ToggleDevice},
	{ebiten.KeyF7, buttons.ToggleHUD},
}

// Window implements ebiten.Game. Update is the native frame callback, Layout
// the resize source and window focus the visibility source.
type Window struct {
	Config   config.Config
	Store    *state.Store
	Controls *host.Controls
	Clock    sky.Clock
	Logger   host.Logger

	queue     *host.Queue
	stage     *host.Stage
	layout    image.Point
	offscreen *ebiten.Image
	focused   bool
	quit      atomic.Bool

	lastPublish time.Time
}

func NewWindow(cfg config.Config, store *state.Store, logger host.Logger) *Window {
	return &Window{Config: cfg, Store: store, Logger: logger, queue: host.NewQueue(16), focused: true}
}

// Post queues ev for the next Update. It is safe to call from any goroutine.
func (w *Window) Post(ev sky.Event) bool { return w.queue.Post(ev) }

// Run opens the window and blocks until it is closed, an exit key is
// pressed or ctx is done.
func (w *Window) Run(ctx context.Context) error {
	scale := max(w.Config.Display.PixelScale, 1)
	ebiten.SetWindowSize(defaultWidth, defaultHeight)
	ebiten.SetWindowTitle(fmt.Sprintf("pixelsky (x%d)", scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(max(w.Config.Display.RefreshHz, 1))
	ebiten.SetRunnableOnUnfocused(true)

	stop := context.AfterFunc(ctx, func() { w.quit.Store(true) })
	defer stop()

	defer w.close()
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func (w *Window) Update() error {
	if w.quit.Load() {
		return ebiten.Termination
	}
	for _, k := range keyActions {
		if inpututil.IsKeyJustPressed(k.key) && w.press(k.action) {
			return ebiten.Termination
		}
	}
	if focused := ebiten.IsFocused(); focused != w.focused {
		w.focused = focused
		w.queue.Post(sky.VisibilityEvent{Visible: focused})
	}
	w.step(time.Now())
	return nil
}

func (w *Window) press(action buttons.Event) (exit bool) {
	if w.Controls == nil {
		return action == buttons.Exit
	}
	return w.Controls.Press(action)
}

// step mounts or resizes the stage for the last layout, applies queued
// events and ticks once.
func (w *Window) step(now time.Time) sky.Frame {
	if w.layout.X <= 0 || w.layout.Y <= 0 {
		return sky.Frame{}
	}
	ratio := float64(max(w.Config.Display.PixelScale, 1))
	if w.stage == nil {
		w.stage = host.Mount(w.Config, w.layout.X, w.layout.Y, ratio, w.Clock, w.Logger)
		if w.Store != nil {
			w.Store.SetPhase(state.RUNNING)
		}
	} else if cw, ch := w.stage.Canvas.Size(); cw != w.layout.X || ch != w.layout.Y {
		w.stage.Resize(w.layout.X, w.layout.Y, ratio)
	}

	w.stage.Drain(w.queue, w.Store)

	frame := w.stage.Tick()
	if w.Store == nil {
		return frame
	}
	w.Store.UpdateSky(w.stage.Stats())
	if frame.Rendered && now.Sub(w.lastPublish) >= publishInterval {
		w.Store.PublishFrame(w.stage.Canvas.Snapshot())
		w.lastPublish = now
	}
	return frame
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.stage == nil {
		return
	}
	img := w.stage.Image()
	b := img.Bounds()
	if b.Empty() {
		return
	}
	if w.offscreen == nil || w.offscreen.Bounds().Size() != b.Size() {
		if w.offscreen != nil {
			w.offscreen.Deallocate()
		}
		w.offscreen = ebiten.NewImage(b.Dx(), b.Dy())
	}
	w.offscreen.WritePixels(img.Pix)

	sb := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sb.Dx())/float64(b.Dx()), float64(sb.Dy())/float64(b.Dy()))
	screen.DrawImage(w.offscreen, op)

	if w.Store != nil {
		if snap := w.Store.Snapshot(); snap.HUD {
			ebitenutil.DebugPrint(screen, hudText(snap))
		}
	}
}

// Layout maps the window to the logical canvas: one logical pixel per PixelScale window pixels.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := max(w.Config.Display.PixelScale, 1)
	w.layout = image.Pt(max(outsideWidth/scale, 1), max(outsideHeight/scale, 1))
	return w.layout.X, w.layout.Y
}

func (w *Window) close() {
	w.queue.Close()
	if w.stage != nil {
		w.stage.Close()
	}
	if w.Store != nil {
		w.Store.SetPhase(state.STOPPED)
	}
}

func hudText(snap state.State) string {
	st := snap.Sky
	var b strings.Builder
	fmt.Fprintf(&b, "%s %dx%d %s\n", snap.Phase, st.Width, st.Height, st.Device)
	fmt.Fprintf(&b, "frames %d  dt %.1fms  passes %s\n", st.Rendered, st.LastDT, st.LastPasses)
	fmt.Fprintf(&b, "stars %d clouds %d particles %d\n", st.Stars, st.Clouds, st.Particles)
	b.WriteString("F5 motion  F6 device  F7 hud  Esc quit")
	if snap.Preview.URL != "" {
		b.WriteString("\n" + snap.Preview.URL)
	}
	return b.String()
}
