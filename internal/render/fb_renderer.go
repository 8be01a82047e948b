package render

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/pixelsky/internal/config"
	"github.com/rook-computer/pixelsky/internal/host"
	"github.com/rook-computer/pixelsky/internal/sky"
	"github.com/rook-computer/pixelsky/internal/state"
)

// FBRenderer renders the sky to the Linux framebuffer using an offscreen logical canvas.
type FBRenderer struct {
	Config     config.Config
	DevicePath string
	Clock      sky.Clock // nil uses the wall clock
	Logger     host.Logger

	fbDev   *fb.Device
	stage   *host.Stage
	hud     *HUD
	queue   *host.Queue
	running atomic.Bool

	lastPublish time.Time
	lastLog     time.Time
}

func NewFBRenderer(cfg config.Config) *FBRenderer {
	return &FBRenderer{Config: cfg, DevicePath: DevicePath, queue: host.NewQueue(16)}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	dev, err := fb.Open(r.DevicePath)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", r.DevicePath, err)
	}
	r.fbDev = dev
	bounds := dev.Bounds()
	scale := max(r.Config.Display.PixelScale, 1)
	r.infof("framebuffer open, bounds=%dx%d scale=%d", bounds.Dx(), bounds.Dy(), scale)

	r.mount(bounds.Dx()/scale, bounds.Dy()/scale, float64(scale))
	return nil
}

// mount builds the stage and the HUD for a logical size.
func (r *FBRenderer) mount(width, height int, pixelRatio float64) {
	if r.queue == nil {
		r.queue = host.NewQueue(16)
	}
	r.stage = host.Mount(r.Config, width, height, pixelRatio, r.Clock, r.Logger)
	r.hud = NewHUD(height, r.Config.Display.QR, r.Logger)
	r.running.Store(true)
}

func (r *FBRenderer) Stop() error {
	if !r.running.Swap(false) {
		return nil
	}
	r.queue.Close()
	if r.stage != nil {
		r.stage.Close()
	}
	if r.fbDev != nil {
		r.fbDev.Close()
	}
	return nil
}

// Post queues ev for the next tick. It returns false when the queue is full
// or the renderer is not running.
func (r *FBRenderer) Post(ev sky.Event) bool {
	if !r.running.Load() {
		return false
	}
	return r.queue.Post(ev)
}

// RunLoop ticks the scheduler at the configured refresh rate until the context is done.
func (r *FBRenderer) RunLoop(ctx context.Context, store *state.Store) {
	hz := max(r.Config.Display.RefreshHz, 1)
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	store.SetHUD(r.Config.Display.HUD)
	store.SetPhase(state.RUNNING)
	for {
		select {
		case <-ctx.Done():
			store.SetPhase(state.STOPPED)
			return
		case now := <-ticker.C:
			r.step(store, now)
		}
	}
}

// step handles queued events and renders one native refresh.
func (r *FBRenderer) step(store *state.Store, now time.Time) sky.Frame {
	if !r.running.Load() {
		return sky.Frame{}
	}
	r.stage.Drain(r.queue, store)

	frame := r.stage.Tick()
	stats := r.stage.Stats()
	store.UpdateSky(stats)
	if !frame.Rendered {
		return frame
	}

	snap := store.Snapshot()
	if snap.HUD {
		r.hud.Draw(r.stage.Image(), snap)
	}
	if r.fbDev != nil {
		blitToFB(r.fbDev, r.stage.Image())
	}
	if now.Sub(r.lastPublish) >= PublishInterval {
		store.PublishFrame(r.stage.Canvas.Snapshot())
		r.lastPublish = now
	}
	if now.Sub(r.lastLog) > time.Second {
		r.infof("heartbeat frames=%d dt=%.1fms passes=%s", stats.Rendered, frame.DT, frame.Passes)
		r.lastLog = now
	}
	return frame
}

func (r *FBRenderer) infof(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Infof("fb", format, args...)
	}
}

// blitToFB scales the logical canvas onto the device with nearest-neighbor sampling.
func blitToFB(dst draw.Image, canvas *image.RGBA) {
	if dst == nil || canvas == nil || canvas.Bounds().Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), canvas, canvas.Bounds(), xdraw.Src, nil)
}
