package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/rook-computer/pixelsky/internal/config"
	"github.com/rook-computer/pixelsky/internal/host"
	"github.com/rook-computer/pixelsky/internal/sky"
	"github.com/rook-computer/pixelsky/internal/state"
)

const (
	// headlessStep is the fixed native refresh interval of a batch render, in ms.
	headlessStep    = 16.0
	publishInterval = 250 * time.Millisecond
)

// Headless runs the sky without any display: either a batch render to a PNG
// or a live loop that only feeds the preview server.
type Headless struct {
	Config        config.Config
	Width, Height int
	Store         *state.Store
	Logger        host.Logger

	queue *host.Queue
}

func NewHeadless(cfg config.Config, width, height int, store *state.Store, logger host.Logger) *Headless {
	return &Headless{Config: cfg, Width: width, Height: height, Store: store, Logger: logger, queue: host.NewQueue(16)}
}

func (h *Headless) Post(ev sky.Event) bool { return h.queue.Post(ev) }

// RenderPNG ticks frames times on a fixed step and writes the final canvas to out.
// A frame is always rendered, even when half-rate drops the only tick.
func (h *Headless) RenderPNG(frames int, out string) error {
	if h.Width <= 0 || h.Height <= 0 {
		return fmt.Errorf("headless size must be positive (got %dx%d)", h.Width, h.Height)
	}
	now := 0.0
	stage := host.Mount(h.Config, h.Width, h.Height, 1, func() float64 { return now }, h.Logger)
	defer stage.Close()

	for i := 0; i < frames || stage.Stats().Rendered == 0; i++ {
		now += headlessStep
		stage.Tick()
	}
	h.Store.UpdateSky(stage.Stats())
	h.Store.PublishFrame(stage.Canvas.Snapshot())

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := png.Encode(f, stage.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	return f.Close()
}

// Run ticks at the configured refresh rate on the wall clock until ctx is done.
func (h *Headless) Run(ctx context.Context) error {
	stage := host.Mount(h.Config, h.Width, h.Height, 1, nil, h.Logger)
	defer stage.Close()

	hz := max(h.Config.Display.RefreshHz, 1)
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	h.Store.SetPhase(state.RUNNING)
	defer h.Store.SetPhase(state.STOPPED)
	var lastPublish time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			stage.Drain(h.queue, h.Store)
			frame := stage.Tick()
			h.Store.UpdateSky(stage.Stats())
			if frame.Rendered && now.Sub(lastPublish) >= publishInterval {
				h.Store.PublishFrame(stage.Canvas.Snapshot())
				lastPublish = now
			}
		}
	}
}
