package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rook-computer/pixelsky/internal/buttons"
	"github.com/rook-computer/pixelsky/internal/host"
	"github.com/rook-computer/pixelsky/internal/logging"
	"github.com/rook-computer/pixelsky/internal/render"
	"github.com/rook-computer/pixelsky/internal/sky"
	"github.com/rook-computer/pixelsky/internal/state"
	"github.com/rook-computer/pixelsky/internal/web"
)

// Console switches the display between text and graphics mode.
type Console interface {
	EnterGraphics() error
	Restore() error
}

// VisibilityWatcher reports the kiosk's display being shown or hidden.
type VisibilityWatcher interface {
	Run(ctx context.Context, onChange func(visible bool)) error
}

type App struct {
	Store   *state.Store
	Render  render.Renderer
	Web     web.Server
	Buttons buttons.Buttons
	Console Console
	VT      VisibilityWatcher
	Logger  logging.Logger

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer render.Renderer, webServer web.Server, buttonDriver buttons.Buttons) *App {
	return &App{Store: store, Render: renderer, Web: webServer, Buttons: buttonDriver, Logger: logging.NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if app.Logger == nil {
		app.Logger = logging.NoopLogger{}
	}

	app.Store.SetPhase(state.BOOTING)
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		app.Store.Fail(err)
		return err
	}
	defer app.Render.Stop()

	// Graphics mode keeps the console cursor and kernel messages off the sky.
	if app.Console != nil {
		_ = app.Console.EnterGraphics()
		defer func() { _ = app.Console.Restore() }()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.Web != nil {
		if err := app.Web.Start(loopCtx); err != nil {
			// The backdrop still runs without its preview server.
			app.Logger.Errorf("app", "web start error: %v", err)
		} else {
			defer app.Web.Stop()
			app.publishPreview()
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Render.RunLoop(loopCtx, app.Store)
	}()

	if app.VT != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := app.VT.Run(loopCtx, func(visible bool) {
				app.Render.Post(sky.VisibilityEvent{Visible: visible})
			})
			if err != nil {
				app.Logger.Errorf("app", "vt watcher: %v", err)
			}
		}()
	}

	if app.Buttons != nil {
		if err := app.Buttons.Start(loopCtx); err != nil {
			app.Logger.Errorf("app", "buttons start error: %v", err)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				app.watchButtons(loopCtx)
			}()
		}
	}

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	if app.Buttons != nil {
		_ = app.Buttons.Stop()
	}
	wg.Wait()
	app.Store.SetPhase(state.STOPPED)
	return err
}

func (app *App) watchButtons(ctx context.Context) {
	events := app.Buttons.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			app.HandleButton(ev)
		}
	}
}

// HandleButton maps a button press to an exit request or a render event.
func (app *App) HandleButton(ev buttons.Event) {
	controls := &host.Controls{Store: app.Store, Events: app.Render, Logger: app.Logger}
	if controls.Press(ev) {
		app.Exit(nil)
	}
}

// publishPreview records the preview URL for the HUD once the server is bound.
func (app *App) publishPreview() {
	bound, ok := app.Web.(interface{ ListenAddr() string })
	if !ok {
		return
	}
	addr := bound.ListenAddr()
	if addr == "" {
		return
	}
	url := PreviewURL(addr, hostAddrs())
	app.Store.UpdatePreview(state.PreviewInfo{URL: url})
	app.Logger.Infof("app", "preview at %s", url)
}

func (app *App) Stop() error {
	app.Exit(nil)
	return nil
}
