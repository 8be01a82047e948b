package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/rook-computer/pixelsky/internal/config"
	"github.com/rook-computer/pixelsky/internal/desktop"
	"github.com/rook-computer/pixelsky/internal/host"
	"github.com/rook-computer/pixelsky/internal/logging"
	"github.com/rook-computer/pixelsky/internal/prefs"
	"github.com/rook-computer/pixelsky/internal/state"
	"github.com/rook-computer/pixelsky/internal/tui"
	"github.com/rook-computer/pixelsky/internal/web"
)

const (
	hostWindow   = "window"
	hostTerminal = "terminal"
	hostHeadless = "headless"
)

func main() {
	configPath := flag.String("config", "", "YAML config file; PIXELSKY_CONFIG takes precedence")
	hostName := flag.String("host", hostWindow, "where to show the sky: window | terminal | headless")
	listenAddr := flag.String("listen", "", "preview server address, e.g. :8080; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", false, "enable dev mode CORS; also configurable via "+web.EnvDevMode)
	seed := flag.Uint64("seed", 0, "random seed; 0 keeps the config or "+config.EnvSeed)
	frames := flag.Int("frames", 120, "headless: native ticks to render before writing -out")
	out := flag.String("out", "", "headless: write the last frame to this PNG and exit")
	width := flag.Int("width", 640, "headless: logical width in pixels")
	height := flag.Int("height", 360, "headless: logical height in pixels")
	logPath := flag.String("log", "", "append debug logs to this file")
	noPrefs := flag.Bool("no-prefs", false, "do not load or save viewer preferences")
	flag.Parse()

	var logger logging.Logger = logging.NoopLogger{}
	if *logPath != "" {
		fileLogger, f, err := logging.Open(*logPath)
		if err != nil {
			fmt.Println("log open error:", err)
			os.Exit(2)
		}
		defer f.Close()
		logger = fileLogger
	}

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	base := cfg

	// Batch renders stay reproducible: saved viewer toggles only apply to interactive hosts.
	var saved *prefs.Manager
	if !*noPrefs && *out == "" {
		saved, err = prefs.Open(prefs.AppName)
		if err != nil {
			logger.Errorf("sim", "prefs: %v", err)
		}
		saved.Get().Apply(&cfg)
	}

	serverCfg, err := web.ServerConfigFromEnv(web.ServerConfig{ListenAddr: cfg.Server.Listen, DevMode: cfg.Server.Dev})
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}
	if *listenAddr != "" {
		serverCfg.ListenAddr = *listenAddr
	}
	if *devMode {
		serverCfg.DevMode = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	store.SetHUD(cfg.Display.HUD)
	controls := &host.Controls{Store: store, Prefs: saved, Logger: logger}

	var run func() error
	switch *hostName {
	case hostWindow:
		w := desktop.NewWindow(cfg, store, logger)
		w.Controls = controls
		controls.Events = w
		run = func() error { return w.Run(ctx) }
	case hostTerminal:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Println("the terminal host needs stdout to be a terminal")
			os.Exit(2)
		}
		m := tui.NewModel(cfg, store, logger)
		m.Controls = controls
		controls.Events = m
		run = func() error { return tui.Run(ctx, m) }
	case hostHeadless:
		h := NewHeadless(cfg, *width, *height, store, logger)
		controls.Events = h
		if *out != "" {
			if err := h.RenderPNG(*frames, *out); err != nil {
				fmt.Println("headless render error:", err)
				os.Exit(1)
			}
			fmt.Println("wrote", *out)
			return
		}
		if !serverCfg.Enabled() {
			fmt.Println("headless host needs -out or a preview server (-listen)")
			os.Exit(2)
		}
		run = func() error { return h.Run(ctx) }
	default:
		fmt.Printf("unknown host %q (want %s, %s or %s)\n", *hostName, hostWindow, hostTerminal, hostHeadless)
		os.Exit(2)
	}

	if serverCfg.Enabled() {
		control := NewSimControl(base, controls)
		server := web.NewHTTPServer(serverCfg, web.APIV1Deps{State: store, Events: controls, Logger: logger})
		server.Routes = func(mux *http.ServeMux) { registerSimEndpoints(mux, control) }
		if err := server.Start(ctx); err != nil {
			fmt.Println("server start error:", err)
			os.Exit(1)
		}
		defer server.Stop()
		url := "http://" + server.ListenAddr() + "/"
		store.UpdatePreview(state.PreviewInfo{URL: url})
		if *hostName != hostTerminal {
			fmt.Println("pixelsky preview at", url)
		}
	}

	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
}
