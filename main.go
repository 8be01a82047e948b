package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/pixelsky/internal/app"
	"github.com/rook-computer/pixelsky/internal/buttons"
	"github.com/rook-computer/pixelsky/internal/config"
	"github.com/rook-computer/pixelsky/internal/logging"
	"github.com/rook-computer/pixelsky/internal/render"
	"github.com/rook-computer/pixelsky/internal/state"
	"github.com/rook-computer/pixelsky/internal/system"
	"github.com/rook-computer/pixelsky/internal/web"
)

const envStdioLog = "PIXELSKY_STDIO_LOG"

func main() {
	configPath := flag.String("config", "/etc/pixelsky.yaml", "YAML config file; PIXELSKY_CONFIG takes precedence")
	debug := flag.Bool("debug", false, "enable debug logging to ./pixelsky-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	flag.Parse()

	// Crashes stay diagnosable even when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger logging.Logger = logging.NoopLogger{}
	if *debug {
		fileLogger, f, err := logging.Open("./pixelsky-debug.log")
		if err == nil {
			defer f.Close()
			logger = fileLogger
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	path := *configPath
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		path = ""
	}
	cfg, err := config.LoadFromEnv(path)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	serverCfg, err := web.ServerConfigFromEnv(web.ServerConfig{ListenAddr: cfg.Server.Listen, DevMode: cfg.Server.Dev})
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	store.SetHUD(cfg.Display.HUD)

	renderer := render.NewFBRenderer(cfg)
	renderer.Logger = logger

	btns := buttons.NewEvdevButtons(logger)

	a := app.New(store, renderer, nil, btns)
	a.Logger = logger
	a.Console = system.Console{Logger: logger}
	a.VT = system.NewVTWatcher(logger)
	if serverCfg.Enabled() {
		a.Web = web.NewHTTPServer(serverCfg, web.APIV1Deps{
			State:  store,
			Events: renderer,
			Logger: logger,
		})
	}

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("pixelsky error:", err)
		os.Exit(1)
	}
}
