package web

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvListenAddr = "PIXELSKY_LISTEN"
	EnvDevMode    = "PIXELSKY_DEV"
)

// ServerConfig contains settings for running the preview server.
//
// An empty ListenAddr disables the server. The kiosk and the simulator
// pass their config file values as the base.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

// Enabled reports whether a listen address is set.
func (c ServerConfig) Enabled() bool { return c.ListenAddr != "" }

// ServerConfigFromEnv overlays PIXELSKY_LISTEN and PIXELSKY_DEV on base.
func ServerConfigFromEnv(base ServerConfig) (ServerConfig, error) {
	return serverConfigFrom(base, os.Getenv)
}

func serverConfigFrom(base ServerConfig, getenv func(string) string) (ServerConfig, error) {
	out := base
	if listenAddr := getenv(EnvListenAddr); listenAddr != "" {
		out.ListenAddr = listenAddr
	}
	if raw := getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		out.DevMode = parsed
	}
	return out, nil
}
