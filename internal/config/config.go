// Package config loads the backdrop settings shared by the kiosk and the simulator.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rook-computer/pixelsky/internal/sky"
)

const (
	EnvConfigPath    = "PIXELSKY_CONFIG"
	EnvReducedMotion = "PIXELSKY_REDUCED_MOTION"
	EnvSeed          = "PIXELSKY_SEED"
)

// Device names accepted in the config file.
const (
	DeviceAuto    = "auto"
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
)

// Config is the on-disk configuration. Zero fields in a file keep their defaults.
type Config struct {
	Stars     StarsConfig     `yaml:"stars"`
	Particles ParticlesConfig `yaml:"particles"`

	ShootingStarChance float64 `yaml:"shootingStarChance"`
	MaxFrameDelta      float64 `yaml:"maxFrameDelta"` // ms
	HalfRate           bool    `yaml:"halfRate"`
	MobileBreakpoint   int     `yaml:"mobileBreakpoint"` // logical px

	Device        string `yaml:"device"` // auto, desktop or mobile
	ReducedMotion bool   `yaml:"reducedMotion"`
	Seed          uint64 `yaml:"seed"` // 0 seeds from the clock

	Display DisplayConfig `yaml:"display"`
	Server  ServerConfig  `yaml:"server"`
}

type StarsConfig struct {
	Desktop int `yaml:"desktop"`
	Mobile  int `yaml:"mobile"`
}

type ParticlesConfig struct {
	Cap         int     `yaml:"cap"`
	SpawnChance float64 `yaml:"spawnChance"`
}

// DisplayConfig drives the kiosk output.
type DisplayConfig struct {
	RefreshHz  int  `yaml:"refreshHz"`
	PixelScale int  `yaml:"pixelScale"` // framebuffer pixels per logical pixel
	HUD        bool `yaml:"hud"`
	QR         bool `yaml:"qr"`
}

// ServerConfig is the preview server section. An empty Listen disables it.
type ServerConfig struct {
	Listen string `yaml:"listen"`
	Dev    bool   `yaml:"dev"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Stars:              StarsConfig{Desktop: 300, Mobile: 120},
		Particles:          ParticlesConfig{Cap: 50, SpawnChance: 0.05},
		ShootingStarChance: 0.001,
		MaxFrameDelta:      100,
		HalfRate:           true,
		MobileBreakpoint:   768,
		Device:             DeviceAuto,
		Display:            DisplayConfig{RefreshHz: 60, PixelScale: 1},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by PIXELSKY_CONFIG (or fallbackPath) and applies env overrides.
func LoadFromEnv(fallbackPath string) (Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = fallbackPath
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays the environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if raw := getenv(EnvReducedMotion); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s must be a boolean (got %q): %w", EnvReducedMotion, raw, err)
		}
		c.ReducedMotion = v
	}
	if raw := getenv(EnvSeed); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%s must be an unsigned integer (got %q): %w", EnvSeed, raw, err)
		}
		c.Seed = v
	}
	return nil
}

// Validate rejects settings the renderer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Stars.Desktop < 0 || c.Stars.Mobile < 0 {
		errs = append(errs, fmt.Errorf("star counts must not be negative (desktop=%d mobile=%d)", c.Stars.Desktop, c.Stars.Mobile))
	}
	if c.Particles.Cap < 0 {
		errs = append(errs, fmt.Errorf("particle cap must not be negative (got %d)", c.Particles.Cap))
	}
	if !isChance(c.Particles.SpawnChance) || !isChance(c.ShootingStarChance) {
		errs = append(errs, fmt.Errorf("spawn chances must be within [0,1] (particles=%v shooting=%v)", c.Particles.SpawnChance, c.ShootingStarChance))
	}
	if c.MaxFrameDelta <= 0 {
		errs = append(errs, fmt.Errorf("maxFrameDelta must be positive (got %v)", c.MaxFrameDelta))
	}
	if c.MobileBreakpoint <= 0 {
		errs = append(errs, fmt.Errorf("mobileBreakpoint must be positive (got %d)", c.MobileBreakpoint))
	}
	if c.Display.RefreshHz <= 0 {
		errs = append(errs, fmt.Errorf("display.refreshHz must be positive (got %d)", c.Display.RefreshHz))
	}
	if c.Display.PixelScale <= 0 {
		errs = append(errs, fmt.Errorf("display.pixelScale must be positive (got %d)", c.Display.PixelScale))
	}
	switch c.Device {
	case DeviceAuto, DeviceDesktop, DeviceMobile:
	default:
		errs = append(errs, fmt.Errorf("device must be auto, desktop or mobile (got %q)", c.Device))
	}
	return errors.Join(errs...)
}

func isChance(v float64) bool { return v >= 0 && v <= 1 }

// DeviceClassFor resolves the device class for a logical width.
func (c *Config) DeviceClassFor(width int) sky.DeviceClass {
	switch c.Device {
	case DeviceDesktop:
		return sky.Desktop
	case DeviceMobile:
		return sky.Mobile
	}
	if width < c.MobileBreakpoint {
		return sky.Mobile
	}
	return sky.Desktop
}

// Sky builds the core configuration for a device class.
func (c *Config) Sky(class sky.DeviceClass) sky.Config {
	stars := c.Stars.Desktop
	if class == sky.Mobile {
		stars = c.Stars.Mobile
	}
	return sky.Config{
		StarCount:           stars,
		ParticleCap:         c.Particles.Cap,
		ParticleSpawnChance: c.Particles.SpawnChance,
		ShootingStarChance:  c.ShootingStarChance,
		MaxFrameDelta:       c.MaxFrameDelta,
		HalfRate:            c.HalfRate,
	}
}
