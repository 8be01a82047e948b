// Package prefs persists the simulator's viewer toggles between runs.
package prefs

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/rook-computer/pixelsky/internal/config"
)

const (
	AppName = "pixelsky"

	prefsObject   = "prefs"
	prefsProperty = "viewer"
)

// Prefs are the toggles a viewer flips while watching the sky.
type Prefs struct {
	ReducedMotion bool   `yaml:"reducedMotion" json:"reducedMotion"`
	Device        string `yaml:"device" json:"device"` // empty follows the config
	HUD           bool   `yaml:"hud" json:"hud"`
	Scale         int    `yaml:"scale" json:"scale"` // window scale, 0 picks the default
}

// Apply overlays the saved toggles on cfg. Unknown device names are ignored.
func (p Prefs) Apply(cfg *config.Config) {
	if p.ReducedMotion {
		cfg.ReducedMotion = true
	}
	switch p.Device {
	case config.DeviceDesktop, config.DeviceMobile:
		cfg.Device = p.Device
	}
	if p.HUD {
		cfg.Display.HUD = true
	}
	if p.Scale > 0 {
		cfg.Display.PixelScale = p.Scale
	}
}

// Manager loads and saves Prefs. A nil gdata manager keeps them in memory only.
type Manager struct {
	data  *gdata.Manager
	prefs Prefs
}

// Open opens the per-user storage for appName and loads any saved prefs.
// A storage or decode failure yields an in-memory manager plus the error.
func Open(appName string) (*Manager, error) {
	data, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return New(nil), fmt.Errorf("open prefs storage: %w", err)
	}
	m := New(data)
	return m, m.Load()
}

// New wraps an already opened gdata manager.
func New(data *gdata.Manager) *Manager {
	return &Manager{data: data}
}

// Load replaces the in-memory prefs with the saved copy. Missing data keeps the zero value.
func (m *Manager) Load() error {
	m.prefs = Prefs{}
	if m.data == nil || !m.data.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}
	raw, err := m.data.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}
	var p Prefs
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("decode prefs: %w", err)
	}
	m.prefs = p
	return nil
}

// Save writes the current prefs.
func (m *Manager) Save() error {
	if m.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(m.prefs)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := m.data.SaveObjectProp(prefsObject, prefsProperty, raw); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}

// Get returns a copy of the current prefs.
func (m *Manager) Get() Prefs { return m.prefs }

// Update applies fn to the prefs and saves them.
func (m *Manager) Update(fn func(*Prefs)) error {
	fn(&m.prefs)
	return m.Save()
}
