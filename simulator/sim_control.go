package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rook-computer/pixelsky/internal/config"
	"github.com/rook-computer/pixelsky/internal/host"
	"github.com/rook-computer/pixelsky/internal/prefs"
	"github.com/rook-computer/pixelsky/internal/sky"
)

// SimControl backs the /sim/* endpoints: it reads and rewrites the viewer
// prefs of a running simulator and resets it to the config it started with.
type SimControl struct {
	base     config.Config
	controls *host.Controls
}

var errBusy = errors.New("frame loop busy")

type prefsPatch struct {
	ReducedMotion *bool   `json:"reducedMotion"`
	Device        *string `json:"device"`
	HUD           *bool   `json:"hud"`
}

func NewSimControl(base config.Config, controls *host.Controls) *SimControl {
	return &SimControl{base: base, controls: controls}
}

// Apply posts the changes in patch and remembers them.
func (c *SimControl) Apply(patch prefsPatch) error {
	if patch.Device != nil {
		class, err := deviceClass(*patch.Device)
		if err != nil {
			return err
		}
		if !c.controls.Post(sky.DeviceClassEvent{Class: class}) {
			return errBusy
		}
	}
	if patch.ReducedMotion != nil {
		if !c.controls.Post(sky.ReducedMotionEvent{Reduced: *patch.ReducedMotion}) {
			return errBusy
		}
	}
	if patch.HUD != nil {
		on := *patch.HUD
		c.controls.Store.SetHUD(on)
		c.controls.Remember(func(p *prefs.Prefs) { p.HUD = on })
	}
	return nil
}

// Reset forgets the saved prefs and returns the sky to the startup config.
func (c *SimControl) Reset() error {
	c.controls.Store.SetHUD(c.base.Display.HUD)
	events := []sky.Event{sky.ReducedMotionEvent{Reduced: c.base.ReducedMotion}}
	if class, err := deviceClass(c.base.Device); err == nil {
		events = append(events, sky.DeviceClassEvent{Class: class})
	} else {
		events = append(events, host.FollowWidthEvent{})
	}
	for _, ev := range events {
		if !c.controls.Events.Post(ev) {
			return errBusy
		}
	}
	c.controls.Remember(func(p *prefs.Prefs) { *p = prefs.Prefs{Scale: p.Scale} })
	return nil
}

func deviceClass(name string) (sky.DeviceClass, error) {
	switch name {
	case config.DeviceDesktop:
		return sky.Desktop, nil
	case config.DeviceMobile:
		return sky.Mobile, nil
	default:
		return sky.Desktop, fmt.Errorf("device must be desktop or mobile (got %q)", name)
	}
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := control.Reset(); err != nil {
			writeSimError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "prefs": control.controls.Saved()})
	})

	mux.HandleFunc("/sim/prefs", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, control.controls.Saved())
		case http.MethodPost:
			var patch prefsPatch
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			if err := control.Apply(patch); err != nil {
				status := http.StatusBadRequest
				if errors.Is(err, errBusy) {
					status = http.StatusServiceUnavailable
				}
				writeSimError(w, status, err.Error())
				return
			}
			writeSimJSON(w, http.StatusOK, control.controls.Saved())
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
