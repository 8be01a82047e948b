package host

import (
	"sync"

	"github.com/rook-computer/pixelsky/internal/buttons"
	"github.com/rook-computer/pixelsky/internal/prefs"
	"github.com/rook-computer/pixelsky/internal/sky"
	"github.com/rook-computer/pixelsky/internal/state"
)

// Controls turns viewer actions into events for a frame loop. With Prefs set
// every accepted change is saved for the next run. It is safe for concurrent use.
type Controls struct {
	Store  *state.Store
	Prefs  *prefs.Manager
	Events interface{ Post(sky.Event) bool }
	Logger Logger

	mu sync.Mutex
}

// Press handles one button action and reports whether it asked to exit.
func (c *Controls) Press(b buttons.Event) (exit bool) {
	snap := c.Store.Snapshot()
	switch b {
	case buttons.Exit:
		c.infof("exit requested")
		return true
	case buttons.ToggleMotion:
		c.Post(sky.ReducedMotionEvent{Reduced: !snap.Sky.ReducedMotion})
	case buttons.ToggleDevice:
		next := sky.Mobile
		if snap.Sky.Device == sky.Mobile {
			next = sky.Desktop
		}
		c.Post(sky.DeviceClassEvent{Class: next})
	case buttons.ToggleHUD:
		on := c.Store.ToggleHUD()
		c.infof("hud=%t", on)
		c.Remember(func(p *prefs.Prefs) { p.HUD = on })
	default:
		c.errorf("unknown button event %q", b)
	}
	return false
}

// Post forwards ev to the frame loop and remembers preference changes it carries.
func (c *Controls) Post(ev sky.Event) bool {
	if c.Events == nil || !c.Events.Post(ev) {
		c.errorf("dropped %T", ev)
		return false
	}
	c.infof("posted %+v", ev)
	switch e := ev.(type) {
	case sky.ReducedMotionEvent:
		c.Remember(func(p *prefs.Prefs) { p.ReducedMotion = e.Reduced })
	case sky.DeviceClassEvent:
		c.Remember(func(p *prefs.Prefs) { p.Device = e.Class.String() })
	}
	return true
}

// Saved returns the remembered prefs, or the zero value without storage.
func (c *Controls) Saved() prefs.Prefs {
	if c.Prefs == nil {
		return prefs.Prefs{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Prefs.Get()
}

// Remember applies fn to the prefs and saves them. Without Prefs it does nothing.
func (c *Controls) Remember(fn func(*prefs.Prefs)) {
	if c.Prefs == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.Prefs.Update(fn); err != nil {
		c.errorf("save prefs: %v", err)
	}
}

func (c *Controls) infof(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Infof("controls", format, args...)
	}
}

func (c *Controls) errorf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Errorf("controls", format, args...)
	}
}
