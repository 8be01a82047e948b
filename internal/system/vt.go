package system

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// ActiveVTPath names the virtual terminal currently in the foreground.
const ActiveVTPath = "/sys/class/tty/tty0/active"

// ActiveVT reads the foreground VT name (e.g. "tty1") from path.
func ActiveVT(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read active vt: %w", err)
	}
	name := strings.TrimSpace(string(raw))
	if name == "" {
		return "", fmt.Errorf("read active vt: %s is empty", path)
	}
	return name, nil
}

// VTWatcher reports whether the kiosk's own VT is in the foreground.
// sysfs attributes do not support inotify, so the file is polled.
type VTWatcher struct {
	Path     string
	Interval time.Duration
	Logger   logger

	// Own is the kiosk's VT. Empty means the VT active when Run starts.
	Own string
}

func NewVTWatcher(l logger) *VTWatcher {
	return &VTWatcher{Path: ActiveVTPath, Interval: 500 * time.Millisecond, Logger: l}
}

// Run calls onChange every time the foreground flips until ctx is done.
func (w *VTWatcher) Run(ctx context.Context, onChange func(foreground bool)) error {
	if w.Own == "" {
		own, err := ActiveVT(w.Path)
		if err != nil {
			return err
		}
		w.Own = own
	}
	if w.Logger != nil {
		w.Logger.Infof("vt", "watching %s, kiosk on %s", w.Path, w.Own)
	}

	interval := w.Interval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	foreground := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			active, err := ActiveVT(w.Path)
			if err != nil {
				if w.Logger != nil {
					w.Logger.Errorf("vt", "%v", err)
				}
				continue
			}
			now := active == w.Own
			if now == foreground {
				continue
			}
			foreground = now
			if w.Logger != nil {
				w.Logger.Infof("vt", "active=%s foreground=%t", active, now)
			}
			onChange(now)
		}
	}
}
