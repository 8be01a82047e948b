//go:build linux

package system

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

// Prefer /dev/tty (active VT), fallback to /dev/tty0.
var consolePaths = []string{"/dev/tty", "/dev/tty0"}

// Console switches the active VT between text and graphics mode so the
// hardware cursor and kernel messages do not draw over the framebuffer.
type Console struct {
	Logger logger
}

// EnterGraphics sets KD_GRAPHICS and hides the cursor. Failures are logged and returned.
func (c Console) EnterGraphics() error {
	err := setKDMode(kdGraphics)
	c.log(err, "KD_GRAPHICS set", "KD_GRAPHICS failed")
	cerr := writeVT("\x1b[?25l")
	c.log(cerr, "cursor hidden", "hide cursor failed")
	return errors.Join(err, cerr)
}

// Restore shows the cursor and returns the console to text mode.
func (c Console) Restore() error {
	cerr := writeVT("\x1b[?25h")
	c.log(cerr, "cursor shown", "show cursor failed")
	err := setKDMode(kdText)
	c.log(err, "KD_TEXT set", "KD_TEXT failed")
	return errors.Join(cerr, err)
}

func (c Console) log(err error, ok, failed string) {
	if c.Logger == nil {
		return
	}
	if err != nil {
		c.Logger.Errorf("tty", "%s: %v", failed, err)
		return
	}
	c.Logger.Infof("tty", "%s", ok)
}

func setKDMode(mode int) error {
	var lastErr error
	for _, p := range consolePaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	return lastErr
}

func writeVT(s string) error {
	var lastErr error
	for _, p := range consolePaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write VT: %w", lastErr)
}
