//go:build !linux

package system

import "errors"

var errNoConsole = errors.New("console mode switching is only available on linux")

// Console is inert outside Linux.
type Console struct {
	Logger logger
}

func (c Console) EnterGraphics() error { return errNoConsole }
func (c Console) Restore() error       { return errNoConsole }
