//go:build !linux

package buttons

type evdevLogger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EvdevButtons has no input source outside Linux.
type EvdevButtons struct{ *NoopButtons }

func NewEvdevButtons(logger evdevLogger) *EvdevButtons {
	if logger != nil {
		logger.Infof("input", "evdev input is only available on linux")
	}
	return &EvdevButtons{NoopButtons: NewNoopButtons()}
}
