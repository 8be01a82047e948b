package buttons

import "context"

type Event string

const (
	Exit         Event = "exit"
	ToggleMotion Event = "toggle-motion"
	ToggleDevice Event = "toggle-device"
	ToggleHUD    Event = "toggle-hud"
)

type Buttons interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

// Linux input-event-codes.h
const (
	KeyF4 uint16 = 62
	KeyF5 uint16 = 63
	KeyF6 uint16 = 64
	KeyF7 uint16 = 65
)

// DefaultKeyMap binds the function keys the kiosk reacts to.
func DefaultKeyMap() map[uint16]Event {
	return map[uint16]Event{
		KeyF4: Exit,
		KeyF5: ToggleMotion,
		KeyF6: ToggleDevice,
		KeyF7: ToggleHUD,
	}
}

type NoopButtons struct{ ch chan Event }

func NewNoopButtons() *NoopButtons { return &NoopButtons{ch: make(chan Event)} }

func (n *NoopButtons) Start(ctx context.Context) error { return nil }
func (n *NoopButtons) Stop() error                     { close(n.ch); return nil }
func (n *NoopButtons) Events() <-chan Event            { return n.ch }
