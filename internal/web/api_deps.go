package web

import (
	"image"

	"github.com/rook-computer/pixelsky/internal/sky"
	"github.com/rook-computer/pixelsky/internal/state"
)

// StateSource is the read side of the shared store.
//
// The concrete implementation is *state.Store.
type StateSource interface {
	Snapshot() state.State
	Frame() (*image.RGBA, uint64)
}

// EventPoster queues an event for the render loop. It must not block;
// false means the event was dropped.
type EventPoster interface {
	Post(ev sky.Event) bool
}

// apiLogger matches the logging shape used across the app.
type apiLogger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type APIV1Deps struct {
	State  StateSource
	Events EventPoster
	Logger apiLogger
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.State == nil {
		out.State = state.NewStore()
	}
	if out.Events == nil {
		out.Events = NoopEventPoster{}
	}
	if out.Logger == nil {
		out.Logger = noopLogger{}
	}
	return out
}

// NoopEventPoster drops every event.
type NoopEventPoster struct{}

func (NoopEventPoster) Post(sky.Event) bool { return false }

// EventFunc adapts a function to EventPoster.
type EventFunc func(ev sky.Event) bool

func (f EventFunc) Post(ev sky.Event) bool { return f(ev) }

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}
