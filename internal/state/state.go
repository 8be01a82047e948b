package state

import (
	"image"
	"sync"

	"github.com/rook-computer/pixelsky/internal/sky"
)

type Phase int

const (
	BOOTING Phase = iota
	RUNNING
	SUSPENDED
	STOPPED
	ERROR
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case RUNNING:
		return "running"
	case SUSPENDED:
		return "suspended"
	case STOPPED:
		return "stopped"
	case ERROR:
		return "error"
	default:
		return "unknown"
	}
}

type PreviewInfo struct {
	URL string
}

type State struct {
	Phase   Phase
	Sky     sky.Stats
	Preview PreviewInfo
	HUD     bool
	Frame   uint64 // sequence number of the last published frame
	Err     string
}

// Store is shared between the render loop and the web server.
type Store struct {
	mu    sync.RWMutex
	state State
	frame *image.RGBA
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

// Fail moves the store to ERROR and records err.
func (store *Store) Fail(err error) {
	store.mu.Lock()
	store.state.Phase = ERROR
	if err != nil {
		store.state.Err = err.Error()
	}
	store.mu.Unlock()
}

func (store *Store) UpdateSky(stats sky.Stats) {
	store.mu.Lock()
	store.state.Sky = stats
	store.mu.Unlock()
}

func (store *Store) UpdatePreview(preview PreviewInfo) {
	store.mu.Lock()
	store.state.Preview = preview
	store.mu.Unlock()
}

func (store *Store) SetHUD(on bool) {
	store.mu.Lock()
	store.state.HUD = on
	store.mu.Unlock()
}

// ToggleHUD flips the HUD flag and returns the new value.
func (store *Store) ToggleHUD() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.HUD = !store.state.HUD
	return store.state.HUD
}

// PublishFrame takes ownership of img as the latest finished frame.
func (store *Store) PublishFrame(img *image.RGBA) uint64 {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.frame = img
	store.state.Frame++
	return store.state.Frame
}

// Frame returns the latest published frame and its sequence number.
// The image must be treated as read-only.
func (store *Store) Frame() (*image.RGBA, uint64) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.frame, store.state.Frame
}
