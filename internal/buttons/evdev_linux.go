//go:build linux

package buttons

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

type evdevLogger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EvdevButtons watches Linux evdev devices under /dev/input/event* and maps
// key presses to events through Keys.
//
// It is best-effort: if no input devices are available, it logs and emits nothing.
type EvdevButtons struct {
	Logger evdevLogger
	Keys   map[uint16]Event
	Glob   string

	ch     chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewEvdevButtons(logger evdevLogger) *EvdevButtons {
	return &EvdevButtons{
		Logger: logger,
		Keys:   DefaultKeyMap(),
		Glob:   "/dev/input/event*",
		ch:     make(chan Event, 8),
	}
}

func (b *EvdevButtons) Events() <-chan Event { return b.ch }

func (b *EvdevButtons) Start(ctx context.Context) error {
	paths, err := filepath.Glob(b.Glob)
	if err != nil || len(paths) == 0 {
		b.infof("no evdev devices found under %s", b.Glob)
		return nil
	}

	ctx, b.cancel = context.WithCancel(ctx)
	tvSize := binary.Size(unix.Timeval{})
	for _, path := range paths {
		b.wg.Add(1)
		go func(p string) {
			defer b.wg.Done()
			b.watch(ctx, p, tvSize)
		}(path)
	}
	b.infof("watching %d input devices", len(paths))
	return nil
}

func (b *EvdevButtons) Stop() error {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
	return nil
}

func (b *EvdevButtons) watch(ctx context.Context, path string, tvSize int) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 64*inputEventSize(tvSize))
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		for _, code := range pressedKeys(buf[:n], tvSize) {
			ev, ok := b.Keys[code]
			if !ok {
				continue
			}
			b.infof("key %d: %s", code, ev)
			select {
			case b.ch <- ev:
			case <-ctx.Done():
				return
			default:
				b.errorf("dropped %s, queue full", ev)
			}
		}
	}
}

func (b *EvdevButtons) infof(format string, args ...interface{}) {
	if b.Logger != nil {
		b.Logger.Infof("input", format, args...)
	}
}

func (b *EvdevButtons) errorf(format string, args ...interface{}) {
	if b.Logger != nil {
		b.Logger.Errorf("input", format, args...)
	}
}
