// Package logging is the two-level logger shared by the kiosk and the simulator.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Logger is the two-level logger shared by every component.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes one timestamped line per entry. It is safe for concurrent use.
type FileLogger struct {
	mu  *sync.Mutex
	w   io.Writer
	now func() time.Time
}

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{mu: &sync.Mutex{}, w: w, now: time.Now} }

func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.write("INFO", component, format, args...)
}

func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.write("ERROR", component, format, args...)
}

func (l FileLogger) write(level, component, format string, args ...interface{}) {
	timestamp := l.now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}

// Open appends to the log file at path. The caller closes the returned file.
func Open(path string) (FileLogger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return FileLogger{}, nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return NewFileLogger(f), f, nil
}
