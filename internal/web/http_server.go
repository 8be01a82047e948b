package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

type HTTPServer struct {
	Addr string

	// DevMode wraps every handler in permissive CORS.
	DevMode bool

	// Deps feed the API and the preview page.
	Deps APIV1Deps

	// Routes adds extra endpoints to the default mux, e.g. the simulator's /sim/*.
	Routes func(mux *http.ServeMux)

	mu     sync.Mutex
	srv    *http.Server
	ln     net.Listener
	closed bool
}

func NewHTTPServer(cfg ServerConfig, deps APIV1Deps) *HTTPServer {
	return &HTTPServer{Addr: cfg.ListenAddr, DevMode: cfg.DevMode, Deps: deps}
}

// Handler builds the full handler tree the server serves.
func (s *HTTPServer) Handler() http.Handler {
	mux := NewDefaultMux(s.Deps)
	if s.Routes != nil {
		s.Routes(mux)
	}
	var h http.Handler = mux
	if s.DevMode {
		h = WithDevCORS(h)
	}
	return h
}

func (s *HTTPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("web server already stopped")
	}
	if s.srv != nil {
		return nil
	}

	addr := s.Addr
	if addr == "" {
		addr = ":8080"
	}
	deps := s.Deps.withDefaults()

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.srv = nil
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.ln = ln
	deps.Logger.Infof("web", "preview server listening on %s", ln.Addr())

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()

	srv := s.srv
	go func() {
		err := srv.Serve(ln)
		if err == nil || errors.Is(err, http.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
			return
		}
		deps.Logger.Errorf("web", "serve: %v", err)
	}()

	return nil
}

// ListenAddr is the bound address once started, e.g. when Addr used port 0.
func (s *HTTPServer) ListenAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

func (s *HTTPServer) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	srv := s.srv
	ln := s.ln
	s.srv = nil
	s.ln = nil
	s.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
