// Package devserver serves the output tree over HTTP and pushes reload events
// to connected browsers over a websocket.
package devserver

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/browser"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	socketPath  = "/__kiln/ws"
	clientPath  = "/__kiln/client.js"
	metricsPath = "/metrics"

	readHeaderTimeout = 5 * time.Second
)

//go:embed static/client.js
var clientScript []byte

// Opener opens url in a browser.
type Opener func(url string) error

// Server implements ports.DevServer.
type Server struct {
	logger   ports.Logger
	metrics  ports.Metrics
	scrape   http.Handler
	open     Opener
	dir      string
	settings domain.ServerSettings
	hub      *Hub

	mu       sync.Mutex
	srv      *http.Server
	url      string
	serveErr chan error
}

// NewServer creates a Server for the absolute directory dir. scrape, when
// non-nil, is mounted at /metrics.
func NewServer(
	logger ports.Logger,
	metrics ports.Metrics,
	scrape http.Handler,
	dir string,
	settings domain.ServerSettings,
) *Server {
	return &Server{
		logger:   logger,
		metrics:  metrics,
		scrape:   scrape,
		open:     browser.OpenURL,
		dir:      dir,
		settings: settings,
		hub:      NewHub(logger, metrics),
	}
}

// WithOpener replaces the browser opener.
func (s *Server) WithOpener(open Opener) *Server {
	s.open = open
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(socketPath, s.hub)
	mux.HandleFunc(clientPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(clientScript)
	})
	if s.scrape != nil {
		mux.Handle(metricsPath, s.scrape)
	}

	files := http.FileServer(http.Dir(s.dir))
	mux.Handle("/", noCache(injectClient(files, s.settings.Notify)))
	return mux
}

// Start binds the port and serves in the background. When enabled, the
// browser is opened on the served URL.
func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return nil
	}

	addr := net.JoinHostPort("", strconv.Itoa(s.settings.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerStartFailed.Error()), "addr", addr)
	}

	port := ln.Addr().(*net.TCPAddr).Port
	s.url = fmt.Sprintf("http://localhost:%d", port)
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	s.serveErr = make(chan error, 1)

	go func(srv *http.Server) {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.serveErr <- err
	}(s.srv)

	if s.settings.Open {
		if err := s.open(s.url); err != nil {
			s.logger.Warn("could not open browser: " + err.Error())
		}
	}
	return nil
}

// Stop disconnects reload clients and shuts the HTTP server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	s.hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	return <-s.serveErr
}

// URL returns the address the server is reachable at, empty before Start.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// Clients returns the number of connected reload clients.
func (s *Server) Clients() int {
	return s.hub.Len()
}

// Reload asks every connected browser to reload.
func (s *Server) Reload(_ context.Context, event domain.ReloadEvent) {
	n := s.hub.Broadcast(event)
	s.metrics.ObserveReload(event.Pipeline)
	s.logger.Debug(fmt.Sprintf("reload %s sent to %d client(s)", event.Pipeline, n))
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}
