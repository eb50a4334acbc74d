// Package api provides the HTTP surface for AssistFlow.
//
// It exposes the Twilio WhatsApp webhook that drives the conversation engine
// plus a small administrative API for session analytics and lifecycle.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vhelp/assistflow/internal/flow"
	"github.com/vhelp/assistflow/internal/messaging"
	"github.com/vhelp/assistflow/internal/store"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Server timeouts.
const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
)

// Opts holds configuration options for the API server.
type Opts struct {
	Addr string
}

// Option defines a functional option for server configuration.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// Server wires the conversation engine, the messaging sender, and the booking
// archive behind the HTTP mux.
type Server struct {
	engine  *flow.Engine
	sender  messaging.Sender // optional; nil disables the agent call endpoint
	archive store.Store      // optional; nil disables the bookings endpoint
	addr    string
	started time.Time
}

// NewServer creates the API server. sender and archive may be nil; the
// corresponding endpoints report the feature as unavailable.
func NewServer(engine *flow.Engine, sender messaging.Sender, archive store.Store, opts ...Option) *Server {
	cfg := Opts{Addr: DefaultAddr}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		engine:  engine,
		sender:  sender,
		archive: archive,
		addr:    cfg.Addr,
	}
}

// Handler builds the route table. Split from Run so tests can drive the mux
// through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /webhook/whatsapp", s.webhookHandler)
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /stats", s.statsHandler)
	mux.HandleFunc("GET /sessions/{id}/analytics", s.analyticsHandler)
	mux.HandleFunc("POST /sessions/{id}/reset", s.resetHandler)
	mux.HandleFunc("DELETE /sessions/{id}", s.deleteSessionHandler)
	mux.HandleFunc("GET /bookings", s.bookingsHandler)
	mux.HandleFunc("POST /calls/agent", s.agentCallHandler)
	return mux
}

// Run starts the HTTP server and blocks until it exits.
func (s *Server) Run() error {
	s.started = time.Now()

	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	slog.Info("Server.Run: AssistFlow API listening", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}
