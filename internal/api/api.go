// Package api provides the webhook HTTP server for the Woody LINE assistant.
//
// It exposes the /callback endpoint the LINE platform delivers events to,
// verifies signatures through the LINE client, and fans events out to the
// free-text intent router and the postback workflow engine.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ck19910321/LineBot/internal/intent"
	"github.com/ck19910321/LineBot/internal/messaging"
	"github.com/ck19910321/LineBot/internal/workflow"
)

// DefaultAddr is the default listen address.
const DefaultAddr = ":8000"

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 10 * time.Second

// Opts holds configuration options for the API server.
type Opts struct {
	Addr string
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// Server handles inbound webhook traffic.
type Server struct {
	line    *messaging.LineService
	engine  *workflow.Engine
	intents *intent.Router
	addr    string
}

// NewServer creates the webhook server over the LINE client, workflow engine
// and intent router.
func NewServer(line *messaging.LineService, engine *workflow.Engine, intents *intent.Router, opts ...Option) *Server {
	cfg := Opts{Addr: DefaultAddr}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{line: line, engine: engine, intents: intents, addr: cfg.Addr}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", s.callbackHandler)

	srv := &http.Server{Addr: s.addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Webhook server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Webhook server shutdown failed", "error", err)
			return err
		}
		slog.Info("Webhook server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
