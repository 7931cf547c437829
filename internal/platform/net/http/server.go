package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"scanwedge/internal/platform/config"
	"scanwedge/internal/platform/logger"
)

// Server wraps a chi mux and a stdlib http.Server
type Server struct {
	addr  string
	drain time.Duration
	mux   *chi.Mux
	srv   *stdhttp.Server
	ready chan net.Addr
}

// NewServer reads API_PORT (":4000") and DRAIN_TIMEOUT (10s) from cfg.
// opts receive the *chi.Mux so callers can mount routes or middleware.
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("API_PORT", ":4000")
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr:  addr,
		drain: cfg.MayDuration("DRAIN_TIMEOUT", 10*time.Second),
		mux:   m,
		ready: make(chan net.Addr, 1),
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router {
	return AdaptChi(s.mux)
}

// Ready yields the bound address once the listener is up
func (s *Server) Ready() <-chan net.Addr { return s.ready }

// Run serves until ctx is done, then drains open requests for up to
// DRAIN_TIMEOUT. Hijacked connections such as websockets are not waited on.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	log := logger.Named("http")
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")
	s.ready <- ln.Addr()

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.drain)
	defer cancel()
	log.Info().Dur("drain", s.drain).Msg("http draining")
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	return nil
}
