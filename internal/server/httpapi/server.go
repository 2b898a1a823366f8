package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/trackvers/trackvers/internal/logging"
)

// Server runs the gin engine with graceful shutdown tied to the context.
type Server struct {
	addr   string
	logger logging.Logger
	srv    *http.Server
}

func NewServer(addr string, h *Handler, logger logging.Logger) *Server {
	return &Server{
		addr:   addr,
		logger: logger,
		srv: &http.Server{
			Addr:    addr,
			Handler: NewRouter(h),
		},
	}
}

// Run serves until ctx is cancelled, then shuts down with a short grace
// period.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
