package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServer struct {
	srv  *http.Server
	addr string
}

// Addr 实际监听的地址
func (s *HTTPServer) Addr() string {
	return s.addr
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// NewHTTPServer 在addr上暴露/metrics与/health
func NewHTTPServer(addr string, logger *slog.Logger, health func() error) (*HTTPServer, error) {
	srv := &http.Server{Addr: addr}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if health == nil {
			return
		}
		if err := health(); err != nil {
			logger.Error("health check failed", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	srv.Handler = mux

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, err
	}
	logger.Info("starting metrics server", "addr", ln.Addr().String())
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "err", err.Error())
		}
	}()
	return &HTTPServer{srv: srv, addr: ln.Addr().String()}, nil
}
