package diagnostics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aswin-roy/ladybird-desk/pkg/logger"
)

// NewHandler builds the diagnostics router: liveness plus the Prometheus
// scrape endpoint for the workflow metrics.
func NewHandler(env string, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", healthzHandler(env))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

func healthzHandler(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Ladybird-Env", env)
		response := map[string]string{"status": "ok"}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
		}
	}
}

// Server runs the diagnostics listener on a local port next to the desk
// session. It is best-effort: the desk keeps working if it fails.
type Server struct {
	srv  *http.Server
	logg *logger.Logger
}

// NewServer wires a diagnostics server for the given bind address.
func NewServer(addr, env string, gatherer prometheus.Gatherer, logg *logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewHandler(env, gatherer),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logg: logg,
	}
}

// Start serves in the background until Shutdown.
func (s *Server) Start(ctx context.Context) {
	go func() {
		if s.logg != nil {
			s.logg.Info(s.logg.WithField(ctx, "addr", s.srv.Addr), "diagnostics listening")
		}
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if s.logg != nil {
				s.logg.Error(ctx, fmt.Sprintf("diagnostics server stopped: %v", err), err)
			}
		}
	}()
}

// Shutdown drains the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
