// Package server is the HTTP surface of the dashboard. It routes requests
// to the session registry, the telemetry aggregator and the static
// frontend, and maps their errors to JSON responses.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"hostdash/internal/models"
)

const shutdownTimeout = 10 * time.Second

// Sessions is the part of session.Registry the handlers use.
type Sessions interface {
	Login(username, password, clientIP string) (models.SessionRecord, error)
	Logout(username string) error
	ListCurrent() []models.SessionRecord
	ListRecent() []models.SessionRecord
	CountCurrent() int
}

// Telemetry is the part of telemetry.Aggregator the handlers use.
type Telemetry interface {
	CPUMemoryDisk(ctx context.Context) (models.SystemStats, error)
	Processes(ctx context.Context) ([]models.Process, error)
	Logs(ctx context.Context, limit int) ([]string, error)
	Uptime(ctx context.Context) (string, error)
}

type Options struct {
	FrontendDir string
	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP.
	TrustProxy bool
	Logger     zerolog.Logger
	LogLimit   int
}

type Server struct {
	sessions  Sessions
	telemetry Telemetry
	opts      Options
	log       zerolog.Logger
	metrics   *metrics
}

func New(sessions Sessions, tel Telemetry, opts Options) *Server {
	if opts.FrontendDir == "" {
		opts.FrontendDir = "frontend"
	}
	return &Server{
		sessions:  sessions,
		telemetry: tel,
		opts:      opts,
		log:       opts.Logger,
		metrics:   newMetrics(sessions),
	}
}

// Handler builds the router. Each call returns an independent handler
// sharing the server's state.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	if s.opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(accessLog(s.log))
	r.Use(s.metrics.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/frontend/login.html", http.StatusFound)
	})
	r.Get("/frontend/{filename}", s.serveStatic)
	r.Get("/frontend/{subdir}/{filename}", s.serveStatic)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Get("/current_users", s.handleCurrentUsers)
		r.Get("/last_logged_users", s.handleLastLoggedUsers)
		r.Get("/system_stats", s.handleSystemStats)
		r.Get("/processes", s.handleProcesses)
		r.Get("/system_logs", s.handleSystemLogs)
		r.Get("/system_uptime", s.handleSystemUptime)
	})

	return r
}

// ListenAndServeTLS serves until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServeTLS(ctx context.Context, addr, certFile, keyFile string) error {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return fmt.Errorf("loading TLS key pair: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		TLSConfig: &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServeTLS("", "")
	}()
	s.log.Info().Str("addr", addr).Msg("listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
