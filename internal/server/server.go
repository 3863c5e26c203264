package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kapu/meal-browser-go/internal/app"
	"github.com/kapu/meal-browser-go/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// SessionFactory creates one session per connected browser tab.
type SessionFactory interface {
	NewSession(ctx context.Context, surface app.Surface) *app.Session
}

// Server serves the shell page, the session socket and operational endpoints.
type Server struct {
	config      config.ServerConfig
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	sessions    SessionFactory
	page        *page
	logger      *zap.Logger

	mu    sync.Mutex
	ready bool
	conns map[*websocket.Conn]struct{}
}

func NewServer(cfg config.ServerConfig, sessions SessionFactory, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pg, err := newPage()
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:   cfg,
		sessions: sessions,
		page:     pg,
		logger:   logger,
		conns:    make(map[*websocket.Conn]struct{}),
	}
	if cfg.RateLimit > 0 {
		s.rateLimiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /ws", s.withMiddleware(s.handleWebSocket))
	mux.HandleFunc("GET /{$}", s.withMiddleware(s.handleIndex))

	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.render(w); err != nil {
		s.logger.Error("Failed to render page", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ready := s.ready
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if !ready {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready\n"))
		return
	}
	_, _ = w.Write([]byte("ok\n"))
}

// SetReady marks the server as ready to serve traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.SetReady(true)
	s.logger.Info("Starting server", zap.String("addr", s.httpServer.Addr))

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown stops accepting requests and closes open sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.logger.Info("Shutting down server")
	err := s.httpServer.Shutdown(shutdownCtx)
	s.closeSessions()
	return err
}
