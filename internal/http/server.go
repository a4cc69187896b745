// Package http exposes the drawtrack JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"drawtrack/internal/auth"
	"drawtrack/internal/cache"
	"drawtrack/internal/middleware/ratelimit"
	"drawtrack/internal/middleware/security"
	"drawtrack/internal/middleware/trace"
	"drawtrack/internal/services"
	"drawtrack/internal/sheets"
)

// Options wires the server's collaborators. Sync and Mirror may be nil when
// no spreadsheet mirror is configured.
type Options struct {
	Addr        string
	Entries     *services.EntryService
	Sync        *services.SyncService
	Mirror      sheets.MirrorReader
	Auth        *auth.Service
	Development bool
	Logger      *slog.Logger
}

// Server is the HTTP front of the application.
type Server struct {
	http.Server

	entries *services.EntryService
	syncer  *services.SyncService
	mirror  sheets.MirrorReader
	auth    *auth.Service
	devMode bool
	logger  *slog.Logger

	limiter      *ratelimit.Limiter
	dataCache    *cache.TTLCache[sheets.Data]
	shutdownOnce sync.Once
}

// mirrorDataTTL bounds how stale GET /api/sheets/data may be; reads within
// the window never hit the Sheets API.
const mirrorDataTTL = 30 * time.Second

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		entries:   opts.Entries,
		syncer:    opts.Sync,
		mirror:    opts.Mirror,
		auth:      opts.Auth,
		devMode:   opts.Development,
		logger:    logger,
		limiter:   ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		dataCache: cache.New[sheets.Data](1, mirrorDataTTL),
	}

	ipExtractor := security.NewClientIPExtractor()
	tracer := trace.NewMiddleware(ipExtractor.ExtractClientIP)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limit := s.limiter.Middleware(ipExtractor.ExtractClientIP, s.onRateLimited)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/auth/google", s.handleGoogleLogin)
	mux.HandleFunc("GET /api/auth/google/callback", s.handleGoogleCallback)
	mux.HandleFunc("GET /api/auth/dev-login", s.handleDevLogin)
	mux.Handle("GET /api/auth/current-user", s.requireAuth(s.handleCurrentUser))
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)

	mux.Handle("GET /api/drawings", s.requireAuth(s.handleListDrawings))
	mux.Handle("POST /api/drawings", s.requireAuth(s.handleCreateDrawing))
	mux.Handle("GET /api/drawings/summary", s.requireAuth(s.handleSummary))
	mux.Handle("PATCH /api/drawings/{id}", s.requireAuth(s.handleUpdateDrawing))
	mux.Handle("DELETE /api/drawings/{id}", s.requireAuth(s.handleDeleteDrawing))
	mux.Handle("PATCH /api/drawings/{id}/favorite", s.requireAuth(s.handleSetFavorite))
	mux.Handle("PATCH /api/drawings/{id}/complete", s.requireAuth(s.handleSetCompleted))

	mux.Handle("POST /api/sheets/sync", s.requireAuth(s.handleSheetsSync))
	mux.Handle("GET /api/sheets/data", s.requireAuth(s.handleSheetsData))

	handler := tracer.Middleware(headers.Middleware(limitMutations(limit, mux)))

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// limitMutations rate-limits only the mutating methods so dashboard reads
// stay cheap.
func limitMutations(limit func(http.Handler) http.Handler, next http.Handler) http.Handler {
	limited := limit(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
			limited.ServeHTTP(w, r)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, "Too many requests, slow down")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Shutdown stops the background goroutines and then drains in-flight
// requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		if s.auth != nil {
			s.auth.Sessions().Stop()
		}
	})
	return s.Server.Shutdown(ctx)
}
