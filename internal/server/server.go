package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-wizard/internal/blobstore"
	"github.com/jonathan/resume-wizard/internal/handoff"
	"github.com/jonathan/resume-wizard/internal/server/middleware"
	"github.com/jonathan/resume-wizard/internal/server/ratelimit"
	"github.com/jonathan/resume-wizard/internal/settings"
	"github.com/jonathan/resume-wizard/internal/upload"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// Server represents the HTTP server
type Server struct {
	cfg         Config
	httpServer  *http.Server
	handler     http.Handler
	registry    *Registry
	blobs       blobstore.Store
	settings    settings.Store
	publisher   handoff.Publisher
	checker     *upload.Checker
	rateLimiter *ratelimit.Limiter
	logger      *slog.Logger
	now         func() time.Time
}

// Config holds server configuration. Blobs, Settings and Publisher are
// required; the rest have defaults.
type Config struct {
	Port           int
	Logger         *slog.Logger
	Blobs          blobstore.Store
	Settings       settings.Store
	Publisher      handoff.Publisher
	MaxUploadBytes int64

	AutosaveDelay time.Duration
	MilestoneTTL  time.Duration
	ErrorTTL      time.Duration
	IdleTTL       time.Duration
	ReapInterval  time.Duration

	// RateLimit defaults to ratelimit.LoadConfig().
	RateLimit *ratelimit.Config
	// NewScheduler builds the timer scheduler for a session guarded by mu.
	// Defaults to wizard.NewTimerScheduler.
	NewScheduler func(mu sync.Locker) wizard.Scheduler
	Now          func() time.Time
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Blobs == nil || cfg.Settings == nil || cfg.Publisher == nil {
		return nil, errors.New("server requires a blob store, a settings store and a publisher")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.ReapInterval <= 0 {
		cfg.ReapInterval = time.Minute
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		cfg:         cfg,
		registry:    NewRegistry(cfg.IdleTTL, cfg.Now),
		blobs:       cfg.Blobs,
		settings:    cfg.Settings,
		publisher:   handoff.NewOnce(cfg.Publisher),
		checker:     upload.NewChecker(cfg.MaxUploadBytes),
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		logger:      cfg.Logger,
		now:         cfg.Now,
	}
	s.registry.onEvict = func(sess *Session) {
		s.logger.Info("session evicted", slog.String("session_id", sess.ID()))
		s.discardResume(sess)
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Sessions
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /sessions/{id}/resume", s.handleGetResume)
	mux.HandleFunc("PUT /sessions/{id}/resume", s.handleReplaceResume)
	mux.HandleFunc("GET /sessions/{id}/events", s.handleEvents)

	// Selection and mapping
	mux.HandleFunc("POST /sessions/{id}/selection", s.handleSelect)
	mux.HandleFunc("DELETE /sessions/{id}/selection", s.handleClearSelection)
	mux.HandleFunc("POST /sessions/{id}/selection/apply", s.handleApplySelection)
	mux.HandleFunc("POST /sessions/{id}/active", s.handleSetActive)
	mux.HandleFunc("GET /sessions/{id}/mapped", s.handleMapped)

	// Floating layout and context menu
	mux.HandleFunc("PUT /sessions/{id}/layout", s.handleSetLayout)
	mux.HandleFunc("POST /sessions/{id}/context-menu", s.handleOpenContextMenu)
	mux.HandleFunc("POST /sessions/{id}/context-menu/send", s.handleSendToField)
	mux.HandleFunc("DELETE /sessions/{id}/context-menu", s.handleCloseContextMenu)

	// Basic info
	mux.HandleFunc("PUT /sessions/{id}/basic", s.handleUpdateBasic)
	mux.HandleFunc("DELETE /sessions/{id}/basic", s.handleClearBasic)

	// List sections
	mux.HandleFunc("POST /sessions/{id}/{section}/entries", s.handleAddEntry)
	mux.HandleFunc("DELETE /sessions/{id}/{section}/entries", s.handleClearEntries)
	mux.HandleFunc("PATCH /sessions/{id}/{section}/entries/{index}", s.handleUpdateEntry)
	mux.HandleFunc("DELETE /sessions/{id}/{section}/entries/{index}", s.handleRemoveEntry)
	mux.HandleFunc("POST /sessions/{id}/{section}/entries/{index}/duplicate", s.handleDuplicateEntry)
	mux.HandleFunc("POST /sessions/{id}/{section}/entries/{index}/clear", s.handleClearEntry)
	mux.HandleFunc("POST /sessions/{id}/{section}/entries/{index}/move", s.handleMoveEntry)
	mux.HandleFunc("POST /sessions/{id}/{section}/drag", s.handleDrag)

	// Skills
	mux.HandleFunc("POST /sessions/{id}/skills/bulk", s.handleBulkSkills)
	mux.HandleFunc("DELETE /sessions/{id}/skills", s.handleClearSkills)

	// Navigation and completion
	mux.HandleFunc("POST /sessions/{id}/advance", s.handleAdvance)
	mux.HandleFunc("POST /sessions/{id}/navigate", s.handleNavigate)
	mux.HandleFunc("POST /sessions/{id}/complete", s.handleComplete)
	mux.HandleFunc("GET /sessions/{id}/review", s.handleReview)
	mux.HandleFunc("GET /sessions/{id}/snapshot", s.handleExportSnapshot)
	mux.HandleFunc("PUT /sessions/{id}/snapshot", s.handleImportSnapshot)

	// Settings
	mux.HandleFunc("GET /settings/{key...}", s.handleGetSetting)
	mux.HandleFunc("PUT /settings/{key...}", s.handlePutSetting)
	mux.HandleFunc("GET /layouts/{key...}", s.handleGetPanelLayout)
	mux.HandleFunc("PUT /layouts/{key...}", s.handlePutPanelLayout)

	s.handler = middleware.RequestID(s.withRateLimit(middleware.Logging(s.logger)(middleware.CORS(mux))))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     s.handler,
		ReadTimeout: 30 * time.Second,
		// No WriteTimeout: event streams stay open for the life of a session.
		IdleTimeout: 60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Registry returns the live session registry.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Start runs the server until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves requests and reaps idle sessions until ctx is done, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return s.registry.RunReaper(gctx, s.cfg.ReapInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Closing sessions first ends their event streams.
		s.registry.CloseAll()
		err := s.httpServer.Shutdown(shutdownCtx)
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.registry.Len()})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("error encoding JSON response", slog.Any("error", err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, errorBody{Error: message})
}

// writeError maps err to its status and writes the error envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	s.jsonResponse(w, status, newErrorBody(err))
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = secs
		w.Header().Set("Retry-After", fmt.Sprintf("%d", secs))
	}

	s.logger.WarnContext(r.Context(), "rate limit exceeded",
		slog.String("path", r.URL.Path),
		slog.Int("limit", info.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
