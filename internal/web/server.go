// Package web provides the HTTP server and JSON API for the tracker:
// candidate, company, and position management, CSV import with preview,
// export, filtering, saved filters, and statistics.
package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Camblonie/recruiting-tracker/internal/config"
	"github.com/Camblonie/recruiting-tracker/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the tracker API.
type Server struct {
	store  store.Store
	cfg    *config.Config
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new Server over the given store.
func NewServer(st store.Store, cfg *config.Config) *Server {
	s := &Server{
		store:  st,
		cfg:    cfg,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	s.router.Use(securityHeaders)

	// Rate limiting: 100 requests per minute per IP
	limiter := newRateLimiter(100, time.Minute)
	s.router.Use(limiter.middleware)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Candidate CRUD and search
		r.Route("/candidates", func(r chi.Router) {
			r.Get("/", s.handleListCandidates)
			r.Post("/", s.handleCreateCandidate)
			r.Post("/search", s.handleSearchCandidates)
			r.Get("/{id}", s.handleGetCandidate)
			r.Put("/{id}", s.handleUpdateCandidate)
			r.Delete("/{id}", s.handleDeleteCandidate)
			r.Post("/{id}/avoid", s.handleSetAvoid)
			r.Get("/{id}/attachments", s.handleListAttachments)
			r.Post("/{id}/attachments", s.handleAddAttachment)
		})
		r.Delete("/attachments/{id}", s.handleDeleteAttachment)

		// Companies and positions
		r.Route("/companies", func(r chi.Router) {
			r.Get("/", s.handleListCompanies)
			r.Post("/", s.handleCreateCompany)
			r.Delete("/{id}", s.handleDeleteCompany)
		})
		r.Route("/positions", func(r chi.Router) {
			r.Get("/", s.handleListPositions)
			r.Post("/", s.handleCreatePosition)
			r.Delete("/{id}", s.handleDeletePosition)
		})

		// CSV import
		r.Post("/import", s.handleImport)
		r.Post("/import/preview", s.handleImportPreview)

		// Export
		r.Post("/export", s.handleExport)

		// Saved filters
		r.Route("/filters", func(r chi.Router) {
			r.Get("/", s.handleListSavedFilters)
			r.Post("/", s.handleSaveFilter)
			r.Delete("/{id}", s.handleDeleteSavedFilter)
		})

		// Statistics
		r.Get("/stats", s.handleStats)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// rateLimiter is a fixed-window request counter per client IP.
type rateLimiter struct {
	mu      sync.Mutex
	windows map[string]*clientWindow
	limit   int
	window  time.Duration
}

type clientWindow struct {
	count   int
	started time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		windows: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
	}
	go rl.cleanup()
	return rl
}

// cleanup drops windows that have been idle for two full periods.
func (rl *rateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, w := range rl.windows {
			if time.Since(w.started) > rl.window*2 {
				delete(rl.windows, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[ip]
	if !ok || time.Since(w.started) > rl.window {
		rl.windows[ip] = &clientWindow{count: 1, started: time.Now()}
		return true
	}
	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// middleware returns an HTTP middleware that rate limits by IP.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
			ip = realIP
		}
		if !rl.allow(ip) {
			w.Header().Set("Retry-After", "60")
			writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
