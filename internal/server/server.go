// Package server provides the HTTP REST API for the hiring pipeline.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Linda-Mensah/hire-link/internal/auth"
	"github.com/Linda-Mensah/hire-link/internal/server/middleware"
	"github.com/Linda-Mensah/hire-link/internal/server/ratelimit"
	"github.com/Linda-Mensah/hire-link/internal/storage"
	"github.com/Linda-Mensah/hire-link/internal/store"
	"github.com/Linda-Mensah/hire-link/internal/validation"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	apps        *store.Store
	sessions    *auth.Store
	slot        storage.Slot
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	authHandler *AuthHandler
	upgrader    websocket.Upgrader
}

// Config holds server configuration
type Config struct {
	Port int
}

// Dependencies are the stores and services the server exposes.
// Slot, if set, is closed when the server stops.
type Dependencies struct {
	Applications *store.Store
	Sessions     *auth.Store
	JWT          *JWTService
	Limiter      *ratelimit.Limiter
	Slot         storage.Slot
}

// New creates a new server instance
func New(cfg Config, deps Dependencies) (*Server, error) {
	if deps.Applications == nil || deps.Sessions == nil || deps.JWT == nil {
		return nil, fmt.Errorf("applications, sessions and JWT service are required")
	}

	s := &Server{
		apps:        deps.Applications,
		sessions:    deps.Sessions,
		slot:        deps.Slot,
		jwtService:  deps.JWT,
		rateLimiter: deps.Limiter,
		authHandler: NewAuthHandler(deps.Sessions, deps.JWT),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The API is served with permissive CORS; the bearer token is the gate.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	}

	recruiter := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(
			middleware.RequireSession(s.sessions)(h),
		)
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Candidate-facing endpoints
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("POST /jobs/{id}/applications", s.handleSubmitApplication)

	// Session endpoints
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("POST /auth/logout", s.authHandler.Logout)
	mux.HandleFunc("POST /auth/role", s.authHandler.SetRole)
	mux.HandleFunc("GET /auth/session", s.authHandler.Session)

	// Recruiter endpoints
	mux.Handle("GET /candidates", recruiter(s.handleListCandidates))
	mux.Handle("GET /candidates/{id}", recruiter(s.handleGetCandidate))
	mux.Handle("PUT /candidates/{id}/stage", recruiter(s.handleUpdateStage))
	mux.Handle("POST /candidates/{id}/advance", recruiter(s.handleAdvance))
	mux.Handle("POST /candidates/{id}/retreat", recruiter(s.handleRetreat))
	mux.Handle("PUT /candidates/{id}/score", recruiter(s.handleUpdateScore))
	mux.Handle("PUT /candidates/{id}/notes", recruiter(s.handleUpdateNotes))
	mux.Handle("POST /candidates/{id}/interview", recruiter(s.handleScheduleInterview))
	mux.Handle("POST /candidates/{id}/offer", recruiter(s.handleGenerateOffer))
	mux.Handle("GET /candidates/{id}/offer.txt", recruiter(s.handleDownloadOffer))
	mux.Handle("GET /pipeline", recruiter(s.handlePipeline))
	mux.Handle("GET /events", recruiter(s.handleEvents))
	mux.Handle("GET /ws/pipeline", recruiter(s.handlePipelineSocket))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))

	// Create HTTP server. No write timeout: /events and /ws/pipeline are long-lived.
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] Listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.release()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	log.Println("[server] Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.release()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.release()
	log.Println("[server] Stopped")
	return nil
}

// release stops background work and closes the slot.
func (s *Server) release() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.slot != nil {
		if err := s.slot.Close(); err != nil {
			log.Printf("[server] Failed to close storage: %v", err)
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)

		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.apps.Version(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status with HTTPStatus. Submission errors carry their field list.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[server] Internal error: %v", err)
	}

	var vErr *validation.Error
	if errors.As(err, &vErr) {
		s.jsonResponse(w, status, map[string]any{
			"error":  "validation failed",
			"fields": vErr.Fields,
		})
		return
	}

	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads the request body into v, answering 400 on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; forwarded headers are not trusted.
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
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d", info.Limit, info.Remaining)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
