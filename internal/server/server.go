package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/storage"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	db             *db.DB
	rateLimiter    *ratelimit.Limiter
	jwtService     *JWTService
	authHandler    *AuthHandler
	sessions       *sessions
	renderers      rendering.Set
	allowedOrigins []string
	verbose        bool
}

// Deps are the collaborators a Server is assembled from. New fills them from
// configuration; tests supply fakes.
type Deps struct {
	Users          UserStore
	Snapshots      func(userID uuid.UUID) storage.Store
	Renderers      rendering.Set
	JWT            *config.JWTConfig
	Password       *config.PasswordConfig
	RateLimit      *ratelimit.Config
	AllowedOrigins []string
	PreviewLimit   int
	Verbose        bool
}

// New connects to the database, applies migrations and builds a server
// from cfg. Documents are rendered through renderers.
func New(cfg *config.Config, renderers rendering.Set) (*Server, error) {
	if cfg.Server.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required to serve")
	}
	jwtConfig, err := cfg.Auth.JWT()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	passwordConfig, err := cfg.Auth.Password()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	database, err := db.Open(context.Background(), cfg.Server.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := NewWithDeps(cfg.Server.Addr(), Deps{
		Users: database,
		Snapshots: func(userID uuid.UUID) storage.Store {
			return database.Snapshots(userID)
		},
		Renderers:      renderers,
		JWT:            jwtConfig,
		Password:       passwordConfig,
		RateLimit:      ratelimit.NewConfig(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		PreviewLimit:   cfg.Export.PreviewLimit,
		Verbose:        cfg.Verbose,
	})
	s.db = database
	return s, nil
}

// NewWithDeps builds a server listening on addr without touching the database
func NewWithDeps(addr string, d Deps) *Server {
	s := &Server{
		rateLimiter:    ratelimit.NewLimiter(d.RateLimit),
		jwtService:     NewJWTService(d.JWT),
		sessions:       newSessions(d.Snapshots, d.PreviewLimit),
		renderers:      d.Renderers,
		allowedOrigins: d.AllowedOrigins,
		verbose:        d.Verbose,
	}
	s.authHandler = NewAuthHandler(NewUserService(d.Users, d.Password), s.jwtService)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // exports through headless Chrome can be slow
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, auth(h))
	}

	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	protected("GET /auth/me", s.authHandler.Me)
	protected("PUT /auth/password", s.authHandler.UpdatePassword)

	// Template catalog
	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("GET /templates/{id}", s.handleGetTemplate)

	// Builder state
	protected("GET /builder", s.handleGetBuilder)
	protected("POST /builder/navigation", s.handleNavigation)
	protected("PUT /builder/template", s.handleSelectTemplate)
	protected("PUT /builder/personal-info", s.handleUpdatePersonalInfo)
	protected("PUT /builder/summary", s.handleUpdateSummary)
	protected("POST /builder/skills", s.handleAddSkill)
	protected("DELETE /builder/skills/{name}", s.handleRemoveSkill)
	protected("GET /builder/validation", s.handleValidation)
	protected("POST /builder/reset", s.handleReset)

	// Entry collections: experience, education, projects, certifications, languages
	protected("POST /builder/{section}", s.handleAddEntry)
	protected("PUT /builder/{section}/{id}", s.handleUpdateEntry)
	protected("DELETE /builder/{section}/{id}", s.handleRemoveEntry)
	protected("POST /builder/{section}/{id}/move", s.handleMoveEntry)

	// Export
	protected("POST /builder/export", s.handleExport)
	protected("POST /builder/export/stream", s.handleExportStream)
	protected("POST /builder/preview", s.handlePreview)
	protected("GET /builder/previews/{id}", s.handleGetPreview)

	return mux
}

// Handler returns the fully wrapped handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	log.Println("Server stopped")
	return nil
}

// Close releases the rate limiter and database pool
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or
// "" when the origin is not allowed
func (s *Server) allowOrigin(origin string) string {
	if len(s.allowedOrigins) == 0 || slices.Contains(s.allowedOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(s.allowedOrigins, origin) {
		return origin
	}
	return ""
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			log.Printf("[rate-limit] %s exceeded %d requests on %s %s", clientID, info.Limit, r.Method, r.URL.Path)
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
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d in %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// statusRecorder captures the response status for logging. It forwards
// Flush so SSE handlers still stream.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
	}
	writeJSON(w, http.StatusOK, status)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] encoding JSON response: %v", err)
	}
}

// writeError writes an error JSON response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request: the
// authenticated bearer's user when present, else the remote IP.
func (s *Server) extractClientID(r *http.Request) string {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		if claims, err := s.jwtService.ValidateToken(strings.TrimSpace(token)); err == nil {
			return "user:" + claims.UserID.String()
		}
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		retry := int(info.RetryAfter.Seconds())
		if retry < 1 {
			retry = 1
		}
		response["retry_after"] = retry
		w.Header().Set("Retry-After", strconv.Itoa(retry))
	}
	writeJSON(w, http.StatusTooManyRequests, response)
}
