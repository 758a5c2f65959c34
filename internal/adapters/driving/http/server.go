package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talentforge-labs/matchcore/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService        driving.AuthService
	matchService       driving.MatchService
	interviewService   driving.InterviewService
	resumeService      driving.ResumeService
	jobService         driving.JobService
	applicationService driving.ApplicationService

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	matchService driving.MatchService,
	interviewService driving.InterviewService,
	resumeService driving.ResumeService,
	jobService driving.JobService,
	applicationService driving.ApplicationService,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:             http.NewServeMux(),
		version:            cfg.Version,
		authService:        authService,
		matchService:       matchService,
		interviewService:   interviewService,
		resumeService:      resumeService,
		jobService:         jobService,
		applicationService: applicationService,
		db:                 db,
		redisClient:        redisClient,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Create middleware
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))

	// Matching endpoints (authenticated)
	s.router.Handle("POST /api/v1/match",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleMatch)))
	s.router.Handle("POST /api/v1/rag-search",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleRagSearch)))

	// Resume endpoints (authenticated)
	s.router.Handle("POST /api/v1/resumes",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSaveResume)))

	// Job catalog endpoints (authenticated, read-only)
	s.router.Handle("GET /api/v1/jobs",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListJobs)))
	s.router.Handle("GET /api/v1/jobs/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetJob)))

	// Interview endpoints (authenticated)
	s.router.Handle("POST /api/v1/jobs/{id}/questions",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGenerateQuestions)))
	s.router.Handle("POST /api/v1/applications",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSubmitAnswers)))
	s.router.Handle("GET /api/v1/applications",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListApplications)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
