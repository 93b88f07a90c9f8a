// Package server provides the HTTP REST API for the careerdoc builder.
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
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/careerdoc/internal/config"
	"github.com/jonathan/careerdoc/internal/db"
	"github.com/jonathan/careerdoc/internal/llm"
	"github.com/jonathan/careerdoc/internal/pipeline"
	"github.com/jonathan/careerdoc/internal/server/middleware"
	"github.com/jonathan/careerdoc/internal/server/ratelimit"
	"github.com/jonathan/careerdoc/internal/types"
)

// Store is the database surface the handlers depend on. *db.DB satisfies it;
// tests substitute a fake.
type Store interface {
	UserStore

	CreateExperience(ctx context.Context, exp *types.Experience) (*types.Experience, error)
	UpdateExperience(ctx context.Context, userID uuid.UUID, exp *types.Experience) (*types.Experience, error)
	UpdateExperienceDerived(ctx context.Context, userID, id uuid.UUID, s *types.StructuredExperience) error
	GetExperience(ctx context.Context, userID, id uuid.UUID) (*types.Experience, error)
	ListExperiences(ctx context.Context, userID uuid.UUID) ([]types.Experience, error)
	ListExperiencesByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]types.Experience, error)
	DeleteExperience(ctx context.Context, userID, id uuid.UUID) (bool, error)

	CreateJob(ctx context.Context, job *types.Job) (*types.Job, error)
	GetJob(ctx context.Context, userID, id uuid.UUID) (*types.Job, error)
	ListJobs(ctx context.Context, userID uuid.UUID) ([]types.Job, error)
	SetJobStructured(ctx context.Context, userID, id uuid.UUID, structured *types.StructuredJob) error
	DeleteJob(ctx context.Context, userID, id uuid.UUID) (bool, error)

	ReplaceJobQuestions(ctx context.Context, userID, jobID uuid.UUID, seeds []types.QuestionSeed) error
	AppendJobQuestion(ctx context.Context, userID, jobID uuid.UUID, title string, charLimit *int) (*types.JobQuestion, error)
	ListJobQuestions(ctx context.Context, userID, jobID uuid.UUID) ([]types.JobQuestion, error)
	DeleteJobQuestion(ctx context.Context, userID, id uuid.UUID) (bool, error)

	SaveDocument(ctx context.Context, doc *types.Document) (*types.Document, error)
	GetDocument(ctx context.Context, userID, id uuid.UUID) (*types.Document, error)
	ListDocuments(ctx context.Context, userID uuid.UUID) ([]types.Document, error)
	DeleteDocument(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       Store
	pipeline    pipeline.Service
	llmClient   llm.Client
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	validator   *validator.Validate
}

// New creates a new server instance. The generation backend is chosen once
// here: with a Gemini API key configured the pipeline is model-backed,
// otherwise the deterministic rule-based service is used. Handlers never
// branch on the backend.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:        database,
		store:     database,
		validator: validator.New(),
	}

	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create generation client: %w", err)
		}
		s.llmClient = client
		s.pipeline = pipeline.NewModelService(client)
		log.Println("Pipeline backend: model")
	} else {
		s.pipeline = pipeline.NewRuleService()
		log.Println("Pipeline backend: rule")
	}

	s.rateLimiter = ratelimit.NewLimiter(300, time.Minute, ratelimit.DefaultRules())
	s.userService = NewUserService(database, cfg.Password)
	s.jwtService = NewJWTService(cfg.JWT)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Everything except auth and health requires a
// valid bearer token.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	requireAuth := middleware.RequireAuth(s.jwtService.AsTokenValidator())
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, requireAuth(h))
	}

	// Experience endpoints
	protected("POST /experiences", s.handleCreateExperience)
	protected("GET /experiences", s.handleListExperiences)
	protected("GET /experiences/{id}", s.handleGetExperience)
	protected("PUT /experiences/{id}", s.handleUpdateExperience)
	protected("DELETE /experiences/{id}", s.handleDeleteExperience)
	protected("POST /experiences/restructure", s.handleRestructureExperiences)

	// Job endpoints
	protected("POST /jobs", s.handleCreateJob)
	protected("GET /jobs", s.handleListJobs)
	protected("GET /jobs/{id}", s.handleGetJob)
	protected("DELETE /jobs/{id}", s.handleDeleteJob)
	protected("POST /jobs/{id}/structure", s.handleStructureJob)

	// Question endpoints
	protected("GET /jobs/{id}/questions", s.handleListQuestions)
	protected("POST /jobs/{id}/questions", s.handleAppendQuestion)
	protected("DELETE /questions/{id}", s.handleDeleteQuestion)

	// Builder endpoints
	protected("POST /builder/career-report", s.handleCareerReport)
	protected("POST /builder/cover-letter", s.handleCoverLetter)
	protected("POST /builder/qc", s.handleQC)

	// Saved document endpoints
	protected("POST /documents", s.handleSaveDocument)
	protected("GET /documents", s.handleListDocuments)
	protected("GET /documents/{id}", s.handleGetDocument)
	protected("DELETE /documents/{id}", s.handleDeleteDocument)

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
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

	s.rateLimiter.Stop()
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing generation client: %v", err)
		}
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit enforces per-client request budgets.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path)

		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
		}

		if !allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
			}
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier (IP) from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// userID returns the authenticated user ID or writes a 401 and reports false.
func (s *Server) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := middleware.UserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the {id} path segment as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}
