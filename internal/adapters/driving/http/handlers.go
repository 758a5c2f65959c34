package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and cache connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backing store is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleRegister godoc
// @Summary      Register user
// @Description  Create a new account with username and password
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RegisterRequest  true  "Account details"
// @Success      201      {object}  domain.User
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      409      {object}  ErrorResponse  "Username already taken"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/register [post]
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.authService.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "username and password are required")
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "username already taken")
		default:
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with username and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout user
// @Description  Invalidate the current session token
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	_ = s.authService.Logout(r.Context(), token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Matching endpoints

// handleMatch godoc
// @Summary      Match resume against jobs
// @Description  Rank local catalog and external jobs by semantic similarity to the resume. Resume text may be supplied inline or resolved from the user's latest upload.
// @Tags         Matching
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.MatchRequest  true  "Match parameters"
// @Success      200      {object}  domain.MatchResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request or no resume available"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      503      {object}  ErrorResponse  "Embedding backend unavailable"
// @Router       /match [post]
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req domain.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The resume lookup is always scoped to the authenticated user
	if authCtx := GetAuthContext(r.Context()); authCtx != nil {
		req.UserID = authCtx.UserID
	}

	resp, err := s.matchService.Match(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingResume):
			writeError(w, http.StatusBadRequest, "no resume available; upload one or include resume_text")
		case errors.Is(err, domain.ErrEmbeddingUnavailable):
			writeError(w, http.StatusServiceUnavailable, "embedding service unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "matching failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRagSearch godoc
// @Summary      Pooled retrieval with optional LLM rerank
// @Description  Pool local and external jobs, rank the top-k by similarity in one pass, and optionally rerank with an LLM judgment per candidate.
// @Tags         Matching
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.RagRequest  true  "Retrieval parameters"
// @Success      200      {object}  domain.RagResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request or no resume available"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      503      {object}  ErrorResponse  "Embedding backend unavailable"
// @Router       /rag-search [post]
func (s *Server) handleRagSearch(w http.ResponseWriter, r *http.Request) {
	var req domain.RagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if authCtx := GetAuthContext(r.Context()); authCtx != nil {
		req.UserID = authCtx.UserID
	}

	resp, err := s.matchService.RagSearch(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingResume):
			writeError(w, http.StatusBadRequest, "no resume available; upload one or include resume_text")
		case errors.Is(err, domain.ErrEmbeddingUnavailable):
			writeError(w, http.StatusServiceUnavailable, "embedding service unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "search failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Resume endpoints

// saveResumeRequest carries extracted resume text
// @Description Resume upload payload (already-extracted text)
type saveResumeRequest struct {
	Filename string `json:"filename" example:"resume.pdf"`
	Text     string `json:"text"`
}

// handleSaveResume godoc
// @Summary      Save resume text
// @Description  Store extracted resume text for the authenticated user. The latest upload becomes the default for matching.
// @Tags         Resumes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      saveResumeRequest  true  "Resume text"
// @Success      201      {object}  domain.Resume
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /resumes [post]
func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req saveResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resume, err := s.resumeService.Save(r.Context(), authCtx.UserID, req.Filename, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "resume text is required")
		default:
			writeError(w, http.StatusInternalServerError, "failed to save resume")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resume)
}

// Job catalog endpoints

// handleListJobs godoc
// @Summary      List catalog jobs
// @Description  Get all jobs in the local catalog
// @Tags         Jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Job
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /jobs [get]
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.jobService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	writeJSON(w, http.StatusOK, jobs)
}

// handleGetJob godoc
// @Summary      Get job
// @Description  Get a catalog job by ID
// @Tags         Jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  domain.Job
// @Failure      400  {object}  ErrorResponse  "Missing job ID"
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "Job not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /jobs/{id} [get]
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing job id")
		return
	}

	job, err := s.jobService.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "job not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get job")
		}
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// Interview endpoints

// generateQuestionsRequest tunes question generation
// @Description Interview question generation parameters
type generateQuestionsRequest struct {
	ExperienceLevel string `json:"experience_level,omitempty" example:"mid-level"`
}

// questionsResponse wraps a generated question list
// @Description Generated interview questions
type questionsResponse struct {
	Questions []string `json:"questions"`
}

// handleGenerateQuestions godoc
// @Summary      Generate interview questions
// @Description  Generate 5-7 interview questions for a catalog job and persist them on the job. Falls back to generic questions when no LLM is configured.
// @Tags         Interviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true   "Job ID"
// @Param        request  body      generateQuestionsRequest  false  "Generation parameters"
// @Success      200      {object}  questionsResponse
// @Failure      400      {object}  ErrorResponse  "Missing job ID"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      404      {object}  ErrorResponse  "Job not found"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /jobs/{id}/questions [post]
func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing job id")
		return
	}

	// Body is optional
	var req generateQuestionsRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	questions, err := s.interviewService.GenerateQuestions(r.Context(), id, req.ExperienceLevel)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "job not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to generate questions")
		}
		return
	}

	writeJSON(w, http.StatusOK, questionsResponse{Questions: questions})
}

// handleSubmitAnswers godoc
// @Summary      Submit interview answers
// @Description  Score each answer against the job, aggregate a percentage and record an application
// @Tags         Interviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.AnswerSubmission  true  "Questions and answers"
// @Success      201      {object}  domain.Application
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      404      {object}  ErrorResponse  "Job not found"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /applications [post]
func (s *Server) handleSubmitAnswers(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req domain.AnswerSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = authCtx.UserID

	app, err := s.interviewService.ScoreAnswers(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "job id and answers are required")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "job not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to score answers")
		}
		return
	}

	writeJSON(w, http.StatusCreated, app)
}

// handleListApplications godoc
// @Summary      List own applications
// @Description  Get the authenticated user's scored applications, newest first
// @Tags         Interviews
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Application
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /applications [get]
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	apps, err := s.applicationService.ListByUser(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list applications")
		return
	}

	writeJSON(w, http.StatusOK, apps)
}

// Response helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
