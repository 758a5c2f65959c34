package driving

import (
	"context"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
)

// MatchService is the retrieval and ranking core exposed to the HTTP layer
type MatchService interface {
	// Match runs the two-stage pipeline: local catalog plus best-effort
	// external candidates, filtered, thresholded and ranked by similarity
	Match(ctx context.Context, req domain.MatchRequest) (*domain.MatchResponse, error)

	// RagSearch pools all candidates, runs one batched similarity pass
	// with an adaptive floor, and optionally reranks the top-k with an LLM
	RagSearch(ctx context.Context, req domain.RagRequest) (*domain.RagResponse, error)
}

// InterviewService generates interview questions and scores submitted
// answers using the text-generation capability, with deterministic fallbacks
type InterviewService interface {
	// GenerateQuestions builds 5-7 questions for a catalog job and
	// persists them on the job
	GenerateQuestions(ctx context.Context, jobID, experienceLevel string) ([]string, error)

	// ScoreAnswers validates each answer against the job, aggregates a
	// percentage and stores an application
	ScoreAnswers(ctx context.Context, req domain.AnswerSubmission) (*domain.Application, error)
}

// ResumeService stores resume text and resolves the latest resume per user
type ResumeService interface {
	// Save stores extracted resume text for a user
	Save(ctx context.Context, userID, filename, text string) (*domain.Resume, error)

	// Latest returns the most recent resume for a user
	Latest(ctx context.Context, userID string) (*domain.Resume, error)
}

// AuthService handles registration, login and token validation
type AuthService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
	Logout(ctx context.Context, token string) error
}

// JobService exposes read access to the local catalog
type JobService interface {
	List(ctx context.Context) ([]*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
}

// ApplicationService lists a user's scored applications
type ApplicationService interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Application, error)
}
