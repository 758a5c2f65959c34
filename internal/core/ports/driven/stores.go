package driven

import (
	"context"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
)

// JobStore provides access to the durable local job catalog. Catalog
// lifecycle management happens outside this core; the store exposes what
// matching and seeding need.
type JobStore interface {
	// List returns all catalog jobs
	List(ctx context.Context) ([]*domain.Job, error)

	// Get retrieves a job by ID
	Get(ctx context.Context, id string) (*domain.Job, error)

	// Save creates or updates a catalog job
	Save(ctx context.Context, job *domain.Job) error

	// SaveQuestions replaces the stored interview questions for a job
	SaveQuestions(ctx context.Context, jobID string, questions []string) error
}

// ResumeStore persists extracted resume text per user
type ResumeStore interface {
	// Save stores a resume
	Save(ctx context.Context, resume *domain.Resume) error

	// Latest returns the most recently uploaded resume for a user,
	// or domain.ErrNotFound
	Latest(ctx context.Context, userID string) (*domain.Resume, error)
}

// ApplicationStore persists scored answer submissions
type ApplicationStore interface {
	// Save stores an application
	Save(ctx context.Context, app *domain.Application) error

	// ListByUser returns a user's applications, newest first
	ListByUser(ctx context.Context, userID string) ([]*domain.Application, error)
}

// UserStore persists user accounts
type UserStore interface {
	// Save creates or updates a user
	Save(ctx context.Context, user *domain.User) error

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// SessionStore persists login sessions. Redis-backed in multi-process
// deployments, PostgreSQL otherwise.
type SessionStore interface {
	// Save stores a session
	Save(ctx context.Context, session *domain.Session) error

	// GetByToken retrieves a session by its access token
	GetByToken(ctx context.Context, token string) (*domain.Session, error)

	// Delete removes a session
	Delete(ctx context.Context, id string) error
}

// AuthAdapter handles password hashing and token mint/parse
type AuthAdapter interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool
	GenerateToken(claims *domain.TokenClaims) (string, error)
	ParseToken(token string) (*domain.TokenClaims, error)
}
