package postgres

import (
	"context"
	"database/sql"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ResumeStore = (*ResumeStore)(nil)

// ResumeStore implements driven.ResumeStore using PostgreSQL
type ResumeStore struct {
	db *DB
}

// NewResumeStore creates a new ResumeStore
func NewResumeStore(db *DB) *ResumeStore {
	return &ResumeStore{db: db}
}

// Save stores a resume
func (s *ResumeStore) Save(ctx context.Context, resume *domain.Resume) error {
	query := `
		INSERT INTO resumes (id, user_id, filename, text, uploaded_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Filename,
		resume.Text,
		resume.UploadedAt,
	)
	return err
}

// Latest returns the most recently uploaded resume for a user
func (s *ResumeStore) Latest(ctx context.Context, userID string) (*domain.Resume, error) {
	query := `
		SELECT id, user_id, filename, text, uploaded_at
		FROM resumes
		WHERE user_id = $1
		ORDER BY uploaded_at DESC
		LIMIT 1
	`

	var resume domain.Resume
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Filename,
		&resume.Text,
		&resume.UploadedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}
