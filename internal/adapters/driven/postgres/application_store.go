package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ApplicationStore = (*ApplicationStore)(nil)

// ApplicationStore implements driven.ApplicationStore using PostgreSQL.
// Per-answer validations are stored as a JSONB document.
type ApplicationStore struct {
	db *DB
}

// NewApplicationStore creates a new ApplicationStore
func NewApplicationStore(db *DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// Save stores an application
func (s *ApplicationStore) Save(ctx context.Context, app *domain.Application) error {
	answers, err := json.Marshal(app.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	query := `
		INSERT INTO applications (id, user_id, job_id, job_title, answers, score, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = s.db.ExecContext(ctx, query,
		app.ID,
		app.UserID,
		app.JobID,
		app.JobTitle,
		answers,
		app.Score,
		string(app.Status),
		app.SubmittedAt,
	)
	return err
}

// ListByUser returns a user's applications, newest first
func (s *ApplicationStore) ListByUser(ctx context.Context, userID string) ([]*domain.Application, error) {
	query := `
		SELECT id, user_id, job_id, job_title, answers, score, status, submitted_at
		FROM applications
		WHERE user_id = $1
		ORDER BY submitted_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*domain.Application
	for rows.Next() {
		var app domain.Application
		var answers []byte

		if err := rows.Scan(
			&app.ID,
			&app.UserID,
			&app.JobID,
			&app.JobTitle,
			&answers,
			&app.Score,
			&app.Status,
			&app.SubmittedAt,
		); err != nil {
			return nil, err
		}

		if len(answers) > 0 {
			if err := json.Unmarshal(answers, &app.Answers); err != nil {
				return nil, fmt.Errorf("unmarshal answers for %s: %w", app.ID, err)
			}
		}
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}
