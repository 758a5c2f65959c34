package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.JobStore = (*JobStore)(nil)

// JobStore implements driven.JobStore using PostgreSQL
type JobStore struct {
	db *DB
}

// NewJobStore creates a new JobStore
func NewJobStore(db *DB) *JobStore {
	return &JobStore{db: db}
}

const jobColumns = `id, title, description, skills, responsibilities, qualifications, questions,
	company_name, hr_email, location, apply_link, created_by, created_at, updated_at`

// List returns all catalog jobs
func (s *JobStore) List(ctx context.Context) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Get retrieves a job by ID
func (s *JobStore) Get(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Save creates or updates a catalog job
func (s *JobStore) Save(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (id, title, description, skills, responsibilities, qualifications, questions,
			company_name, hr_email, location, apply_link, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			skills = EXCLUDED.skills,
			responsibilities = EXCLUDED.responsibilities,
			qualifications = EXCLUDED.qualifications,
			questions = EXCLUDED.questions,
			company_name = EXCLUDED.company_name,
			hr_email = EXCLUDED.hr_email,
			location = EXCLUDED.location,
			apply_link = EXCLUDED.apply_link,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		job.ID,
		job.Title,
		job.Description,
		pq.Array(job.Skills),
		pq.Array(job.Responsibilities),
		pq.Array(job.Qualifications),
		pq.Array(job.Questions),
		job.CompanyName,
		job.HREmail,
		job.Location,
		job.ApplyLink,
		job.CreatedBy,
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

// SaveQuestions replaces the stored interview questions for a job
func (s *JobStore) SaveQuestions(ctx context.Context, jobID string, questions []string) error {
	query := `UPDATE jobs SET questions = $2, updated_at = now() WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, jobID, pq.Array(questions))
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for shared scan code
type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		pq.Array(&job.Skills),
		pq.Array(&job.Responsibilities),
		pq.Array(&job.Qualifications),
		pq.Array(&job.Questions),
		&job.CompanyName,
		&job.HREmail,
		&job.Location,
		&job.ApplyLink,
		&job.CreatedBy,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Seeded rows may carry padded or empty list entries
	job.Skills = domain.NormalizeStringList(job.Skills)
	job.Responsibilities = domain.NormalizeStringList(job.Responsibilities)
	job.Qualifications = domain.NormalizeStringList(job.Qualifications)

	job.Source = domain.JobSourceLocal
	return &job, nil
}
