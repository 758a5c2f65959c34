package services

import (
	"context"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driving"
)

// Ensure jobService implements JobService
var _ driving.JobService = (*jobService)(nil)

// jobService exposes read access to the local catalog. Posting lifecycle
// management lives outside this core.
type jobService struct {
	store driven.JobStore
}

// NewJobService creates a new JobService
func NewJobService(store driven.JobStore) driving.JobService {
	return &jobService{store: store}
}

func (s *jobService) List(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, j := range jobs {
		j.Source = domain.JobSourceLocal
	}
	return jobs, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	job.Source = domain.JobSourceLocal
	return job, nil
}

// Ensure applicationService implements ApplicationService
var _ driving.ApplicationService = (*applicationService)(nil)

type applicationService struct {
	store driven.ApplicationStore
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(store driven.ApplicationStore) driving.ApplicationService {
	return &applicationService{store: store}
}

func (s *applicationService) ListByUser(ctx context.Context, userID string) ([]*domain.Application, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.ListByUser(ctx, userID)
}
