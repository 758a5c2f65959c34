package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driving"
)

// Ensure resumeService implements ResumeService
var _ driving.ResumeService = (*resumeService)(nil)

// resumeService stores extracted resume text. File parsing (PDF/DOC) is an
// upstream concern; only plain text arrives here.
type resumeService struct {
	store  driven.ResumeStore
	logger *slog.Logger
}

// NewResumeService creates a new ResumeService
func NewResumeService(store driven.ResumeStore, logger *slog.Logger) driving.ResumeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &resumeService{store: store, logger: logger}
}

// Save stores resume text for a user
func (s *resumeService) Save(ctx context.Context, userID, filename, text string) (*domain.Resume, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: resume text is empty", domain.ErrInvalidInput)
	}

	resume := &domain.Resume{
		ID:         uuid.NewString(),
		UserID:     userID,
		Filename:   filename,
		Text:       text,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.store.Save(ctx, resume); err != nil {
		return nil, fmt.Errorf("save resume: %w", err)
	}

	s.logger.Info("resume saved", "user_id", userID, "filename", filename, "chars", len(text))
	return resume, nil
}

// Latest returns the most recent resume for a user
func (s *resumeService) Latest(ctx context.Context, userID string) (*domain.Resume, error) {
	return s.store.Latest(ctx, userID)
}
