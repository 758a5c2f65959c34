package services

import (
	"context"
	"errors"
	"testing"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven/mocks"
)

func TestResumeService_SaveAndLatest(t *testing.T) {
	store := mocks.NewMockResumeStore()
	svc := NewResumeService(store, testLogger())

	first, err := svc.Save(context.Background(), "user-1", "old.pdf", "First resume text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID == "" {
		t.Error("expected generated resume ID")
	}

	second, err := svc.Save(context.Background(), "user-1", "new.pdf", "Second resume text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	latest, err := svc.Latest(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest.ID != second.ID {
		t.Errorf("expected most recent resume, got %s", latest.ID)
	}
}

func TestResumeService_Save_Validation(t *testing.T) {
	svc := NewResumeService(mocks.NewMockResumeStore(), testLogger())

	if _, err := svc.Save(context.Background(), "", "cv.pdf", "text"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput without user, got %v", err)
	}
	if _, err := svc.Save(context.Background(), "user-1", "cv.pdf", "   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for blank text, got %v", err)
	}
}

func TestResumeService_Latest_NotFound(t *testing.T) {
	svc := NewResumeService(mocks.NewMockResumeStore(), testLogger())

	if _, err := svc.Latest(context.Background(), "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
