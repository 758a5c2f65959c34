package services

import (
	"context"
	"errors"
	"testing"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven/mocks"
)

func newTestInterviewService(
	jobStore *mocks.MockJobStore,
	appStore *mocks.MockApplicationStore,
	llm driven.LLMService,
	t *testing.T,
) *interviewService {
	services := createTestServices(t, nil, llm)
	return NewInterviewService(jobStore, appStore, services, domain.DefaultMatchSettings(), testLogger()).(*interviewService)
}

func seedJob(t *testing.T, store *mocks.MockJobStore) *domain.Job {
	t.Helper()
	job := &domain.Job{
		ID:          "job-1",
		Title:       "Go Developer",
		Description: "Build and operate Go services",
		Skills:      []string{"Go", "PostgreSQL", "Kubernetes"},
	}
	if err := store.Save(context.Background(), job); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func TestInterviewService_GenerateQuestions(t *testing.T) {
	jobStore := mocks.NewMockJobStore()
	seedJob(t, jobStore)

	llm := mocks.NewMockLLMService(`[
		"What is a goroutine?",
		"Explain channel buffering.",
		"How do you handle database migrations?",
		"Describe a production incident you debugged.",
		"How do you structure a Go service?"
	]`)
	svc := newTestInterviewService(jobStore, mocks.NewMockApplicationStore(), llm, t)

	questions, err := svc.GenerateQuestions(context.Background(), "job-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}
	if questions[0] != "What is a goroutine?" {
		t.Errorf("unexpected first question: %q", questions[0])
	}

	// Questions must be persisted on the job
	job, err := jobStore.Get(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if len(job.Questions) != 5 {
		t.Errorf("expected questions persisted, got %d", len(job.Questions))
	}
}

func TestInterviewService_GenerateQuestions_TopUpFromSkills(t *testing.T) {
	jobStore := mocks.NewMockJobStore()
	seedJob(t, jobStore)

	llm := mocks.NewMockLLMService(`["Question one?", "Question two?", "Question three?"]`)
	svc := newTestInterviewService(jobStore, mocks.NewMockApplicationStore(), llm, t)

	questions, err := svc.GenerateQuestions(context.Background(), "job-1", "senior")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("expected top-up to 5 questions, got %d", len(questions))
	}
	if questions[3] != "Explain your experience with Go." {
		t.Errorf("expected skill-derived question, got %q", questions[3])
	}
}

func TestInterviewService_GenerateQuestions_FallsBack(t *testing.T) {
	tests := []struct {
		name string
		llm  func() *mocks.MockLLMService
	}{
		{"llm failure", func() *mocks.MockLLMService {
			m := mocks.NewMockLLMService()
			m.FailAll(true)
			return m
		}},
		{"unparseable output", func() *mocks.MockLLMService {
			return mocks.NewMockLLMService("Here are some great questions for you!")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobStore := mocks.NewMockJobStore()
			seedJob(t, jobStore)
			svc := newTestInterviewService(jobStore, mocks.NewMockApplicationStore(), tt.llm(), t)

			questions, err := svc.GenerateQuestions(context.Background(), "job-1", "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(questions) != len(fallbackQuestions) {
				t.Fatalf("expected fallback set, got %d questions", len(questions))
			}
			if questions[0] != fallbackQuestions[0] {
				t.Errorf("expected canned first question, got %q", questions[0])
			}
		})
	}
}

func TestInterviewService_GenerateQuestions_NoLLM(t *testing.T) {
	jobStore := mocks.NewMockJobStore()
	seedJob(t, jobStore)
	svc := newTestInterviewService(jobStore, mocks.NewMockApplicationStore(), nil, t)

	questions, err := svc.GenerateQuestions(context.Background(), "job-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != len(fallbackQuestions) {
		t.Errorf("expected fallback questions without an LLM, got %d", len(questions))
	}
}

func TestInterviewService_GenerateQuestions_UnknownJob(t *testing.T) {
	svc := newTestInterviewService(mocks.NewMockJobStore(), mocks.NewMockApplicationStore(), nil, t)

	_, err := svc.GenerateQuestions(context.Background(), "missing", "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInterviewService_ScoreAnswers(t *testing.T) {
	jobStore := mocks.NewMockJobStore()
	seedJob(t, jobStore)
	appStore := mocks.NewMockApplicationStore()

	llm := mocks.NewMockLLMService(
		`{"score": 90, "originality": "original", "feedback": "Solid answer"}`,
		`{"score": 50, "originality": "copied", "feedback": "Looks pasted"}`,
	)
	svc := newTestInterviewService(jobStore, appStore, llm, t)

	app, err := svc.ScoreAnswers(context.Background(), domain.AnswerSubmission{
		UserID:    "user-1",
		JobID:     "job-1",
		Questions: []string{"What is a goroutine?", "Explain channels."},
		Answers: map[string]string{
			"1": "A lightweight thread managed by the runtime.",
			"2": "Typed conduits for communication.",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// (90 + 50) / 200 = 70%
	if app.Score != 70 {
		t.Errorf("expected aggregate score 70, got %v", app.Score)
	}
	if app.Status != domain.ApplicationPassed {
		t.Errorf("expected passed at 70%% against a 60%% bar, got %s", app.Status)
	}
	if app.Answers["1"].Score != 90 || app.Answers["2"].Score != 50 {
		t.Errorf("unexpected per-answer scores: %d, %d", app.Answers["1"].Score, app.Answers["2"].Score)
	}
	if app.Answers["2"].Originality != "copied" {
		t.Errorf("expected originality carried through, got %q", app.Answers["2"].Originality)
	}

	saved, err := appStore.ListByUser(context.Background(), "user-1")
	if err != nil || len(saved) != 1 {
		t.Fatalf("expected 1 saved application, got %d (err %v)", len(saved), err)
	}
	if saved[0].JobTitle != "Go Developer" {
		t.Errorf("expected job title stamped, got %q", saved[0].JobTitle)
	}
}

func TestInterviewService_ScoreAnswers_DefaultsOnParseFailure(t *testing.T) {
	jobStore := mocks.NewMockJobStore()
	seedJob(t, jobStore)
	appStore := mocks.NewMockApplicationStore()

	llm := mocks.NewMockLLMService("I could not evaluate this answer properly.")
	svc := newTestInterviewService(jobStore, appStore, llm, t)

	app, err := svc.ScoreAnswers(context.Background(), domain.AnswerSubmission{
		UserID:    "user-1",
		JobID:     "job-1",
		Questions: []string{"Only question?"},
		Answers:   map[string]string{"1": "Some answer"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Answers["1"].Score != defaultAnswerScore {
		t.Errorf("expected default score %d, got %d", defaultAnswerScore, app.Answers["1"].Score)
	}
	if app.Score != 70 {
		t.Errorf("expected aggregate 70, got %v", app.Score)
	}
	if app.Status != domain.ApplicationPassed {
		t.Errorf("expected passed, got %s", app.Status)
	}
}

func TestInterviewService_ScoreAnswers_FailingScore(t *testing.T) {
	jobStore := mocks.NewMockJobStore()
	seedJob(t, jobStore)

	llm := mocks.NewMockLLMService(`{"score": 30, "originality": "original", "feedback": "Off topic"}`)
	svc := newTestInterviewService(jobStore, mocks.NewMockApplicationStore(), llm, t)

	app, err := svc.ScoreAnswers(context.Background(), domain.AnswerSubmission{
		UserID:    "user-1",
		JobID:     "job-1",
		Questions: []string{"Q1?", "Q2?"},
		Answers:   map[string]string{"1": "a", "2": "b"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Score != 30 {
		t.Errorf("expected 30%%, got %v", app.Score)
	}
	if app.Status != domain.ApplicationFailed {
		t.Errorf("expected failed below the 60%% bar, got %s", app.Status)
	}
}

func TestInterviewService_ScoreAnswers_Validation(t *testing.T) {
	svc := newTestInterviewService(mocks.NewMockJobStore(), mocks.NewMockApplicationStore(), nil, t)

	_, err := svc.ScoreAnswers(context.Background(), domain.AnswerSubmission{JobID: "job-1"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput without user, got %v", err)
	}

	_, err = svc.ScoreAnswers(context.Background(), domain.AnswerSubmission{UserID: "u", JobID: "missing"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown job, got %v", err)
	}
}
