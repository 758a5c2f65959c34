package services

import (
	"context"
	"errors"
	"testing"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven/mocks"
)

func boolPtr(b bool) *bool { return &b }

func TestMatchService_RagSearch_TopKWithoutRerank(t *testing.T) {
	embedding := mocks.NewMockEmbeddingService()
	services := createTestServices(t, embedding, nil)
	jobStore := mocks.NewMockJobStore()

	resumeText := "Go developer resume"
	embedding.SetVector(resumeText, []float32{1, 0, 0})

	jobs := []*domain.Job{
		{ID: "job-1", Title: "Go Developer", Description: "Go services"},
		{ID: "job-2", Title: "Backend Engineer", Description: "APIs"},
		{ID: "job-3", Title: "Platform Engineer", Description: "Infra"},
	}
	embedding.SetVector(jobs[0].CompositeText(), []float32{0.9, 0.4359, 0}) // ~90%
	embedding.SetVector(jobs[1].CompositeText(), []float32{0.6, 0.8, 0})   // ~60%
	embedding.SetVector(jobs[2].CompositeText(), []float32{0.4, 0.9165, 0}) // ~40%
	for _, j := range jobs {
		_ = jobStore.Save(context.Background(), j)
	}

	svc := newMatchService(jobStore, mocks.NewMockResumeStore(), nil, services, domain.DefaultMatchSettings())

	resp, err := svc.RagSearch(context.Background(), domain.RagRequest{
		ResumeText:    resumeText,
		TopK:          2,
		RerankWithLLM: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected top-2, got %d results", len(resp.Results))
	}
	if resp.Results[0].Job.ID != "job-1" || resp.Results[1].Job.ID != "job-2" {
		t.Errorf("expected job-1 then job-2, got %s then %s", resp.Results[0].Job.ID, resp.Results[1].Job.ID)
	}
	if resp.Results[0].Explanation != "" {
		t.Errorf("expected no explanation without rerank, got %q", resp.Results[0].Explanation)
	}
	if len(resp.Matches) != len(resp.Results) {
		t.Errorf("Matches should mirror Results: %d vs %d", len(resp.Matches), len(resp.Results))
	}
}

func TestMatchService_RagSearch_FloorRelaxation(t *testing.T) {
	embedding := mocks.NewMockEmbeddingService()
	services := createTestServices(t, embedding, nil)
	jobStore := mocks.NewMockJobStore()

	resumeText := "Niche specialist resume"
	embedding.SetVector(resumeText, []float32{1, 0, 0})

	// Both candidates sit between the relaxed floor (0.20) and the primary
	// floor (0.30); nothing clears the primary pass.
	near := &domain.Job{ID: "job-1", Title: "Role A", Description: "Somewhat related"}
	far := &domain.Job{ID: "job-2", Title: "Role B", Description: "Barely related"}
	embedding.SetVector(near.CompositeText(), []float32{0.28, 0.96, 0})
	embedding.SetVector(far.CompositeText(), []float32{0.22, 0.9755, 0})
	_ = jobStore.Save(context.Background(), near)
	_ = jobStore.Save(context.Background(), far)

	svc := newMatchService(jobStore, mocks.NewMockResumeStore(), nil, services, domain.DefaultMatchSettings())

	resp, err := svc.RagSearch(context.Background(), domain.RagRequest{
		ResumeText:    resumeText,
		RerankWithLLM: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected relaxed floor to admit both candidates, got %d", len(resp.Results))
	}
	if resp.Results[0].Job.ID != "job-1" {
		t.Errorf("expected job-1 first, got %s", resp.Results[0].Job.ID)
	}
}

func TestMatchService_RagSearch_RerankReorders(t *testing.T) {
	embedding := mocks.NewMockEmbeddingService()
	llm := mocks.NewMockLLMService(
		`{"score": 40, "explanation": "Weak practical overlap"}`,
		`{"score": 95, "explanation": "Excellent fit"}`,
	)
	services := createTestServices(t, embedding, llm)
	jobStore := mocks.NewMockJobStore()

	resumeText := "Go developer resume"
	embedding.SetVector(resumeText, []float32{1, 0, 0})

	first := &domain.Job{ID: "job-1", Title: "Go Developer", Description: "Go role"}
	second := &domain.Job{ID: "job-2", Title: "Java Developer", Description: "Java role"}
	embedding.SetVector(first.CompositeText(), []float32{0.9, 0.4359, 0}) // embeds higher
	embedding.SetVector(second.CompositeText(), []float32{0.6, 0.8, 0})
	_ = jobStore.Save(context.Background(), first)
	_ = jobStore.Save(context.Background(), second)

	svc := newMatchService(jobStore, mocks.NewMockResumeStore(), nil, services, domain.DefaultMatchSettings())

	resp, err := svc.RagSearch(context.Background(), domain.RagRequest{ResumeText: resumeText})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	// The LLM scored the embedding runner-up higher; order flips
	if resp.Results[0].Job.ID != "job-2" {
		t.Errorf("expected job-2 promoted by rerank, got %s", resp.Results[0].Job.ID)
	}
	if resp.Results[0].LLMScore == nil || *resp.Results[0].LLMScore != 95 {
		t.Errorf("expected llm score 95, got %v", resp.Results[0].LLMScore)
	}
	if resp.Results[0].Explanation != "Excellent fit" {
		t.Errorf("unexpected explanation: %q", resp.Results[0].Explanation)
	}
}

func TestMatchService_RagSearch_UnparseableJudgmentKeepsRawText(t *testing.T) {
	embedding := mocks.NewMockEmbeddingService()
	llm := mocks.NewMockLLMService("This candidate looks like a reasonable fit overall.")
	services := createTestServices(t, embedding, llm)
	jobStore := mocks.NewMockJobStore()

	resumeText := "Engineer resume"
	embedding.SetVector(resumeText, []float32{1, 0, 0})

	job := &domain.Job{ID: "job-1", Title: "Engineer", Description: "Role"}
	embedding.SetVector(job.CompositeText(), []float32{1, 0, 0})
	_ = jobStore.Save(context.Background(), job)

	svc := newMatchService(jobStore, mocks.NewMockResumeStore(), nil, services, domain.DefaultMatchSettings())

	resp, err := svc.RagSearch(context.Background(), domain.RagRequest{ResumeText: resumeText})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	got := resp.Results[0]
	if got.Explanation != "This candidate looks like a reasonable fit overall." {
		t.Errorf("expected raw text as explanation, got %q", got.Explanation)
	}
	if got.LLMScore != nil {
		t.Errorf("expected no llm score on parse failure, got %v", *got.LLMScore)
	}
}

func TestMatchService_RagSearch_RerankCallFailureDegrades(t *testing.T) {
	embedding := mocks.NewMockEmbeddingService()
	llm := mocks.NewMockLLMService()
	llm.FailAll(true)
	services := createTestServices(t, embedding, llm)
	jobStore := mocks.NewMockJobStore()

	resumeText := "Engineer resume"
	embedding.SetVector(resumeText, []float32{1, 0, 0})

	job := &domain.Job{ID: "job-1", Title: "Engineer", Description: "Role"}
	embedding.SetVector(job.CompositeText(), []float32{1, 0, 0})
	_ = jobStore.Save(context.Background(), job)

	svc := newMatchService(jobStore, mocks.NewMockResumeStore(), nil, services, domain.DefaultMatchSettings())

	resp, err := svc.RagSearch(context.Background(), domain.RagRequest{ResumeText: resumeText})
	if err != nil {
		t.Fatalf("rerank failure must not fail the request: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected the candidate to survive, got %d results", len(resp.Results))
	}
	if resp.Results[0].Explanation == "" {
		t.Error("expected an unavailability note in the explanation")
	}
}

func TestMatchService_RagSearch_EmptyPool(t *testing.T) {
	embedding := mocks.NewMockEmbeddingService()
	services := createTestServices(t, embedding, nil)

	svc := newMatchService(mocks.NewMockJobStore(), mocks.NewMockResumeStore(), nil, services, domain.DefaultMatchSettings())

	resp, err := svc.RagSearch(context.Background(), domain.RagRequest{ResumeText: "resume"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("expected no results, got %d", len(resp.Results))
	}
	if resp.Message != "No jobs available for matching" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestMatchService_RagSearch_EmbeddingFailureIsFatal(t *testing.T) {
	embedding := mocks.NewMockEmbeddingService()
	embedding.FailAll(true)
	services := createTestServices(t, embedding, nil)
	jobStore := mocks.NewMockJobStore()
	_ = jobStore.Save(context.Background(), &domain.Job{ID: "job-1", Title: "Engineer", Description: "Role"})

	svc := newMatchService(jobStore, mocks.NewMockResumeStore(), nil, services, domain.DefaultMatchSettings())

	_, err := svc.RagSearch(context.Background(), domain.RagRequest{ResumeText: "resume"})
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Errorf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}
