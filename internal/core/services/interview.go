package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driving"
	"github.com/talentforge-labs/matchcore/internal/runtime"
)

// Ensure interviewService implements InterviewService
var _ driving.InterviewService = (*interviewService)(nil)

const (
	minQuestions = 5

	// defaultAnswerScore is assumed when the per-answer judgment cannot
	// be parsed
	defaultAnswerScore = 70
)

// fallbackQuestions are returned whenever generation fails entirely
var fallbackQuestions = []string{
	"What relevant experience do you have for this role?",
	"Describe a challenging technical problem you've solved.",
	"How do you stay updated with the latest technologies in this field?",
	"What is your approach to debugging and troubleshooting?",
	"Can you walk us through a project you're proud of?",
}

// interviewService generates interview questions per job and scores
// submitted answers, both via the text-generation capability with
// deterministic fallbacks.
type interviewService struct {
	jobStore driven.JobStore
	appStore driven.ApplicationStore
	services *runtime.Services
	settings domain.MatchSettings
	logger   *slog.Logger
}

// NewInterviewService creates a new InterviewService
func NewInterviewService(
	jobStore driven.JobStore,
	appStore driven.ApplicationStore,
	services *runtime.Services,
	settings domain.MatchSettings,
	logger *slog.Logger,
) driving.InterviewService {
	if logger == nil {
		logger = slog.Default()
	}
	return &interviewService{
		jobStore: jobStore,
		appStore: appStore,
		services: services,
		settings: settings,
		logger:   logger,
	}
}

// GenerateQuestions builds 5-7 interview questions for a catalog job and
// persists them. Any generation or parse failure yields the fixed generic
// set instead of an error.
func (s *interviewService) GenerateQuestions(ctx context.Context, jobID, experienceLevel string) ([]string, error) {
	job, err := s.jobStore.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if experienceLevel == "" {
		experienceLevel = "mid-level"
	}

	questions := s.generate(ctx, job, experienceLevel)

	if err := s.jobStore.SaveQuestions(ctx, jobID, questions); err != nil {
		return nil, fmt.Errorf("save questions: %w", err)
	}
	return questions, nil
}

func (s *interviewService) generate(ctx context.Context, job *domain.Job, experienceLevel string) []string {
	llm := s.services.LLMService()
	if llm == nil {
		return fallbackQuestions
	}

	raw, err := llm.Complete(ctx, buildQuestionsPrompt(job, experienceLevel))
	if err != nil {
		s.logger.Warn("question generation failed, using fallback", "job_id", job.ID, "error", err)
		return fallbackQuestions
	}

	questions, ok := extractJSONArray(raw)
	if !ok {
		s.logger.Warn("question output not parseable, using fallback", "job_id", job.ID)
		return fallbackQuestions
	}

	cleaned := make([]string, 0, len(questions))
	for _, q := range questions {
		if q = strings.TrimSpace(q); q != "" {
			cleaned = append(cleaned, q)
		}
	}

	// Top up short sets from the job's own skills
	for i := 0; len(cleaned) < minQuestions && i < len(job.Skills); i++ {
		cleaned = append(cleaned, fmt.Sprintf("Explain your experience with %s.", job.Skills[i]))
	}
	if len(cleaned) < minQuestions {
		return fallbackQuestions
	}
	return cleaned
}

func buildQuestionsPrompt(job *domain.Job, experienceLevel string) string {
	var ctx strings.Builder
	fmt.Fprintf(&ctx, "Job Title: %s\n\n", job.Title)
	fmt.Fprintf(&ctx, "Description: %s\n\n", job.Description)
	if len(job.Skills) > 0 {
		fmt.Fprintf(&ctx, "Required Skills: %s\n\n", strings.Join(job.Skills, ", "))
	}
	if len(job.Responsibilities) > 0 {
		fmt.Fprintf(&ctx, "Responsibilities:\n%s\n\n", strings.Join(job.Responsibilities, "\n"))
	}
	if len(job.Qualifications) > 0 {
		fmt.Fprintf(&ctx, "Qualifications:\n%s\n\n", strings.Join(job.Qualifications, "\n"))
	}

	return fmt.Sprintf(`Generate 5-7 technical interview questions for this job posting. The questions should be:
1. Relevant to the job description and required skills
2. Appropriate for %s level candidates
3. Cover both technical skills and problem-solving abilities
4. Mix of conceptual and practical questions

Job Details:
%s
Return the questions as a JSON array of strings. Each question should be clear, specific, and test relevant technical knowledge.

Return ONLY the JSON array, no other text:`, experienceLevel, ctx.String())
}

// ScoreAnswers validates each submitted answer against the job with the
// LLM, aggregates a percentage and stores an application. Unparseable
// judgments default to a neutral score rather than failing the submission.
func (s *interviewService) ScoreAnswers(ctx context.Context, req domain.AnswerSubmission) (*domain.Application, error) {
	if req.UserID == "" || req.JobID == "" {
		return nil, fmt.Errorf("%w: user_id and job_id are required", domain.ErrInvalidInput)
	}

	job, err := s.jobStore.Get(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	llm := s.services.LLMService()

	total := 0
	validations := make(map[string]domain.AnswerValidation, len(req.Questions))
	for idx, question := range req.Questions {
		key := fmt.Sprintf("%d", idx+1)
		answer := req.Answers[key]

		validation := s.validateAnswer(ctx, llm, job, question, answer)
		validations[key] = validation
		total += validation.Score
	}

	var percent float64
	if len(req.Questions) > 0 {
		percent = roundPct(float64(total) / float64(len(req.Questions)*100) * 100)
	}

	status := domain.ApplicationFailed
	if percent >= s.settings.PassThresholdPct {
		status = domain.ApplicationPassed
	}

	app := &domain.Application{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		JobID:       req.JobID,
		JobTitle:    job.Title,
		Answers:     validations,
		Score:       percent,
		Status:      status,
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.appStore.Save(ctx, app); err != nil {
		return nil, fmt.Errorf("save application: %w", err)
	}

	s.logger.Info("answers scored",
		"user_id", req.UserID,
		"job_id", req.JobID,
		"score", percent,
		"status", status)

	return app, nil
}

func (s *interviewService) validateAnswer(ctx context.Context, llm driven.LLMService, job *domain.Job, question, answer string) domain.AnswerValidation {
	validation := domain.AnswerValidation{
		Question:    question,
		Answer:      answer,
		Score:       defaultAnswerScore,
		Originality: "original",
	}

	if llm == nil {
		return validation
	}

	prompt := fmt.Sprintf(
		"Job description: %s\nQuestion: %s\nAnswer: %s\nAssess relevance from 0-100 and say if likely copied or original. Return JSON like {\"score\": <int>, \"originality\": \"original\"|\"copied\", \"feedback\": \"...\"}",
		excerpt(job.Description), question, answer)

	raw, err := llm.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("answer validation failed, using default score", "job_id", job.ID, "error", err)
		return validation
	}

	span, found := extractJSONObject(raw)
	if !found {
		validation.Feedback = excerptFeedback(raw)
		return validation
	}

	var parsed struct {
		Score       *int   `json:"score"`
		Originality string `json:"originality"`
		Feedback    string `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		validation.Feedback = excerptFeedback(raw)
		return validation
	}

	if parsed.Score != nil {
		validation.Score = *parsed.Score
	}
	if parsed.Originality != "" {
		validation.Originality = parsed.Originality
	}
	validation.Feedback = parsed.Feedback
	return validation
}

func excerptFeedback(raw string) string {
	if len(raw) > 200 {
		return raw[:200]
	}
	return raw
}
