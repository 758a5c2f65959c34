package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/similarity"
)

const excerptCap = 2000

// RagSearch pools every candidate job, runs one batched similarity pass
// with an adaptive floor, and optionally asks the LLM to rescore and
// explain the top-k. Embedding failure is fatal; rerank failures degrade
// per candidate.
func (s *matchService) RagSearch(ctx context.Context, req domain.RagRequest) (*domain.RagResponse, error) {
	resumeText, err := s.resolveResume(ctx, req.ResumeText, req.UserID)
	if err != nil {
		return nil, err
	}

	localJobs, err := s.jobStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog jobs: %w", err)
	}
	externalJobs := s.fetcher.Fetch(ctx, resumeText, "")

	var pool []*domain.Job
	for _, job := range localJobs {
		job.Source = domain.JobSourceLocal
		if job.Scoreable() {
			pool = append(pool, job)
		}
	}
	for _, job := range externalJobs {
		if job.Scoreable() {
			pool = append(pool, job)
		}
	}

	if len(pool) == 0 {
		return &domain.RagResponse{
			Results: []domain.MatchResult{},
			Matches: []domain.MatchResult{},
			Message: "No jobs available for matching",
		}, nil
	}

	cache := s.services.EmbeddingCache()
	if cache == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	resumeEmb, err := cache.GetOrCompute(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("embed resume: %w", err)
	}

	embeddings := make([][]float32, len(pool))
	for i, job := range pool {
		embeddings[i], err = cache.GetOrCompute(ctx, job.CompositeText())
		if err != nil {
			return nil, fmt.Errorf("embed job %s: %w", job.ID, err)
		}
	}

	sims, err := similarity.BatchCosine(resumeEmb, embeddings)
	if err != nil {
		return nil, err
	}

	// Adaptive floor: relax once when nothing clears the primary minimum.
	// This is the pipeline's only automatic relaxation.
	floor := s.settings.RagMinSimilarity
	indices := indicesAbove(sims, floor)
	if len(indices) == 0 {
		floor = s.settings.RagRelaxedSimilarity
		indices = indicesAbove(sims, floor)
		s.logger.Info("no candidates above primary floor, relaxed",
			"floor", floor, "candidates", len(indices))
	}

	sort.SliceStable(indices, func(i, j int) bool {
		return sims[indices[i]] > sims[indices[j]]
	})
	if limit := req.Limit(); len(indices) > limit {
		indices = indices[:limit]
	}

	results := make([]domain.MatchResult, 0, len(indices))
	for _, idx := range indices {
		results = append(results, domain.MatchResult{
			Job:        pool[idx],
			Similarity: sims[idx],
			MatchPct:   similarity.Pct(sims[idx]),
			Source:     pool[idx].Source,
		})
	}

	if req.Rerank() {
		s.rerank(ctx, resumeText, results)
	}

	s.logger.Info("rag search complete",
		"pool", len(pool),
		"floor", floor,
		"returned", len(results),
		"reranked", req.Rerank())

	return &domain.RagResponse{Results: results, Matches: results}, nil
}

// rerank asks the LLM for a {score, explanation} judgment per candidate.
// A single candidate's failure never removes it from the output; when at
// least one candidate got a numeric score the list re-sorts by it, with
// unscored items falling back to their embedding percentage.
func (s *matchService) rerank(ctx context.Context, resumeText string, results []domain.MatchResult) {
	llm := s.services.LLMService()
	if llm == nil {
		return
	}

	scored := false
	for i := range results {
		prompt := buildRerankPrompt(resumeText, results[i].Job.CompositeText())

		raw, err := llm.Complete(ctx, prompt)
		if err != nil {
			s.logger.Warn("rerank call failed", "job_id", results[i].Job.ID, "error", err)
			results[i].Explanation = fmt.Sprintf("Analysis unavailable: %v", err)
			continue
		}

		if judgment, ok := parseScoreJudgment(raw); ok {
			results[i].Explanation = judgment.Explanation
			if judgment.Score != nil {
				results[i].LLMScore = judgment.Score
				scored = true
			}
		} else {
			results[i].Explanation = raw
		}
	}

	if scored {
		sort.SliceStable(results, func(i, j int) bool {
			return rerankKey(results[i]) > rerankKey(results[j])
		})
	}
}

// rerankKey keeps scored and unscored candidates comparable on the same
// 0-100 scale
func rerankKey(m domain.MatchResult) float64 {
	if m.LLMScore != nil {
		return float64(*m.LLMScore)
	}
	return m.MatchPct
}

func buildRerankPrompt(resumeText, jobText string) string {
	return fmt.Sprintf(`Analyze how well this resume matches the job description. Provide a detailed explanation of the match, highlighting:
1. Key skills that match
2. Experience alignment
3. Any gaps or areas for improvement

Resume:
%s

Job Description:
%s

Return a JSON object with: {"score": <0-100>, "explanation": "<detailed explanation>"}`,
		excerpt(resumeText), excerpt(jobText))
}

// excerpt caps prompt inputs so two long documents cannot blow the context
func excerpt(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > excerptCap {
		return text[:excerptCap]
	}
	return text
}

func indicesAbove(sims []float64, floor float64) []int {
	var out []int
	for i, sim := range sims {
		if sim >= floor {
			out = append(out, i)
		}
	}
	return out
}
