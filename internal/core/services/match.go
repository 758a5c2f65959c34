package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driving"
	"github.com/talentforge-labs/matchcore/internal/runtime"
	"github.com/talentforge-labs/matchcore/internal/similarity"
)

// Ensure matchService implements MatchService
var _ driving.MatchService = (*matchService)(nil)

// matchService implements the two retrieval pipelines. AI capabilities are
// resolved dynamically via runtime.Services; the external fetcher is
// best-effort throughout.
type matchService struct {
	jobStore    driven.JobStore
	resumeStore driven.ResumeStore
	fetcher     *ExternalFetcher
	services    *runtime.Services
	settings    domain.MatchSettings
	logger      *slog.Logger
}

// NewMatchService creates a new MatchService
func NewMatchService(
	jobStore driven.JobStore,
	resumeStore driven.ResumeStore,
	fetcher *ExternalFetcher,
	services *runtime.Services,
	settings domain.MatchSettings,
	logger *slog.Logger,
) driving.MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &matchService{
		jobStore:    jobStore,
		resumeStore: resumeStore,
		fetcher:     fetcher,
		services:    services,
		settings:    settings,
		logger:      logger,
	}
}

// Match runs the two-stage pipeline: score the local catalog and the
// externally fetched candidates against the resume, filter, threshold and
// rank. Local matches always precede external ones.
func (s *matchService) Match(ctx context.Context, req domain.MatchRequest) (*domain.MatchResponse, error) {
	resumeText, err := s.resolveResume(ctx, req.ResumeText, req.UserID)
	if err != nil {
		return nil, err
	}

	localJobs, err := s.jobStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog jobs: %w", err)
	}

	externalJobs := s.fetcher.Fetch(ctx, resumeText, "")

	cache := s.services.EmbeddingCache()
	if cache == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	resumeEmb, err := cache.GetOrCompute(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("embed resume: %w", err)
	}

	location := strings.ToLower(strings.TrimSpace(req.PreferredLocation))
	jobType := strings.ToLower(strings.TrimSpace(req.JobType))

	local, err := s.scoreJobs(ctx, cache, resumeEmb, localJobs, domain.JobSourceLocal, location, jobType)
	if err != nil {
		return nil, err
	}
	external, err := s.scoreJobs(ctx, cache, resumeEmb, externalJobs, domain.JobSourceExternal, location, jobType)
	if err != nil {
		return nil, err
	}

	sortBySimilarity(local)
	sortBySimilarity(external)

	thresholdPct := s.settings.EffectiveThresholdPct()

	var filtered []domain.MatchResult
	for _, m := range append(append([]domain.MatchResult{}, local...), external...) {
		if m.MatchPct >= thresholdPct {
			filtered = append(filtered, m)
		}
	}

	// Backfill: when the catalog has matches but none clear the primary
	// threshold, re-admit local matches at the backfill floor ahead of the
	// surviving externals. Curated postings stay visible.
	if len(local) > 0 && countLocal(filtered) == 0 {
		var backfill []domain.MatchResult
		for _, m := range local {
			if m.MatchPct >= s.settings.LocalBackfillPct {
				backfill = append(backfill, m)
			}
		}
		if len(backfill) > 0 {
			s.logger.Info("no local matches passed threshold, backfilling",
				"threshold_pct", thresholdPct,
				"backfill_pct", s.settings.LocalBackfillPct,
				"count", len(backfill))
			filtered = append(backfill, filtered...)
		}
	}

	resp := &domain.MatchResponse{
		Matches:         filtered,
		LocalMatches:    partition(filtered, domain.JobSourceLocal),
		ExternalMatches: partition(filtered, domain.JobSourceExternal),
		ThresholdPct:    thresholdPct,
	}

	if len(filtered) == 0 {
		resp.Message = s.emptyResultMessage(local, external, len(localJobs), len(externalJobs), thresholdPct)
	}

	s.logger.Info("match complete",
		"local", len(resp.LocalMatches),
		"external", len(resp.ExternalMatches),
		"threshold_pct", thresholdPct)

	return resp, nil
}

// resolveResume returns the given text or looks up the user's latest resume
func (s *matchService) resolveResume(ctx context.Context, resumeText, userID string) (string, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText != "" {
		return resumeText, nil
	}
	if userID == "" {
		return "", domain.ErrMissingResume
	}

	resume, err := s.resumeStore.Latest(ctx, userID)
	if err != nil || strings.TrimSpace(resume.Text) == "" {
		return "", fmt.Errorf("%w: upload a resume first", domain.ErrMissingResume)
	}

	s.logger.Info("using stored resume", "user_id", userID, "filename", resume.Filename)
	return resume.Text, nil
}

// scoreJobs filters and scores one candidate group. Local jobs get lenient
// filtering (absent fields never exclude); external jobs are excluded
// outright when a requested location fails to match, since provider records
// carry well-formed location metadata.
func (s *matchService) scoreJobs(
	ctx context.Context,
	cache driven.EmbeddingCache,
	resumeEmb []float32,
	jobs []*domain.Job,
	source domain.JobSource,
	location, jobType string,
) ([]domain.MatchResult, error) {
	strict := source == domain.JobSourceExternal

	var results []domain.MatchResult
	for _, job := range jobs {
		job.Source = source

		composite := job.CompositeText()
		if strings.TrimSpace(composite) == "" {
			s.logger.Warn("skipping unscoreable job", "job_id", job.ID, "title", job.Title)
			continue
		}

		if excludeByLocation(job, location, strict) {
			continue
		}
		if excludeByJobType(job, composite, jobType) {
			continue
		}

		jobEmb, err := cache.GetOrCompute(ctx, composite)
		if err != nil {
			return nil, fmt.Errorf("embed job %s: %w", job.ID, err)
		}

		sim, err := similarity.Cosine(resumeEmb, jobEmb)
		if err != nil {
			return nil, err
		}

		results = append(results, domain.MatchResult{
			Job:        job,
			Similarity: sim,
			MatchPct:   similarity.Pct(sim),
			Source:     source,
		})
	}
	return results, nil
}

// excludeByLocation applies the location filter. Lenient mode only excludes
// jobs that have a location which fails to contain the filter substring;
// strict mode also excludes jobs with no location at all.
func excludeByLocation(job *domain.Job, location string, strict bool) bool {
	if location == "" {
		return false
	}
	loc := strings.ToLower(job.Location)
	if loc == "" {
		return strict
	}
	return !strings.Contains(loc, location)
}

// excludeByJobType excludes jobs whose title+description lack the requested
// term. The literal value "any" disables the filter.
func excludeByJobType(job *domain.Job, composite, jobType string) bool {
	if jobType == "" || jobType == "any" {
		return false
	}
	haystack := strings.ToLower(job.Title + " " + composite)
	return !strings.Contains(haystack, jobType)
}

// emptyResultMessage explains why nothing was returned, with enough context
// for the caller to self-correct
func (s *matchService) emptyResultMessage(local, external []domain.MatchResult, localPool, externalPool int, thresholdPct float64) string {
	total := len(local) + len(external)
	if total > 0 {
		best := 0.0
		for _, m := range append(append([]domain.MatchResult{}, local...), external...) {
			if m.MatchPct > best {
				best = m.MatchPct
			}
		}
		return fmt.Sprintf(
			"Found %d jobs, but none meet the %.0f%% similarity threshold. Highest match: %.1f%%. Try uploading a more detailed resume, adding relevant skills, or lowering the threshold.",
			total, thresholdPct, best)
	}

	if localPool == 0 && externalPool == 0 {
		return "No jobs found. Check that the job provider is configured and the catalog has postings."
	}
	return "No jobs matched your location or job type filters. Try adjusting your search criteria."
}

func sortBySimilarity(matches []domain.MatchResult) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
}

func partition(matches []domain.MatchResult, source domain.JobSource) []domain.MatchResult {
	out := make([]domain.MatchResult, 0, len(matches))
	for _, m := range matches {
		if m.Source == source {
			out = append(out, m)
		}
	}
	return out
}

func countLocal(matches []domain.MatchResult) int {
	n := 0
	for _, m := range matches {
		if m.Source == domain.JobSourceLocal {
			n++
		}
	}
	return n
}
