package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
	"github.com/talentforge-labs/matchcore/internal/runtime"
)

const (
	// DefaultSearchLocation is used when the caller gives no location hint
	DefaultSearchLocation = "United States"

	fetchLimit       = 20
	companySiteCap   = 10
	aggregatorCap    = 5
	descriptionCap   = 4000
	resumePreviewCap = 2000

	queryMaxWords = 5
	queryMaxChars = 50
	queryMinChars = 3

	fallbackQuery = "software engineer"
)

// roleTitles and skillKeywords form the deterministic query fallback
// vocabulary, scanned case-insensitively against the resume when the LLM
// cannot produce a usable query.
var (
	roleTitles = []string{
		"engineer", "developer", "analyst", "scientist", "manager",
		"designer", "architect", "consultant", "specialist", "programmer",
	}
	skillKeywords = []string{
		"python", "java", "react", "javascript", "go", "sql", "data",
		"machine learning", "ai", "cloud", "aws",
	}
)

// SiteClassifier decides whether an external posting came from a company's
// own site rather than an aggregator. The provider gives no normative
// definition, so the classifier is pluggable.
type SiteClassifier func(via, companyName string) bool

// DefaultSiteClassifier keeps the substring heuristic on the provider's
// attribution field: "company", "direct", or the company's own name.
func DefaultSiteClassifier(via, companyName string) bool {
	v := strings.ToLower(via)
	if v == "" {
		return false
	}
	if strings.Contains(v, "company") || strings.Contains(v, "direct") {
		return true
	}
	name := strings.ToLower(strings.TrimSpace(companyName))
	return name != "" && strings.Contains(v, name)
}

// ExternalFetcher derives a search query from resume text and pulls
// candidate jobs from the external job-search provider. Every failure mode
// degrades to an empty result list; external jobs are never load-bearing.
type ExternalFetcher struct {
	provider   driven.JobProvider
	services   *runtime.Services
	classifier SiteClassifier
	location   string
	logger     *slog.Logger
}

// NewExternalFetcher creates an ExternalFetcher. provider may be nil when
// no external search is configured; Fetch then returns nothing.
func NewExternalFetcher(provider driven.JobProvider, services *runtime.Services, classifier SiteClassifier, location string, logger *slog.Logger) *ExternalFetcher {
	if classifier == nil {
		classifier = DefaultSiteClassifier
	}
	if location == "" {
		location = DefaultSearchLocation
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExternalFetcher{
		provider:   provider,
		services:   services,
		classifier: classifier,
		location:   location,
		logger:     logger,
	}
}

// Fetch returns external candidate jobs for the resume, company-site
// postings first. locationHint overrides the configured search location.
func (f *ExternalFetcher) Fetch(ctx context.Context, resumeText, locationHint string) []*domain.Job {
	if f.provider == nil {
		return nil
	}

	query := f.DeriveQuery(ctx, resumeText)

	location := locationHint
	if location == "" {
		location = f.location
	}

	items, err := f.provider.Search(ctx, query, location, fetchLimit)
	if err != nil {
		f.logger.Warn("external job search failed", "query", query, "error", err)
		return nil
	}

	var companyJobs, otherJobs []*domain.Job
	for _, item := range items {
		if item.Title == "" || item.Description == "" {
			continue
		}

		job := normalizeExternalItem(item)
		job.FromCompanySite = f.classifier(item.Via, item.CompanyName)
		if job.FromCompanySite {
			companyJobs = append(companyJobs, job)
		} else {
			otherJobs = append(otherJobs, job)
		}
	}

	if len(companyJobs) > companySiteCap {
		companyJobs = companyJobs[:companySiteCap]
	}
	if len(otherJobs) > aggregatorCap {
		otherJobs = otherJobs[:aggregatorCap]
	}

	f.logger.Info("fetched external jobs",
		"query", query,
		"company_site", len(companyJobs),
		"aggregator", len(otherJobs))

	return append(companyJobs, otherJobs...)
}

// DeriveQuery asks the LLM for a short search query describing the resume,
// with a deterministic keyword fallback when the model is unavailable or
// returns something unusable.
func (f *ExternalFetcher) DeriveQuery(ctx context.Context, resumeText string) string {
	llm := f.services.LLMService()
	if llm == nil {
		return keywordQuery(resumeText)
	}

	preview := resumeText
	if len(preview) > resumePreviewCap {
		preview = preview[:resumePreviewCap]
	}

	raw, err := llm.Complete(ctx, buildQueryPrompt(preview))
	if err != nil {
		f.logger.Warn("query derivation failed, using keyword fallback", "error", err)
		return keywordQuery(resumeText)
	}

	query := cleanQuery(raw)
	if len(query) < queryMinChars {
		return keywordQuery(resumeText)
	}
	return query
}

func buildQueryPrompt(resumePreview string) string {
	return fmt.Sprintf(`You are a job search assistant. Analyze this resume and extract a SPECIFIC job search query.

Resume:
%s

Based on this resume, create a job search query (3-5 words) that would find the most relevant jobs.
Focus on:
1. Job title/role mentioned or implied
2. Primary technology/skill/domain
3. Experience level if apparent

Return ONLY the search query (3-5 words), nothing else. No explanation, no quotes, just the query.`, resumePreview)
}

// cleanQuery strips quoting, markdown fences and label prefixes from raw
// model output, then truncates to 5 tokens and 50 characters.
func cleanQuery(raw string) string {
	query := strings.TrimSpace(raw)
	query = strings.ReplaceAll(query, `"`, "")
	query = strings.ReplaceAll(query, "'", "")

	if strings.HasPrefix(query, "```") {
		lines := strings.Split(query, "\n")
		if len(lines) > 2 {
			query = strings.Join(lines[1:len(lines)-1], "\n")
		} else {
			query = strings.Trim(query, "`")
		}
		query = strings.TrimSpace(query)
	}

	for _, prefix := range []string{"query:", "search:", "jobs:", "the query is:", "query is:"} {
		if len(query) >= len(prefix) && strings.EqualFold(query[:len(prefix)], prefix) {
			query = strings.TrimSpace(query[len(prefix):])
		}
	}

	words := strings.Fields(query)
	if len(words) > queryMaxWords {
		words = words[:queryMaxWords]
	}
	query = strings.Join(words, " ")
	if len(query) > queryMaxChars {
		query = strings.TrimSpace(query[:queryMaxChars])
	}
	return query
}

// keywordQuery scans the resume against the fixed role/skill vocabulary
func keywordQuery(resumeText string) string {
	lower := strings.ToLower(resumeText)

	var title string
	for _, t := range roleTitles {
		if strings.Contains(lower, t) {
			title = t
			break
		}
	}

	var skill string
	for _, s := range skillKeywords {
		if strings.Contains(lower, s) {
			skill = s
			break
		}
	}

	switch {
	case title != "" && skill != "":
		return titleCase(title) + " " + titleCase(skill)
	case title != "":
		return titleCase(title)
	default:
		return fallbackQuery
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// normalizeExternalItem converts a provider item into the canonical job
// shape: highlights folded into the description, length capped,
// provenance-prefixed ID.
func normalizeExternalItem(item driven.RawJobItem) *domain.Job {
	desc := item.Description
	for _, section := range []string{"Qualifications", "Responsibilities"} {
		if lines := item.Highlights[section]; len(lines) > 0 {
			desc += "\n" + strings.Join(lines, "\n")
		}
	}
	if len(desc) > descriptionCap {
		desc = desc[:descriptionCap]
	}

	id := item.JobID
	if id == "" {
		id = uuid.NewString()
	}

	company := item.CompanyName
	if company == "" {
		company = item.Via
	}

	return &domain.Job{
		ID:          "ext_" + id,
		Title:       item.Title,
		Description: desc,
		Location:    item.Location,
		CompanyName: company,
		ApplyLink:   item.ApplyLink,
		Via:         item.Via,
		Source:      domain.JobSourceExternal,
	}
}
