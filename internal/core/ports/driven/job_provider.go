package driven

import (
	"context"
)

// RawJobItem is one posting as returned by the external job-search provider,
// before normalization into a domain.Job
type RawJobItem struct {
	JobID       string
	Title       string
	Description string
	Location    string
	CompanyName string

	// Via is the provider's source attribution ("via LinkedIn", direct
	// company listing, etc.)
	Via string

	// Highlights carries optional structured sections such as
	// "Qualifications" and "Responsibilities"
	Highlights map[string][]string

	ApplyLink string
}

// JobProvider searches an external job aggregator. Failures are expected;
// callers treat any error as "zero external jobs this request".
type JobProvider interface {
	// Search issues one query with a location parameter and result cap
	Search(ctx context.Context, query, location string, limit int) ([]RawJobItem, error)
}
