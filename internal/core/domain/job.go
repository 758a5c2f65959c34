package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// JobSource identifies where a job record came from
type JobSource string

const (
	// JobSourceLocal marks catalog jobs owned by this deployment
	JobSourceLocal JobSource = "local"

	// JobSourceExternal marks jobs fetched from the external job-search
	// provider. External records are ephemeral and never persisted.
	JobSourceExternal JobSource = "external"
)

// Job is the canonical unit of retrieval. Local jobs are durable catalog
// records; external jobs carry an "ext_" prefixed ID and live only for the
// duration of one match request.
type Job struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Skills           []string  `json:"skills,omitempty"`
	Responsibilities []string  `json:"responsibilities,omitempty"`
	Qualifications   []string  `json:"qualifications,omitempty"`
	Questions        []string  `json:"questions,omitempty"`
	CompanyName      string    `json:"company_name,omitempty"`
	HREmail          string    `json:"hr_email,omitempty"`
	Location         string    `json:"location,omitempty"`
	ApplyLink        string    `json:"apply_link,omitempty"`
	Source           JobSource `json:"source"`

	// Via carries the provider's attribution string for external jobs.
	// Used by the company-site classifier.
	Via string `json:"via,omitempty"`

	// FromCompanySite is set by the fetcher's classifier for external jobs
	FromCompanySite bool `json:"from_company_site,omitempty"`

	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// CompositeText builds the unified comparable representation of the job:
// description, then labeled skills, responsibilities and qualifications
// blocks, each section only when non-empty. A job whose composite text trims
// to empty is unscoreable and must be excluded before any embedding call.
func (j *Job) CompositeText() string {
	var b strings.Builder
	b.WriteString(j.Description)

	if len(j.Skills) > 0 {
		b.WriteString("\n\nRequired Skills: ")
		b.WriteString(strings.Join(j.Skills, ", "))
	}
	if len(j.Responsibilities) > 0 {
		b.WriteString("\n\nResponsibilities:\n")
		b.WriteString(strings.Join(j.Responsibilities, "\n"))
	}
	if len(j.Qualifications) > 0 {
		b.WriteString("\n\nQualifications:\n")
		b.WriteString(strings.Join(j.Qualifications, "\n"))
	}

	return b.String()
}

// Scoreable reports whether the job resolves to non-empty composite text
func (j *Job) Scoreable() bool {
	return strings.TrimSpace(j.CompositeText()) != ""
}

// IsExternal reports whether the job came from the external provider
func (j *Job) IsExternal() bool {
	return j.Source == JobSourceExternal
}

// NormalizeStringList canonicalizes loosely-typed list fields which may
// arrive as a JSON array, a comma- or newline-separated string, or a
// pre-parsed slice. Normalization happens once on ingress; the core never
// re-derives it downstream.
func NormalizeStringList(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []string:
		return trimList(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	case string:
		return SplitStringList(v)
	default:
		return nil
	}
}

// SplitStringList parses a serialized list field. JSON arrays are honored
// first; otherwise the text splits on newlines, falling back to commas.
func SplitStringList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var parsed []string
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			return trimList(parsed)
		}
	}

	sep := "\n"
	if !strings.Contains(raw, "\n") {
		sep = ","
	}
	return trimList(strings.Split(raw, sep))
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
