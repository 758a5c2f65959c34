package domain

// MatchRequest is the input to the two-stage match pipeline. ResumeText is
// used directly when present; otherwise the latest stored resume for UserID
// is resolved.
type MatchRequest struct {
	ResumeText        string `json:"resume_text,omitempty"`
	UserID            string `json:"user_id,omitempty"`
	PreferredLocation string `json:"preferred_location,omitempty"`
	JobType           string `json:"job_type,omitempty"`
}

// MatchResult pairs a job with its similarity to the resume. Produced
// transiently per request; never persisted.
type MatchResult struct {
	Job        *Job      `json:"job"`
	Similarity float64   `json:"similarity"`
	MatchPct   float64   `json:"similarity_pct"`
	Source     JobSource `json:"source"`

	// Explanation and LLMScore are populated by the RAG rerank stage
	Explanation string `json:"match_explanation,omitempty"`
	LLMScore    *int   `json:"llm_score,omitempty"`
}

// MatchResponse partitions ranked matches by provenance. Matches holds the
// combined threshold-filtered list, local first.
type MatchResponse struct {
	Matches         []MatchResult `json:"matches"`
	LocalMatches    []MatchResult `json:"local_matches"`
	ExternalMatches []MatchResult `json:"external_matches"`
	ThresholdPct    float64       `json:"threshold_pct"`
	Message         string        `json:"message,omitempty"`
}

// RagRequest is the input to the pooled single-pass retrieval mode
type RagRequest struct {
	ResumeText    string `json:"resume_text,omitempty"`
	UserID        string `json:"user_id,omitempty"`
	TopK          int    `json:"top_k,omitempty"`
	RerankWithLLM *bool  `json:"rerank_with_llm,omitempty"`
}

// Rerank returns whether LLM reranking was requested (default true)
func (r *RagRequest) Rerank() bool {
	return r.RerankWithLLM == nil || *r.RerankWithLLM
}

// Limit returns the effective top-k (default 10)
func (r *RagRequest) Limit() int {
	if r.TopK <= 0 {
		return 10
	}
	return r.TopK
}

// RagResponse carries the reranked result list. Matches mirrors Results for
// callers that consume the /match response shape.
type RagResponse struct {
	Results []MatchResult `json:"results"`
	Matches []MatchResult `json:"matches"`
	Message string        `json:"message,omitempty"`
}
