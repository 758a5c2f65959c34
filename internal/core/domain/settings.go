package domain

// AIProvider identifies the AI/embedding backend
type AIProvider string

const (
	AIProviderGemini AIProvider = "gemini"
	AIProviderOpenAI AIProvider = "openai"
)

// RequiresAPIKey reports whether the provider needs an API key
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderGemini || p == AIProviderOpenAI
}

// EmbeddingSettings configures one embedding backend
type EmbeddingSettings struct {
	Provider AIProvider `json:"provider"`
	Model    string     `json:"model"`
	APIKey   string     `json:"-"` // Never serialize to JSON
	BaseURL  string     `json:"base_url,omitempty"`
}

// IsConfigured returns true if embedding settings are usable
func (e *EmbeddingSettings) IsConfigured() bool {
	if e.Provider == "" {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings configures one text-generation backend
type LLMSettings struct {
	Provider AIProvider `json:"provider"`
	Model    string     `json:"model"`
	APIKey   string     `json:"-"` // Never serialize to JSON
	BaseURL  string     `json:"base_url,omitempty"`
}

// IsConfigured returns true if LLM settings are usable
func (l *LLMSettings) IsConfigured() bool {
	if l.Provider == "" {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// AISettings is an ordered preference list of AI backends. Backends are
// tried in sequence, the first success short-circuits (Gemini first then
// OpenAI by default, matching the deployment's historical behavior).
type AISettings struct {
	Embedding []EmbeddingSettings `json:"embedding"`
	LLM       []LLMSettings       `json:"llm"`
}

// MatchSettings holds the tunable matching thresholds
type MatchSettings struct {
	// ThresholdPct is the primary similarity threshold. Values below 1 are
	// treated as fractions and scaled to percent. Floor-clamped to 40.
	ThresholdPct float64

	// LocalBackfillPct re-admits local matches at or above this score when
	// none pass the primary threshold. Catalog jobs stay visible.
	LocalBackfillPct float64

	// RagMinSimilarity is the pooled-search floor; relaxed once to
	// RagRelaxedSimilarity when nothing clears it.
	RagMinSimilarity     float64
	RagRelaxedSimilarity float64

	// PassThresholdPct is the answer-scoring pass mark
	PassThresholdPct float64
}

// DefaultMatchSettings returns the standard thresholds
func DefaultMatchSettings() MatchSettings {
	return MatchSettings{
		ThresholdPct:         50,
		LocalBackfillPct:     30,
		RagMinSimilarity:     0.30,
		RagRelaxedSimilarity: 0.20,
		PassThresholdPct:     60,
	}
}

// EffectiveThresholdPct normalizes the configured threshold: fractional
// values scale to percent and the result never drops below 40.
func (m MatchSettings) EffectiveThresholdPct() float64 {
	pct := m.ThresholdPct
	if pct < 1 {
		pct *= 100
	}
	if pct < 40 {
		pct = 40
	}
	return pct
}
