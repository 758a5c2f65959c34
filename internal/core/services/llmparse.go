package services

import (
	"encoding/json"
	"math"
	"strings"
)

// roundPct rounds a percentage to two decimal places
func roundPct(pct float64) float64 {
	return math.Round(pct*100) / 100
}

// scoreJudgment is the structured relevance judgment requested from the LLM
type scoreJudgment struct {
	Score       *int   `json:"score"`
	Explanation string `json:"explanation"`
}

// extractJSONObject finds the first-`{`-to-last-`}` span in free-form model
// output. This is a best-effort grammar: behavior with multiple JSON-like
// substrings in one response is unspecified.
func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// parseScoreJudgment leniently parses a {score, explanation} object out of
// raw model output. ok is false when no parseable object is present; the
// caller degrades to using the raw text as the explanation.
func parseScoreJudgment(raw string) (scoreJudgment, bool) {
	span, found := extractJSONObject(raw)
	if !found {
		return scoreJudgment{}, false
	}

	var judgment scoreJudgment
	if err := json.Unmarshal([]byte(span), &judgment); err != nil {
		return scoreJudgment{}, false
	}
	return judgment, true
}

// extractJSONArray finds a bracketed array span in free-form model output
// and parses it as a list of strings
func extractJSONArray(raw string) ([]string, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, false
	}

	var items []string
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil, false
	}
	return items, true
}
