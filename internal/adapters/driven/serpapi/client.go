// Package serpapi implements the external job-search provider against the
// SerpAPI Google Jobs engine.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
)

// Ensure Client implements JobProvider
var _ driven.JobProvider = (*Client)(nil)

const defaultBaseURL = "https://serpapi.com"

// Client queries the SerpAPI Google Jobs engine
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a new SerpAPI client. baseURL overrides the production
// endpoint, used by tests.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("SerpAPI key is required")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// searchResponse is the subset of the Google Jobs payload the matcher needs
type searchResponse struct {
	JobsResults []jobResult `json:"jobs_results"`
	Error       string      `json:"error,omitempty"`
}

type jobResult struct {
	JobID         string         `json:"job_id"`
	Title         string         `json:"title"`
	CompanyName   string         `json:"company_name"`
	Location      string         `json:"location"`
	Via           string         `json:"via"`
	Description   string         `json:"description"`
	JobHighlights []jobHighlight `json:"job_highlights"`
	ApplyOptions  []applyOption  `json:"apply_options"`
}

type jobHighlight struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type applyOption struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Search queries the Google Jobs engine and returns raw job items
func (c *Client) Search(ctx context.Context, query, location string, limit int) ([]driven.RawJobItem, error) {
	params := url.Values{}
	params.Set("engine", "google_jobs")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	if location != "" {
		params.Set("location", location)
	}
	if limit > 0 {
		params.Set("num", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if searchResp.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderUnavailable, searchResp.Error)
	}

	items := make([]driven.RawJobItem, 0, len(searchResp.JobsResults))
	for _, result := range searchResp.JobsResults {
		if limit > 0 && len(items) >= limit {
			break
		}
		items = append(items, toRawItem(result))
	}
	return items, nil
}

func toRawItem(result jobResult) driven.RawJobItem {
	highlights := make(map[string][]string, len(result.JobHighlights))
	for _, h := range result.JobHighlights {
		if len(h.Items) > 0 {
			highlights[h.Title] = h.Items
		}
	}

	var applyLink string
	if len(result.ApplyOptions) > 0 {
		applyLink = result.ApplyOptions[0].Link
	}

	return driven.RawJobItem{
		JobID:       result.JobID,
		Title:       result.Title,
		Description: result.Description,
		Location:    result.Location,
		CompanyName: result.CompanyName,
		Via:         result.Via,
		Highlights:  highlights,
		ApplyLink:   applyLink,
	}
}
