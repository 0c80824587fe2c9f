package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultMaxResults = 5

// TavilyProvider queries the Tavily Search API.
type TavilyProvider struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewTavilyProvider(apiKey, baseURL string, timeout time.Duration) *TavilyProvider {
	if baseURL == "" {
		baseURL = "https://api.tavily.com"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TavilyProvider{
		client:  &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth,omitempty"`
	IncludeAnswer bool   `json:"include_answer"`
	IncludeImages bool   `json:"include_images"`
	MaxResults    int    `json:"max_results"`
}

type tavilyResponse struct {
	Answer  string         `json:"answer"`
	Query   string         `json:"query"`
	Results []tavilyResult `json:"results"`
}

type tavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

func (p *TavilyProvider) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("web search api key not configured")
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	body, err := json.Marshal(tavilyRequest{
		APIKey:        p.apiKey,
		Query:         query,
		SearchDepth:   "basic",
		IncludeAnswer: false,
		IncludeImages: false,
		MaxResults:    maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]Result, len(parsed.Results))
	for i, r := range parsed.Results {
		results[i] = Result{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,
		}
	}
	return results, nil
}
