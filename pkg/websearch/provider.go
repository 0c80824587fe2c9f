package websearch

import "context"

// Result is one web search hit.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Provider searches the web for real-time information the knowledge
// base cannot cover.
type Provider interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}
