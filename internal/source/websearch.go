package source

import (
	"context"
	"strings"

	"github.com/vantage-bio/prospect-cli/internal/model"
	"github.com/vantage-bio/prospect-cli/pkg/jina"
)

// snippetMaxLen caps fallback page content so one verbose result cannot
// crowd an evidence prompt.
const snippetMaxLen = 500

// WebSearchAdapter exposes a Jina search client as the pipeline's
// snippet source.
type WebSearchAdapter struct {
	client jina.Client
}

// NewWebSearchAdapter creates a WebSearchAdapter from a Jina client.
func NewWebSearchAdapter(client jina.Client) *WebSearchAdapter {
	return &WebSearchAdapter{client: client}
}

// Search runs a web search and returns at most maxResults non-empty
// snippets.
func (a *WebSearchAdapter) Search(ctx context.Context, query string, maxResults int) ([]model.Snippet, error) {
	resp, err := a.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	snippets := make([]model.Snippet, 0, len(resp.Data))
	for _, r := range resp.Data {
		body := snippetBody(r)
		if body == "" {
			continue
		}
		snippets = append(snippets, model.Snippet{Body: body})
		if len(snippets) == maxResults {
			break
		}
	}
	return snippets, nil
}

// snippetBody prefers the result description and falls back to
// truncated page content.
func snippetBody(r jina.SearchResult) string {
	if desc := strings.TrimSpace(r.Description); desc != "" {
		return desc
	}
	content := strings.TrimSpace(r.Content)
	if len(content) > snippetMaxLen {
		content = content[:snippetMaxLen]
	}
	return content
}
