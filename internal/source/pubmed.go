// Package source adapts the external API clients to the pipeline's
// source interfaces.
package source

import (
	"context"

	"github.com/vantage-bio/prospect-cli/internal/model"
	"github.com/vantage-bio/prospect-cli/pkg/entrez"
)

// PubMedAdapter exposes an Entrez client as the pipeline's citation
// source.
type PubMedAdapter struct {
	client entrez.Client
}

// NewPubMedAdapter creates a PubMedAdapter from an Entrez client.
func NewPubMedAdapter(client entrez.Client) *PubMedAdapter {
	return &PubMedAdapter{client: client}
}

// Search returns the PMIDs matching the query.
func (a *PubMedAdapter) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	return a.client.Search(ctx, query, maxResults)
}

// Fetch resolves one PMID to a citation.
func (a *PubMedAdapter) Fetch(ctx context.Context, id string) (*model.Citation, error) {
	article, err := a.client.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	citation := &model.Citation{Title: article.Title}
	for _, au := range article.Authors {
		citation.Authors = append(citation.Authors, model.Author{
			Given:       au.Fore,
			Family:      au.Last,
			Affiliation: au.Affiliation,
		})
	}
	return citation, nil
}
