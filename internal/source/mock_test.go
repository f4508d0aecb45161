package source

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vantage-bio/prospect-cli/internal/pipeline"
	"github.com/vantage-bio/prospect-cli/pkg/entrez"
	"github.com/vantage-bio/prospect-cli/pkg/jina"
)

// --- Entrez Mock ---

type mockEntrezClient struct {
	mock.Mock
}

func (m *mockEntrezClient) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	args := m.Called(ctx, query, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockEntrezClient) Fetch(ctx context.Context, id string) (*entrez.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entrez.Article), args.Error(1)
}

// --- Jina Mock ---

type mockJinaClient struct {
	mock.Mock
}

func (m *mockJinaClient) Search(ctx context.Context, query string, opts ...jina.SearchOption) (*jina.SearchResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jina.SearchResponse), args.Error(1)
}

// Interface compliance checks, for the mocks and the adapters both.
var (
	_ entrez.Client           = (*mockEntrezClient)(nil)
	_ jina.Client             = (*mockJinaClient)(nil)
	_ pipeline.CitationSource = (*PubMedAdapter)(nil)
	_ pipeline.SnippetSource  = (*WebSearchAdapter)(nil)
)
