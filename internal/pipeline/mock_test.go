package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vantage-bio/prospect-cli/internal/model"
)

// --- CitationSource Mock ---

type mockCitationSource struct {
	mock.Mock
}

func (m *mockCitationSource) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	args := m.Called(ctx, query, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockCitationSource) Fetch(ctx context.Context, id string) (*model.Citation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Citation), args.Error(1)
}

// --- SnippetSource Mock ---

type mockSnippetSource struct {
	mock.Mock
}

func (m *mockSnippetSource) Search(ctx context.Context, query string, maxResults int) ([]model.Snippet, error) {
	args := m.Called(ctx, query, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Snippet), args.Error(1)
}

// --- Extractor Mock ---

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// Interface compliance checks.
var (
	_ CitationSource = (*mockCitationSource)(nil)
	_ SnippetSource  = (*mockSnippetSource)(nil)
	_ Extractor      = (*mockExtractor)(nil)
)

func snippetsOf(bodies ...string) []model.Snippet {
	out := make([]model.Snippet, len(bodies))
	for i, b := range bodies {
		out[i] = model.Snippet{Body: b}
	}
	return out
}
