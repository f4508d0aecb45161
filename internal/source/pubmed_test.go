package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vantage-bio/prospect-cli/internal/model"
	"github.com/vantage-bio/prospect-cli/pkg/entrez"
)

func TestPubMedAdapter_Search(t *testing.T) {
	ctx := context.Background()
	client := &mockEntrezClient{}
	client.On("Search", ctx, "hepatic spheroids", 30).
		Return([]string{"101", "102"}, nil)

	adapter := NewPubMedAdapter(client)
	ids, err := adapter.Search(ctx, "hepatic spheroids", 30)

	assert.NoError(t, err)
	assert.Equal(t, []string{"101", "102"}, ids)
	client.AssertExpectations(t)
}

func TestPubMedAdapter_FetchMapsAuthors(t *testing.T) {
	ctx := context.Background()
	client := &mockEntrezClient{}
	client.On("Fetch", ctx, "101").
		Return(&entrez.Article{
			PMID:  "101",
			Title: "3D liver models in safety assessment",
			Authors: []entrez.ArticleAuthor{
				{Fore: "Jane", Last: "Doe", Affiliation: "Acme Inc, Boston, MA."},
				{Fore: "John", Last: "Smith"},
			},
		}, nil)

	adapter := NewPubMedAdapter(client)
	citation, err := adapter.Fetch(ctx, "101")

	assert.NoError(t, err)
	assert.Equal(t, "3D liver models in safety assessment", citation.Title)
	assert.Equal(t, []model.Author{
		{Given: "Jane", Family: "Doe", Affiliation: "Acme Inc, Boston, MA."},
		{Given: "John", Family: "Smith"},
	}, citation.Authors)
}

func TestPubMedAdapter_FetchError(t *testing.T) {
	ctx := context.Background()
	client := &mockEntrezClient{}
	client.On("Fetch", ctx, "101").Return(nil, assert.AnError)

	adapter := NewPubMedAdapter(client)
	citation, err := adapter.Fetch(ctx, "101")

	assert.Error(t, err)
	assert.Nil(t, citation)
}
