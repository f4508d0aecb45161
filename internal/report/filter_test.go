package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vantage-bio/prospect-cli/internal/model"
)

func scoredLead(name, title, company, location string, score int) model.ScoredLead {
	return model.ScoredLead{
		EnrichedLead: model.EnrichedLead{
			RawLead: model.RawLead{
				Name:     name,
				Title:    title,
				Company:  company,
				Location: location,
				Source:   model.SourceCitation,
			},
			ContactEmail: "x@y.com",
			ProfileURL:   "https://linkedin.com/in/x",
		},
		Score: score,
	}
}

func sampleLeads() []model.ScoredLead {
	return []model.ScoredLead{
		scoredLead("Jane Doe", "Director of Toxicology", "Acme Inc", "Boston, MA", 95),
		scoredLead("John Smith", model.TitleResearcher, "Hepatica Bio", "Basel", 55),
		scoredLead("Ann Lee", model.TitleSpeaker, model.Unknown, model.Unknown, 15),
	}
}

func TestFilter_NoCriteriaKeepsAll(t *testing.T) {
	leads := sampleLeads()
	assert.Equal(t, leads, Filter(leads, FilterOptions{}))
}

func TestFilter_MinScoreIsInclusive(t *testing.T) {
	got := Filter(sampleLeads(), FilterOptions{MinScore: 55})
	assert.Len(t, got, 2)
	assert.Equal(t, "Jane Doe", got[0].Name)
	assert.Equal(t, "John Smith", got[1].Name)
}

func TestFilter_LocationSubstringCaseInsensitive(t *testing.T) {
	got := Filter(sampleLeads(), FilterOptions{Location: "boston"})
	assert.Len(t, got, 1)
	assert.Equal(t, "Jane Doe", got[0].Name)
}

func TestFilter_CompanySubstringCaseInsensitive(t *testing.T) {
	got := Filter(sampleLeads(), FilterOptions{Company: "HEPATICA"})
	assert.Len(t, got, 1)
	assert.Equal(t, "John Smith", got[0].Name)
}

func TestFilter_CombinedCriteria(t *testing.T) {
	got := Filter(sampleLeads(), FilterOptions{MinScore: 50, Company: "acme"})
	assert.Len(t, got, 1)
	assert.Equal(t, "Jane Doe", got[0].Name)
}

func TestFilter_NoMatches(t *testing.T) {
	got := Filter(sampleLeads(), FilterOptions{Location: "tokyo"})
	assert.Empty(t, got)
}
