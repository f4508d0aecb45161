package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vantage-bio/prospect-cli/internal/extract"
	"github.com/vantage-bio/prospect-cli/internal/model"
)

// matchPrompt matches any Extract prompt containing substr, which is
// how the three prompt kinds are told apart on a shared mock.
func matchPrompt(substr string) any {
	return mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, substr)
	})
}

func TestNew_AppliesDefaults(t *testing.T) {
	p := New(nil, nil, nil, nil, nil, Options{})

	assert.Equal(t, defaultMaxCitationResults, p.opts.MaxCitationResults)
	assert.Equal(t, defaultBatchLimit, p.opts.BatchLimit)
	assert.Equal(t, defaultDateFrom, p.opts.DateFrom)
	assert.Equal(t, defaultDateTo, p.opts.DateTo)
	assert.Equal(t, ScoringModeAdditive, p.opts.ScoringMode)
	assert.NotNil(t, p.rules)
}

func TestRun_HealthyPath(t *testing.T) {
	ctx := context.Background()
	citations := &mockCitationSource{}
	snips := &mockSnippetSource{}
	extractor := &mockExtractor{}

	citations.On("Search", ctx, mock.AnythingOfType("string"), 30).
		Return([]string{"101"}, nil)
	citations.On("Fetch", ctx, "101").
		Return(&model.Citation{
			Title:   "Hepatic spheroids for DILI prediction",
			Authors: []model.Author{{Given: "Jane", Family: "Doe", Affiliation: "Acme Inc, Boston, MA."}},
		}, nil)

	// One stub covers conference, evidence, and funding searches.
	snips.On("Search", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("int")).
		Return(snippetsOf("conference talk by John Smith"), nil)

	extractor.On("Extract", ctx, matchPrompt("JSON array")).
		Return(`["John Smith"]`, nil)
	extractor.On("Extract", ctx, matchPrompt("contact details")).
		Return(`{"linkedin": null, "email": null, "location": null}`, nil)
	extractor.On("Extract", ctx, matchPrompt("Score this lead")).
		Return("50", nil)

	p := New(citations, snips, extractor, nil, nil, testOptions())
	summary, err := p.Run(ctx)

	assert.NoError(t, err)
	assert.NotEmpty(t, summary.RunID)
	assert.False(t, summary.QuotaExhausted)
	assert.Equal(t, model.StageCounts{Identified: 2, Enriched: 2, Scored: 2}, summary.Counts)
	assert.Len(t, summary.Leads, 2)

	// Jane Doe: 50 model + 65 rules (baseline, hub, publication) = 115 -> 100.
	// John Smith: 50 model + 15 baseline = 65.
	assert.Equal(t, "Jane Doe", summary.Leads[0].Name)
	assert.Equal(t, 100, summary.Leads[0].Score)
	assert.Equal(t, "jane.doe@acmeinc.com", summary.Leads[0].ContactEmail)
	assert.Equal(t, "https://linkedin.com/in/janedoe", summary.Leads[0].ProfileURL)
	assert.Equal(t, "John Smith", summary.Leads[1].Name)
	assert.Equal(t, 65, summary.Leads[1].Score)
}

func TestRun_ExtractionUnavailableStillCompletes(t *testing.T) {
	ctx := context.Background()
	citations := &mockCitationSource{}
	snips := &mockSnippetSource{}
	extractor := &mockExtractor{}
	gate := extract.NewGate()
	gate.Trip()

	citations.On("Search", ctx, mock.AnythingOfType("string"), 30).
		Return([]string{"101"}, nil)
	citations.On("Fetch", ctx, "101").
		Return(&model.Citation{
			Authors: []model.Author{{Given: "Jane", Family: "Doe", Affiliation: "Acme Inc, Boston, MA."}},
		}, nil)
	snips.On("Search", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("int")).
		Return(snippetsOf("conference talk by John Smith"), nil)
	extractor.On("Extract", ctx, mock.AnythingOfType("string")).
		Return("", extract.ErrUnavailable)

	p := New(citations, snips, extractor, nil, gate, testOptions())
	summary, err := p.Run(ctx)

	assert.NoError(t, err)
	assert.True(t, summary.QuotaExhausted)
	assert.Len(t, summary.Leads, 2)
	for _, lead := range summary.Leads {
		assert.NotEmpty(t, lead.ContactEmail)
		assert.NotEmpty(t, lead.ProfileURL)
		assert.NotEmpty(t, lead.Location)
		assert.GreaterOrEqual(t, lead.Score, 15)
	}
	// Rule scores only: Jane Doe 65 (baseline, hub, publication) beats
	// John Smith's baseline 15.
	assert.Equal(t, "Jane Doe", summary.Leads[0].Name)
	assert.Equal(t, 65, summary.Leads[0].Score)
	assert.Equal(t, 15, summary.Leads[1].Score)
}

func TestRun_AllSourcesFailingYieldsEmptyRun(t *testing.T) {
	ctx := context.Background()
	citations := &mockCitationSource{}
	snips := &mockSnippetSource{}
	extractor := &mockExtractor{}

	citations.On("Search", ctx, mock.AnythingOfType("string"), 30).
		Return(nil, assert.AnError)
	snips.On("Search", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("int")).
		Return(nil, assert.AnError)

	p := New(citations, snips, extractor, nil, nil, testOptions())
	summary, err := p.Run(ctx)

	assert.NoError(t, err)
	assert.Equal(t, model.StageCounts{}, summary.Counts)
	assert.Empty(t, summary.Leads)
	extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	citations := &mockCitationSource{}
	snips := &mockSnippetSource{}
	extractor := &mockExtractor{}
	citations.On("Search", mock.Anything, mock.AnythingOfType("string"), 30).
		Return(nil, ctx.Err())
	snips.On("Search", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("int")).
		Return(nil, ctx.Err())

	p := New(citations, snips, extractor, nil, nil, testOptions())
	summary, err := p.Run(ctx)

	assert.Error(t, err)
	assert.Nil(t, summary)
}
