package pipeline

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/vantage-bio/prospect-cli/internal/extract"
	"github.com/vantage-bio/prospect-cli/internal/model"
)

// fundingQueryLimit caps the funding evidence fetched per lead.
const fundingQueryLimit = 5

const scorePrompt = `You are ranking a sales lead for a company that sells preclinical toxicology models.

Lead: %s, %s at %s.

Funding and company news:
%s

Score this lead from 0 to 100 for how likely they are to buy preclinical
liver model services in the next year. Consider seniority, employer type,
and funding stage. Respond with the number only.`

// runScoring scores every enriched lead and returns them ranked best
// first. The sort is stable, so equal scores keep their pipeline order.
func (p *Pipeline) runScoring(ctx context.Context, leads []model.EnrichedLead) []model.ScoredLead {
	scored := make([]model.ScoredLead, 0, len(leads))
	for _, lead := range leads {
		scored = append(scored, p.scoreLead(ctx, lead))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func (p *Pipeline) scoreLead(ctx context.Context, lead model.EnrichedLead) model.ScoredLead {
	query := fmt.Sprintf("%q series funding OR raised OR IPO", lead.Company)
	funding, err := p.snippets.Search(ctx, query, fundingQueryLimit)
	if err != nil {
		zap.L().Warn("pipeline: funding search failed, scoring without funding evidence",
			zap.String("lead", lead.Name), zap.Error(err))
		funding = nil
	}

	ruleScore := p.rules.Score(lead.Title, lead.Location, funding, lead.HasRecentPublication)
	modelScore, ok := p.modelScore(ctx, lead, funding)

	var total int
	switch {
	case !ok:
		total = ruleScore
	case p.opts.ScoringMode == ScoringModeFallback:
		total = modelScore
	default:
		total = modelScore + ruleScore
	}
	return model.ScoredLead{EnrichedLead: lead, Score: extract.ClampScore(total)}
}

// modelScore asks the model for a numeric score. ok is false when the
// model path failed or returned no number, in which case the rule
// score stands alone.
func (p *Pipeline) modelScore(ctx context.Context, lead model.EnrichedLead, funding []model.Snippet) (int, bool) {
	prompt := fmt.Sprintf(scorePrompt, lead.Name, lead.Title, lead.Company, joinSnippets(funding))
	text, err := p.extractor.Extract(ctx, prompt)
	if err != nil {
		return 0, false
	}
	n, err := extract.ParseFirstInt(text)
	if err != nil {
		zap.L().Warn("pipeline: score parse failed, using rule score",
			zap.String("lead", lead.Name), zap.Error(err))
		return 0, false
	}
	return n, true
}
