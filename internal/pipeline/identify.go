package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vantage-bio/prospect-cli/internal/extract"
	"github.com/vantage-bio/prospect-cli/internal/model"
)

const (
	// conferenceSnippetLimit caps the web evidence fetched for the
	// conference speaker search.
	conferenceSnippetLimit = 10
	// conferenceNameCap caps the number of speaker names kept per run,
	// whichever extraction path produced them.
	conferenceNameCap = 20
)

const conferenceNamesPrompt = `You are extracting people's names from web search results about a scientific conference.

Search results:
%s

List the full names of individual speakers or presenters mentioned above.
Return a valid JSON array of strings, at most %d entries, for example:
["Jane Doe", "John Smith"]

Only include real person names. Do not include company or session names.`

// runIdentification gathers raw leads from both signal sources. The
// citation arm runs first so its leads keep their position ahead of
// conference speakers in the final report when scores tie.
func (p *Pipeline) runIdentification(ctx context.Context) []model.RawLead {
	leads := p.identifyFromCitations(ctx)
	return append(leads, p.identifyFromConference(ctx)...)
}

func (p *Pipeline) identifyFromCitations(ctx context.Context) []model.RawLead {
	query := buildCitationQuery(p.opts.TopicKeywords, p.opts.DateFrom, p.opts.DateTo)
	ids, err := p.citations.Search(ctx, query, p.opts.MaxCitationResults)
	if err != nil {
		zap.L().Warn("pipeline: citation search failed, skipping citation leads", zap.Error(err))
		return nil
	}

	var leads []model.RawLead
	for _, id := range ids {
		citation, err := p.citations.Fetch(ctx, id)
		if err != nil {
			zap.L().Warn("pipeline: citation fetch failed, skipping record",
				zap.String("id", id), zap.Error(err))
			continue
		}
		for _, author := range citation.Authors {
			if author.Given == "" || author.Family == "" {
				continue
			}
			leads = append(leads, authorLead(author))
		}
	}
	return leads
}

// authorLead maps a citation author to a raw lead. The first
// comma-separated segment of the affiliation is taken as the employer
// and the last two as the location; anything missing stays Unknown.
func authorLead(a model.Author) model.RawLead {
	lead := model.RawLead{
		Name:                 a.Given + " " + a.Family,
		Title:                model.TitleResearcher,
		Company:              model.Unknown,
		Location:             model.Unknown,
		Source:               model.SourceCitation,
		HasRecentPublication: true,
	}
	parts := splitAffiliation(a.Affiliation)
	if len(parts) > 0 && parts[0] != "" {
		lead.Company = parts[0]
	}
	if len(parts) >= 2 {
		lead.Location = parts[len(parts)-2] + ", " + parts[len(parts)-1]
	}
	return lead
}

func splitAffiliation(affiliation string) []string {
	if strings.TrimSpace(affiliation) == "" {
		return nil
	}
	raw := strings.Split(affiliation, ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		parts = append(parts, strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p), ".")))
	}
	return parts
}

func buildCitationQuery(keywords []string, from, to int) string {
	quoted := make([]string, len(keywords))
	for i, kw := range keywords {
		quoted[i] = fmt.Sprintf("%q", kw)
	}
	return fmt.Sprintf("(%s) AND (%d[DP] : %d[DP])", strings.Join(quoted, " OR "), from, to)
}

func (p *Pipeline) identifyFromConference(ctx context.Context) []model.RawLead {
	snippets, err := p.snippets.Search(ctx, p.opts.ConferenceTopic, conferenceSnippetLimit)
	if err != nil {
		zap.L().Warn("pipeline: conference search failed, skipping conference leads", zap.Error(err))
		return nil
	}
	if len(snippets) == 0 {
		return nil
	}

	names := p.conferenceNames(ctx, snippets)
	leads := make([]model.RawLead, 0, len(names))
	for _, name := range names {
		leads = append(leads, model.RawLead{
			Name:     name,
			Title:    model.TitleSpeaker,
			Company:  model.Unknown,
			Location: model.Unknown,
			Source:   model.SourceConference,
		})
	}
	return leads
}

// conferenceNames asks the model for speaker names and falls back to
// pattern-based extraction when the model path is unavailable or its
// output does not parse.
func (p *Pipeline) conferenceNames(ctx context.Context, snippets []model.Snippet) []string {
	prompt := fmt.Sprintf(conferenceNamesPrompt, joinSnippets(snippets), conferenceNameCap)
	text, err := p.extractor.Extract(ctx, prompt)
	if err == nil {
		names, parseErr := extract.ParseNameList(text)
		if parseErr == nil && len(names) > 0 {
			if len(names) > conferenceNameCap {
				names = names[:conferenceNameCap]
			}
			return names
		}
		if parseErr != nil {
			zap.L().Warn("pipeline: speaker name parse failed, using pattern extraction",
				zap.Error(parseErr))
		}
	}
	return extract.ExtractNames(snippets, conferenceNameCap)
}
