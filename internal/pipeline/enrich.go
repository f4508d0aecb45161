package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vantage-bio/prospect-cli/internal/extract"
	"github.com/vantage-bio/prospect-cli/internal/model"
)

// Per-lead evidence query limits. Three narrow queries beat one broad
// one here: snippet APIs rank aggressively and the later results of a
// broad query are mostly noise.
const (
	profileQueryLimit  = 5
	emailQueryLimit    = 5
	locationQueryLimit = 3
)

const contactPrompt = `You are extracting contact details for %s, who works at %s.

Search results:
%s

Return a valid JSON object with these fields:
- linkedin: string (the person's LinkedIn profile URL, or null)
- email: string (the person's work email address, or null)
- location: string (city and region of the employer's headquarters, or null)

Use null for any field the search results do not support. Do not guess.`

// runEnrichment produces an enriched record for every raw lead, in
// input order. Leads beyond the batch limit skip the external lookups
// and carry synthesized contact details only.
func (p *Pipeline) runEnrichment(ctx context.Context, leads []model.RawLead) []model.EnrichedLead {
	enriched := make([]model.EnrichedLead, 0, len(leads))
	for i, lead := range leads {
		if i >= p.opts.BatchLimit {
			enriched = append(enriched, synthesizeContact(lead))
			continue
		}
		enriched = append(enriched, p.enrichLead(ctx, lead))
	}
	if len(leads) > p.opts.BatchLimit {
		zap.L().Info("pipeline: batch limit reached, remaining leads enriched without lookups",
			zap.Int("batch_limit", p.opts.BatchLimit),
			zap.Int("skipped_lookups", len(leads)-p.opts.BatchLimit))
	}
	return enriched
}

func (p *Pipeline) enrichLead(ctx context.Context, lead model.RawLead) model.EnrichedLead {
	queries := []struct {
		query string
		limit int
	}{
		{fmt.Sprintf("%q %q linkedin", lead.Name, lead.Company), profileQueryLimit},
		{fmt.Sprintf("%q %q email", lead.Name, lead.Company), emailQueryLimit},
		{fmt.Sprintf("%q headquarters location", lead.Company), locationQueryLimit},
	}

	var evidence []model.Snippet
	for _, q := range queries {
		snippets, err := p.snippets.Search(ctx, q.query, q.limit)
		if err != nil {
			zap.L().Warn("pipeline: evidence search failed",
				zap.String("lead", lead.Name), zap.Error(err))
			continue
		}
		evidence = append(evidence, snippets...)
	}

	enriched := synthesizeContact(lead)
	contact := p.extractContact(ctx, lead, evidence)
	if contact == nil {
		return enriched
	}
	if contact.LinkedIn != nil && *contact.LinkedIn != "" {
		enriched.ProfileURL = *contact.LinkedIn
	}
	if contact.Email != nil && *contact.Email != "" {
		enriched.ContactEmail = *contact.Email
	}
	if contact.Location != nil && *contact.Location != "" {
		enriched.Location = *contact.Location
	}
	return enriched
}

// extractContact runs the model over the gathered evidence. A nil
// return means the model path gave nothing usable and synthesized
// values stand.
func (p *Pipeline) extractContact(ctx context.Context, lead model.RawLead, evidence []model.Snippet) *extract.Contact {
	prompt := fmt.Sprintf(contactPrompt, lead.Name, lead.Company, joinSnippets(evidence))
	text, err := p.extractor.Extract(ctx, prompt)
	if err != nil {
		return nil
	}
	contact, err := extract.ParseContact(text)
	if err != nil {
		zap.L().Warn("pipeline: contact parse failed, keeping synthesized details",
			zap.String("lead", lead.Name), zap.Error(err))
		return nil
	}
	return contact
}

// synthesizeContact fills the contact fields from the lead's own name
// and employer so every record leaves enrichment complete.
func synthesizeContact(lead model.RawLead) model.EnrichedLead {
	return model.EnrichedLead{
		RawLead:      lead,
		ContactEmail: synthesizeEmail(lead.Name, lead.Company),
		ProfileURL:   synthesizeProfileURL(lead.Name),
	}
}

func synthesizeProfileURL(name string) string {
	slug := strings.ReplaceAll(strings.ToLower(foldASCII(name)), " ", "")
	return "https://linkedin.com/in/" + slug
}

func synthesizeEmail(name, company string) string {
	tokens := strings.Fields(strings.ToLower(foldASCII(name)))
	var local string
	switch len(tokens) {
	case 0:
		local = "contact"
	case 1:
		local = tokens[0]
	default:
		local = tokens[0] + "." + tokens[len(tokens)-1]
	}
	return local + "@" + domainLabel(company) + ".com"
}

// domainLabel reduces an employer name to a bare DNS label:
// fold diacritics, lowercase, keep alphanumerics only.
func domainLabel(company string) string {
	folded := strings.ToLower(foldASCII(company))
	var b strings.Builder
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}

// foldASCII strips combining marks so accented names survive the
// lowercase-and-strip treatment applied to URLs and email addresses.
func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
