// Package pipeline runs the three-stage lead generation flow:
// identification from citation and conference signals, enrichment with
// contact evidence, and scoring against heuristic rules. Stages run
// sequentially and each stage consumes the full output of the previous
// one, so a lead present after identification is present, in some form,
// in the final report.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vantage-bio/prospect-cli/internal/extract"
	"github.com/vantage-bio/prospect-cli/internal/model"
)

// CitationSource answers bibliographic queries with opaque record IDs
// and resolves each ID to a full citation.
type CitationSource interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
	Fetch(ctx context.Context, id string) (*model.Citation, error)
}

// SnippetSource answers free-text queries with short evidence snippets.
type SnippetSource interface {
	Search(ctx context.Context, query string, maxResults int) ([]model.Snippet, error)
}

// Extractor turns a prompt into model text. Implementations return
// extract.ErrUnavailable instead of surfacing transport detail, so
// callers only have to branch on one error.
type Extractor interface {
	Extract(ctx context.Context, prompt string) (string, error)
}

// ScoringMode selects how the model-derived score combines with the
// rule-based floor.
type ScoringMode string

const (
	// ScoringModeAdditive sums the model score and the rule score,
	// clamped to 100. This is the default.
	ScoringModeAdditive ScoringMode = "additive"
	// ScoringModeFallback uses the model score alone and falls back to
	// the rule score only when the model path fails.
	ScoringModeFallback ScoringMode = "fallback"
)

// Defaults applied by New when the corresponding option is zero.
const (
	defaultMaxCitationResults = 30
	defaultBatchLimit         = 30
	defaultDateFrom           = 2023
	defaultDateTo             = 2025
)

// Options tune a pipeline run. Zero values fall back to the defaults
// above; TopicKeywords and ConferenceTopic have no defaults here and
// are expected from config.
type Options struct {
	TopicKeywords      []string
	ConferenceTopic    string
	MaxCitationResults int
	BatchLimit         int
	DateFrom           int
	DateTo             int
	ScoringMode        ScoringMode
}

// Pipeline wires the sources and the extractor together. Construct
// with New; the zero value is not usable.
type Pipeline struct {
	citations CitationSource
	snippets  SnippetSource
	extractor Extractor
	rules     *extract.Rules
	gate      *extract.Gate
	opts      Options
}

// New builds a Pipeline. rules may be nil, in which case the built-in
// defaults apply. gate may be nil when the caller does not need quota
// state reported on the run summary.
func New(citations CitationSource, snippets SnippetSource, extractor Extractor, rules *extract.Rules, gate *extract.Gate, opts Options) *Pipeline {
	if rules == nil {
		rules = extract.DefaultRules()
	}
	if opts.MaxCitationResults <= 0 {
		opts.MaxCitationResults = defaultMaxCitationResults
	}
	if opts.BatchLimit <= 0 {
		opts.BatchLimit = defaultBatchLimit
	}
	if opts.DateFrom <= 0 {
		opts.DateFrom = defaultDateFrom
	}
	if opts.DateTo <= 0 {
		opts.DateTo = defaultDateTo
	}
	if opts.ScoringMode == "" {
		opts.ScoringMode = ScoringModeAdditive
	}
	return &Pipeline{
		citations: citations,
		snippets:  snippets,
		extractor: extractor,
		rules:     rules,
		gate:      gate,
		opts:      opts,
	}
}

// Run executes identification, enrichment, and scoring in order and
// returns a summary with the ranked leads. Degraded sources surface as
// warnings and thinner output, not errors; Run fails only when the
// context is cancelled between stages.
func (p *Pipeline) Run(ctx context.Context) (*model.RunSummary, error) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))
	started := time.Now()

	log.Info("pipeline: starting run",
		zap.Strings("topic_keywords", p.opts.TopicKeywords),
		zap.String("conference_topic", p.opts.ConferenceTopic),
		zap.String("scoring_mode", string(p.opts.ScoringMode)))

	stageStart := time.Now()
	raw := p.runIdentification(ctx)
	log.Info("pipeline: identification complete",
		zap.Int("leads", len(raw)),
		zap.Duration("elapsed", time.Since(stageStart)))
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: run cancelled")
	}

	stageStart = time.Now()
	enriched := p.runEnrichment(ctx, raw)
	log.Info("pipeline: enrichment complete",
		zap.Int("leads", len(enriched)),
		zap.Duration("elapsed", time.Since(stageStart)))
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: run cancelled")
	}

	stageStart = time.Now()
	scored := p.runScoring(ctx, enriched)
	log.Info("pipeline: scoring complete",
		zap.Int("leads", len(scored)),
		zap.Duration("elapsed", time.Since(stageStart)))

	summary := &model.RunSummary{
		RunID:      runID,
		StartedAt:  started,
		DurationMS: time.Since(started).Milliseconds(),
		Counts: model.StageCounts{
			Identified: len(raw),
			Enriched:   len(enriched),
			Scored:     len(scored),
		},
		QuotaExhausted: p.gate != nil && p.gate.Exhausted(),
		Leads:          scored,
	}
	log.Info("pipeline: run complete",
		zap.Int("leads", len(summary.Leads)),
		zap.Bool("quota_exhausted", summary.QuotaExhausted),
		zap.Int64("duration_ms", summary.DurationMS))
	return summary, nil
}

// joinSnippets concatenates snippet bodies into one evidence block for
// prompting.
func joinSnippets(snippets []model.Snippet) string {
	var b strings.Builder
	for i, s := range snippets {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Body)
	}
	return b.String()
}
