package main

import (
	"context"

	"github.com/vantage-bio/prospect-cli/internal/config"
	"github.com/vantage-bio/prospect-cli/internal/extract"
	"github.com/vantage-bio/prospect-cli/internal/pipeline"
	"github.com/vantage-bio/prospect-cli/internal/source"
	anthropicpkg "github.com/vantage-bio/prospect-cli/pkg/anthropic"
	"github.com/vantage-bio/prospect-cli/pkg/entrez"
	"github.com/vantage-bio/prospect-cli/pkg/jina"
)

// pipelineEnv holds the shared clients behind pipeline construction.
// serve builds one env at startup and a fresh pipeline per request so
// overridden options never re-probe model discovery.
type pipelineEnv struct {
	citations pipeline.CitationSource
	snippets  pipeline.SnippetSource
	extractor *extract.Service
	rules     *extract.Rules
}

// initPipeline wires API clients, source adapters, and the extraction
// service from the loaded config. The context is used for the model
// discovery probe at startup.
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	var rules *extract.Rules
	if cfg.Scoring.RulesPath != "" {
		var err error
		rules, err = extract.LoadRules(cfg.Scoring.RulesPath)
		if err != nil {
			return nil, err
		}
	}

	anthropicClient := anthropicpkg.NewClient(cfg.Anthropic.Key)
	svc := extract.NewService(ctx, anthropicClient, nil, extract.ServiceConfig{
		PreferredModels: cfg.Anthropic.PreferredModels,
		MaxTokens:       cfg.Anthropic.MaxTokens,
	})

	jinaClient := jina.NewClient(cfg.Jina.Key,
		jina.WithSearchBaseURL(cfg.Jina.SearchBaseURL))

	entrezOpts := []entrez.Option{entrez.WithBaseURL(cfg.Entrez.BaseURL)}
	if cfg.Entrez.APIKey != "" {
		entrezOpts = append(entrezOpts, entrez.WithAPIKey(cfg.Entrez.APIKey))
	}
	if cfg.Entrez.Tool != "" {
		entrezOpts = append(entrezOpts, entrez.WithTool(cfg.Entrez.Tool))
	}
	entrezClient := entrez.NewClient(cfg.Entrez.Email, entrezOpts...)

	return &pipelineEnv{
		citations: source.NewPubMedAdapter(entrezClient),
		snippets:  source.NewWebSearchAdapter(jinaClient),
		extractor: svc,
		rules:     rules,
	}, nil
}

func (e *pipelineEnv) pipeline(opts pipeline.Options) *pipeline.Pipeline {
	return pipeline.New(e.citations, e.snippets, e.extractor, e.rules, e.extractor.Gate(), opts)
}

// optionsFromConfig maps the pipeline section of the config onto run options.
func optionsFromConfig(base config.PipelineConfig, scoringMode string) pipeline.Options {
	return pipeline.Options{
		TopicKeywords:      base.TopicKeywords,
		ConferenceTopic:    base.ConferenceTopic,
		MaxCitationResults: base.MaxCitationResults,
		BatchLimit:         base.BatchLimit,
		DateFrom:           base.DateFrom,
		DateTo:             base.DateTo,
		ScoringMode:        pipeline.ScoringMode(scoringMode),
	}
}
