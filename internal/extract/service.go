// Package extract provides the two extraction paths used by the pipeline:
// a language-model service with a one-way quota gate, and deterministic
// heuristics that stand in whenever the model path is unavailable.
package extract

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vantage-bio/prospect-cli/pkg/anthropic"
)

// ErrUnavailable is returned by Extract whenever the model path cannot be
// used: no usable model, quota exhausted, or the call itself failed.
// Callers fall back to the heuristic path; this error never carries
// transport details.
var ErrUnavailable = eris.New("extract: service unavailable")

const systemPrompt = "You are a research assistant for a biotech business development team. " +
	"Answer with exactly the format requested and nothing else."

// ServiceConfig configures the extraction service.
type ServiceConfig struct {
	// PreferredModels is tried in order against the account's model list.
	PreferredModels []string
	MaxTokens       int64
}

// Service is the language-model extraction path. It selects a model once at
// construction and short-circuits to ErrUnavailable after the quota gate
// trips.
type Service struct {
	client    anthropic.Client
	gate      *Gate
	model     string
	maxTokens int64
}

// NewService probes the available models and returns a service bound to the
// first preferred model found (falling back to any available model). If the
// probe fails or no model is available, the service is permanently
// unavailable rather than an error: degraded extraction is an expected
// operating mode, not a startup failure.
func NewService(ctx context.Context, client anthropic.Client, gate *Gate, cfg ServiceConfig) *Service {
	if gate == nil {
		gate = NewGate()
	}

	s := &Service{
		client:    client,
		gate:      gate,
		maxTokens: cfg.MaxTokens,
	}
	if s.maxTokens <= 0 {
		s.maxTokens = 1024
	}

	models, err := client.ListModels(ctx)
	if err != nil {
		zap.L().Warn("extract: model probe failed, model path disabled", zap.Error(err))
		return s
	}
	if len(models) == 0 {
		zap.L().Warn("extract: no models available, model path disabled")
		return s
	}

	s.model = pickModel(cfg.PreferredModels, models)
	zap.L().Info("extract: model selected", zap.String("model", s.model))
	return s
}

// Gate exposes the quota gate, primarily so the pipeline can report
// exhaustion in its run summary.
func (s *Service) Gate() *Gate {
	return s.gate
}

// Extract sends a prompt to the selected model and returns the response
// text with any markdown code fence stripped. Callers parse the text
// themselves. All failures surface as ErrUnavailable.
func (s *Service) Extract(ctx context.Context, prompt string) (string, error) {
	if s.model == "" {
		return "", ErrUnavailable
	}
	if s.gate.Exhausted() {
		return "", ErrUnavailable
	}

	resp, err := s.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		System:    systemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		if anthropic.IsQuotaExhausted(err) {
			s.gate.Trip()
			zap.L().Warn("extract: quota exhausted, model path disabled for the rest of the run", zap.Error(err))
		} else {
			zap.L().Warn("extract: model call failed", zap.Error(err))
		}
		return "", ErrUnavailable
	}

	resp.Usage.LogCost(s.model, "extract")

	return stripFence(joinContent(resp)), nil
}

// pickModel returns the first preferred model present in the available set,
// else the first available model.
func pickModel(preferred []string, available []anthropic.ModelInfo) string {
	ids := make(map[string]struct{}, len(available))
	for _, m := range available {
		ids[m.ID] = struct{}{}
	}
	for _, want := range preferred {
		if _, ok := ids[want]; ok {
			return want
		}
	}
	return available[0].ID
}

// joinContent concatenates the text blocks of a response.
func joinContent(resp *anthropic.MessageResponse) string {
	var parts []string
	for _, block := range resp.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// stripFence removes a wrapping markdown code fence, leaving inner text
// untouched.
func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
