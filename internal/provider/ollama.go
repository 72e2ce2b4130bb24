package provider

import (
	"context"
	"net/url"

	ollama "github.com/ollama/ollama/api"

	"completiond/pkg/types"
)

// ollamaModel talks to an Ollama server through the official client.
type ollamaModel struct {
	client      *ollama.Client
	model       string
	maxTokens   int
	temperature float64
}

func newOllamaModel(f *Factory, p types.Profile) (*ollamaModel, error) {
	base := p.BaseURL
	if base == "" {
		base = "http://localhost:11434"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	return &ollamaModel{
		client:      ollama.NewClient(u, f.client),
		model:       p.Model,
		maxTokens:   f.cfg.MaxTokens,
		temperature: f.cfg.Temperature,
	}, nil
}

func (m *ollamaModel) Generate(ctx context.Context, system, user string) (types.GenerateResult, error) {
	stream := false
	req := &ollama.GenerateRequest{
		Model:  m.model,
		Prompt: user,
		System: system,
		Stream: &stream,
		Options: map[string]any{
			"temperature": m.temperature,
			"num_predict": m.maxTokens,
		},
	}
	var out types.GenerateResult
	err := m.client.Generate(ctx, req, func(r ollama.GenerateResponse) error {
		out.Text += r.Response
		if r.Done {
			out.Usage = types.TokenUsage{
				PromptTokens:     r.PromptEvalCount,
				CompletionTokens: r.EvalCount,
				TotalTokens:      r.PromptEvalCount + r.EvalCount,
			}
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return types.GenerateResult{}, ctx.Err()
		}
		return types.GenerateResult{}, err
	}
	return out, nil
}
