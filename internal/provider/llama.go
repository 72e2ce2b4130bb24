//go:build llama

package provider

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"

	"completiond/pkg/types"
)

// localModel runs llama.cpp in-process. The profile's Model field is the
// path to a GGUF file on disk.
type localModel struct {
	model       *llama.LLama
	threads     int
	maxTokens   int
	temperature float64
}

func newLocalModel(f *Factory, p types.Profile) (*localModel, error) {
	if strings.TrimSpace(p.Model) == "" {
		return nil, errors.New("profile model path is empty")
	}
	m, err := llama.New(p.Model, llama.SetContext(max(512, f.cfg.LlamaCtx)))
	if err != nil {
		return nil, err
	}
	return &localModel{
		model:       m,
		threads:     max(1, f.cfg.LlamaThreads),
		maxTokens:   f.cfg.MaxTokens,
		temperature: f.cfg.Temperature,
	}, nil
}

func (m *localModel) Generate(ctx context.Context, system, user string) (types.GenerateResult, error) {
	// Token callback bridges cancellation into llama.cpp's prediction loop.
	m.model.SetTokenCallback(func(tok string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	})
	text, err := m.model.Predict(system+"\n\n"+user,
		llama.SetTokens(max(1, m.maxTokens)),
		llama.SetThreads(m.threads),
		llama.SetTemperature(float32(m.temperature)),
	)
	if err != nil {
		if ctx.Err() != nil {
			return types.GenerateResult{}, ctx.Err()
		}
		return types.GenerateResult{}, err
	}
	if ctx.Err() != nil {
		// Callback stopped the loop; Predict returns partial text without error.
		return types.GenerateResult{}, ctx.Err()
	}
	// Token counts are not exposed without deeper hooks.
	return types.GenerateResult{Text: text}, nil
}
