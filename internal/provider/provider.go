// Package provider turns a profile into a callable text-generation model.
// One adapter per provider kind: an OpenAI-compatible HTTP backend, an
// Ollama server via the official client, and in-process llama.cpp behind
// the 'llama' build tag. All adapters satisfy engine.Model and must return
// promptly when the context is cancelled.
package provider

import (
	"fmt"
	"net/http"
	"time"

	"completiond/internal/engine"
	"completiond/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultTimeout     = 30 * time.Second
	defaultMaxTokens   = 256
	defaultTemperature = 0.2
)

// Config encapsulates generation tunables shared by all adapters.
type Config struct {
	// Hard cap on one backend call, independent of request cancellation.
	Timeout time.Duration
	// Maximum number of new tokens per completion.
	MaxTokens int
	// Sampling temperature; completions want low variance.
	Temperature float64
	// Wrap built models in a circuit breaker.
	Breaker bool
	// llama.cpp context size and thread count (local provider only).
	LlamaCtx     int
	LlamaThreads int
}

// Factory builds models per profile kind. It satisfies engine.ModelFactory.
type Factory struct {
	cfg    Config
	client *http.Client
}

// New constructs a Factory, applying package defaults for unset fields.
func New(cfg Config) *Factory {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	return &Factory{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Build constructs a model for the profile's kind.
func (f *Factory) Build(p types.Profile) (engine.Model, error) {
	var (
		m   engine.Model
		err error
	)
	switch p.Kind {
	case types.ProviderOpenAI:
		m, err = newOpenAIModel(f, p)
	case types.ProviderOllama:
		m, err = newOllamaModel(f, p)
	case types.ProviderLocal:
		m, err = newLocalModel(f, p)
	default:
		return nil, fmt.Errorf("unsupported provider kind: %s", p.Kind)
	}
	if err != nil {
		return nil, err
	}
	if f.cfg.Breaker {
		m = withBreaker(p.Name, m)
	}
	return m, nil
}
