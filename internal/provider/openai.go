package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"completiond/pkg/types"
)

// openAIModel talks to any OpenAI-compatible /chat/completions endpoint.
// BaseURL is expected to include the version root, e.g.
// https://api.openai.com/v1 or http://localhost:8000/v1.
type openAIModel struct {
	client      *http.Client
	url         string
	model       string
	apiKey      string
	maxTokens   int
	temperature float64
}

func newOpenAIModel(f *Factory, p types.Profile) (*openAIModel, error) {
	base := strings.TrimRight(p.BaseURL, "/")
	if base == "" {
		return nil, errors.New("profile base_url is required for the openai provider")
	}
	var key string
	if p.CredentialEnv != "" {
		key = os.Getenv(p.CredentialEnv)
		if key == "" {
			return nil, fmt.Errorf("credential env %s is empty", p.CredentialEnv)
		}
	}
	return &openAIModel{
		client:      f.client,
		url:         base + "/chat/completions",
		model:       p.Model,
		apiKey:      key,
		maxTokens:   f.cfg.MaxTokens,
		temperature: f.cfg.Temperature,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (m *openAIModel) Generate(ctx context.Context, system, user string) (types.GenerateResult, error) {
	body, err := json.Marshal(chatRequest{
		Model: m.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   m.maxTokens,
		Temperature: m.temperature,
	})
	if err != nil {
		return types.GenerateResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return types.GenerateResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		// surface the cancellation, not the url.Error wrapper
		if ctx.Err() != nil {
			return types.GenerateResult{}, ctx.Err()
		}
		return types.GenerateResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return types.GenerateResult{}, ErrTransport(resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return types.GenerateResult{}, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return types.GenerateResult{}, errors.New("backend returned no choices")
	}
	return types.GenerateResult{
		Text: out.Choices[0].Message.Content,
		Usage: types.TokenUsage{
			PromptTokens:     out.Usage.PromptTokens,
			CompletionTokens: out.Usage.CompletionTokens,
			TotalTokens:      out.Usage.TotalTokens,
		},
	}, nil
}
