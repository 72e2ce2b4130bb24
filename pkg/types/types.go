package types

// ProviderKind selects the transport adapter used to reach a model backend.
type ProviderKind string

const (
	// ProviderOpenAI talks to any OpenAI-compatible /chat/completions endpoint.
	ProviderOpenAI ProviderKind = "openai"
	// ProviderOllama talks to a local or remote Ollama server.
	ProviderOllama ProviderKind = "ollama"
	// ProviderLocal runs inference in-process via llama.cpp (build tag 'llama').
	ProviderLocal ProviderKind = "local"
)

// Profile describes one configured model backend. The engine treats it as an
// opaque identity: completions are generated with whatever profile is active,
// and the cached model is invalidated whenever the active profile changes.
type Profile struct {
	// Stable identifier for the profile.
	// example: 4f6c0b0e-9c2a-4b4e-8a9d-1c2d3e4f5a6b
	ID string `json:"id" yaml:"id" toml:"id"`
	// Human-friendly name.
	// example: local-qwen
	Name string `json:"name" yaml:"name" toml:"name"`
	// Provider kind: openai, ollama or local.
	// example: ollama
	Kind ProviderKind `json:"kind" yaml:"kind" toml:"kind"`
	// Base URL of the backend (ignored by the local provider).
	// example: http://localhost:11434
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`
	// Model identifier or on-disk model path for the local provider.
	// example: qwen2.5-coder:1.5b
	Model string `json:"model" yaml:"model" toml:"model"`
	// Name of the environment variable holding the API credential.
	// Resolution happens at request time; the value is never persisted.
	// example: OPENAI_API_KEY
	CredentialEnv string `json:"credential_env,omitempty" yaml:"credential_env,omitempty" toml:"credential_env,omitempty"`
}
