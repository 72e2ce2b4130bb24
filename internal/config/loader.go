package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr         string `json:"addr" yaml:"addr" toml:"addr"`
	ProfilesPath string `json:"profiles_path" yaml:"profiles_path" toml:"profiles_path"`
	LogLevel     string `json:"log_level" yaml:"log_level" toml:"log_level"`

	// Lifecycle tunables, all in milliseconds.
	DebounceMS     int `json:"debounce_ms" yaml:"debounce_ms" toml:"debounce_ms"`
	AcceptWindowMS int `json:"accept_window_ms" yaml:"accept_window_ms" toml:"accept_window_ms"`
	CoalesceMS     int `json:"coalesce_ms" yaml:"coalesce_ms" toml:"coalesce_ms"`
	CacheTTLMS     int `json:"cache_ttl_ms" yaml:"cache_ttl_ms" toml:"cache_ttl_ms"`
	MaxLineLen     int `json:"max_line_len" yaml:"max_line_len" toml:"max_line_len"`

	// Backend tunables.
	RequestTimeoutMS int     `json:"request_timeout_ms" yaml:"request_timeout_ms" toml:"request_timeout_ms"`
	MaxTokens        int     `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens"`
	Temperature      float64 `json:"temperature" yaml:"temperature" toml:"temperature"`
	Breaker          bool    `json:"breaker" yaml:"breaker" toml:"breaker"`

	// HTTP surface.
	RateLimitRPS   float64  `json:"rate_limit_rps" yaml:"rate_limit_rps" toml:"rate_limit_rps"`
	RateLimitBurst int      `json:"rate_limit_burst" yaml:"rate_limit_burst" toml:"rate_limit_burst"`
	CORSOrigins    []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
