package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"completiond/internal/config"
	"completiond/internal/engine"
	"completiond/internal/httpapi"
	"completiond/internal/profile"
	"completiond/internal/provider"
)

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "completiond",
		Short:         "Inline code completion daemon",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          run,
	}
	f := root.Flags()
	f.String("config", envStr("COMPLETIOND_CONFIG", ""), "Optional config file (.yaml/.json/.toml)")
	f.String("addr", envStr("COMPLETIOND_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	f.String("profiles", envStr("COMPLETIOND_PROFILES", "~/.config/completiond/profiles.yaml"), "Profile store file")
	f.String("log-level", envStr("COMPLETIOND_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	f.Bool("log-json", false, "Emit JSON logs instead of console output")
	f.Int("debounce-ms", envInt("COMPLETIOND_DEBOUNCE_MS", 0), "Debounce window in ms (0=default)")
	f.Int("accept-window-ms", 0, "Acceptance suppression window in ms (0=default)")
	f.Int("coalesce-ms", 0, "Minimum gap between admitted triggers in ms (0=default)")
	f.Int("cache-ttl-ms", 0, "Recent suggestion cache TTL in ms (0=default, negative disables)")
	f.Int("max-line-len", 0, "Skip completion on lines longer than this (0=default)")
	f.Int("request-timeout-ms", 0, "Hard cap on one backend call in ms (0=default)")
	f.Int("max-tokens", 0, "Maximum new tokens per completion (0=default)")
	f.Float64("temperature", 0, "Sampling temperature (0=default)")
	f.Bool("breaker", false, "Wrap backends in a circuit breaker")
	f.Float64("rate-limit-rps", 0, "Per-client request rate limit (0 disables)")
	f.Int("rate-limit-burst", 0, "Rate limit burst size")
	f.Bool("cors-enabled", false, "Enable CORS for browser-based editors")
	f.StringSlice("cors-origins", nil, "Allowed CORS origins")
	return root
}

func run(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()

	var cfg config.Config
	if path, _ := f.GetString("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
	}
	// Flags override file values when set explicitly (or via env defaults).
	if v, _ := f.GetString("addr"); cfg.Addr == "" || f.Changed("addr") {
		cfg.Addr = v
	}
	if v, _ := f.GetString("profiles"); cfg.ProfilesPath == "" || f.Changed("profiles") {
		cfg.ProfilesPath = v
	}
	if v, _ := f.GetString("log-level"); cfg.LogLevel == "" || f.Changed("log-level") {
		cfg.LogLevel = v
	}
	intFlag := func(name string, dst *int) {
		if v, _ := f.GetInt(name); v != 0 || f.Changed(name) {
			*dst = v
		}
	}
	intFlag("debounce-ms", &cfg.DebounceMS)
	intFlag("accept-window-ms", &cfg.AcceptWindowMS)
	intFlag("coalesce-ms", &cfg.CoalesceMS)
	intFlag("cache-ttl-ms", &cfg.CacheTTLMS)
	intFlag("max-line-len", &cfg.MaxLineLen)
	intFlag("request-timeout-ms", &cfg.RequestTimeoutMS)
	intFlag("max-tokens", &cfg.MaxTokens)
	intFlag("rate-limit-burst", &cfg.RateLimitBurst)
	if v, _ := f.GetFloat64("temperature"); v != 0 {
		cfg.Temperature = v
	}
	if v, _ := f.GetFloat64("rate-limit-rps"); v != 0 {
		cfg.RateLimitRPS = v
	}
	if v, _ := f.GetBool("breaker"); v {
		cfg.Breaker = true
	}
	if v, _ := f.GetStringSlice("cors-origins"); len(v) > 0 {
		cfg.CORSOrigins = v
	}
	corsEnabled, _ := f.GetBool("cors-enabled")
	logJSON, _ := f.GetBool("log-json")

	logger := newLogger(cfg.LogLevel, logJSON)

	store, err := profile.Open(cfg.ProfilesPath)
	if err != nil {
		return err
	}

	factory := provider.New(provider.Config{
		Timeout:     time.Duration(cfg.RequestTimeoutMS) * time.Millisecond,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Breaker:     cfg.Breaker,
	})

	eng := engine.NewWithConfig(engine.EngineConfig{
		Debounce:     time.Duration(cfg.DebounceMS) * time.Millisecond,
		AcceptWindow: time.Duration(cfg.AcceptWindowMS) * time.Millisecond,
		Coalesce:     time.Duration(cfg.CoalesceMS) * time.Millisecond,
		MaxLineLen:   cfg.MaxLineLen,
		CacheTTL:     time.Duration(cfg.CacheTTLMS) * time.Millisecond,
		Factory:      factory,
		Profiles:     store,
		Reporter:     logReporter{log: logger},
	})
	defer eng.Close()
	eng.SetLogger(logger)
	// Switching or editing the active profile drops the built model and
	// cached suggestions.
	store.Subscribe(eng.InvalidateModel)

	httpapi.SetLogger(logger)
	if corsEnabled || len(cfg.CORSOrigins) > 0 {
		httpapi.SetCORSOptions(true, cfg.CORSOrigins,
			[]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			[]string{"Accept", "Content-Type", "X-Log-Level"})
	}
	if cfg.RateLimitRPS > 0 {
		httpapi.SetRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(eng, store)}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("profiles", cfg.ProfilesPath).Msg("completiond listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
	return nil
}

func newLogger(level string, jsonOut bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	var w = os.Stderr
	if jsonOut {
		return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger()
}

// logReporter surfaces request lifecycle edges in the daemon log, the same
// signal an editor status bar would render.
type logReporter struct {
	log zerolog.Logger
}

func (r logReporter) OnRequestStart(id uint64) {
	r.log.Debug().Uint64("request_id", id).Msg("generation started")
}

func (r logReporter) OnRequestEnd(id uint64) {
	r.log.Debug().Uint64("request_id", id).Msg("generation finished")
}
