package engine

import "time"

// Defaults applied when corresponding EngineConfig fields are unset.
const (
	defaultDebounce     = 300 * time.Millisecond
	defaultAcceptWindow = 1000 * time.Millisecond
	defaultCoalesce     = 100 * time.Millisecond
	defaultMaxLineLen   = 200
	defaultCacheTTL     = 30 * time.Second
)

// EngineConfig encapsulates all tunables for Engine construction.
type EngineConfig struct {
	// Delay between an admitted trigger and the generation call.
	Debounce time.Duration
	// How long after an acceptance the re-trigger at the insertion end is
	// suppressed.
	AcceptWindow time.Duration
	// Minimum gap between content changes before a trigger is admitted.
	Coalesce time.Duration
	// Triggers on lines longer than this are rejected.
	MaxLineLen int
	// TTL for the recent-suggestion cache; <0 disables the cache.
	CacheTTL time.Duration

	Factory  ModelFactory
	Profiles ProfileSource
	Reporter StatusReporter
	Clock    Clock
}

// NewWithConfig constructs an Engine from EngineConfig, applying package
// defaults for unset fields.
func NewWithConfig(cfg EngineConfig) *Engine {
	e := &Engine{
		cfg:      cfg,
		factory:  cfg.Factory,
		profiles: cfg.Profiles,
		reporter: cfg.Reporter,
		clock:    cfg.Clock,
	}
	if e.cfg.Debounce <= 0 {
		e.cfg.Debounce = defaultDebounce
	}
	if e.cfg.AcceptWindow <= 0 {
		e.cfg.AcceptWindow = defaultAcceptWindow
	}
	if e.cfg.Coalesce <= 0 {
		e.cfg.Coalesce = defaultCoalesce
	}
	if e.cfg.MaxLineLen <= 0 {
		e.cfg.MaxLineLen = defaultMaxLineLen
	}
	if e.cfg.CacheTTL == 0 {
		e.cfg.CacheTTL = defaultCacheTTL
	}
	if e.reporter == nil {
		e.reporter = noopReporter{}
	}
	if e.clock == nil {
		e.clock = SystemClock
	}
	e.trigger.lastVersion = -1
	if e.cfg.CacheTTL > 0 {
		e.recent = newRecentCache(e.cfg.CacheTTL)
	}
	e.startTime = e.clock.Now()
	return e
}
