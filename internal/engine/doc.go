// Package engine implements the completion request lifecycle: deciding
// whether a keystroke should trigger a completion, debouncing rapid
// triggers, cancelling superseded or stale requests, and sanitizing raw
// model output into an insertable suggestion. It is structured into small
// files by concern:
//
//   - engine.go: core Engine type, request identity, teardown helpers.
//   - config.go: EngineConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: internal state types (debounceWindow, abortHandle, ...).
//   - clock.go: Clock/Timer abstraction over time.AfterFunc for testability.
//   - filter.go: trigger filter (skip conditions) and its tracked state.
//   - accept.go: acceptance tracker fed by RecordAccepted.
//   - sanitize.go: marker extraction and line-prefix stripping.
//   - modelcache.go: per-profile model cache and invalidation.
//   - prompt.go: prompt assembly for the generation call.
//   - cache.go: short-lived cache of recently resolved suggestions.
//   - provide.go: ProvideCompletion, the state machine entry point.
//   - events.go: StatusReporter interface and implementations.
//   - status.go: Status snapshot and outcome counters.
//
// Exactly one request id is current at any time. Every code path that
// creates a debounce timer or an abort handle tears down the previous one
// first, so a request that is overtaken by a newer trigger can never
// surface its result.
package engine
