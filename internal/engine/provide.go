package engine

import (
	"context"
	"errors"

	"github.com/jellydator/ttlcache/v3"

	"completiond/pkg/types"
)

// ProvideCompletion runs one trigger through the request lifecycle:
//
//	Idle -> Debouncing -> Generating -> Resolved | Superseded | Cancelled | Failed
//
// The returned bool is false when there is nothing to insert, whatever the
// reason; failures are logged, never returned, so the host surface sees an
// empty result at worst. ctx is the host cancellation signal: cancelling it
// aborts the debounce wait and any in-flight generation call.
func (e *Engine) ProvideCompletion(ctx context.Context, snap types.DocumentSnapshot) (types.Suggestion, bool) {
	e.mu.Lock()
	if !e.admitTrigger(snap, e.clock.Now()) {
		e.counters.filtered++
		e.mu.Unlock()
		return types.Suggestion{}, false
	}
	// Newest trigger wins: the previous cycle's timer and abort handle are
	// torn down before the new id exists.
	e.teardownLocked()
	id := e.nextRequestIDLocked()
	w := newDebounceWindow(id)
	w.timer = e.clock.AfterFunc(e.cfg.Debounce, w.fire)
	e.window = w
	e.mu.Unlock()

	select {
	case <-w.fired:
	case <-w.torn:
		e.mu.Lock()
		e.counters.superseded++
		e.mu.Unlock()
		return types.Suggestion{}, false
	case <-ctx.Done():
		e.mu.Lock()
		if e.window == w {
			w.teardown()
			e.window = nil
		}
		e.counters.cancelled++
		e.mu.Unlock()
		return types.Suggestion{}, false
	}

	e.mu.Lock()
	if e.window == w {
		e.window = nil // consumed
	}
	if !e.currentLocked(id) {
		e.counters.superseded++
		e.mu.Unlock()
		return types.Suggestion{}, false
	}
	if ctx.Err() != nil {
		e.counters.cancelled++
		e.mu.Unlock()
		return types.Suggestion{}, false
	}
	e.mu.Unlock()

	profile := e.activeProfile()
	if profile == nil {
		e.mu.Lock()
		e.counters.noProfile++
		e.mu.Unlock()
		e.log.Info().Uint64("request_id", id).Msg("completion skipped: no active profile")
		return types.Suggestion{}, false
	}

	e.mu.Lock()
	if !e.currentLocked(id) {
		e.counters.superseded++
		e.mu.Unlock()
		return types.Suggestion{}, false
	}
	genCtx, cancel := context.WithCancel(ctx)
	e.abort = &abortHandle{id: id, cancel: cancel}
	e.generating = true
	e.mu.Unlock()
	defer cancel()

	e.reporter.OnRequestStart(id)
	sugg, ok := e.generate(genCtx, ctx, id, *profile, snap)
	e.reporter.OnRequestEnd(id)
	return sugg, ok
}

// generate performs the Generating phase for request id. The caller owns
// the start/end reporter pairing; generate owns counters and the abort
// handle cleanup.
func (e *Engine) generate(genCtx, reqCtx context.Context, id uint64, profile types.Profile, snap types.DocumentSnapshot) (types.Suggestion, bool) {
	key := snapshotKey(snap, profile.ID)
	if e.recent != nil {
		if item := e.recent.Get(key); item != nil {
			e.mu.Lock()
			e.endGenerationLocked(id)
			if !e.currentLocked(id) {
				e.counters.superseded++
				e.mu.Unlock()
				return types.Suggestion{}, false
			}
			e.counters.cacheHits++
			e.counters.resolved++
			e.mu.Unlock()
			return types.Suggestion{InsertText: item.Value()}, true
		}
	}

	model, err := e.resolveModel(profile)
	if err != nil {
		e.mu.Lock()
		e.endGenerationLocked(id)
		e.counters.failed++
		e.mu.Unlock()
		e.log.Error().Err(err).Uint64("request_id", id).Str("profile", profile.ID).Msg("model build failed")
		return types.Suggestion{}, false
	}

	system, user := buildPrompt(snap)
	res, err := model.Generate(genCtx, system, user)

	e.mu.Lock()
	e.endGenerationLocked(id)
	if err != nil {
		// A newer trigger tearing this request down also cancels genCtx, so
		// the id check must come first or supersession would be miscounted
		// as host cancellation.
		if !e.currentLocked(id) {
			e.counters.superseded++
			e.mu.Unlock()
			return types.Suggestion{}, false
		}
		if genCtx.Err() != nil || errors.Is(err, context.Canceled) {
			e.counters.cancelled++
			e.mu.Unlock()
			e.log.Info().Uint64("request_id", id).Msg("generation aborted")
			return types.Suggestion{}, false
		}
		e.counters.failed++
		e.mu.Unlock()
		e.log.Error().Err(err).Uint64("request_id", id).Str("profile", profile.ID).Msg("generation failed")
		return types.Suggestion{}, false
	}
	// Check-then-discard: the call may have been overtaken while in flight.
	if !e.currentLocked(id) {
		e.counters.superseded++
		e.mu.Unlock()
		return types.Suggestion{}, false
	}
	if reqCtx.Err() != nil {
		e.counters.cancelled++
		e.mu.Unlock()
		return types.Suggestion{}, false
	}
	e.mu.Unlock()

	// Profile switched away mid-call: the result belongs to a backend the
	// user no longer wants.
	if p := e.activeProfile(); p == nil || p.ID != profile.ID {
		e.mu.Lock()
		e.counters.cancelled++
		e.mu.Unlock()
		return types.Suggestion{}, false
	}

	text := Sanitize(res.Text, snap.LinePrefix())
	e.mu.Lock()
	e.counters.resolved++
	e.mu.Unlock()
	if text == "" {
		// sanitized to nothing: no suggestion, not an empty suggestion
		return types.Suggestion{}, false
	}
	if e.recent != nil {
		e.recent.Set(key, text, ttlcache.DefaultTTL)
	}
	return types.Suggestion{InsertText: text}, true
}

// endGenerationLocked releases the abort handle if it still belongs to id.
// A superseding trigger may already own a newer handle; that one is left
// untouched.
func (e *Engine) endGenerationLocked(id uint64) {
	if e.abort != nil && e.abort.id == id {
		e.abort = nil
		e.generating = false
	}
}

// activeProfile fetches the active profile without holding the engine
// lock. The profile store notifies subscribers outside its own lock for
// the same reason: the engine and the store must never wait on each other.
func (e *Engine) activeProfile() *types.Profile {
	if e.profiles == nil {
		return nil
	}
	return e.profiles.Active()
}
