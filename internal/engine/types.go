package engine

import (
	"context"
	"time"

	"completiond/pkg/types"
)

// Model is a callable text-generation handle built for one profile.
// Implementations must return promptly once ctx is cancelled.
type Model interface {
	Generate(ctx context.Context, system, user string) (types.GenerateResult, error)
}

// ModelFactory builds a Model from a profile. Called only when the cached
// model's owning profile id differs from the active one.
type ModelFactory interface {
	Build(p types.Profile) (Model, error)
}

// ProfileSource exposes the active profile. A nil result means completions
// are disabled.
type ProfileSource interface {
	Active() *types.Profile
}

// debounceWindow guards one pending request between trigger and generation.
// At most one window is pending at a time; a newer trigger tears the prior
// one down before creating its own.
type debounceWindow struct {
	id    uint64
	timer Timer
	fired chan struct{} // closed by the timer callback
	torn  chan struct{} // closed exactly once by teardown
	down  bool          // teardown already ran (guards torn)
}

func newDebounceWindow(id uint64) *debounceWindow {
	return &debounceWindow{
		id:    id,
		fired: make(chan struct{}),
		torn:  make(chan struct{}),
	}
}

func (w *debounceWindow) fire() {
	close(w.fired)
}

// teardown stops the timer and releases any goroutine waiting on the
// window. Safe to call more than once; callers must hold the engine lock.
func (w *debounceWindow) teardown() {
	if w.down {
		return
	}
	w.down = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.torn)
}

// abortHandle is the cancellation side of one in-flight generation call.
// At most one handle is live at a time.
type abortHandle struct {
	id     uint64
	cancel context.CancelFunc
}

func (a *abortHandle) signal() {
	a.cancel()
}

// acceptedCompletion records the last suggestion the user inserted, so the
// filter can suppress the re-trigger the editor fires right after insertion.
// Replaced wholesale on every acceptance.
type acceptedCompletion struct {
	text string
	pos  types.Position
	at   time.Time
}

// cachedModel pairs a built model with the profile that owns it. Valid only
// while the owning profile id equals the active profile's id.
type cachedModel struct {
	profileID string
	model     Model
}

// triggerState is the filter's tracked state, mutated only when a trigger
// is admitted.
type triggerState struct {
	lastVersion  int
	versionSeen  bool
	lastChangeAt time.Time
}
