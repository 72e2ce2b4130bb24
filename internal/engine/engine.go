package engine

import (
	"math"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog"
)

// maxRequestID is the boundary at which request ids wrap back to zero.
const maxRequestID = math.MaxUint64

// Engine owns the completion request lifecycle. All state transitions
// happen under mu; exclusivity of the debounce window and the abort handle
// is enforced by tearing the previous one down before creating a new one.
type Engine struct {
	mu sync.Mutex

	cfg      EngineConfig
	factory  ModelFactory
	profiles ProfileSource
	reporter StatusReporter
	clock    Clock
	log      zerolog.Logger

	currentID  uint64
	window     *debounceWindow
	abort      *abortHandle
	model      cachedModel
	modelGen   uint64
	trigger    triggerState
	accepted   *acceptedCompletion
	recent     *ttlcache.Cache[string, string]
	generating bool

	startTime time.Time
	counters  counters
}

// SetLogger installs a structured logger used for request outcomes.
func (e *Engine) SetLogger(l zerolog.Logger) {
	e.mu.Lock()
	e.log = l
	e.mu.Unlock()
}

// Close stops background cache expiry and releases any pending timer.
func (e *Engine) Close() {
	e.mu.Lock()
	e.teardownLocked()
	e.mu.Unlock()
	if e.recent != nil {
		e.recent.Stop()
	}
}

// nextRequestIDLocked allocates the next request id, wrapping to zero at
// the boundary instead of overflowing.
func (e *Engine) nextRequestIDLocked() uint64 {
	if e.currentID == maxRequestID {
		e.currentID = 0
	} else {
		e.currentID++
	}
	return e.currentID
}

// teardownLocked clears the pending debounce window and signals the live
// abort handle, in that order. It runs on every trigger before a new id is
// allocated, which is what guarantees only the newest request ever reaches
// generation.
func (e *Engine) teardownLocked() {
	if e.window != nil {
		e.window.teardown()
		e.window = nil
	}
	if e.abort != nil {
		e.abort.signal()
		e.abort = nil
		e.generating = false
	}
}

// currentLocked reports whether id is still the current request.
func (e *Engine) currentLocked(id uint64) bool {
	return e.currentID == id
}
