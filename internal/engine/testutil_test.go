package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"completiond/pkg/types"
)

// manualClock reports a settable time. AfterFunc falls through to real
// timers; tests that only need Now use it to step through time windows
// without sleeping.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Unix(1700000000, 0)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// fakeModel returns canned text or an error, optionally after a delay that
// respects cancellation.
type fakeModel struct {
	mu    sync.Mutex
	calls int
	text  string
	err   error
	delay time.Duration
}

func (m *fakeModel) Generate(ctx context.Context, system, user string) (types.GenerateResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return types.GenerateResult{}, ctx.Err()
		}
	}
	if m.err != nil {
		return types.GenerateResult{}, m.err
	}
	return types.GenerateResult{Text: m.text}, nil
}

func (m *fakeModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// fakeFactory counts builds and hands out a shared model.
type fakeFactory struct {
	mu     sync.Mutex
	builds int
	model  Model
	err    error
}

func (f *fakeFactory) Build(p types.Profile) (Model, error) {
	f.mu.Lock()
	f.builds++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.model != nil {
		return f.model, nil
	}
	return &fakeModel{text: "ok"}, nil
}

func (f *fakeFactory) Builds() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.builds
}

// profileSourceFunc adapts a func to ProfileSource.
type profileSourceFunc func() *types.Profile

func (f profileSourceFunc) Active() *types.Profile { return f() }

func fixedProfile(id string) ProfileSource {
	p := &types.Profile{ID: id, Name: id, Kind: types.ProviderOpenAI, Model: "test"}
	return profileSourceFunc(func() *types.Profile { return p })
}

// newTestEngine builds an engine tuned for fast lifecycle tests: short
// debounce, negligible coalesce window, suggestion cache off.
func newTestEngine(t *testing.T, f ModelFactory, src ProfileSource) *Engine {
	t.Helper()
	e := NewWithConfig(EngineConfig{
		Debounce: 20 * time.Millisecond,
		Coalesce: time.Nanosecond,
		CacheTTL: -1,
		Factory:  f,
		Profiles: src,
	})
	t.Cleanup(e.Close)
	return e
}

func snapAt(version int, line string, col int) types.DocumentSnapshot {
	return types.DocumentSnapshot{
		Prefix:      line,
		CurrentLine: line,
		Path:        "main.go",
		Language:    "go",
		Version:     version,
		Cursor:      types.Position{Line: 0, Col: col},
	}
}
