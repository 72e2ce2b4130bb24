package e2e

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"completiond/internal/engine"
	"completiond/internal/httpapi"
	"completiond/internal/profile"
	"completiond/pkg/types"
)

// stubModel returns a fixed completion and counts calls.
type stubModel struct {
	text  string
	calls int64
}

func (m *stubModel) Generate(ctx context.Context, system, user string) (types.GenerateResult, error) {
	atomic.AddInt64(&m.calls, 1)
	return types.GenerateResult{Text: m.text}, nil
}

func (m *stubModel) Calls() int64 { return atomic.LoadInt64(&m.calls) }

// stubFactory builds the same stubModel for every profile and counts builds.
type stubFactory struct {
	model  *stubModel
	builds int64
}

func (f *stubFactory) Build(p types.Profile) (engine.Model, error) {
	atomic.AddInt64(&f.builds, 1)
	return f.model, nil
}

func (f *stubFactory) Builds() int64 { return atomic.LoadInt64(&f.builds) }

// newServer wires a profile store, engine and HTTP mux the way main does,
// with a fast debounce for tests.
func newServer(t *testing.T, factory engine.ModelFactory) (*httptest.Server, *profile.Store) {
	t.Helper()
	store, err := profile.Open(filepath.Join(t.TempDir(), "profiles.yaml"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	eng := engine.NewWithConfig(engine.EngineConfig{
		Debounce: 10 * time.Millisecond,
		Coalesce: time.Nanosecond,
		CacheTTL: -1,
		Factory:  factory,
		Profiles: store,
	})
	t.Cleanup(eng.Close)
	store.Subscribe(eng.InvalidateModel)
	srv := httptest.NewServer(httpapi.NewMux(eng, store))
	t.Cleanup(srv.Close)
	return srv, store
}
