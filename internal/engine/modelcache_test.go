package engine

import (
	"sync"
	"testing"

	"completiond/pkg/types"
)

func TestResolveModelReusesByProfileID(t *testing.T) {
	f := &fakeFactory{}
	e := newTestEngine(t, f, fixedProfile("p1"))

	p := types.Profile{ID: "p1"}
	m1, err := e.resolveModel(p)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	m2, err := e.resolveModel(p)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m1 != m2 {
		t.Fatalf("expected cached model reused")
	}
	if f.Builds() != 1 {
		t.Fatalf("expected one build, got %d", f.Builds())
	}
}

func TestResolveModelRebuildsOnProfileChange(t *testing.T) {
	f := &fakeFactory{}
	e := newTestEngine(t, f, fixedProfile("p1"))

	if _, err := e.resolveModel(types.Profile{ID: "p1"}); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := e.resolveModel(types.Profile{ID: "p2"}); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if f.Builds() != 2 {
		t.Fatalf("expected rebuild for new profile id, got %d builds", f.Builds())
	}
}

func TestInvalidateForcesRebuildForSameID(t *testing.T) {
	f := &fakeFactory{}
	e := newTestEngine(t, f, fixedProfile("p1"))

	p := types.Profile{ID: "p1"}
	if _, err := e.resolveModel(p); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	e.InvalidateModel()
	// the cache must be fully cleared: even the same id rebuilds
	if _, err := e.resolveModel(p); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if f.Builds() != 2 {
		t.Fatalf("expected rebuild after invalidation, got %d builds", f.Builds())
	}
}

// stallingFactory parks the first build until released so a test can fire
// an invalidation while the build is in flight.
type stallingFactory struct {
	mu      sync.Mutex
	builds  int
	entered chan struct{}
	release chan struct{}
}

func (f *stallingFactory) Build(p types.Profile) (Model, error) {
	f.mu.Lock()
	f.builds++
	n := f.builds
	f.mu.Unlock()
	if n == 1 {
		close(f.entered)
		<-f.release
	}
	return &fakeModel{text: "ok"}, nil
}

func (f *stallingFactory) Builds() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.builds
}

func TestInvalidateDuringBuildIsNotUndone(t *testing.T) {
	f := &stallingFactory{entered: make(chan struct{}), release: make(chan struct{})}
	e := newTestEngine(t, f, fixedProfile("p1"))

	p := types.Profile{ID: "p1"}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := e.resolveModel(p); err != nil {
			t.Errorf("resolve: %v", err)
		}
	}()
	<-f.entered
	// The profile was edited under the same id while its model was still
	// being built. The finished build must be discarded, not stored.
	e.InvalidateModel()
	close(f.release)
	<-done

	if _, err := e.resolveModel(p); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if f.Builds() != 2 {
		t.Fatalf("expected rebuild after invalidation during build, got %d builds", f.Builds())
	}
}
