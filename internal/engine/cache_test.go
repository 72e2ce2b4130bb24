package engine

import (
	"context"
	"testing"
	"time"
)

func TestRecentCacheSkipsBackendCall(t *testing.T) {
	mdl := &fakeModel{text: "<COMPLETION>bar()</COMPLETION>"}
	e := NewWithConfig(EngineConfig{
		Debounce: 10 * time.Millisecond,
		Coalesce: time.Nanosecond,
		CacheTTL: time.Minute,
		Factory:  &fakeFactory{model: mdl},
		Profiles: fixedProfile("p1"),
	})
	defer e.Close()

	s1, ok := e.ProvideCompletion(context.Background(), snapAt(1, "foo(", 4))
	if !ok {
		t.Fatalf("expected suggestion")
	}
	// identical context, new version: served from cache
	s2, ok := e.ProvideCompletion(context.Background(), snapAt(2, "foo(", 4))
	if !ok {
		t.Fatalf("expected cached suggestion")
	}
	if s1.InsertText != s2.InsertText {
		t.Fatalf("cache returned different text: %q vs %q", s1.InsertText, s2.InsertText)
	}
	if mdl.Calls() != 1 {
		t.Fatalf("expected one backend call, got %d", mdl.Calls())
	}
	if st := e.Status(); st.CacheHits != 1 {
		t.Fatalf("expected one cache hit, got %+v", st)
	}
}

func TestSnapshotKeyDependsOnProfileAndPosition(t *testing.T) {
	a := snapshotKey(snapAt(1, "foo(", 4), "p1")
	if b := snapshotKey(snapAt(2, "foo(", 4), "p1"); a != b {
		t.Fatalf("key must not depend on document version")
	}
	if b := snapshotKey(snapAt(1, "foo(", 4), "p2"); a == b {
		t.Fatalf("key must depend on profile id")
	}
	s := snapAt(1, "foo(x", 5)
	if b := snapshotKey(s, "p1"); a == b {
		t.Fatalf("key must depend on the typed prefix")
	}
}

func TestInvalidateModelDropsRecentSuggestions(t *testing.T) {
	mdl := &fakeModel{text: "<COMPLETION>bar()</COMPLETION>"}
	e := NewWithConfig(EngineConfig{
		Debounce: 10 * time.Millisecond,
		Coalesce: time.Nanosecond,
		CacheTTL: time.Minute,
		Factory:  &fakeFactory{model: mdl},
		Profiles: fixedProfile("p1"),
	})
	defer e.Close()

	if _, ok := e.ProvideCompletion(context.Background(), snapAt(1, "foo(", 4)); !ok {
		t.Fatalf("expected suggestion")
	}
	e.InvalidateModel()
	if _, ok := e.ProvideCompletion(context.Background(), snapAt(2, "foo(", 4)); !ok {
		t.Fatalf("expected suggestion")
	}
	if mdl.Calls() != 2 {
		t.Fatalf("expected fresh backend call after invalidation, got %d", mdl.Calls())
	}
}
