package provider

import (
	"context"
	"errors"
	"testing"

	"completiond/pkg/types"
)

type scriptedModel struct {
	calls int
	errs  []error
	text  string
}

func (m *scriptedModel) Generate(ctx context.Context, system, user string) (types.GenerateResult, error) {
	i := m.calls
	m.calls++
	if i < len(m.errs) && m.errs[i] != nil {
		return types.GenerateResult{}, m.errs[i]
	}
	return types.GenerateResult{Text: m.text}, nil
}

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	boom := errors.New("backend down")
	inner := &scriptedModel{errs: []error{boom, boom, boom, boom}}
	m := withBreaker("test", inner)

	for i := 0; i < breakerMaxFailures; i++ {
		if _, err := m.Generate(context.Background(), "s", "u"); !errors.Is(err, boom) {
			t.Fatalf("call %d: expected backend error, got %v", i, err)
		}
	}
	// Breaker is open now; the backend must not be reached again.
	if _, err := m.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatalf("expected open-circuit error")
	}
	if inner.calls != breakerMaxFailures {
		t.Fatalf("expected %d backend calls, got %d", breakerMaxFailures, inner.calls)
	}
}

func TestBreakerIgnoresCancellation(t *testing.T) {
	inner := &scriptedModel{
		errs: []error{context.Canceled, context.Canceled, context.Canceled, context.Canceled, nil},
		text: "ok",
	}
	m := withBreaker("test", inner)

	for i := 0; i < 4; i++ {
		if _, err := m.Generate(context.Background(), "s", "u"); !errors.Is(err, context.Canceled) {
			t.Fatalf("call %d: expected cancellation, got %v", i, err)
		}
	}
	res, err := m.Generate(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("breaker tripped on cancellations: %v", err)
	}
	if res.Text != "ok" {
		t.Fatalf("unexpected text: %q", res.Text)
	}
}

func TestBuildWrapsWithBreaker(t *testing.T) {
	srv := newChatServer(t, "hello")
	defer srv.Close()

	m, err := New(Config{Breaker: true}).Build(openAIProfile(srv.URL))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := m.(*breakerModel); !ok {
		t.Fatalf("expected breaker wrapper, got %T", m)
	}
	res, err := m.Generate(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Text != "hello" {
		t.Fatalf("unexpected text: %q", res.Text)
	}
}
