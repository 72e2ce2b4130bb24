package provider

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"completiond/internal/engine"
	"completiond/pkg/types"
)

const (
	breakerMaxFailures = 3
	breakerTimeout     = 15 * time.Second
)

// breakerModel wraps a model with a circuit breaker so a dead backend stops
// eating the generation window of every keystroke.
type breakerModel struct {
	inner engine.Model
	cb    *gobreaker.CircuitBreaker[types.GenerateResult]
}

func withBreaker(name string, inner engine.Model) engine.Model {
	cb := gobreaker.NewCircuitBreaker[types.GenerateResult](gobreaker.Settings{
		Name:        "backend:" + name,
		MaxRequests: 1, // one probe in half-open state
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
		IsSuccessful: func(err error) bool {
			// Aborted requests say nothing about backend health.
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &breakerModel{inner: inner, cb: cb}
}

func (m *breakerModel) Generate(ctx context.Context, system, user string) (types.GenerateResult, error) {
	return m.cb.Execute(func() (types.GenerateResult, error) {
		return m.inner.Generate(ctx, system, user)
	})
}
