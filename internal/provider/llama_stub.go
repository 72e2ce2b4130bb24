//go:build !llama

package provider

// This file provides a no-CGO stub for the local llama.cpp adapter. It is
// compiled when the 'llama' build tag is NOT set, keeping default builds and
// CI CGO-free. The real adapter lives in llama.go (tagged 'llama').

import (
	"context"

	"completiond/pkg/types"
)

type localStub struct{}

func newLocalModel(f *Factory, p types.Profile) (localStub, error) {
	// Fail fast: llama runtime not available in this build.
	return localStub{}, ErrUnavailable("local llama support not built (missing 'llama' build tag)")
}

func (localStub) Generate(ctx context.Context, system, user string) (types.GenerateResult, error) {
	return types.GenerateResult{}, ErrUnavailable("local llama support not built (missing 'llama' build tag)")
}
