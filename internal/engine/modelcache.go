package engine

import "completiond/pkg/types"

// resolveModel returns the cached model when it is still owned by p, and
// otherwise builds a fresh one via the factory. Builds run outside the
// lock; the generation counter taken before the build detects an
// invalidation that fired while the build ran. In that case the result is
// returned but not stored: the profile may have changed under the same id,
// so the next request must reach the factory again.
func (e *Engine) resolveModel(p types.Profile) (Model, error) {
	e.mu.Lock()
	if e.model.model != nil && e.model.profileID == p.ID {
		m := e.model.model
		e.mu.Unlock()
		return m, nil
	}
	gen := e.modelGen
	e.mu.Unlock()

	m, err := e.factory.Build(p)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	if e.modelGen == gen {
		e.model = cachedModel{profileID: p.ID, model: m}
	}
	e.counters.builds++
	e.mu.Unlock()
	return m, nil
}

// InvalidateModel clears the cached model wholesale and bumps the
// generation counter so an in-flight build cannot restore a stale entry.
// Wired to the profile change notification; runs even when a request is in
// flight so a profile switch mid-session can never reuse the previous
// profile's model.
func (e *Engine) InvalidateModel() {
	e.mu.Lock()
	e.model = cachedModel{}
	e.modelGen++
	e.mu.Unlock()
	if e.recent != nil {
		e.recent.DeleteAll()
	}
}
