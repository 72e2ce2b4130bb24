package engine

import "completiond/pkg/types"

// counters tracks terminal outcomes since process start.
type counters struct {
	resolved   uint64
	filtered   uint64
	superseded uint64
	cancelled  uint64
	failed     uint64
	noProfile  uint64
	cacheHits  uint64
	builds     uint64
}

// Status builds a detailed status response for /status.
func (e *Engine) Status() types.StatusResponse {
	active := e.activeProfile()
	e.mu.Lock()
	defer e.mu.Unlock()
	resp := types.StatusResponse{
		CurrentRequestID: e.currentID,
		Generating:       e.generating,
		Resolved:         e.counters.resolved,
		Filtered:         e.counters.filtered,
		Superseded:       e.counters.superseded,
		Cancelled:        e.counters.cancelled,
		Failed:           e.counters.failed,
		NoProfile:        e.counters.noProfile,
		CacheHits:        e.counters.cacheHits,
	}
	if active != nil {
		resp.ActiveProfile = active.ID
	}
	now := e.clock.Now()
	resp.UptimeSeconds = int64(now.Sub(e.startTime).Seconds())
	resp.ServerTimeUnix = now.Unix()
	return resp
}
