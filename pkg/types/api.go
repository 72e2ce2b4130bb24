package types

// CompletionRequest is the payload for POST /v1/completion. The snapshot is
// captured by the editor plugin at trigger time.
type CompletionRequest struct {
	Snapshot DocumentSnapshot `json:"snapshot"`
}

// CompletionResponse wraps the suggestion returned for one trigger.
// Suggestion is null when the request was filtered, superseded, cancelled or
// produced nothing insertable.
type CompletionResponse struct {
	Suggestion *Suggestion `json:"suggestion"`
}

// AcceptRequest informs the engine that a previously returned suggestion was
// inserted by the user.
type AcceptRequest struct {
	// Inserted text, exactly as returned in Suggestion.InsertText.
	Text string `json:"text"`
	// Cursor position where the insertion started.
	Position Position `json:"position"`
}

// ProfilesResponse wraps the list of profiles returned by GET /v1/profiles.
type ProfilesResponse struct {
	// All configured profiles.
	Profiles []Profile `json:"profiles"`
	// ID of the active profile; empty when completions are disabled.
	// example: 4f6c0b0e-9c2a-4b4e-8a9d-1c2d3e4f5a6b
	ActiveID string `json:"active_id,omitempty"`
}

// ActiveProfileRequest selects the active profile.
type ActiveProfileRequest struct {
	// Profile ID to activate; empty disables completions.
	ID string `json:"id"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// ID of the active profile, empty when none.
	ActiveProfile string `json:"active_profile,omitempty"`
	// ID of the most recent completion request.
	CurrentRequestID uint64 `json:"current_request_id"`
	// True while a generation call is in flight.
	Generating bool `json:"generating"`
	// Outcome counters since process start.
	Resolved   uint64 `json:"resolved_total"`
	Filtered   uint64 `json:"filtered_total"`
	Superseded uint64 `json:"superseded_total"`
	Cancelled  uint64 `json:"cancelled_total"`
	Failed     uint64 `json:"failed_total"`
	NoProfile  uint64 `json:"no_profile_total"`
	CacheHits  uint64 `json:"cache_hits_total"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix"`
}
