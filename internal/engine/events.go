package engine

// StatusReporter is notified when a request enters and leaves generation.
// Fire-and-forget: implementations should be lightweight and non-blocking,
// and no return value is consulted. Start/end calls are strictly paired,
// exactly once per request that reached generation.
type StatusReporter interface {
	OnRequestStart(id uint64)
	OnRequestEnd(id uint64)
}

// noopReporter is the default; it drops notifications.
type noopReporter struct{}

func (noopReporter) OnRequestStart(uint64) {}
func (noopReporter) OnRequestEnd(uint64)   {}
