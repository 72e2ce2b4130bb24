package engine

import "sync"

// MemoryReporter records start/end notifications in memory for tests.
type MemoryReporter struct {
	mu     sync.Mutex
	starts []uint64
	ends   []uint64
}

func NewMemoryReporter() *MemoryReporter { return &MemoryReporter{} }

func (r *MemoryReporter) OnRequestStart(id uint64) {
	r.mu.Lock()
	r.starts = append(r.starts, id)
	r.mu.Unlock()
}

func (r *MemoryReporter) OnRequestEnd(id uint64) {
	r.mu.Lock()
	r.ends = append(r.ends, id)
	r.mu.Unlock()
}

func (r *MemoryReporter) Starts() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint64, len(r.starts))
	copy(out, r.starts)
	return out
}

func (r *MemoryReporter) Ends() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint64, len(r.ends))
	copy(out, r.ends)
	return out
}
