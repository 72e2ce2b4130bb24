package engine

import "completiond/pkg/types"

// RecordAccepted informs the engine that a previously returned suggestion
// was inserted at pos. The record is replaced wholesale; only the most
// recent acceptance drives trigger suppression.
func (e *Engine) RecordAccepted(text string, pos types.Position) {
	if text == "" {
		return
	}
	e.mu.Lock()
	e.accepted = &acceptedCompletion{text: text, pos: pos, at: e.clock.Now()}
	e.mu.Unlock()
}
