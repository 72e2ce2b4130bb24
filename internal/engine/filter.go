package engine

import (
	"strings"
	"time"
	"unicode"

	"completiond/pkg/types"
)

// admitTrigger runs the skip conditions in order, short-circuiting on the
// first match. Tracked state (last seen version, last change timestamp) is
// updated only when the trigger is admitted; skip checks mutate nothing.
// Callers must hold the engine lock.
func (e *Engine) admitTrigger(snap types.DocumentSnapshot, now time.Time) bool {
	if e.trigger.versionSeen && snap.Version == e.trigger.lastVersion {
		return false
	}
	if snap.SuggestVisible {
		return false
	}
	if e.suppressedByAcceptance(snap.Cursor, now) {
		return false
	}
	if cursorInsideWord(snap.CurrentLine, snap.Cursor.Col) {
		return false
	}
	if !e.trigger.lastChangeAt.IsZero() && now.Sub(e.trigger.lastChangeAt) < e.cfg.Coalesce {
		return false
	}
	if len([]rune(snap.CurrentLine)) > e.cfg.MaxLineLen {
		return false
	}
	e.trigger.lastVersion = snap.Version
	e.trigger.versionSeen = true
	e.trigger.lastChangeAt = now
	return true
}

// suppressedByAcceptance reports whether the cursor sits within one
// character of where the last accepted text ended, inside the suppression
// window. Editors fire a content-change trigger immediately after an
// insertion; without this check every accepted suggestion would spawn a
// new request.
func (e *Engine) suppressedByAcceptance(cur types.Position, now time.Time) bool {
	a := e.accepted
	if a == nil {
		return false
	}
	if now.Sub(a.at) > e.cfg.AcceptWindow {
		return false
	}
	endLine, endCol := insertionEnd(a.text, a.pos)
	return cur.Line == endLine && abs(cur.Col-endCol) <= 1
}

// insertionEnd computes the cursor position after inserting text at pos.
// Single-line inserts advance the column; multi-line inserts land on the
// last inserted line at its length.
func insertionEnd(text string, pos types.Position) (line, col int) {
	lines := strings.Split(text, "\n")
	line = pos.Line + len(lines) - 1
	if len(lines) == 1 {
		col = pos.Col + len([]rune(text))
	} else {
		col = len([]rune(lines[len(lines)-1]))
	}
	return line, col
}

// cursorInsideWord reports whether the character at the cursor and the one
// immediately before it are both word characters. A heuristic over two
// runes only; composed characters are not handled.
func cursorInsideWord(line string, col int) bool {
	r := []rune(line)
	if col <= 0 || col >= len(r) {
		return false
	}
	return isWordRune(r[col]) && isWordRune(r[col-1])
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
