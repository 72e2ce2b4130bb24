package types

// Position is a cursor location. Lines and columns are zero-based; columns
// count runes, not bytes.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// DocumentSnapshot is an immutable view of the editor document at trigger
// time. It is captured once per completion request and never mutated.
type DocumentSnapshot struct {
	// Text before the cursor (whole document prefix).
	Prefix string `json:"prefix"`
	// Text after the cursor (whole document suffix).
	Suffix string `json:"suffix"`
	// Full text of the line the cursor is on.
	CurrentLine string `json:"current_line"`
	// File identifier (path or URI).
	Path string `json:"path"`
	// Language identifier, e.g. "go".
	Language string `json:"language"`
	// Document content version; increments on every content change.
	Version int `json:"version"`
	// Cursor position within the document.
	Cursor Position `json:"cursor"`
	// True when the host editor is already showing its own suggestion widget.
	SuggestVisible bool `json:"suggest_visible,omitempty"`
}

// LinePrefix returns the part of the current line already typed, i.e. the
// text left of the cursor on that line.
func (s DocumentSnapshot) LinePrefix() string {
	r := []rune(s.CurrentLine)
	if s.Cursor.Col >= len(r) {
		return s.CurrentLine
	}
	if s.Cursor.Col < 0 {
		return ""
	}
	return string(r[:s.Cursor.Col])
}

// Suggestion is the single completion surfaced to the host editor.
type Suggestion struct {
	// Text to insert at the cursor.
	InsertText string `json:"insert_text"`
}

// TokenUsage contains token accounting returned by a backend.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerateResult is the raw outcome of one text-generation call.
type GenerateResult struct {
	Text  string     `json:"text"`
	Usage TokenUsage `json:"usage"`
}
