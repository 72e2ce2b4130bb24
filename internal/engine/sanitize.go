package engine

import "strings"

// Markers the model is instructed to wrap its completion in. Extraction is
// an explicit two-marker scan, not a pattern match: the span runs from the
// first opening marker (or the start of the text) to the first closing
// marker after it (or the end), i.e. the shortest satisfying span.
const (
	openMarker  = "<COMPLETION>"
	closeMarker = "</COMPLETION>"
)

// Sanitize turns raw model output into the text to insert at the cursor.
// linePrefix is the part of the current line already typed; models often
// echo it back, so an exact prefix match is stripped. An empty return
// value means "no suggestion", never an empty suggestion.
func Sanitize(raw, linePrefix string) string {
	s := raw
	if i := strings.Index(s, openMarker); i >= 0 {
		s = s[i+len(openMarker):]
	}
	if j := strings.Index(s, closeMarker); j >= 0 {
		s = s[:j]
	}
	if s == "" {
		return ""
	}
	if linePrefix != "" {
		s = strings.TrimPrefix(s, linePrefix)
	}
	return s
}
