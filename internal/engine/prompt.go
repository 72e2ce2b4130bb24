package engine

import (
	"strings"

	"completiond/pkg/types"
)

// systemPrompt instructs the model to emit only the insertable completion,
// wrapped in the markers Sanitize extracts.
const systemPrompt = `You are a code completion engine inside an editor.
Complete the code at the cursor position. Output ONLY the completion text,
wrapped in <COMPLETION></COMPLETION> tags, without markdown, explanations
or surrounding code. The completion continues exactly from the cursor.`

// Context sent to the backend is trimmed to keep request latency bounded;
// the tail of the prefix and the head of the suffix carry the signal.
const (
	maxPrefixBytes = 8192
	maxSuffixBytes = 2048
)

// buildPrompt assembles the system and user prompts for one snapshot.
func buildPrompt(snap types.DocumentSnapshot) (system, user string) {
	prefix := snap.Prefix
	if len(prefix) > maxPrefixBytes {
		cut := prefix[len(prefix)-maxPrefixBytes:]
		// resync to a line start so the model never sees a torn line
		if i := strings.IndexByte(cut, '\n'); i >= 0 {
			cut = cut[i+1:]
		}
		prefix = cut
	}
	suffix := snap.Suffix
	if len(suffix) > maxSuffixBytes {
		cut := suffix[:maxSuffixBytes]
		if i := strings.LastIndexByte(cut, '\n'); i >= 0 {
			cut = cut[:i]
		}
		suffix = cut
	}

	var b strings.Builder
	if snap.Language != "" {
		b.WriteString("Language: ")
		b.WriteString(snap.Language)
		b.WriteString("\n")
	}
	if snap.Path != "" {
		b.WriteString("File: ")
		b.WriteString(snap.Path)
		b.WriteString("\n")
	}
	b.WriteString("Code before cursor:\n")
	b.WriteString(prefix)
	b.WriteString("\nCode after cursor:\n")
	b.WriteString(suffix)
	return systemPrompt, b.String()
}
