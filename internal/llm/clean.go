package llm

import (
	"regexp"
	"strings"

	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
)

var sentenceBreak = regexp.MustCompile(`[.!?]\s+`)

const ellipsis = "..."

// CleanGenerated turns a raw model completion into a single post.
// The echoed prompt is removed, a trailing unfinished sentence is dropped,
// only the first line is kept and the result is capped at maxLen UTF-16 code units.
func CleanGenerated(prompt, text string, maxLen int) string {
	if prompt != "" {
		text = strings.Replace(text, prompt, "", 1)
	}
	text = strings.TrimSpace(text)

	sentences := sentenceBreak.Split(text, -1)
	if len(sentences) > 1 && !endsWithTerminal(text) {
		sentences = sentences[:len(sentences)-1]
		text = strings.Join(sentences, ". ") + "."
	}

	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)

	if maxLen > 0 && ingest.TextLength(text) > maxLen {
		text = ingest.TruncateText(text, maxLen-len(ellipsis)) + ellipsis
	}
	return text
}

func endsWithTerminal(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}
