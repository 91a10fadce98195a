package llm

import (
	"strings"
	"testing"

	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
)

func TestCleanGenerated(t *testing.T) {
	cases := []struct {
		name   string
		prompt string
		text   string
		want   string
	}{
		{"drops trailing fragment", "", "Hello world. This is great! And then", "Hello world. This is great."},
		{"keeps complete text", "", "Done already.", "Done already."},
		{"single fragment kept", "", "no punctuation here", "no punctuation here"},
		{"strips echoed prompt", "P:", "P: Hi there.", "Hi there."},
		{"first line only", "", "First line\nsecond line", "First line"},
		{"fragment then newline", "", "Wow! Amazing\nNext", "Wow."},
		{"blank", "", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanGenerated(tc.prompt, tc.text, 280); got != tc.want {
				t.Fatalf("CleanGenerated(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestCleanGeneratedTruncates(t *testing.T) {
	got := CleanGenerated("", strings.Repeat("é", 300), 280)
	if n := ingest.TextLength(got); n != 280 {
		t.Fatalf("expected 280 units, got %d", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got[len(got)-6:])
	}
}

func TestCleanGeneratedTruncatesEmojiByUTF16Units(t *testing.T) {
	// 140 rockets are 140 characters but 280 units, so they fit exactly.
	fits := strings.Repeat("🚀", 140)
	if got := CleanGenerated("", fits, 280); got != fits {
		t.Fatalf("text at the limit should be kept, got %d units", ingest.TextLength(got))
	}

	got := CleanGenerated("", strings.Repeat("🚀", 141), 280)
	if n := ingest.TextLength(got); n > 280 {
		t.Fatalf("expected at most 280 units, got %d", n)
	}
	// 138 rockets fill 276 of the 277 units; a pair cannot be split.
	if want := strings.Repeat("🚀", 138) + "..."; got != want {
		t.Fatalf("unexpected truncation: %d units", ingest.TextLength(got))
	}
}

func TestGenerationOptionsDefaults(t *testing.T) {
	got := GenerationOptions{TopK: 10}.withDefaults()
	if got.TopK != 10 {
		t.Fatalf("explicit TopK overwritten: %d", got.TopK)
	}
	if got.MaxLength != DefaultMaxLength || got.NumReturn != DefaultNumReturn || got.TopP != DefaultTopP {
		t.Fatalf("defaults not applied: %+v", got)
	}
	if got.maxTokens() != 100 {
		t.Fatalf("expected max tokens 100, got %d", got.maxTokens())
	}
}
