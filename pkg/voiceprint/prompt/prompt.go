// Package prompt renders a style profile into an instruction for a text
// generator.
package prompt

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cognicore/voiceprint/pkg/voiceprint/analytics"
)

// Defaults for the rendered guide.
const (
	DefaultVocabulary  = 10
	DefaultPhrases     = 5
	DefaultEmoji       = 5
	DefaultTask        = "Write a post"
	DefaultClosingLine = "Write a post that matches this style:"

	// NoEmoji replaces the emoji list when the author uses none.
	NoEmoji = "minimal"
)

// Options controls how much of the profile is rendered.
// Zero values take the defaults above.
type Options struct {
	Vocabulary  int
	Phrases     int
	Emoji       int
	DefaultTask string
	ClosingLine string
}

// Builder renders prompts. The zero value is usable.
type Builder struct {
	opts Options
}

// New creates a builder with the given options.
func New(opts Options) *Builder {
	return &Builder{opts: opts.withDefaults()}
}

func (o Options) withDefaults() Options {
	if o.Vocabulary <= 0 {
		o.Vocabulary = DefaultVocabulary
	}
	if o.Phrases <= 0 {
		o.Phrases = DefaultPhrases
	}
	if o.Emoji <= 0 {
		o.Emoji = DefaultEmoji
	}
	if strings.TrimSpace(o.DefaultTask) == "" {
		o.DefaultTask = DefaultTask
	}
	if strings.TrimSpace(o.ClosingLine) == "" {
		o.ClosingLine = DefaultClosingLine
	}
	return o
}

// Synthesize renders profile with the default builder. An empty topic
// falls back to DefaultTask.
func Synthesize(profile analytics.Profile, topic string) string {
	return New(Options{}).Build(profile, topic)
}

// Build renders the style guide followed by the task. Field order is fixed:
// vocabulary, phrases, emoji, average length, writing style, sentence
// structure, topics.
func (b *Builder) Build(profile analytics.Profile, topic string) string {
	opts := b.opts.withDefaults()
	task := strings.TrimSpace(topic)
	if task == "" {
		task = opts.DefaultTask
	}

	emoji := NoEmoji
	if len(profile.EmojiUsage) > 0 {
		emoji = strings.Join(terms(profile.EmojiUsage, opts.Emoji), " ")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Style Guide:\n")
	fmt.Fprintf(&buf, "- Common vocabulary: %s\n", strings.Join(terms(profile.CommonWords, opts.Vocabulary), ", "))
	fmt.Fprintf(&buf, "- Typical phrases: %s\n", strings.Join(terms(profile.CommonPhrases, opts.Phrases), "; "))
	fmt.Fprintf(&buf, "- Emoji usage: %s\n", emoji)
	fmt.Fprintf(&buf, "- Average length: %d characters\n", profile.AverageLength)
	fmt.Fprintf(&buf, "- Writing style: %s\n", profile.WritingStyle)
	fmt.Fprintf(&buf, "- Sentence structure: %s\n", profile.SentenceStructure)
	fmt.Fprintf(&buf, "- Common topics: %s\n", strings.Join(profile.Topics, ", "))
	fmt.Fprintf(&buf, "\nTask: %s\n\n%s", task, opts.ClosingLine)
	return buf.String()
}

func terms(counts []analytics.TermCount, limit int) []string {
	if limit > len(counts) {
		limit = len(counts)
	}
	out := make([]string, 0, limit)
	for _, c := range counts[:limit] {
		out = append(out, c.Term)
	}
	return out
}
