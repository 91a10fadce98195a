package ingest

import (
	"regexp"
	"strings"

	"github.com/cognicore/voiceprint/pkg/voiceprint/stoplist"
)

// DefaultMinWordLength is the shortest word counted in word frequencies.
// Words of two characters or fewer are ignored.
const DefaultMinWordLength = 3

var (
	// Pictographs (U+1F300-1F9FF), miscellaneous symbols (U+2600-26FF)
	// and dingbats (U+2700-27BF). Matches single code points only.
	emojiPattern   = regexp.MustCompile(`[\x{1F300}-\x{1F9FF}]|[\x{2600}-\x{26FF}]|[\x{2700}-\x{27BF}]`)
	hashtagPattern = regexp.MustCompile(`#\w+`)
	mentionPattern = regexp.MustCompile(`@\w+`)
	urlPattern     = regexp.MustCompile(`https?://\S+`)
	wordPattern    = regexp.MustCompile(`\b\w+\b`)
)

// Tokenizer extracts style markers from post text and splits the remainder
// into lowercase word tokens.
type Tokenizer struct {
	stops         *stoplist.Manager
	minWordLength int
}

// NewTokenizer creates a tokenizer with the given stopword list
func NewTokenizer(stopwords []string) *Tokenizer {
	return NewTokenizerWithManager(stoplist.NewManager(stopwords))
}

// NewTokenizerWithManager creates a tokenizer sharing an existing stoplist.
func NewTokenizerWithManager(m *stoplist.Manager) *Tokenizer {
	if m == nil {
		m = stoplist.NewManager(nil)
	}
	return &Tokenizer{stops: m, minWordLength: DefaultMinWordLength}
}

// NewDefaultTokenizer creates a tokenizer using the built-in stoplist.
func NewDefaultTokenizer() *Tokenizer {
	return NewTokenizerWithManager(stoplist.NewDefault())
}

// SetMinWordLength changes the shortest word that Countable accepts.
// Values below 1 are clamped to 1.
func (t *Tokenizer) SetMinWordLength(n int) {
	if n < 1 {
		n = 1
	}
	t.minWordLength = n
}

// Emoji returns every emoji glyph in text, in order of appearance.
func (t *Tokenizer) Emoji(text string) []string {
	return emojiPattern.FindAllString(text, -1)
}

// Hashtags returns every hashtag in text including the leading '#'.
func (t *Tokenizer) Hashtags(text string) []string {
	return hashtagPattern.FindAllString(text, -1)
}

// Clean strips emoji, hashtags, mentions and URLs, in that order, and
// lowercases what remains.
func (t *Tokenizer) Clean(text string) string {
	text = emojiPattern.ReplaceAllString(text, "")
	text = hashtagPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")
	return strings.ToLower(text)
}

// Tokenize splits cleaned text into word tokens. Stopwords are kept so
// that adjacent pairs can still be formed from them.
func (t *Tokenizer) Tokenize(cleaned string) []string {
	return wordPattern.FindAllString(cleaned, -1)
}

// IsStopword reports whether word is in the stoplist.
func (t *Tokenizer) IsStopword(word string) bool {
	return t.stops.IsStop(word)
}

// Countable reports whether word contributes to single-word frequencies.
func (t *Tokenizer) Countable(word string) bool {
	return len(word) >= t.minWordLength && !t.stops.IsStop(word)
}

// PhraseEligible reports whether the adjacent pair (a, b) is counted as a
// phrase. Only pairs made entirely of stopwords are rejected; the length
// rule does not apply here.
func (t *Tokenizer) PhraseEligible(a, b string) bool {
	return !t.stops.IsStop(a) || !t.stops.IsStop(b)
}

// AddStopword adds a word to the stopword list
func (t *Tokenizer) AddStopword(word string) {
	t.stops.Add(word)
}

// RemoveStopword removes a word from the stopword list
func (t *Tokenizer) RemoveStopword(word string) {
	t.stops.Remove(word)
}
