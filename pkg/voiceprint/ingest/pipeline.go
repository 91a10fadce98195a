package ingest

import "strings"

// Pipeline orchestrates per-post processing:
// text → marker extraction → cleaning → tokenization → word/phrase selection
type Pipeline struct {
	tokenizer *Tokenizer
}

// NewPipeline creates a pipeline around the given tokenizer
func NewPipeline(tokenizer *Tokenizer) *Pipeline {
	if tokenizer == nil {
		tokenizer = NewDefaultTokenizer()
	}
	return &Pipeline{tokenizer: tokenizer}
}

// Tokenizer returns the tokenizer backing the pipeline.
func (p *Pipeline) Tokenizer() *Tokenizer {
	return p.tokenizer
}

// ProcessedPost holds everything the analyzer needs from a single post.
type ProcessedPost struct {
	Length         int      // raw length in UTF-16 code units
	Emoji          []string // emoji glyphs, in order
	Hashtags       []string // hashtags including '#', in order
	Tokens         []string // all lowercase word tokens of the cleaned text
	Words          []string // tokens counted as vocabulary
	Phrases        []string // eligible adjacent token pairs joined by a space
	HasQuestion    bool
	HasExclamation bool
}

// Process runs a post's text through the pipeline. Each call is independent.
func (p *Pipeline) Process(text string) ProcessedPost {
	tok := p.tokenizer

	tokens := tok.Tokenize(tok.Clean(text))

	var words []string
	for _, w := range tokens {
		if tok.Countable(w) {
			words = append(words, w)
		}
	}

	var phrases []string
	for i := 0; i < len(tokens)-1; i++ {
		if tok.PhraseEligible(tokens[i], tokens[i+1]) {
			phrases = append(phrases, tokens[i]+" "+tokens[i+1])
		}
	}

	return ProcessedPost{
		Length:         TextLength(text),
		Emoji:          tok.Emoji(text),
		Hashtags:       tok.Hashtags(text),
		Tokens:         tokens,
		Words:          words,
		Phrases:        phrases,
		HasQuestion:    strings.Contains(text, "?"),
		HasExclamation: strings.Contains(text, "!"),
	}
}
