package analytics

import (
	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
	"github.com/cognicore/voiceprint/pkg/voiceprint/internalerr"
)

// ErrEmptyCorpus is returned when a profile is requested for zero posts.
var ErrEmptyCorpus = internalerr.ErrEmptyCorpus

// Analyzer aggregates post-level style statistics. An Analyzer is not safe
// for concurrent use; create one per corpus.
type Analyzer struct {
	pipeline *ingest.Pipeline
	opts     Options

	totalPosts     int
	totalLength    int
	shortPosts     int
	longPosts      int
	hasQuestion    bool
	hasExclamation bool

	words    *counter
	phrases  *counter
	emoji    *counter
	hashtags *counter
}

// NewAnalyzer creates an empty analyzer. A nil pipeline uses the default
// tokenizer with opts.MinWordLength.
func NewAnalyzer(pipeline *ingest.Pipeline, opts Options) *Analyzer {
	opts = opts.WithDefaults()
	if pipeline == nil {
		tok := ingest.NewDefaultTokenizer()
		tok.SetMinWordLength(opts.MinWordLength)
		pipeline = ingest.NewPipeline(tok)
	}
	return &Analyzer{
		pipeline: pipeline,
		opts:     opts,
		words:    newCounter(),
		phrases:  newCounter(),
		emoji:    newCounter(),
		hashtags: newCounter(),
	}
}

// Process consumes one post's raw text.
func (a *Analyzer) Process(text string) {
	a.ProcessParsed(a.pipeline.Process(text))
}

// ProcessParsed consumes a post that already went through the pipeline.
func (a *Analyzer) ProcessParsed(p ingest.ProcessedPost) {
	a.totalPosts++
	a.totalLength += p.Length

	if p.Length < a.opts.ShortPostLength {
		a.shortPosts++
	}
	if p.Length > a.opts.LongPostLength {
		a.longPosts++
	}
	a.hasQuestion = a.hasQuestion || p.HasQuestion
	a.hasExclamation = a.hasExclamation || p.HasExclamation

	a.emoji.addAll(p.Emoji)
	a.hashtags.addAll(p.Hashtags)
	a.words.addAll(p.Words)
	a.phrases.addAll(p.Phrases)
}

// Stats exposes the aggregated counts, fully ranked and uncapped.
type Stats struct {
	TotalPosts     int
	TotalLength    int
	ShortPosts     int
	LongPosts      int
	HasQuestion    bool
	HasExclamation bool
	Words          []TermCount
	Phrases        []TermCount
	Emoji          []TermCount
	Hashtags       []TermCount
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Analyzer) Snapshot() Stats {
	return Stats{
		TotalPosts:     a.totalPosts,
		TotalLength:    a.totalLength,
		ShortPosts:     a.shortPosts,
		LongPosts:      a.longPosts,
		HasQuestion:    a.hasQuestion,
		HasExclamation: a.hasExclamation,
		Words:          a.words.ranked(0, 0),
		Phrases:        a.phrases.ranked(0, 0),
		Emoji:          a.emoji.ranked(0, 0),
		Hashtags:       a.hashtags.ranked(0, 0),
	}
}

// Profile derives the style profile from everything processed so far.
func (a *Analyzer) Profile() (Profile, error) {
	return a.Snapshot().Profile(a.opts)
}

// Analyze builds a profile from raw post texts in one call.
func Analyze(texts []string, opts Options) (Profile, error) {
	return AnalyzeWith(nil, texts, opts)
}

// AnalyzeWith is Analyze with a caller-supplied pipeline.
func AnalyzeWith(pipeline *ingest.Pipeline, texts []string, opts Options) (Profile, error) {
	if len(texts) == 0 {
		return Profile{}, ErrEmptyCorpus
	}
	a := NewAnalyzer(pipeline, opts)
	for _, text := range texts {
		a.Process(text)
	}
	return a.Profile()
}

// AnalyzePosts builds a profile from posts, reading only their text.
func AnalyzePosts(posts []ingest.Post, opts Options) (Profile, error) {
	return Analyze(ingest.Texts(posts), opts)
}
