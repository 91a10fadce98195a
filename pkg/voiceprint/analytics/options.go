package analytics

import (
	"fmt"

	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
	"github.com/cognicore/voiceprint/pkg/voiceprint/internalerr"
)

// Default policy constants.
const (
	DefaultShortPostLength = 100
	DefaultLongPostLength  = 200
	DefaultShortFraction   = 0.6
	DefaultLongFraction    = 0.4
	DefaultMaxWords        = 20
	DefaultMaxPhrases      = 15
	DefaultMinPhraseCount  = 2
	DefaultMaxEmoji        = 10
	DefaultMaxHashtags     = 10
	DefaultMaxTopics       = 5
)

// Options holds the thresholds and caps used to build a Profile.
// Zero values take the defaults above.
type Options struct {
	// MinWordLength applies only when Analyze builds its own pipeline;
	// a caller-supplied pipeline keeps its tokenizer's setting.
	MinWordLength int

	ShortPostLength int     // raw length strictly below this is short
	LongPostLength  int     // raw length strictly above this is long
	ShortFraction   float64 // share of short posts needed for StructureShort
	LongFraction    float64 // share of long posts needed for StructureLong

	MaxWords       int
	MaxPhrases     int
	MinPhraseCount int
	MaxEmoji       int
	MaxHashtags    int
	MaxTopics      int
}

// DefaultOptions returns the built-in policy.
func DefaultOptions() Options {
	return Options{
		MinWordLength:   ingest.DefaultMinWordLength,
		ShortPostLength: DefaultShortPostLength,
		LongPostLength:  DefaultLongPostLength,
		ShortFraction:   DefaultShortFraction,
		LongFraction:    DefaultLongFraction,
		MaxWords:        DefaultMaxWords,
		MaxPhrases:      DefaultMaxPhrases,
		MinPhraseCount:  DefaultMinPhraseCount,
		MaxEmoji:        DefaultMaxEmoji,
		MaxHashtags:     DefaultMaxHashtags,
		MaxTopics:       DefaultMaxTopics,
	}
}

// WithDefaults fills zero fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.MinWordLength == 0 {
		o.MinWordLength = d.MinWordLength
	}
	if o.ShortPostLength == 0 {
		o.ShortPostLength = d.ShortPostLength
	}
	if o.LongPostLength == 0 {
		o.LongPostLength = d.LongPostLength
	}
	if o.ShortFraction == 0 {
		o.ShortFraction = d.ShortFraction
	}
	if o.LongFraction == 0 {
		o.LongFraction = d.LongFraction
	}
	if o.MaxWords == 0 {
		o.MaxWords = d.MaxWords
	}
	if o.MaxPhrases == 0 {
		o.MaxPhrases = d.MaxPhrases
	}
	if o.MinPhraseCount == 0 {
		o.MinPhraseCount = d.MinPhraseCount
	}
	if o.MaxEmoji == 0 {
		o.MaxEmoji = d.MaxEmoji
	}
	if o.MaxHashtags == 0 {
		o.MaxHashtags = d.MaxHashtags
	}
	if o.MaxTopics == 0 {
		o.MaxTopics = d.MaxTopics
	}
	return o
}

// Validate rejects option sets that cannot produce a meaningful profile.
func (o Options) Validate() error {
	if o.MinWordLength < 0 || o.ShortPostLength < 0 || o.LongPostLength < 0 {
		return fmt.Errorf("%w: lengths must be non-negative", internalerr.ErrInvalidConfig)
	}
	if o.LongPostLength < o.ShortPostLength {
		return fmt.Errorf("%w: long post length %d below short post length %d",
			internalerr.ErrInvalidConfig, o.LongPostLength, o.ShortPostLength)
	}
	if o.ShortFraction < 0 || o.ShortFraction > 1 || o.LongFraction < 0 || o.LongFraction > 1 {
		return fmt.Errorf("%w: fractions must be within [0,1]", internalerr.ErrInvalidConfig)
	}
	if o.MaxWords < 0 || o.MaxPhrases < 0 || o.MinPhraseCount < 0 ||
		o.MaxEmoji < 0 || o.MaxHashtags < 0 || o.MaxTopics < 0 {
		return fmt.Errorf("%w: caps must be non-negative", internalerr.ErrInvalidConfig)
	}
	return nil
}
