package analytics

// Sentence structure classifications.
const (
	StructureShort    = "prefers short, concise posts"
	StructureLong     = "often writes longer, detailed posts"
	StructureBalanced = "balanced mix of short and medium-length posts"
)

// Writing style classifications.
const (
	StyleEngaging     = "engaging and interactive, uses questions and exclamations"
	StyleInquisitive  = "thoughtful and inquisitive, often asks questions"
	StyleEnthusiastic = "enthusiastic and expressive"
	StyleDirect       = "direct and informative"
)

// ClassifyStructure picks the sentence structure from post length counts.
// The short rule is checked before the long rule.
func ClassifyStructure(total, short, long int, opts Options) string {
	opts = opts.WithDefaults()
	n := float64(total)
	switch {
	case float64(short) > n*opts.ShortFraction:
		return StructureShort
	case float64(long) > n*opts.LongFraction:
		return StructureLong
	default:
		return StructureBalanced
	}
}

// ClassifyStyle picks the writing style from corpus-wide punctuation flags:
// a single post with '?' or '!' is enough to set the flag.
func ClassifyStyle(hasQuestion, hasExclamation bool) string {
	switch {
	case hasQuestion && hasExclamation:
		return StyleEngaging
	case hasQuestion:
		return StyleInquisitive
	case hasExclamation:
		return StyleEnthusiastic
	default:
		return StyleDirect
	}
}
