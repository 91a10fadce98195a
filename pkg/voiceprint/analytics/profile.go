package analytics

import "math"

// Profile is the statistical fingerprint of an author's writing style.
// A Profile is never modified after it is returned.
type Profile struct {
	CommonWords       []TermCount `json:"common_words"`
	CommonPhrases     []TermCount `json:"common_phrases"`
	EmojiUsage        []TermCount `json:"emoji_usage"`
	HashtagUsage      []TermCount `json:"hashtag_usage"`
	AverageLength     int         `json:"average_length"`
	SentenceStructure string      `json:"sentence_structure"`
	WritingStyle      string      `json:"writing_style"`
	Topics            []string    `json:"topics"`
}

// Profile applies the caps and classification policy in opts.
func (s Stats) Profile(opts Options) (Profile, error) {
	if s.TotalPosts == 0 {
		return Profile{}, ErrEmptyCorpus
	}
	opts = opts.WithDefaults()

	words := filterAndCap(s.Words, 0, opts.MaxWords)
	topicCount := opts.MaxTopics
	if topicCount > len(words) {
		topicCount = len(words)
	}
	topics := make([]string, 0, topicCount)
	for _, w := range words[:topicCount] {
		topics = append(topics, w.Term)
	}

	return Profile{
		CommonWords:       words,
		CommonPhrases:     filterAndCap(s.Phrases, opts.MinPhraseCount, opts.MaxPhrases),
		EmojiUsage:        filterAndCap(s.Emoji, 0, opts.MaxEmoji),
		HashtagUsage:      filterAndCap(s.Hashtags, 0, opts.MaxHashtags),
		AverageLength:     int(math.Round(float64(s.TotalLength) / float64(s.TotalPosts))),
		SentenceStructure: ClassifyStructure(s.TotalPosts, s.ShortPosts, s.LongPosts, opts),
		WritingStyle:      ClassifyStyle(s.HasQuestion, s.HasExclamation),
		Topics:            topics,
	}, nil
}
