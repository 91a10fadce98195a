package analytics

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
	"github.com/cognicore/voiceprint/pkg/voiceprint/internalerr"
)

var launchCorpus = []string{
	"I love AI! #tech 🚀",
	"AI is the future. #tech",
	"I love building AI tools! 🚀🚀",
}

func TestAnalyzeLaunchCorpus(t *testing.T) {
	profile, err := Analyze(launchCorpus, Options{})
	require.NoError(t, err)

	assert.Equal(t, []TermCount{
		{Term: "love", Count: 2},
		{Term: "future", Count: 1},
		{Term: "building", Count: 1},
		{Term: "tools", Count: 1},
	}, profile.CommonWords)
	assert.Equal(t, []TermCount{{Term: "i love", Count: 2}}, profile.CommonPhrases)
	assert.Equal(t, []TermCount{{Term: "#tech", Count: 2}}, profile.HashtagUsage)
	assert.Equal(t, []TermCount{{Term: "🚀", Count: 3}}, profile.EmojiUsage)
	assert.Equal(t, StyleEnthusiastic, profile.WritingStyle)
	assert.Equal(t, StructureShort, profile.SentenceStructure)
	assert.Equal(t, []string{"love", "future", "building", "tools"}, profile.Topics)
	// (19 + 23 + 30) / 3, emoji count as two units
	assert.Equal(t, 24, profile.AverageLength)
}

func TestAnalyzeTwoLetterWords(t *testing.T) {
	profile, err := Analyze(launchCorpus, Options{MinWordLength: 2})
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(profile.CommonWords), 2)
	assert.Equal(t, TermCount{Term: "ai", Count: 3}, profile.CommonWords[0])
	assert.Equal(t, TermCount{Term: "love", Count: 2}, profile.CommonWords[1])
	for _, w := range profile.CommonWords[2:] {
		assert.Equal(t, 1, w.Count, "singletons should rank below %q", w.Term)
	}
}

func TestAnalyzeEmptyCorpus(t *testing.T) {
	profile, err := Analyze(nil, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCorpus)
	assert.ErrorIs(t, err, internalerr.ErrEmptyCorpus)
	assert.Equal(t, Profile{}, profile)

	_, err = NewAnalyzer(nil, Options{}).Profile()
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestAnalyzeTieBreakFirstSeen(t *testing.T) {
	corpus := []string{
		"zeta alpha",
		"gamma alpha zeta",
		"beta gamma",
	}
	profile, err := Analyze(corpus, Options{})
	require.NoError(t, err)

	// zeta, alpha and gamma all occur twice; zeta was seen first.
	var order []string
	for _, w := range profile.CommonWords {
		order = append(order, w.Term)
	}
	assert.Equal(t, []string{"zeta", "alpha", "gamma", "beta"}, order)
}

func TestAnalyzeSortedNonIncreasing(t *testing.T) {
	corpus := []string{
		"rust rust go go go python",
		"python python python haskell go",
		"elixir rust haskell",
	}
	profile, err := Analyze(corpus, Options{MinWordLength: 2})
	require.NoError(t, err)

	for i := 1; i < len(profile.CommonWords); i++ {
		assert.GreaterOrEqual(t, profile.CommonWords[i-1].Count, profile.CommonWords[i].Count)
	}
}

func TestAnalyzeCaps(t *testing.T) {
	var corpus []string
	for i := 0; i < 30; i++ {
		var b strings.Builder
		fmt.Fprintf(&b, "term%02d shared phrase%02d shared phrase%02d ", i, i, i)
		b.WriteRune(rune(0x1F600 + i))
		fmt.Fprintf(&b, " #tag%02d", i)
		corpus = append(corpus, b.String())
	}

	profile, err := Analyze(corpus, Options{})
	require.NoError(t, err)

	assert.Len(t, profile.CommonWords, DefaultMaxWords)
	assert.Len(t, profile.CommonPhrases, DefaultMaxPhrases)
	assert.Len(t, profile.EmojiUsage, DefaultMaxEmoji)
	assert.Len(t, profile.HashtagUsage, DefaultMaxHashtags)
	assert.Len(t, profile.Topics, DefaultMaxTopics)
	assert.Equal(t, TermCount{Term: "shared", Count: 60}, profile.CommonWords[0])
	assert.Equal(t, "shared", profile.Topics[0])
}

func TestAnalyzeCustomCaps(t *testing.T) {
	profile, err := Analyze(launchCorpus, Options{MaxWords: 2, MaxTopics: 3})
	require.NoError(t, err)

	assert.Len(t, profile.CommonWords, 2)
	assert.Equal(t, []string{"love", "future"}, profile.Topics)
}

func TestAnalyzePhrasesNeedRepeats(t *testing.T) {
	corpus := []string{
		"the future of work",
		"the future is near",
		"of the people",
		"of the crowd",
	}
	profile, err := Analyze(corpus, Options{})
	require.NoError(t, err)

	for _, p := range profile.CommonPhrases {
		assert.Greater(t, p.Count, 1, "phrase %q", p.Term)
	}
	assert.Equal(t, []TermCount{{Term: "the future", Count: 2}}, profile.CommonPhrases)
}

func TestAnalyzeAverageLength(t *testing.T) {
	tests := []struct {
		name   string
		corpus []string
		want   int
	}{
		{"ten posts of fifty", repeat(strings.Repeat("x", 50), 10), 50},
		{"rounds half up", []string{"abc", "abcd"}, 4},
		{"exact mean", []string{"ab", "abc", "abcd"}, 3},
		{"rounds to nearest", []string{"a", "ab", "ab"}, 2},
		{"rounds down", []string{"a", "a", "ab"}, 1},
		{"empty texts", []string{"", ""}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := Analyze(tt.corpus, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, profile.AverageLength)
		})
	}
}

func TestAnalyzeWritingStyle(t *testing.T) {
	tests := []struct {
		corpus []string
		want   string
	}{
		{[]string{"Is this thing on?", "Yes it is!"}, StyleEngaging},
		{[]string{"What do you think?", "plain post"}, StyleInquisitive},
		{[]string{"Wow!", "plain post"}, StyleEnthusiastic},
		{[]string{"plain post", "another one"}, StyleDirect},
	}
	for _, tt := range tests {
		profile, err := Analyze(tt.corpus, Options{})
		require.NoError(t, err)
		assert.Equal(t, tt.want, profile.WritingStyle, "corpus %q", tt.corpus)
	}
}

func TestAnalyzeSentenceStructure(t *testing.T) {
	short := strings.Repeat("s", 20)
	medium := strings.Repeat("m", 150)
	long := strings.Repeat("l", 250)

	tests := []struct {
		name   string
		corpus []string
		want   string
	}{
		{"all short", []string{short, short, short}, StructureShort},
		{"mostly long", []string{long, long, medium}, StructureLong},
		{"medium", []string{medium, medium}, StructureBalanced},
		// 3 of 5 short is exactly 0.6, which is not above the threshold.
		{"short at threshold", []string{short, short, short, medium, medium}, StructureBalanced},
		// 2 of 5 long is exactly 0.4, also not above.
		{"long at threshold", []string{long, long, medium, medium, medium}, StructureBalanced},
		{"length 100 is not short", repeat(strings.Repeat("x", 100), 3), StructureBalanced},
		{"length 200 is not long", repeat(strings.Repeat("x", 200), 3), StructureBalanced},
		// 99 characters but 100 UTF-16 units
		{"emoji pushes past short", repeat("🚀"+strings.Repeat("x", 98), 3), StructureBalanced},
		{"emoji pushes past long", repeat("🚀"+strings.Repeat("x", 199), 3), StructureLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := Analyze(tt.corpus, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, profile.SentenceStructure)
		})
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	corpus := append([]string{"Why not? #go @gopher https://go.dev ✨"}, launchCorpus...)

	first, err := Analyze(corpus, Options{})
	require.NoError(t, err)
	second, err := Analyze(corpus, Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeIgnoresMentionsAndURLs(t *testing.T) {
	profile, err := Analyze([]string{
		"ping @gopher about https://golang.org/doc",
		"ping @gopher again",
	}, Options{})
	require.NoError(t, err)

	for _, w := range profile.CommonWords {
		assert.NotContains(t, []string{"gopher", "golang", "org", "doc", "https"}, w.Term)
	}
	assert.Equal(t, TermCount{Term: "ping", Count: 2}, profile.CommonWords[0])
}

func TestAnalyzerSnapshotIsCopy(t *testing.T) {
	a := NewAnalyzer(nil, Options{})
	a.Process("hello world")

	snap := a.Snapshot()
	a.Process("hello again")

	assert.Equal(t, 1, snap.TotalPosts)
	assert.Equal(t, []TermCount{{Term: "hello", Count: 1}, {Term: "world", Count: 1}}, snap.Words)

	later := a.Snapshot()
	assert.Equal(t, 2, later.TotalPosts)
	assert.Equal(t, TermCount{Term: "hello", Count: 2}, later.Words[0])
}

func TestAnalyzeWithCustomPipeline(t *testing.T) {
	tok := ingest.NewTokenizer([]string{"love"})
	profile, err := AnalyzeWith(ingest.NewPipeline(tok), launchCorpus, Options{})
	require.NoError(t, err)

	for _, w := range profile.CommonWords {
		assert.NotEqual(t, "love", w.Term)
	}
	// "the" is no longer a stopword with this custom list.
	assert.Equal(t, "the", profile.CommonWords[0].Term)
}

func TestAnalyzePosts(t *testing.T) {
	profile, err := AnalyzePosts(ingest.FromTexts(launchCorpus), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"love", "future", "building", "tools"}, profile.Topics)

	_, err = AnalyzePosts(nil, Options{})
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
