package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/voiceprint/pkg/voiceprint/analytics"
	"github.com/cognicore/voiceprint/pkg/voiceprint/store"
)

const samplePosts = "testdata/posts.jsonl"

// execute runs the root command with fresh flag values and returns stdout.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags(RootCmd)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetArgs(args)
	require.NoError(t, RootCmd.Execute())
	return out.String()
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestAnalyzeFile(t *testing.T) {
	out := execute(t, "analyze", "--input", samplePosts)

	var profile analytics.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &profile))
	assert.Equal(t, 24, profile.AverageLength)
	assert.Equal(t, analytics.StyleEnthusiastic, profile.WritingStyle)
	assert.Equal(t, analytics.StructureShort, profile.SentenceStructure)
	require.NotEmpty(t, profile.CommonWords)
	assert.Equal(t, analytics.TermCount{Term: "love", Count: 2}, profile.CommonWords[0])
	assert.Equal(t, []analytics.TermCount{{Term: "#tech", Count: 2}}, profile.HashtagUsage)
	assert.Equal(t, []analytics.TermCount{{Term: "🚀", Count: 3}}, profile.EmojiUsage)
}

func TestPromptFromFile(t *testing.T) {
	out := execute(t, "prompt", "--input", samplePosts, "--topic", "Write about Go generics")

	assert.True(t, strings.HasPrefix(out, "Style Guide:\n"), out)
	assert.Contains(t, out, "- Emoji usage: 🚀\n")
	assert.Contains(t, out, "- Average length: 24 characters\n")
	assert.Contains(t, out, "Task: Write about Go generics\n")
}

func TestImportSnapshotHistoryShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "voiceprint.db")

	out := execute(t, "--db", db, "import", "--input", samplePosts, "--author", "ada")
	assert.JSONEq(t, `{"ok":true,"imported":3}`, out)

	out = execute(t, "--db", db, "analyze", "--author", "ada", "--limit", "2")
	var rec store.ProfileRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "ada", rec.Author)
	assert.Equal(t, 2, rec.PostCount)
	assert.NotEmpty(t, rec.ID)

	out = execute(t, "--db", db, "analyze", "--input", samplePosts, "--author", "ada", "--save")
	var saved store.ProfileRecord
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	assert.Equal(t, 3, saved.PostCount)

	out = execute(t, "--db", db, "history", "--author", "ada", "--ids-only")
	ids := strings.Fields(out)
	require.Len(t, ids, 2)
	assert.ElementsMatch(t, []string{rec.ID, saved.ID}, ids)

	out = execute(t, "--db", db, "show", saved.ID)
	var shown store.ProfileRecord
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, saved.ID, shown.ID)
	assert.Equal(t, 24, shown.Profile.AverageLength)

	out = execute(t, "--db", db, "prompt", "--profile", saved.ID, "--topic", "Write about testing")
	assert.Contains(t, out, "Task: Write about testing\n")
}
