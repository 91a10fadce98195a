// Package storetest holds behaviour checks shared by every store.Store
// backend.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cognicore/voiceprint/pkg/voiceprint/analytics"
	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
	"github.com/cognicore/voiceprint/pkg/voiceprint/internalerr"
	"github.com/cognicore/voiceprint/pkg/voiceprint/store"
)

// Factory returns a fresh, empty store. Cleanup is the factory's job.
type Factory func(t *testing.T) store.Store

var base = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

// Run exercises a backend against the store.Store contract.
func Run(t *testing.T, newStore Factory) {
	t.Run("PostsNewestFirst", func(t *testing.T) { testPostsNewestFirst(t, newStore(t)) })
	t.Run("PostsUpsertReplaces", func(t *testing.T) { testPostsUpsertReplaces(t, newStore(t)) })
	t.Run("PostsLimitAndAuthor", func(t *testing.T) { testPostsLimitAndAuthor(t, newStore(t)) })
	t.Run("PostsInvalid", func(t *testing.T) { testPostsInvalid(t, newStore(t)) })
	t.Run("ProfileRoundTrip", func(t *testing.T) { testProfileRoundTrip(t, newStore(t)) })
	t.Run("ProfileMissing", func(t *testing.T) { testProfileMissing(t, newStore(t)) })
	t.Run("ProfileInvalid", func(t *testing.T) { testProfileInvalid(t, newStore(t)) })
	t.Run("ListProfiles", func(t *testing.T) { testListProfiles(t, newStore(t)) })
}

func testPostsNewestFirst(t *testing.T, s store.Store) {
	ctx := context.Background()
	posts := []ingest.Post{
		{ID: "1", Text: "oldest", CreatedAt: base},
		{ID: "2", Text: "newest", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "3", Text: "middle", CreatedAt: base.Add(time.Hour)},
		{ID: "4", Text: "undated a"},
		{ID: "5", Text: "undated b"},
	}
	if err := s.UpsertPosts(ctx, "alice", posts); err != nil {
		t.Fatalf("upsert posts: %v", err)
	}

	got, err := s.GetPosts(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("get posts: %v", err)
	}
	want := []string{"newest", "middle", "oldest", "undated a", "undated b"}
	if len(got) != len(want) {
		t.Fatalf("expected %d posts, got %d", len(want), len(got))
	}
	for i, text := range want {
		if got[i].Text != text {
			t.Errorf("post %d: expected %q, got %q", i, text, got[i].Text)
		}
		if got[i].Author != "alice" {
			t.Errorf("post %d: expected author alice, got %q", i, got[i].Author)
		}
	}
	if !got[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("created_at not preserved: %v", got[0].CreatedAt)
	}
	if !got[3].CreatedAt.IsZero() {
		t.Errorf("zero created_at should stay zero, got %v", got[3].CreatedAt)
	}
}

func testPostsUpsertReplaces(t *testing.T, s store.Store) {
	ctx := context.Background()
	if err := s.UpsertPosts(ctx, "bob", []ingest.Post{{ID: "a", Text: "first"}, {ID: "b", Text: "second"}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.UpsertPosts(ctx, "bob", []ingest.Post{{ID: "a", Text: "edited"}}); err != nil {
		t.Fatalf("upsert again: %v", err)
	}

	got, err := s.GetPosts(ctx, "bob", 0)
	if err != nil {
		t.Fatalf("get posts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 posts after replace, got %d", len(got))
	}
	if got[0].ID != "a" || got[0].Text != "edited" {
		t.Errorf("expected replaced post to keep its position, got %+v", got[0])
	}
}

func testPostsLimitAndAuthor(t *testing.T, s store.Store) {
	ctx := context.Background()
	var posts []ingest.Post
	for i, text := range []string{"one", "two", "three"} {
		posts = append(posts, ingest.Post{ID: text, Text: text, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}
	if err := s.UpsertPosts(ctx, "carol", posts); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.UpsertPosts(ctx, "dave", []ingest.Post{{ID: "one", Text: "dave's"}}); err != nil {
		t.Fatalf("upsert other author: %v", err)
	}

	got, err := s.GetPosts(ctx, "carol", 2)
	if err != nil {
		t.Fatalf("get posts: %v", err)
	}
	if len(got) != 2 || got[0].Text != "three" || got[1].Text != "two" {
		t.Errorf("unexpected limited posts: %+v", got)
	}

	none, err := s.GetPosts(ctx, "nobody", 10)
	if err != nil {
		t.Fatalf("get posts for unknown author: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no posts, got %d", len(none))
	}
}

func testPostsInvalid(t *testing.T, s store.Store) {
	ctx := context.Background()
	if err := s.UpsertPosts(ctx, "", []ingest.Post{{ID: "1"}}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("empty author: expected ErrInvalidInput, got %v", err)
	}
	if err := s.UpsertPosts(ctx, "erin", []ingest.Post{{Text: "no id"}}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("missing ID: expected ErrInvalidInput, got %v", err)
	}
}

func sampleRecord(id, author string, at time.Time) store.ProfileRecord {
	return store.ProfileRecord{
		ID:        id,
		Author:    author,
		CreatedAt: at,
		PostCount: 3,
		Profile: analytics.Profile{
			CommonWords:       []analytics.TermCount{{Term: "love", Count: 2}},
			CommonPhrases:     []analytics.TermCount{{Term: "i love", Count: 2}},
			EmojiUsage:        []analytics.TermCount{{Term: "🚀", Count: 3}},
			HashtagUsage:      []analytics.TermCount{{Term: "#tech", Count: 2}},
			AverageLength:     23,
			SentenceStructure: analytics.StructureShort,
			WritingStyle:      analytics.StyleEnthusiastic,
			Topics:            []string{"love"},
		},
	}
}

func testProfileRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()
	rec := sampleRecord("01HZX0000000000000000000AA", "alice", base)
	if err := s.UpsertProfile(ctx, rec); err != nil {
		t.Fatalf("upsert profile: %v", err)
	}

	got, found, err := s.GetProfile(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if !found {
		t.Fatal("expected profile to be found")
	}
	if got.ID != rec.ID || got.Author != rec.Author || got.PostCount != rec.PostCount {
		t.Errorf("record mismatch: got %+v", got)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("created_at mismatch: %v vs %v", got.CreatedAt, rec.CreatedAt)
	}
	assertProfileEqual(t, rec.Profile, got.Profile)

	// Mutating the returned copy must not leak back into the store.
	got.Profile.CommonWords[0].Count = 99
	again, _, err := s.GetProfile(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get profile again: %v", err)
	}
	if again.Profile.CommonWords[0].Count != 2 {
		t.Errorf("stored profile was mutated through a returned copy")
	}
}

func testProfileMissing(t *testing.T, s store.Store) {
	_, found, err := s.GetProfile(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("get missing profile: %v", err)
	}
	if found {
		t.Error("expected missing profile to be not found")
	}
}

func testProfileInvalid(t *testing.T, s store.Store) {
	ctx := context.Background()
	if err := s.UpsertProfile(ctx, sampleRecord("", "alice", base)); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("missing ID: expected ErrInvalidInput, got %v", err)
	}
	if err := s.UpsertProfile(ctx, sampleRecord("x", " ", base)); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("missing author: expected ErrInvalidInput, got %v", err)
	}
}

func testListProfiles(t *testing.T, s store.Store) {
	ctx := context.Background()
	recs := []store.ProfileRecord{
		sampleRecord("01A", "alice", base),
		sampleRecord("01C", "alice", base.Add(2*time.Hour)),
		sampleRecord("01B", "alice", base.Add(time.Hour)),
		sampleRecord("01D", "bob", base.Add(3*time.Hour)),
	}
	for _, rec := range recs {
		if err := s.UpsertProfile(ctx, rec); err != nil {
			t.Fatalf("upsert %s: %v", rec.ID, err)
		}
	}

	got, err := s.ListProfiles(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("list profiles: %v", err)
	}
	wantIDs := []string{"01C", "01B", "01A"}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d profiles, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("profile %d: expected %s, got %s", i, id, got[i].ID)
		}
	}

	limited, err := s.ListProfiles(ctx, "alice", 1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "01C" {
		t.Errorf("unexpected limited list: %+v", limited)
	}

	empty, err := s.ListProfiles(ctx, "nobody", 5)
	if err != nil {
		t.Fatalf("list for unknown author: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no profiles, got %d", len(empty))
	}
}

func assertProfileEqual(t *testing.T, want, got analytics.Profile) {
	t.Helper()
	if got.AverageLength != want.AverageLength ||
		got.SentenceStructure != want.SentenceStructure ||
		got.WritingStyle != want.WritingStyle {
		t.Errorf("scalar fields differ: want %+v, got %+v", want, got)
	}
	checkCounts(t, "common_words", want.CommonWords, got.CommonWords)
	checkCounts(t, "common_phrases", want.CommonPhrases, got.CommonPhrases)
	checkCounts(t, "emoji_usage", want.EmojiUsage, got.EmojiUsage)
	checkCounts(t, "hashtag_usage", want.HashtagUsage, got.HashtagUsage)
	if len(got.Topics) != len(want.Topics) {
		t.Fatalf("topics: want %v, got %v", want.Topics, got.Topics)
	}
	for i := range want.Topics {
		if got.Topics[i] != want.Topics[i] {
			t.Errorf("topics[%d]: want %q, got %q", i, want.Topics[i], got.Topics[i])
		}
	}
}

func checkCounts(t *testing.T, field string, want, got []analytics.TermCount) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: want %v, got %v", field, want, got)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d]: want %v, got %v", field, i, want[i], got[i])
		}
	}
}
