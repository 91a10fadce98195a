package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cognicore/voiceprint/pkg/voiceprint/analytics"
	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
	"github.com/cognicore/voiceprint/pkg/voiceprint/internalerr"
)

// Store persists cached author posts and profile snapshots.
type Store interface {
	Close() error

	// Posts
	UpsertPosts(ctx context.Context, author string, posts []ingest.Post) error
	GetPosts(ctx context.Context, author string, limit int) ([]ingest.Post, error)

	// Profiles
	UpsertProfile(ctx context.Context, rec ProfileRecord) error
	GetProfile(ctx context.Context, id string) (ProfileRecord, bool, error)
	ListProfiles(ctx context.Context, author string, limit int) ([]ProfileRecord, error)
}

// ProfileRecord is a stored profile snapshot.
type ProfileRecord struct {
	ID        string            `json:"id"`
	Author    string            `json:"author"`
	CreatedAt time.Time         `json:"created_at"`
	PostCount int               `json:"post_count"`
	Profile   analytics.Profile `json:"profile"`
}

// ValidatePosts checks an UpsertPosts call.
func ValidatePosts(author string, posts []ingest.Post) error {
	if strings.TrimSpace(author) == "" {
		return fmt.Errorf("%w: author is required", internalerr.ErrInvalidInput)
	}
	for i := range posts {
		if err := posts[i].Validate(); err != nil {
			return fmt.Errorf("%w: post %d: %v", internalerr.ErrInvalidInput, i, err)
		}
	}
	return nil
}

// ValidateProfile checks an UpsertProfile call.
func ValidateProfile(rec ProfileRecord) error {
	if strings.TrimSpace(rec.ID) == "" {
		return fmt.Errorf("%w: profile ID is required", internalerr.ErrInvalidInput)
	}
	if strings.TrimSpace(rec.Author) == "" {
		return fmt.Errorf("%w: profile author is required", internalerr.ErrInvalidInput)
	}
	return nil
}

// SortPostsNewestFirst orders posts by CreatedAt descending. The sort is
// stable so posts with equal timestamps keep their stored order.
func SortPostsNewestFirst(posts []ingest.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

// SortProfilesNewestFirst orders records by CreatedAt descending, then by
// ID descending.
func SortProfilesNewestFirst(recs []ProfileRecord) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].ID > recs[j].ID
		}
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
}

// CopyProfile returns a deep copy of p.
func CopyProfile(p analytics.Profile) analytics.Profile {
	out := p
	out.CommonWords = copyCounts(p.CommonWords)
	out.CommonPhrases = copyCounts(p.CommonPhrases)
	out.EmojiUsage = copyCounts(p.EmojiUsage)
	out.HashtagUsage = copyCounts(p.HashtagUsage)
	if p.Topics != nil {
		out.Topics = append([]string{}, p.Topics...)
	}
	return out
}

func copyCounts(in []analytics.TermCount) []analytics.TermCount {
	if in == nil {
		return nil
	}
	return append([]analytics.TermCount{}, in...)
}
