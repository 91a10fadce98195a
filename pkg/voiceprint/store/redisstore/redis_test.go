package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/voiceprint/pkg/voiceprint/analytics"
	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
	"github.com/cognicore/voiceprint/pkg/voiceprint/store"
	"github.com/cognicore/voiceprint/pkg/voiceprint/store/storetest"
)

func newTestStore(t *testing.T, cfg ...Config) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), cfg...)
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRedisContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, _ := newTestStore(t)
		return s
	})
}

func TestRedisKeyPrefix(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, Config{Prefix: "vp"})

	require.NoError(t, s.UpsertPosts(ctx, "alice", []ingest.Post{{ID: "1", Text: "hi"}}))
	require.NoError(t, s.UpsertProfile(ctx, store.ProfileRecord{
		ID: "01X", Author: "alice", CreatedAt: time.Now(), Profile: analytics.Profile{},
	}))

	assert.True(t, mr.Exists("vp:posts:alice"))
	assert.True(t, mr.Exists("vp:posts:alice:order"))
	assert.True(t, mr.Exists("vp:profile:01X"))
	assert.True(t, mr.Exists("vp:profiles:alice"))
}

func TestRedisProfileTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, Config{ProfileTTL: time.Minute})

	rec := store.ProfileRecord{ID: "01T", Author: "alice", CreatedAt: time.Now()}
	require.NoError(t, s.UpsertProfile(ctx, rec))

	_, found, err := s.GetProfile(ctx, "01T")
	require.NoError(t, err)
	assert.True(t, found)

	mr.FastForward(2 * time.Minute)

	_, found, err = s.GetProfile(ctx, "01T")
	require.NoError(t, err)
	assert.False(t, found)

	list, err := s.ListProfiles(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Empty(t, list, "expired records should be skipped")
}

func TestRedisProfileAuthorChange(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	rec := store.ProfileRecord{ID: "01M", Author: "alice", CreatedAt: time.Now()}
	require.NoError(t, s.UpsertProfile(ctx, rec))
	rec.Author = "bob"
	require.NoError(t, s.UpsertProfile(ctx, rec))

	alice, err := s.ListProfiles(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Empty(t, alice)

	bob, err := s.ListProfiles(ctx, "bob", 0)
	require.NoError(t, err)
	require.Len(t, bob, 1)
	assert.Equal(t, "01M", bob[0].ID)
}

func TestOpenUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Open(context.Background(), "redis://"+addr)
	assert.Error(t, err)

	_, err = Open(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := Open(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer s.Close()

	posts, err := s.GetPosts(context.Background(), "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
