// Package redisstore implements store.Store on Redis.
//
// Keys are namespaced under a prefix:
//
//	{prefix}:posts:{author}        hash of post ID -> post JSON
//	{prefix}:posts:{author}:order  list of post IDs in insertion order
//	{prefix}:profile:{id}          profile record JSON
//	{prefix}:profiles:{author}     sorted set of profile IDs scored by creation time
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
	"github.com/cognicore/voiceprint/pkg/voiceprint/internalerr"
	"github.com/cognicore/voiceprint/pkg/voiceprint/store"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "voiceprint"

// Config configures the Redis store.
type Config struct {
	Prefix     string        // key prefix, default "voiceprint"
	ProfileTTL time.Duration // expiry for profile records, 0 = no expiry
}

// Store implements store.Store using Redis.
type Store struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// New wraps an existing client. The store takes ownership and closes it
// on Close.
func New(client redis.UniversalClient, config ...Config) *Store {
	cfg := Config{Prefix: DefaultPrefix}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: cfg.Prefix, ttl: cfg.ProfileTTL}
}

// Open connects to the Redis server at url (redis://host:port/db) and
// verifies the connection.
func Open(ctx context.Context, url string, config ...Config) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("%w: redis url: %v", internalerr.ErrInvalidConfig, err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	return New(client, config...), nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) postsKey(author string) string {
	return fmt.Sprintf("%s:posts:%s", s.prefix, author)
}

func (s *Store) orderKey(author string) string {
	return fmt.Sprintf("%s:posts:%s:order", s.prefix, author)
}

func (s *Store) profileKey(id string) string {
	return fmt.Sprintf("%s:profile:%s", s.prefix, id)
}

func (s *Store) profilesKey(author string) string {
	return fmt.Sprintf("%s:profiles:%s", s.prefix, author)
}

// UpsertPosts stores posts; new IDs are appended to the author's order list.
func (s *Store) UpsertPosts(ctx context.Context, author string, posts []ingest.Post) error {
	if err := store.ValidatePosts(author, posts); err != nil {
		return err
	}
	for _, p := range posts {
		p.Author = author
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode post %s: %w", p.ID, err)
		}
		added, err := s.client.HSet(ctx, s.postsKey(author), p.ID, data).Result()
		if err != nil {
			return fmt.Errorf("store post %s: %w", p.ID, err)
		}
		if added == 0 {
			continue
		}
		if err := s.client.RPush(ctx, s.orderKey(author), p.ID).Err(); err != nil {
			return fmt.Errorf("index post %s: %w", p.ID, err)
		}
	}
	return nil
}

// GetPosts returns up to limit posts for author, newest first.
func (s *Store) GetPosts(ctx context.Context, author string, limit int) ([]ingest.Post, error) {
	ids, err := s.client.LRange(ctx, s.orderKey(author), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	values, err := s.client.HMGet(ctx, s.postsKey(author), ids...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]ingest.Post, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var p ingest.Post
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode post %s: %w", ids[i], err)
		}
		out = append(out, p)
	}

	store.SortPostsNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UpsertProfile stores a profile record and indexes it under its author.
func (s *Store) UpsertProfile(ctx context.Context, rec store.ProfileRecord) error {
	if err := store.ValidateProfile(rec); err != nil {
		return err
	}

	prev, found, err := s.GetProfile(ctx, rec.ID)
	if err != nil {
		return err
	}
	if found && prev.Author != rec.Author {
		if err := s.client.ZRem(ctx, s.profilesKey(prev.Author), rec.ID).Err(); err != nil {
			return err
		}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.client.Set(ctx, s.profileKey(rec.ID), data, s.ttl).Err(); err != nil {
		return err
	}
	return s.client.ZAdd(ctx, s.profilesKey(rec.Author), redis.Z{
		Score:  float64(rec.CreatedAt.UnixMilli()),
		Member: rec.ID,
	}).Err()
}

// GetProfile returns a profile record by ID.
func (s *Store) GetProfile(ctx context.Context, id string) (store.ProfileRecord, bool, error) {
	raw, err := s.client.Get(ctx, s.profileKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return store.ProfileRecord{}, false, nil
	}
	if err != nil {
		return store.ProfileRecord{}, false, err
	}
	var rec store.ProfileRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return store.ProfileRecord{}, false, fmt.Errorf("decode profile %s: %w", id, err)
	}
	return rec, true, nil
}

// ListProfiles returns up to limit records for author, newest first.
// Expired records still referenced by the index are skipped.
func (s *Store) ListProfiles(ctx context.Context, author string, limit int) ([]store.ProfileRecord, error) {
	ids, err := s.client.ZRevRange(ctx, s.profilesKey(author), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var out []store.ProfileRecord
	for _, id := range ids {
		rec, found, err := s.GetProfile(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		out = append(out, rec)
	}

	store.SortProfilesNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
