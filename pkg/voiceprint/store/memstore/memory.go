package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
	"github.com/cognicore/voiceprint/pkg/voiceprint/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu       sync.RWMutex
	posts    map[string][]ingest.Post  // author -> posts in insertion order
	postIdx  map[string]map[string]int // author -> post ID -> index
	profiles map[string]store.ProfileRecord
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		posts:    make(map[string][]ingest.Post),
		postIdx:  make(map[string]map[string]int),
		profiles: make(map[string]store.ProfileRecord),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertPosts adds posts for author, replacing any with the same ID.
func (s *Store) UpsertPosts(ctx context.Context, author string, posts []ingest.Post) error {
	if err := store.ValidatePosts(author, posts); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.postIdx[author]
	if idx == nil {
		idx = make(map[string]int)
		s.postIdx[author] = idx
	}
	for _, p := range posts {
		p.Author = author
		if i, ok := idx[p.ID]; ok {
			s.posts[author][i] = p
			continue
		}
		idx[p.ID] = len(s.posts[author])
		s.posts[author] = append(s.posts[author], p)
	}
	return nil
}

// GetPosts returns up to limit posts for author, newest first.
// A limit <= 0 returns all posts.
func (s *Store) GetPosts(ctx context.Context, author string, limit int) ([]ingest.Post, error) {
	s.mu.RLock()
	out := append([]ingest.Post{}, s.posts[author]...)
	s.mu.RUnlock()

	store.SortPostsNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UpsertProfile stores a profile snapshot keyed by ID.
func (s *Store) UpsertProfile(ctx context.Context, rec store.ProfileRecord) error {
	if err := store.ValidateProfile(rec); err != nil {
		return err
	}
	rec.Profile = store.CopyProfile(rec.Profile)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[rec.ID] = rec
	return nil
}

// GetProfile returns a profile snapshot by ID.
func (s *Store) GetProfile(ctx context.Context, id string) (store.ProfileRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.profiles[id]
	if !ok {
		return store.ProfileRecord{}, false, nil
	}
	rec.Profile = store.CopyProfile(rec.Profile)
	return rec, true, nil
}

// ListProfiles returns up to limit snapshots for author, newest first.
func (s *Store) ListProfiles(ctx context.Context, author string, limit int) ([]store.ProfileRecord, error) {
	s.mu.RLock()
	var out []store.ProfileRecord
	for _, rec := range s.profiles {
		if rec.Author != author {
			continue
		}
		rec.Profile = store.CopyProfile(rec.Profile)
		out = append(out, rec)
	}
	s.mu.RUnlock()

	store.SortProfilesNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
