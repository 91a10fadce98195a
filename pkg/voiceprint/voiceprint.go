// Package voiceprint ties the style analysis engine to persistence: it
// analyzes post corpora, renders generation prompts and archives profile
// snapshots.
package voiceprint

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/voiceprint/pkg/voiceprint/analytics"
	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
	"github.com/cognicore/voiceprint/pkg/voiceprint/internalerr"
	"github.com/cognicore/voiceprint/pkg/voiceprint/prompt"
	"github.com/cognicore/voiceprint/pkg/voiceprint/store"
)

// Engine is the main facade
type Engine struct {
	store    store.Store
	pipeline *ingest.Pipeline
	analysis analytics.Options
	prompts  *prompt.Builder
	now      func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures an Engine. Every field is optional; without a Store
// only the pure operations (Analyze, Prompt) are available.
type Options struct {
	Store    store.Store
	Pipeline *ingest.Pipeline
	Analysis analytics.Options
	Prompt   *prompt.Builder
	Now      func() time.Time
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	e := &Engine{
		store:    opts.Store,
		pipeline: opts.Pipeline,
		analysis: opts.Analysis.WithDefaults(),
		prompts:  opts.Prompt,
		now:      opts.Now,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
	if e.pipeline == nil {
		tok := ingest.NewDefaultTokenizer()
		tok.SetMinWordLength(e.analysis.MinWordLength)
		e.pipeline = ingest.NewPipeline(tok)
	}
	if e.prompts == nil {
		e.prompts = prompt.New(prompt.Options{})
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Close cleanly shuts down the store, if any.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Analyze builds a profile from posts. It fails with
// internalerr.ErrEmptyCorpus when posts is empty.
func (e *Engine) Analyze(posts []ingest.Post) (analytics.Profile, error) {
	return analytics.AnalyzeWith(e.pipeline, ingest.Texts(posts), e.analysis)
}

// Prompt renders a generation prompt for profile. An empty topic uses the
// builder's default task.
func (e *Engine) Prompt(profile analytics.Profile, topic string) string {
	return e.prompts.Build(profile, topic)
}

// Import caches posts for author.
func (e *Engine) Import(ctx context.Context, author string, posts []ingest.Post) error {
	if e.store == nil {
		return internalerr.ErrStoreUnavailable
	}
	return e.store.UpsertPosts(ctx, author, posts)
}

// Snapshot analyzes posts and archives the resulting profile. Nothing is
// written when the analysis fails.
func (e *Engine) Snapshot(ctx context.Context, author string, posts []ingest.Post) (store.ProfileRecord, error) {
	if e.store == nil {
		return store.ProfileRecord{}, internalerr.ErrStoreUnavailable
	}
	profile, err := e.Analyze(posts)
	if err != nil {
		return store.ProfileRecord{}, err
	}

	rec := store.ProfileRecord{
		ID:        e.newID(),
		Author:    author,
		CreatedAt: e.now().UTC(),
		PostCount: len(posts),
		Profile:   profile,
	}
	if err := e.store.UpsertProfile(ctx, rec); err != nil {
		return store.ProfileRecord{}, fmt.Errorf("save profile: %w", err)
	}
	return rec, nil
}

// AnalyzeAuthor snapshots the newest limit cached posts of author.
// A limit <= 0 uses every cached post.
func (e *Engine) AnalyzeAuthor(ctx context.Context, author string, limit int) (store.ProfileRecord, error) {
	if e.store == nil {
		return store.ProfileRecord{}, internalerr.ErrStoreUnavailable
	}
	posts, err := e.store.GetPosts(ctx, author, limit)
	if err != nil {
		return store.ProfileRecord{}, fmt.Errorf("load posts: %w", err)
	}
	return e.Snapshot(ctx, author, posts)
}

// History lists archived snapshots for author, newest first.
func (e *Engine) History(ctx context.Context, author string, limit int) ([]store.ProfileRecord, error) {
	if e.store == nil {
		return nil, internalerr.ErrStoreUnavailable
	}
	return e.store.ListProfiles(ctx, author, limit)
}

// Profile fetches an archived snapshot by ID.
func (e *Engine) Profile(ctx context.Context, id string) (store.ProfileRecord, error) {
	if e.store == nil {
		return store.ProfileRecord{}, internalerr.ErrStoreUnavailable
	}
	rec, found, err := e.store.GetProfile(ctx, id)
	if err != nil {
		return store.ProfileRecord{}, err
	}
	if !found {
		return store.ProfileRecord{}, fmt.Errorf("profile %s: %w", id, internalerr.ErrNotFound)
	}
	return rec, nil
}

func (e *Engine) newID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(e.now()), e.entropy).String()
}
