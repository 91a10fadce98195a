package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
	"github.com/cognicore/voiceprint/pkg/voiceprint/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS posts (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	author TEXT NOT NULL,
	id TEXT NOT NULL,
	text TEXT NOT NULL,
	created_at INTEGER NOT NULL DEFAULT 0,
	UNIQUE(author, id)
);

CREATE INDEX IF NOT EXISTS idx_posts_author_created ON posts(author, created_at DESC);

CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	author TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	post_count INTEGER NOT NULL,
	profile_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_profiles_author_created ON profiles(author, created_at DESC);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertPosts inserts posts or updates existing ones in place.
func (s *sqliteStore) UpsertPosts(ctx context.Context, author string, posts []ingest.Post) error {
	if err := store.ValidatePosts(author, posts); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO posts (author, id, text, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(author, id) DO UPDATE SET text = excluded.text, created_at = excluded.created_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range posts {
		if _, err := stmt.ExecContext(ctx, author, p.ID, p.Text, toNanos(p.CreatedAt)); err != nil {
			return fmt.Errorf("upsert post %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// GetPosts returns up to limit posts for author, newest first.
func (s *sqliteStore) GetPosts(ctx context.Context, author string, limit int) ([]ingest.Post, error) {
	query := `SELECT id, text, created_at FROM posts WHERE author = ? ORDER BY created_at DESC, seq ASC`
	args := []any{author}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ingest.Post
	for rows.Next() {
		var (
			p     ingest.Post
			nanos int64
		)
		if err := rows.Scan(&p.ID, &p.Text, &nanos); err != nil {
			return nil, err
		}
		p.Author = author
		p.CreatedAt = fromNanos(nanos)
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpsertProfile stores a profile snapshot keyed by ID.
func (s *sqliteStore) UpsertProfile(ctx context.Context, rec store.ProfileRecord) error {
	if err := store.ValidateProfile(rec); err != nil {
		return err
	}
	data, err := json.Marshal(rec.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, author, created_at, post_count, profile_json) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			author = excluded.author,
			created_at = excluded.created_at,
			post_count = excluded.post_count,
			profile_json = excluded.profile_json`,
		rec.ID, rec.Author, toNanos(rec.CreatedAt), rec.PostCount, string(data))
	return err
}

// GetProfile returns a profile snapshot by ID.
func (s *sqliteStore) GetProfile(ctx context.Context, id string) (store.ProfileRecord, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, author, created_at, post_count, profile_json FROM profiles WHERE id = ?`, id)
	rec, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ProfileRecord{}, false, nil
	}
	if err != nil {
		return store.ProfileRecord{}, false, err
	}
	return rec, true, nil
}

// ListProfiles returns up to limit snapshots for author, newest first.
func (s *sqliteStore) ListProfiles(ctx context.Context, author string, limit int) ([]store.ProfileRecord, error) {
	query := `SELECT id, author, created_at, post_count, profile_json FROM profiles
		WHERE author = ? ORDER BY created_at DESC, id DESC`
	args := []any{author}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.ProfileRecord
	for rows.Next() {
		rec, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (store.ProfileRecord, error) {
	var (
		rec   store.ProfileRecord
		nanos int64
		data  string
	)
	if err := row.Scan(&rec.ID, &rec.Author, &nanos, &rec.PostCount, &data); err != nil {
		return store.ProfileRecord{}, err
	}
	if err := json.Unmarshal([]byte(data), &rec.Profile); err != nil {
		return store.ProfileRecord{}, fmt.Errorf("decode profile %s: %w", rec.ID, err)
	}
	rec.CreatedAt = fromNanos(nanos)
	return rec, nil
}

// toNanos maps the zero time to 0 since UnixNano is undefined for it.
func toNanos(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
