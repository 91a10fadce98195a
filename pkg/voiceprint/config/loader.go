package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/voiceprint/pkg/voiceprint/analytics"
	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
	"github.com/cognicore/voiceprint/pkg/voiceprint/internalerr"
	"github.com/cognicore/voiceprint/pkg/voiceprint/prompt"
	"github.com/cognicore/voiceprint/pkg/voiceprint/stoplist"
	"github.com/cognicore/voiceprint/pkg/voiceprint/store"
	"github.com/cognicore/voiceprint/pkg/voiceprint/store/memstore"
	"github.com/cognicore/voiceprint/pkg/voiceprint/store/redisstore"
	"github.com/cognicore/voiceprint/pkg/voiceprint/store/sqlite"
)

// Loader loads configuration files and constructs components
type Loader struct {
	ConfigPath   string // optional; defaults apply when empty
	StoplistPath string // optional; overrides the config's stoplist entry
}

// Components holds all loaded configuration components
type Components struct {
	Config    Config
	Stoplist  *stoplist.Manager
	Tokenizer *ingest.Tokenizer
	Pipeline  *ingest.Pipeline
	Analysis  analytics.Options
	Prompt    *prompt.Builder
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = *loaded
	}

	stopPath := l.StoplistPath
	if stopPath == "" && cfg.Stoplist != "" {
		stopPath = cfg.Stoplist
		// Relative stoplist paths are resolved against the config file.
		if l.ConfigPath != "" && !filepath.IsAbs(stopPath) {
			stopPath = filepath.Join(filepath.Dir(l.ConfigPath), stopPath)
		}
	}

	stops := stoplist.NewDefault()
	if stopPath != "" {
		sl, err := LoadStoplist(stopPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stops = stoplist.NewManager(sl.Terms)
	}

	opts := cfg.AnalysisOptions().WithDefaults()
	tokenizer := ingest.NewTokenizerWithManager(stops)
	tokenizer.SetMinWordLength(opts.MinWordLength)

	return &Components{
		Config:    cfg,
		Stoplist:  stops,
		Tokenizer: tokenizer,
		Pipeline:  ingest.NewPipeline(tokenizer),
		Analysis:  opts,
		Prompt:    prompt.New(cfg.PromptOptions()),
	}, nil
}

// OpenStore opens the backend selected by the store section.
func OpenStore(ctx context.Context, cfg Store) (store.Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "memory":
		return memstore.New(), nil
	case "redis":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "redis://localhost:6379/0"
		}
		return redisstore.Open(ctx, dsn, redisstore.Config{Prefix: cfg.Prefix, ProfileTTL: cfg.ProfileTTL})
	case "", "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = DefaultDBPath()
		}
		if dir := filepath.Dir(dsn); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		return sqlite.OpenSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: unknown store driver %q", internalerr.ErrInvalidConfig, cfg.Driver)
	}
}

// DefaultDBPath returns $VOICEPRINT_DB or ~/.voiceprint/voiceprint.db.
func DefaultDBPath() string {
	if env := os.Getenv("VOICEPRINT_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".voiceprint", "voiceprint.db")
}
