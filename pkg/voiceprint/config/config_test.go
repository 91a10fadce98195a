package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/voiceprint/internal/llm"
	"github.com/cognicore/voiceprint/pkg/voiceprint/analytics"
	"github.com/cognicore/voiceprint/pkg/voiceprint/internalerr"
)

func TestDefaultMatchesAnalytics(t *testing.T) {
	cfg := Default()
	if got := cfg.AnalysisOptions(); got != analytics.DefaultOptions() {
		t.Errorf("default analysis options differ: %+v", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
analysis:
  max_words: 5
  short_fraction: 0.75
generation:
  model: tiny
  timeout: 5s
store:
  driver: redis
  profile_ttl: 24h
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Analysis.MaxWords != 5 {
		t.Errorf("expected max_words 5, got %d", cfg.Analysis.MaxWords)
	}
	if cfg.Analysis.ShortFraction != 0.75 {
		t.Errorf("expected short_fraction 0.75, got %v", cfg.Analysis.ShortFraction)
	}
	if cfg.Analysis.MaxPhrases != analytics.DefaultMaxPhrases {
		t.Errorf("max_phrases should keep default, got %d", cfg.Analysis.MaxPhrases)
	}
	if cfg.Generation.Model != "tiny" || cfg.Generation.Timeout != 5*time.Second {
		t.Errorf("unexpected generation section: %+v", cfg.Generation)
	}
	if cfg.Generation.MaxLength != 280 || cfg.Generation.NumReturn != 3 {
		t.Errorf("generation defaults lost: %+v", cfg.Generation)
	}
	if cfg.Store.Driver != "redis" || cfg.Store.ProfileTTL != 24*time.Hour {
		t.Errorf("unexpected store section: %+v", cfg.Store)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "analysis: [unclosed"},
		{"fraction out of range", "analysis:\n  long_fraction: 1.5\n"},
		{"long below short", "analysis:\n  long_post_length: 50\n"},
		{"negative cap", "analysis:\n  max_emoji: -1\n"},
		{"negative prompt limit", "prompt:\n  vocabulary: -3\n"},
		{"top_p out of range", "generation:\n  top_p: 2\n"},
		{"unknown driver", "store:\n  driver: postgres\n"},
		{"zero short fraction", "analysis:\n  short_fraction: 0\n"},
		{"zero long fraction", "analysis:\n  long_fraction: 0\n"},
		{"zero max words", "analysis:\n  max_words: 0\n"},
		{"zero prompt emoji", "prompt:\n  emoji: 0\n"},
		{"zero num return", "generation:\n  num_return: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestDefaultGenerationMatchesClient(t *testing.T) {
	g := Default().Generation
	def := llm.DefaultGenerationOptions()
	got := llm.GenerationOptions{
		MaxLength:   g.MaxLength,
		Temperature: g.Temperature,
		TopK:        g.TopK,
		TopP:        g.TopP,
		NumReturn:   g.NumReturn,
	}
	if got != def {
		t.Errorf("generation defaults %+v differ from client defaults %+v", got, def)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/voiceprint.yaml"); err == nil {
		t.Error("Should error on nonexistent config")
	}
}

func TestLoadStoplist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stoplist.yaml")
	if err := os.WriteFile(path, []byte("terms:\n  - the\n  - rocket\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatalf("load stoplist: %v", err)
	}
	if len(sl.Terms) != 2 || sl.Terms[1] != "rocket" {
		t.Errorf("unexpected terms: %v", sl.Terms)
	}
}

func TestGenerationAPIKey(t *testing.T) {
	t.Setenv("VOICEPRINT_TEST_KEY", "secret")
	g := Generation{APIKeyEnv: "VOICEPRINT_TEST_KEY"}
	if g.APIKey() != "secret" {
		t.Errorf("expected key from env, got %q", g.APIKey())
	}
	if (Generation{}).APIKey() != "" {
		t.Error("empty env name should give empty key")
	}
}
