package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/voiceprint/internal/llm"
	"github.com/cognicore/voiceprint/pkg/voiceprint/analytics"
	"github.com/cognicore/voiceprint/pkg/voiceprint/internalerr"
	"github.com/cognicore/voiceprint/pkg/voiceprint/prompt"
)

// Config is the top-level YAML document.
type Config struct {
	Analysis   Analysis   `yaml:"analysis"`
	Stoplist   string     `yaml:"stoplist"`
	Prompt     Prompt     `yaml:"prompt"`
	Generation Generation `yaml:"generation"`
	Store      Store      `yaml:"store"`
}

// Analysis mirrors analytics.Options.
type Analysis struct {
	MinWordLength   int     `yaml:"min_word_length"`
	ShortPostLength int     `yaml:"short_post_length"`
	LongPostLength  int     `yaml:"long_post_length"`
	ShortFraction   float64 `yaml:"short_fraction"`
	LongFraction    float64 `yaml:"long_fraction"`
	MaxWords        int     `yaml:"max_words"`
	MaxPhrases      int     `yaml:"max_phrases"`
	MinPhraseCount  int     `yaml:"min_phrase_count"`
	MaxEmoji        int     `yaml:"max_emoji"`
	MaxHashtags     int     `yaml:"max_hashtags"`
	MaxTopics       int     `yaml:"max_topics"`
}

// Prompt mirrors prompt.Options.
type Prompt struct {
	Vocabulary  int    `yaml:"vocabulary"`
	Phrases     int    `yaml:"phrases"`
	Emoji       int    `yaml:"emoji"`
	DefaultTask string `yaml:"default_task"`
	ClosingLine string `yaml:"closing_line"`
}

// Generation configures the text generator client.
type Generation struct {
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	APIKeyEnv   string        `yaml:"api_key_env"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxLength   int           `yaml:"max_length"`
	Temperature float64       `yaml:"temperature"`
	TopK        int           `yaml:"top_k"`
	TopP        float64       `yaml:"top_p"`
	NumReturn   int           `yaml:"num_return"`
}

// APIKey resolves the key from the configured environment variable.
func (g Generation) APIKey() string {
	if g.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(g.APIKeyEnv)
}

// Store selects and configures a store backend.
type Store struct {
	Driver     string        `yaml:"driver"` // sqlite, redis or memory
	DSN        string        `yaml:"dsn"`
	Prefix     string        `yaml:"prefix"`
	ProfileTTL time.Duration `yaml:"profile_ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := analytics.DefaultOptions()
	return Config{
		Analysis: Analysis{
			MinWordLength:   opts.MinWordLength,
			ShortPostLength: opts.ShortPostLength,
			LongPostLength:  opts.LongPostLength,
			ShortFraction:   opts.ShortFraction,
			LongFraction:    opts.LongFraction,
			MaxWords:        opts.MaxWords,
			MaxPhrases:      opts.MaxPhrases,
			MinPhraseCount:  opts.MinPhraseCount,
			MaxEmoji:        opts.MaxEmoji,
			MaxHashtags:     opts.MaxHashtags,
			MaxTopics:       opts.MaxTopics,
		},
		Prompt: Prompt{
			Vocabulary:  prompt.DefaultVocabulary,
			Phrases:     prompt.DefaultPhrases,
			Emoji:       prompt.DefaultEmoji,
			DefaultTask: prompt.DefaultTask,
			ClosingLine: prompt.DefaultClosingLine,
		},
		Generation: Generation{
			APIKeyEnv:   "VOICEPRINT_API_KEY",
			Timeout:     30 * time.Second,
			MaxLength:   llm.DefaultMaxLength,
			Temperature: llm.DefaultTemperature,
			TopK:        llm.DefaultTopK,
			TopP:        llm.DefaultTopP,
			NumReturn:   llm.DefaultNumReturn,
		},
		Store: Store{
			Driver: "sqlite",
			Prefix: "voiceprint",
		},
	}
}

// Load reads a YAML config from path. Fields absent from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML onto Default() and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.checkExplicitZeros(); err != nil {
		return err
	}
	if err := c.AnalysisOptions().Validate(); err != nil {
		return err
	}
	if c.Prompt.Vocabulary < 0 || c.Prompt.Phrases < 0 || c.Prompt.Emoji < 0 {
		return fmt.Errorf("%w: prompt limits must be non-negative", internalerr.ErrInvalidConfig)
	}
	g := c.Generation
	if g.MaxLength < 0 || g.TopK < 0 || g.NumReturn < 0 || g.Temperature < 0 {
		return fmt.Errorf("%w: generation settings must be non-negative", internalerr.ErrInvalidConfig)
	}
	if g.TopP < 0 || g.TopP > 1 {
		return fmt.Errorf("%w: top_p must be within [0,1]", internalerr.ErrInvalidConfig)
	}
	switch strings.ToLower(c.Store.Driver) {
	case "", "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("%w: unknown store driver %q", internalerr.ErrInvalidConfig, c.Store.Driver)
	}
	return nil
}

// checkExplicitZeros rejects numeric settings of 0. Downstream options
// treat 0 as "use the default", so a configured 0 would be dropped
// silently. Default() sets every one of these fields, which means a 0 can
// only come from the file.
func (c Config) checkExplicitZeros() error {
	a, p, g := c.Analysis, c.Prompt, c.Generation
	fields := []struct {
		name string
		zero bool
	}{
		{"analysis.min_word_length", a.MinWordLength == 0},
		{"analysis.short_post_length", a.ShortPostLength == 0},
		{"analysis.long_post_length", a.LongPostLength == 0},
		{"analysis.short_fraction", a.ShortFraction == 0},
		{"analysis.long_fraction", a.LongFraction == 0},
		{"analysis.max_words", a.MaxWords == 0},
		{"analysis.max_phrases", a.MaxPhrases == 0},
		{"analysis.min_phrase_count", a.MinPhraseCount == 0},
		{"analysis.max_emoji", a.MaxEmoji == 0},
		{"analysis.max_hashtags", a.MaxHashtags == 0},
		{"analysis.max_topics", a.MaxTopics == 0},
		{"prompt.vocabulary", p.Vocabulary == 0},
		{"prompt.phrases", p.Phrases == 0},
		{"prompt.emoji", p.Emoji == 0},
		{"generation.max_length", g.MaxLength == 0},
		{"generation.temperature", g.Temperature == 0},
		{"generation.top_k", g.TopK == 0},
		{"generation.top_p", g.TopP == 0},
		{"generation.num_return", g.NumReturn == 0},
	}
	for _, f := range fields {
		if f.zero {
			return fmt.Errorf("%w: %s must not be 0 (omit it to use the default)", internalerr.ErrInvalidConfig, f.name)
		}
	}
	return nil
}

// AnalysisOptions converts the analysis section.
func (c Config) AnalysisOptions() analytics.Options {
	a := c.Analysis
	return analytics.Options{
		MinWordLength:   a.MinWordLength,
		ShortPostLength: a.ShortPostLength,
		LongPostLength:  a.LongPostLength,
		ShortFraction:   a.ShortFraction,
		LongFraction:    a.LongFraction,
		MaxWords:        a.MaxWords,
		MaxPhrases:      a.MaxPhrases,
		MinPhraseCount:  a.MinPhraseCount,
		MaxEmoji:        a.MaxEmoji,
		MaxHashtags:     a.MaxHashtags,
		MaxTopics:       a.MaxTopics,
	}
}

// PromptOptions converts the prompt section.
func (c Config) PromptOptions() prompt.Options {
	return prompt.Options{
		Vocabulary:  c.Prompt.Vocabulary,
		Phrases:     c.Prompt.Phrases,
		Emoji:       c.Prompt.Emoji,
		DefaultTask: c.Prompt.DefaultTask,
		ClosingLine: c.Prompt.ClosingLine,
	}
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
