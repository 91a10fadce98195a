// Package cli implements the voiceprint CLI commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/voiceprint/internal/corpus"
	"github.com/cognicore/voiceprint/pkg/voiceprint"
	"github.com/cognicore/voiceprint/pkg/voiceprint/config"
	"github.com/cognicore/voiceprint/pkg/voiceprint/ingest"
)

var (
	configPath   string
	stoplistPath string
	dbPath       string
	storeDriver  string
	verbose      bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "voiceprint",
	Short: "Learn a writing style from posts",
	Long:  "Analyze a corpus of short social posts into a style profile and turn it into generation prompts.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(cmd.ErrOrStderr(), verbose)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default: built-in settings)")
	RootCmd.PersistentFlags().StringVar(&stoplistPath, "stoplist", "", "Stoplist YAML overriding the config")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path or URL (default: $VOICEPRINT_DB or ~/.voiceprint/voiceprint.db)")
	RootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "Store driver: sqlite, redis or memory (default from config)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setupLogger(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func loadComponents() *config.Components {
	loader := &config.Loader{ConfigPath: configPath, StoplistPath: stoplistPath}
	comps, err := loader.Load()
	if err != nil {
		exitErr("load config", err)
	}
	return comps
}

func storeConfig(cfg config.Store) config.Store {
	if storeDriver != "" {
		cfg.Driver = storeDriver
	}
	if dbPath != "" {
		cfg.DSN = dbPath
	}
	return cfg
}

// newEngine builds an engine from the loaded components. The store is
// opened only when withStore is set.
func newEngine(ctx context.Context, comps *config.Components, withStore bool) *voiceprint.Engine {
	opts := voiceprint.Options{
		Pipeline: comps.Pipeline,
		Analysis: comps.Analysis,
		Prompt:   comps.Prompt,
	}
	if withStore {
		sc := storeConfig(comps.Config.Store)
		s, err := config.OpenStore(ctx, sc)
		if err != nil {
			exitErr("open store", err)
		}
		slog.Debug("store opened", "driver", sc.Driver)
		opts.Store = s
	}
	return voiceprint.New(opts)
}

// readPosts loads a corpus file, or JSONL from stdin when path is "-".
func readPosts(path string) []ingest.Post {
	var (
		c   corpus.Corpus
		err error
	)
	if path == "-" {
		c, err = corpus.ReadJSONL(os.Stdin)
	} else {
		c, err = corpus.LoadFile(path)
	}
	for _, skipped := range c.Skipped {
		slog.Warn("skipping malformed post", "line", skipped.Line, "err", skipped.Err)
	}
	if err != nil {
		exitErr("read posts", err)
	}
	slog.Debug("posts loaded", "count", len(c.Posts), "skipped", len(c.Skipped))
	return c.Posts
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
