package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Build a style profile from posts",
		Long: "Analyze a post file (JSONL, or .txt with one post per line) and print the style profile as JSON.\n" +
			"Without --input, the cached posts of --author are analyzed and the snapshot is saved.",
		Run: runAnalyze,
	}

	cmd.Flags().StringP("input", "i", "", "Post file, or - for JSONL on stdin")
	cmd.Flags().StringP("author", "a", "", "Author the posts belong to")
	cmd.Flags().Bool("save", false, "Archive the profile as a snapshot")
	cmd.Flags().IntP("limit", "l", 0, "Newest cached posts to analyze (0 = all)")

	RootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	input, _ := cmd.Flags().GetString("input")
	author, _ := cmd.Flags().GetString("author")
	save, _ := cmd.Flags().GetBool("save")
	limit, _ := cmd.Flags().GetInt("limit")

	if input == "" && author == "" {
		exitErr("analyze", fmt.Errorf("--input or --author is required"))
	}

	comps := loadComponents()
	ctx := cmd.Context()
	engine := newEngine(ctx, comps, save || input == "")
	defer engine.Close()

	var out any
	switch {
	case input == "":
		rec, err := engine.AnalyzeAuthor(ctx, author, limit)
		if err != nil {
			exitErr("analyze", err)
		}
		slog.Info("snapshot saved", "id", rec.ID, "author", author, "posts", rec.PostCount)
		out = rec
	case save:
		posts := readPosts(input)
		rec, err := engine.Snapshot(ctx, author, posts)
		if err != nil {
			exitErr("analyze", err)
		}
		slog.Info("snapshot saved", "id", rec.ID, "author", author, "posts", rec.PostCount)
		out = rec
	default:
		profile, err := engine.Analyze(readPosts(input))
		if err != nil {
			exitErr("analyze", err)
		}
		out = profile
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
