package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Cache posts for an author",
		Long:  "Store posts from a file (or JSONL on stdin) so later analyses can run against the cached corpus. Re-importing a post ID replaces it.",
		Run:   runImport,
	}

	cmd.Flags().StringP("input", "i", "-", "Post file, or - for JSONL on stdin")
	cmd.Flags().StringP("author", "a", "", "Author the posts belong to")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	input, _ := cmd.Flags().GetString("input")
	author, _ := cmd.Flags().GetString("author")
	if author == "" {
		exitErr("import", fmt.Errorf("--author is required"))
	}

	posts := readPosts(input)
	comps := loadComponents()
	engine := newEngine(cmd.Context(), comps, true)
	defer engine.Close()

	if err := engine.Import(cmd.Context(), author, posts); err != nil {
		exitErr("import", err)
	}
	slog.Info("posts imported", "author", author, "count", len(posts))
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", len(posts))
}
