package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	history := &cobra.Command{
		Use:   "history",
		Short: "List archived profile snapshots",
		Run:   runHistory,
	}
	history.Flags().StringP("author", "a", "", "Author to list")
	history.Flags().IntP("limit", "l", 20, "Max results")
	history.Flags().Bool("ids-only", false, "Only print snapshot IDs")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print an archived profile snapshot",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	RootCmd.AddCommand(history, show)
}

func runHistory(cmd *cobra.Command, args []string) {
	author, _ := cmd.Flags().GetString("author")
	limit, _ := cmd.Flags().GetInt("limit")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	engine := newEngine(cmd.Context(), loadComponents(), true)
	defer engine.Close()

	recs, err := engine.History(cmd.Context(), author, limit)
	if err != nil {
		exitErr("history", err)
	}

	if idsOnly {
		for _, r := range recs {
			fmt.Fprintln(cmd.OutOrStdout(), r.ID)
		}
		return
	}

	b, _ := json.MarshalIndent(recs, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func runShow(cmd *cobra.Command, args []string) {
	engine := newEngine(cmd.Context(), loadComponents(), true)
	defer engine.Close()

	rec, err := engine.Profile(cmd.Context(), args[0])
	if err != nil {
		exitErr("show", err)
	}
	b, _ := json.MarshalIndent(rec, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
