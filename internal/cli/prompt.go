package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/voiceprint/pkg/voiceprint"
	"github.com/cognicore/voiceprint/pkg/voiceprint/analytics"
)

func init() {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Render a generation prompt from a style profile",
		Run:   runPrompt,
	}
	addProfileSourceFlags(cmd)
	RootCmd.AddCommand(cmd)
}

func addProfileSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Post file to analyze, or - for JSONL on stdin")
	cmd.Flags().StringP("profile", "p", "", "Archived snapshot ID to use instead of --input")
	cmd.Flags().StringP("topic", "t", "", "What the post should be about")
}

// resolveProfile returns the profile selected by --input or --profile.
func resolveProfile(ctx context.Context, cmd *cobra.Command, engine func(withStore bool) *voiceprint.Engine) (*voiceprint.Engine, analytics.Profile) {
	input, _ := cmd.Flags().GetString("input")
	id, _ := cmd.Flags().GetString("profile")

	switch {
	case id != "":
		e := engine(true)
		rec, err := e.Profile(ctx, id)
		if err != nil {
			exitErr("load profile", err)
		}
		return e, rec.Profile
	case input != "":
		e := engine(false)
		profile, err := e.Analyze(readPosts(input))
		if err != nil {
			exitErr("analyze", err)
		}
		return e, profile
	default:
		exitErr("prompt", fmt.Errorf("--input or --profile is required"))
		return nil, analytics.Profile{}
	}
}

func runPrompt(cmd *cobra.Command, args []string) {
	topic, _ := cmd.Flags().GetString("topic")
	comps := loadComponents()
	ctx := cmd.Context()

	engine, profile := resolveProfile(ctx, cmd, func(withStore bool) *voiceprint.Engine {
		return newEngine(ctx, comps, withStore)
	})
	defer engine.Close()

	fmt.Fprintln(cmd.OutOrStdout(), engine.Prompt(profile, topic))
}
