package cli

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/cognicore/voiceprint/internal/llm"
	"github.com/cognicore/voiceprint/pkg/voiceprint"
	"github.com/cognicore/voiceprint/pkg/voiceprint/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate posts in the learned style",
		Long:  "Render the style prompt and send it to the configured OpenAI-compatible endpoint. One candidate is printed per line.",
		Run:   runGenerate,
	}
	addProfileSourceFlags(cmd)
	cmd.Flags().IntP("num", "n", 0, "Candidates to request (default from config)")
	cmd.Flags().Float64("temperature", 0, "Sampling temperature (default from config)")
	cmd.Flags().Int("max-length", 0, "Maximum post length in characters (default from config)")

	RootCmd.AddCommand(cmd)
}

func runGenerate(cmd *cobra.Command, args []string) {
	topic, _ := cmd.Flags().GetString("topic")
	num, _ := cmd.Flags().GetInt("num")
	temperature, _ := cmd.Flags().GetFloat64("temperature")
	maxLength, _ := cmd.Flags().GetInt("max-length")

	comps := loadComponents()
	ctx := cmd.Context()
	gen := comps.Config.Generation
	if gen.BaseURL == "" || gen.Model == "" {
		exitErr("generate", fmt.Errorf("generation.base_url and generation.model must be configured"))
	}

	engine, profile := resolveProfile(ctx, cmd, func(withStore bool) *voiceprint.Engine {
		return newEngine(ctx, comps, withStore)
	})
	defer engine.Close()

	opts := generationOptions(gen)
	if num > 0 {
		opts.NumReturn = num
	}
	if temperature > 0 {
		opts.Temperature = temperature
	}
	if maxLength > 0 {
		opts.MaxLength = maxLength
	}

	client := &llm.Client{
		BaseURL:    gen.BaseURL,
		APIKey:     gen.APIKey(),
		Model:      gen.Model,
		HTTPClient: &http.Client{Timeout: gen.Timeout},
	}
	prompt := engine.Prompt(profile, topic)
	slog.Debug("requesting candidates", "model", gen.Model, "n", opts.NumReturn)

	candidates, err := client.Generate(ctx, prompt, opts)
	if err != nil {
		exitErr("generate", err)
	}
	if len(candidates) == 0 {
		slog.Warn("no usable candidates returned", "requested", opts.NumReturn)
	}
	for _, c := range candidates {
		fmt.Fprintln(cmd.OutOrStdout(), c)
	}
}

func generationOptions(g config.Generation) llm.GenerationOptions {
	return llm.GenerationOptions{
		MaxLength:   g.MaxLength,
		Temperature: g.Temperature,
		TopK:        g.TopK,
		TopP:        g.TopP,
		NumReturn:   g.NumReturn,
	}
}
