/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/josephgoksu/monadgen/internal/generation"
	"github.com/josephgoksu/monadgen/internal/generators"
	"github.com/josephgoksu/monadgen/internal/logger"
	"github.com/josephgoksu/monadgen/internal/ui"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <generator-id>",
	Short: "Run one generator and save its output",
	Long: `Run one generator and write its result as Markdown and JSON to the
output directory.

Examples:
  monadgen generate twitter_wizard
  monadgen generate twitter_aphorisms --count 30 --model gpt-4o-mini
  monadgen generate twitter_wizard --structure-mode legacy
  monadgen generate substack_article --demographic "Train Nerd" --style "Dry Wit" --topic "Timetables"

Run 'monadgen generators' to list generator ids.`,
	Args: cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return generatorIDs(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntP("count", "n", 0, "number of items to generate (generator default when unset)")
	generateCmd.Flags().StringP("model", "m", "", "model id or alias (see 'monadgen models')")
	generateCmd.Flags().String("structure-mode", generators.StructureDiverse, "wizard structure: diverse or legacy")
	generateCmd.Flags().String("topic", "", "newsletter or article topic for substack_about and substack_article")
	generateCmd.Flags().String("length", "", "about page length: short, medium or long")
	generateCmd.Flags().String("word-count", "", "article length: short, medium or long")
	generateCmd.Flags().String("demographic", "", "stored demographic label for composed generators")
	generateCmd.Flags().String("style", "", "stored writing style name for composed generators")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := appFromConfig()
	if err != nil {
		return err
	}
	defer a.close()

	opts := generation.Options{}
	flags := cmd.Flags()
	if flags.Changed("count") {
		n, _ := flags.GetInt("count")
		opts[generation.OptNumItems] = n
	}
	for flag, key := range map[string]string{
		"model":          generation.OptModel,
		"structure-mode": generation.OptStructureMode,
		"topic":          generation.OptTopic,
		"length":         generation.OptLength,
		"word-count":     generation.OptWordCount,
		"demographic":    generation.OptDemographic,
		"style":          generation.OptStyle,
	} {
		if v, _ := flags.GetString(flag); v != "" {
			opts[key] = v
		}
	}

	mode := opts.String(generation.OptStructureMode, generators.StructureDiverse)
	if mode != generators.StructureDiverse && mode != generators.StructureLegacy {
		return fmt.Errorf("invalid --structure-mode %q: use %s or %s", mode, generators.StructureDiverse, generators.StructureLegacy)
	}

	out, err := runGenerator(cmd.Context(), cmd.ErrOrStderr(), a, args[0], opts)
	if err != nil {
		return err
	}
	if isJSON() {
		return writeOutcomeJSON(cmd.OutOrStdout(), out)
	}
	renderOutcome(cmd.OutOrStdout(), out)
	return nil
}

// runGenerator looks up id and runs it through the orchestrator with a
// spinner on progress.
func runGenerator(ctx context.Context, progress io.Writer, a *app, id string, opts generation.Options) (*generation.Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	g, err := a.registry.Lookup(id)
	if err != nil {
		return nil, err
	}
	logger.RecordGenerator(ctx, id)

	spin := ui.NewSpinnerTo(progress, fmt.Sprintf(" Generating with %s...", id))
	spin.Start()
	out, err := a.orch.Run(ctx, generators.Job(g), opts)
	spin.Stop()
	if err != nil {
		return nil, err
	}
	return out, nil
}

func renderOutcome(w io.Writer, out *generation.Outcome) {
	var sb strings.Builder
	for _, path := range out.Artifacts {
		sb.WriteString(ui.StyleArtifact.Render(path) + "\n")
	}
	res := out.Result
	sb.WriteString(fmt.Sprintf("\nModel:  %s\n", res.ModelUsed))
	sb.WriteString(fmt.Sprintf("Tokens: %d", res.Usage.TotalTokens()))
	if res.Usage.Cost > 0 {
		sb.WriteString(fmt.Sprintf("  Cost: $%.4f", res.Usage.Cost))
	}
	fmt.Fprintln(w, ui.RenderSuccessPanel(out.Message, sb.String()))
}

// outcomeJSON mirrors the HTTP generate response.
type outcomeJSON struct {
	Status      string   `json:"status"`
	Message     string   `json:"message"`
	OutputFiles []string `json:"output_files"`
	Timestamp   string   `json:"timestamp"`
	Model       string   `json:"model_used"`
	TokensUsed  int      `json:"tokens_used"`
	Cost        float64  `json:"cost"`
}

func writeOutcomeJSON(w io.Writer, out *generation.Outcome) error {
	return printJSON(w, outcomeJSON{
		Status:      "success",
		Message:     out.Message,
		OutputFiles: out.Artifacts,
		Timestamp:   nowFunc().Format(time.RFC3339),
		Model:       out.Result.ModelUsed,
		TokensUsed:  out.Result.Usage.TotalTokens(),
		Cost:        out.Result.Usage.Cost,
	})
}

// generatorIDs is used for shell completion; it needs no configuration.
func generatorIDs() []string {
	return generators.NewRegistry(generators.Deps{}).IDs()
}
