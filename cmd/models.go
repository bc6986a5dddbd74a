/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/monadgen/internal/llm"
	"github.com/josephgoksu/monadgen/internal/ui"
	"github.com/spf13/cobra"
)

var allProviders = []string{
	llm.ProviderOpenAI,
	llm.ProviderOpenRouter,
	llm.ProviderAnthropic,
	llm.ProviderGemini,
	llm.ProviderOllama,
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known models and their prices",
	Long: `List the models monadgen knows about, per provider, with prices per
million tokens. Aliases can be passed to --model anywhere a model is accepted.

Examples:
  monadgen models
  monadgen models --provider openrouter`,
	Args: cobra.NoArgs,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.Flags().String("provider", "", "only list models for this provider")
}

func runModels(cmd *cobra.Command, args []string) error {
	providers := allProviders
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		valid, err := llm.ValidateProvider(p)
		if err != nil {
			return err
		}
		providers = []string{string(valid)}
	}

	w := cmd.OutOrStdout()
	if isJSON() {
		out := make(map[string][]llm.ModelOption, len(providers))
		for _, p := range providers {
			out[p] = llm.GetModelsForProvider(p)
		}
		return printJSON(w, out)
	}

	for _, p := range providers {
		models := llm.GetModelsForProvider(p)
		if len(models) == 0 {
			continue
		}
		fmt.Fprintln(w, ui.StyleSectionTitle.Render(p))
		table := &ui.Table{Headers: []string{"MODEL", "ALIASES", "PRICE", ""}}
		for _, m := range models {
			def := ""
			if m.IsDefault {
				def = "default"
			}
			table.Rows = append(table.Rows, []string{m.ID, strings.Join(m.Aliases, ", "), m.PriceInfo, def})
		}
		fmt.Fprintln(w, table.Render())
	}
	return nil
}
