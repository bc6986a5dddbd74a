/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"sort"

	"github.com/josephgoksu/monadgen/internal/generators"
	"github.com/josephgoksu/monadgen/internal/ui"
	"github.com/spf13/cobra"
)

var generatorsCmd = &cobra.Command{
	Use:     "generators",
	Aliases: []string{"gens"},
	Short:   "List available generators",
	Long: `List every generator grouped by platform and category.

Examples:
  monadgen generators
  monadgen generators --json`,
	Args: cobra.NoArgs,
	RunE: runGenerators,
}

func init() {
	rootCmd.AddCommand(generatorsCmd)
}

func runGenerators(cmd *cobra.Command, args []string) error {
	registry := generators.NewRegistry(generators.Deps{})
	w := cmd.OutOrStdout()

	if isJSON() {
		return printJSON(w, registry.Grouped())
	}

	ui.RenderPageHeader(w, "Generators", fmt.Sprintf("%d available", registry.Len()))

	grouped := registry.Grouped()
	for _, platform := range sortedKeys(grouped) {
		fmt.Fprintln(w, ui.StyleSectionTitle.Render(platform))
		table := &ui.Table{Headers: []string{"ID", "NAME", "CATEGORY"}}
		byCategory := grouped[platform]
		for _, category := range sortedKeys(byCategory) {
			for _, e := range byCategory[category] {
				table.Rows = append(table.Rows, []string{e.ID, e.Name, category})
			}
		}
		fmt.Fprintln(w, table.Render())
	}
	fmt.Fprintln(w, ui.StyleSubtle.Render("Run one with 'monadgen generate <id>'."))
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
