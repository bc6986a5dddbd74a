/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/monadgen/internal/generation"
	"github.com/josephgoksu/monadgen/internal/generators"
	"github.com/josephgoksu/monadgen/internal/ui"
	"github.com/spf13/cobra"
)

var articleCmd = &cobra.Command{
	Use:   "article",
	Short: "Write a Substack article for a stored demographic and style",
	Long: `Write a long-form Substack article for one stored reader demographic in
one stored writing style.

Demographics and styles come from earlier substack_readers and
substack_styles runs. List them with 'monadgen article inputs'.

Examples:
  monadgen article --demographic "Train Nerd" --style "Dry Wit" --topic "Timetables"
  monadgen article --demographic "Train Nerd" --style "Dry Wit" --topic "Timetables" --length long`,
	Args: cobra.NoArgs,
	RunE: runArticle,
}

var articleInputsCmd = &cobra.Command{
	Use:   "inputs",
	Short: "List stored demographics and writing styles",
	Args:  cobra.NoArgs,
	RunE:  runArticleInputs,
}

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Write a Substack About page",
	Long: `Write a Substack About page. With --demographic and --style it is
targeted at a stored reader demographic in a stored writing style; without
them it is standalone.

Examples:
  monadgen about --topic "Rail history"
  monadgen about --demographic "Train Nerd" --style "Dry Wit" --length short`,
	Args: cobra.NoArgs,
	RunE: runAbout,
}

func init() {
	rootCmd.AddCommand(articleCmd)
	rootCmd.AddCommand(aboutCmd)
	articleCmd.AddCommand(articleInputsCmd)

	articleCmd.Flags().String("demographic", "", "stored demographic label")
	articleCmd.Flags().String("style", "", "stored writing style name")
	articleCmd.Flags().String("topic", "", "article topic")
	articleCmd.Flags().String("length", "medium", "article length: short, medium or long")
	articleCmd.Flags().StringP("model", "m", "", "model id or alias")
	_ = articleCmd.MarkFlagRequired("demographic")
	_ = articleCmd.MarkFlagRequired("style")
	_ = articleCmd.MarkFlagRequired("topic")

	aboutCmd.Flags().String("demographic", "", "stored demographic label (optional)")
	aboutCmd.Flags().String("style", "", "stored writing style name (optional)")
	aboutCmd.Flags().String("topic", "", "newsletter topic")
	aboutCmd.Flags().String("length", "medium", "page length: short, medium or long")
	aboutCmd.Flags().StringP("model", "m", "", "model id or alias")
}

var composeLengths = map[string]bool{"short": true, "medium": true, "long": true}

func runArticle(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	length, _ := flags.GetString("length")
	if !composeLengths[length] {
		return fmt.Errorf("invalid --length %q: use short, medium or long", length)
	}
	demographic, _ := flags.GetString("demographic")
	style, _ := flags.GetString("style")
	topic, _ := flags.GetString("topic")
	model, _ := flags.GetString("model")

	opts := generation.Options{
		generation.OptDemographic: demographic,
		generation.OptStyle:       style,
		generation.OptTopic:       topic,
		generation.OptWordCount:   length,
	}
	if model != "" {
		opts[generation.OptModel] = model
	}
	return runComposed(cmd, generators.IDSubstackArticle, opts)
}

func runAbout(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	length, _ := flags.GetString("length")
	if !composeLengths[length] {
		return fmt.Errorf("invalid --length %q: use short, medium or long", length)
	}

	opts := generation.Options{generation.OptLength: length}
	for flag, key := range map[string]string{
		"demographic": generation.OptDemographic,
		"style":       generation.OptStyle,
		"topic":       generation.OptTopic,
		"model":       generation.OptModel,
	} {
		if v, _ := flags.GetString(flag); v != "" {
			opts[key] = v
		}
	}
	return runComposed(cmd, generators.IDSubstackAbout, opts)
}

func runComposed(cmd *cobra.Command, id string, opts generation.Options) error {
	a, err := appFromConfig()
	if err != nil {
		return err
	}
	defer a.close()

	out, err := runGenerator(cmd.Context(), cmd.ErrOrStderr(), a, id, opts)
	if err != nil {
		return err
	}
	if isJSON() {
		return writeOutcomeJSON(cmd.OutOrStdout(), out)
	}
	renderOutcome(cmd.OutOrStdout(), out)
	return nil
}

func runArticleInputs(cmd *cobra.Command, args []string) error {
	a, err := appFromConfig()
	if err != nil {
		return err
	}
	defer a.close()

	in, err := generators.LoadInputs(a.store)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(w, in)
	}

	ui.RenderPageHeader(w, "Article Inputs", fmt.Sprintf("%d demographics, %d styles", len(in.Demographics), len(in.Styles)))

	fmt.Fprintln(w, ui.StyleSectionTitle.Render("Demographics"))
	demos := &ui.Table{Headers: []string{"LABEL", "SOURCE"}, MaxWidth: 60}
	for _, e := range in.Demographics {
		demos.Rows = append(demos.Rows, []string{e.Label, e.SourceFile})
	}
	fmt.Fprintln(w, demos.Render())

	fmt.Fprintln(w, ui.StyleSectionTitle.Render("Writing Styles"))
	styles := &ui.Table{Headers: []string{"NAME", "SOURCE"}, MaxWidth: 60}
	for _, e := range in.Styles {
		styles.Rows = append(styles.Rows, []string{e.Name, e.SourceFile})
	}
	fmt.Fprintln(w, styles.Render())

	if !in.CanGenerate {
		fmt.Fprintln(w, ui.StyleWarning.Render("Run 'monadgen generate substack_readers' and 'monadgen generate substack_styles' before writing articles."))
	}
	return nil
}
