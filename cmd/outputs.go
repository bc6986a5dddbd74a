/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/josephgoksu/monadgen/internal/ui"
	"github.com/spf13/cobra"
)

var outputsCmd = &cobra.Command{
	Use:   "outputs",
	Short: "List generated artifacts",
	Long: `List the Markdown and JSON artifacts in the output directory, newest first.

With --watch, keep running and print each artifact as it is written.

Examples:
  monadgen outputs
  monadgen outputs --watch`,
	Args: cobra.NoArgs,
	RunE: runOutputs,
}

func init() {
	rootCmd.AddCommand(outputsCmd)
	outputsCmd.Flags().BoolP("watch", "w", false, "watch the output directory for new artifacts")
}

func runOutputs(cmd *cobra.Command, args []string) error {
	a, err := appFromConfig()
	if err != nil {
		return err
	}
	defer a.close()

	files, err := a.store.List()
	if err != nil {
		return fmt.Errorf("list outputs: %w", err)
	}

	w := cmd.OutOrStdout()
	if isJSON() {
		if err := printJSON(w, files); err != nil {
			return err
		}
	} else if len(files) == 0 {
		fmt.Fprintf(w, "No outputs in %s yet.\n", a.cfg.Output.Dir)
	} else {
		table := &ui.Table{Headers: []string{"NAME", "TYPE", "SIZE", "MODIFIED"}}
		for _, f := range files {
			table.Rows = append(table.Rows, []string{
				f.Name,
				f.Type,
				ui.HumanSize(f.Size),
				f.Modified.Format("2006-01-02 15:04:05"),
			})
		}
		fmt.Fprint(w, table.Render())
	}

	if watch, _ := cmd.Flags().GetBool("watch"); !watch {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(w, "\nWatching %s (Ctrl+C to stop)\n", a.cfg.Output.Dir)
	return watchOutputs(ctx, a.cfg.Output.Dir, w)
}

// watchOutputs prints the name of every .md or .json file created or
// written in dir until ctx is done. dir is created when missing.
func watchOutputs(ctx context.Context, dir string, w io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	seen := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Base(event.Name)
			ext := strings.ToLower(filepath.Ext(name))
			if ext != ".md" && ext != ".json" {
				continue
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			fmt.Fprintf(w, "%s %s\n", ui.Icon("+", ui.StyleSuccess), name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
}
