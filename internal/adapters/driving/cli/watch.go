package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mise-cli/internal/adapters/driving/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Report changes to canonical texts",
	Long: `Watches the project's text directory and reports every write, removal or
rename of a registered document's canonical text until interrupted.

Canonical texts must not change after import: an edited text no longer
matches the offsets of its segments, and a removed one leaves its
snippets unavailable.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var watchDebounce int

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce-ms", int(watch.DefaultDebounce.Milliseconds()),
		"milliseconds to collect changes before reporting")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if textStore == nil || documentService == nil {
		return errors.New("text store not configured")
	}

	w, err := watch.New(textStore.Dir(), documentService, msDuration(watchDebounce))
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", textStore.Dir())

	done := make(chan error, 1)
	go func() { done <- w.Run(cmd.Context()) }()

	for change := range w.Changes() {
		cmd.Printf("Changed: %s\n", change)
	}
	return <-done
}
