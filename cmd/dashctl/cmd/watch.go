package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Fetch the dashboard every time the token store changes",
	Long: `Watch fetches the dashboard once, then fetches again whenever the token
store file is written, created or replaced. Stop it with Ctrl+C.

The store's directory is created if it does not exist yet, so watch can be
started before anything has written a token.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		// Editors replace files instead of writing them in place, so watch the directory.
		dir := filepath.Dir(flagStore)
		if err := fileSystem.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create store directory %s: %w", dir, err)
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}

		client := newClient()
		refresh := func() {
			if err := fetchAndPrint(ctx, out, client, newProvider()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			}
		}
		refresh()

		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if isStoreEvent(ev, flagStore) {
					logger.Debug("Token store changed", "op", ev.Op.String(), "path", ev.Name)
					refresh()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("Watcher error", "error", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// isStoreEvent reports whether ev changed the contents of the store file.
func isStoreEvent(ev fsnotify.Event, store string) bool {
	if filepath.Clean(ev.Name) != filepath.Clean(store) {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
