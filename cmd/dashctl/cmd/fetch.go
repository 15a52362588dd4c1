package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nfrund/dashview/internal/credentials"
	dash "github.com/nfrund/dashview/internal/dashboard"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the dashboard once and print the payload",
	Long: `Fetch reads the token from the store file, issues a single GET to the
dashboard API and prints the JSON payload indented by two spaces.

A missing token is not an error: the request is sent with an empty
bearer credential and the API decides what to answer.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return fetchAndPrint(cmd.Context(), cmd.OutOrStdout(), newClient(), newProvider())
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

// fetchAndPrint mounts a view, waits for it to settle and writes the result.
// Failures are returned so the process exits non-zero.
func fetchAndPrint(ctx context.Context, w io.Writer, fetcher dash.Fetcher, creds credentials.Provider) error {
	v := dash.NewView(fetcher, creds, dash.WithLogger(logger))
	v.Mount(ctx)
	defer v.Unmount()

	select {
	case <-v.Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	snap := v.Snapshot()
	if snap.State == dash.StateFailed {
		return fmt.Errorf("fetch dashboard (%s): %w", dash.KindOf(snap.Err), snap.Err)
	}
	_, err := fmt.Fprintln(w, snap.Pretty())
	return err
}
