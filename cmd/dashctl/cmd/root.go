package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nfrund/dashview/internal/config"
	"github.com/nfrund/dashview/internal/credentials"
	dash "github.com/nfrund/dashview/internal/dashboard"
	"github.com/nfrund/dashview/internal/logging"
)

// fileSystem backs the token store. Tests swap in an in-memory filesystem.
var fileSystem afero.Fs = afero.NewOsFs()

var logger = slog.Default()

var (
	flagURL     string
	flagStore   string
	flagTimeout time.Duration
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dashctl",
	Short: "Dashboard command-line client",
	Long: `dashctl reads the dashboard API from a terminal.

The bearer token is read from the "token" key of a JSON store file
(TOKEN_FILE, default ~/.dashview/store.json). dashctl never writes it.

Available commands:
  fetch      Fetch the dashboard once and print it
  watch      Fetch again every time the token store changes
  version    Print the version`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if flagVerbose {
			level = "debug"
		}
		logger = logging.NewWithWriter(cmd.ErrOrStderr(), "text", level)

		cfg, err := config.LoadClient()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("url") {
			flagURL = cfg.DashboardURL
		}
		if !cmd.Flags().Changed("store") {
			flagStore = cfg.TokenFile
		}
		if !cmd.Flags().Changed("timeout") {
			flagTimeout = cfg.FetchTimeout
		}
		return nil
	},
}

// Execute executes the root command until it finishes or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", config.DefaultDashboardURL, "dashboard API endpoint")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "path of the JSON token store")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "per-request timeout (0 disables)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log lifecycle events to stderr")
}

func newClient() *dash.Client {
	return dash.NewClient(flagURL, dash.WithTimeout(flagTimeout))
}

func newProvider() credentials.Provider {
	return credentials.FromStore(credentials.NewFileStore(fileSystem, flagStore))
}
