package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/sounding-explorer/internal/adapter/soundingapi"
	"github.com/couchcryptid/sounding-explorer/internal/dashboard"
	"github.com/couchcryptid/sounding-explorer/internal/observability"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	apiURL  string
	timeout time.Duration
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "soundingctl",
		Short: "Sounding Explorer - radiosonde launch browser",
		Long: `soundingctl reads radiosonde launches from the sounding API and prints
launch summaries, per-variable statistics and monthly performance.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api-url",
		sharedcfg.EnvOrDefault("SOUNDING_API_URL", "http://127.0.0.1:8000"), "sounding API base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-request timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log API requests to stderr")

	root.AddCommand(
		newLaunchesCmd(opts),
		newProfileCmd(opts),
		newMonthlyCmd(opts),
		newInspectCmd(),
	)
	return root
}

// service builds a dashboard service over the sounding API for one command run.
func (o *options) service(cmd *cobra.Command) *dashboard.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if o.verbose {
		logger = slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}))
	}

	metrics := observability.NewUnregisteredMetrics()
	client := soundingapi.NewClient(o.apiURL, o.timeout, metrics, logger)
	return dashboard.New(client, logger, metrics, time.Minute)
}
