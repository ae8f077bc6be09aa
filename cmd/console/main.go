package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/armadakv/console-sub000/pkg/cluster"
	"github.com/armadakv/console-sub000/pkg/history"
	"github.com/armadakv/console-sub000/pkg/log"
	"github.com/armadakv/console-sub000/pkg/server"
	"github.com/armadakv/console-sub000/pkg/status"
)

const (
	defaultRetryMax         = 3
	defaultRetryWaitMin     = 1 * time.Second
	defaultRetryWaitMax     = 30 * time.Second
	defaultRequestTimeout   = 30 * time.Second
	defaultStatusTimeout    = status.DefaultPerNodeTimeout
	defaultGracefulShutdown = 10 * time.Second
	defaultHistoryInterval  = 30 * time.Second
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr             string
		clusterAddr      string
		historyDB        string
		historyInterval  time.Duration
		historyRetention int
		retryMax         int
		retryWaitMin     time.Duration
		retryWaitMax     time.Duration
		requestTimeout   time.Duration
		statusTimeout    time.Duration
		scanLimit        int
		debug            bool
	)

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Admin console for an armada key-value cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				log.SetDebugMode()
				log.Debug().Msg("Debug mode enabled")
			}

			if clusterAddr == "" {
				log.Fatal().Msg("A cluster address must be specified with --cluster-addr")
			}
			if !strings.HasPrefix(clusterAddr, "http://") && !strings.HasPrefix(clusterAddr, "https://") {
				log.Fatal().Str("cluster_addr", clusterAddr).Msg("Cluster address must start with http:// or https://")
			}

			log.Info().
				Str("cluster_addr", clusterAddr).
				Dur("request_timeout", requestTimeout).
				Dur("status_timeout", statusTimeout).
				Msg("Configured cluster target")

			status.RegisterMetrics()

			registry := cluster.NewRegistry(cluster.Config{
				Address:        clusterAddr,
				RetryMax:       retryMax,
				RetryWaitMin:   retryWaitMin,
				RetryWaitMax:   retryWaitMax,
				RequestTimeout: requestTimeout,
			})
			defer func() {
				if err := registry.Close(); err != nil {
					log.Warn().Err(err).Msg("Failed to close cluster client")
				}
			}()

			aggregator := status.NewAggregator(statusTimeout)

			var store *history.Store
			if historyDB != "" {
				var err error
				store, err = history.NewStore(historyDB, historyRetention)
				if err != nil {
					log.Fatal().Err(err).Str("db", historyDB).Msg("Failed to open history database")
				}
				defer func() {
					if err := store.Close(); err != nil {
						log.Warn().Err(err).Msg("Failed to close history database")
					}
				}()

				poller := status.NewPoller(registry, aggregator, store, historyInterval)
				poller.Start()
				defer poller.Stop()
			}

			srv := server.New(registry, aggregator, store, server.Config{
				RequestTimeout:          requestTimeout,
				GracefulShutdownTimeout: defaultGracefulShutdown,
				ScanLimit:               scanLimit,
			})
			return srv.Start(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8079", "Console listen address")
	cmd.Flags().StringVar(&clusterAddr, "cluster-addr", "", "Cluster seed node URL (e.g. http://node-0:8220)")
	cmd.Flags().StringVar(&historyDB, "history-db", "", "SQLite database path for status history (enables the history API)")
	cmd.Flags().DurationVar(&historyInterval, "history-interval", defaultHistoryInterval, "Interval between recorded status snapshots")
	cmd.Flags().IntVar(&historyRetention, "history-retention", history.DefaultRetention, "Number of status snapshots to retain")
	cmd.Flags().IntVar(&retryMax, "retry-max", defaultRetryMax, "Maximum number of retries for cluster requests")
	cmd.Flags().DurationVar(&retryWaitMin, "retry-wait-min", defaultRetryWaitMin, "Minimum wait time between retries")
	cmd.Flags().DurationVar(&retryWaitMax, "retry-wait-max", defaultRetryWaitMax, "Maximum wait time between retries")
	cmd.Flags().DurationVar(&requestTimeout, "request-timeout", defaultRequestTimeout, "Per-request timeout")
	cmd.Flags().DurationVar(&statusTimeout, "status-timeout", defaultStatusTimeout, "Per-node status check timeout")
	cmd.Flags().IntVar(&scanLimit, "scan-limit", 100, "Default page size for key scans")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}
