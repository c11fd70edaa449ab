// stock-tracker はウォッチリストの市場データを取得・表示し、観測値をストアに保存するCLIです。
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stock_tracker/internal/app/di"
	"stock_tracker/internal/platform/config"
	infradb "stock_tracker/internal/platform/db"
	"stock_tracker/internal/platform/logging"
	infraredis "stock_tracker/internal/platform/redis"

	"github.com/spf13/cobra"
)

var envFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "stock-tracker",
		Short: "Borsa Istanbul watchlist tracker",
		Long: `stock-tracker fetches quotes and daily history for a watchlist, shows them
interactively and records prices, live ticks and portfolio valuations to a database.
Without a subcommand it starts the interactive menu.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadDotEnv(envFile)
			logging.Setup(os.Stderr, config.Load().LogLevel)
		},
		RunE: runMenu,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path of the .env file to load")

	rootCmd.AddCommand(menuCmd())
	rootCmd.AddCommand(trackCmd())
	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newContainer loads configuration and wires the application.
func newContainer() (*di.Container, error) {
	cfg := config.Load()
	wl, err := config.LoadWatchlist(cfg.WatchlistFile)
	if err != nil {
		return nil, err
	}
	return di.New(cfg, wl, infradb.LoadConfigFromEnv(), infraredis.LoadConfig()), nil
}

// signalContext is cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
