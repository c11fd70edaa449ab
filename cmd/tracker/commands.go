package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"stock_tracker/internal/app/console"
	"stock_tracker/internal/app/router"
	ticksusecase "stock_tracker/internal/feature/ticks/usecase"
	"stock_tracker/internal/platform/db"
	"stock_tracker/internal/platform/export"
	"stock_tracker/internal/platform/render"
	"stock_tracker/internal/shared/market"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu (default)",
		Args:  cobra.NoArgs,
		RunE:  runMenu,
	}
}

// runMenu runs the interactive menu. SIGINT is handled by live tracking only;
// at the menu it ends the process as usual.
func runMenu(cmd *cobra.Command, args []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	con := console.New(console.Deps{
		Watchlist: c.Watchlist,
		Currency:  c.Config.Currency,
		Catalog:   c.Catalog,
		History:   c.History,
		Valuator:  c.Valuator,
		Quotes:    c.Market,
		Recorder:  c.Recorder,
		Renderer:  render.NewTerminalRenderer(),
	}, os.Stdin, os.Stdout)
	return con.Run(context.Background())
}

func trackCmd() *cobra.Command {
	var minutes int
	cmd := &cobra.Command{
		Use:   "track CODE",
		Short: "Poll one symbol every 5 seconds and record each confirmed tick",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if minutes <= 0 {
				return fmt.Errorf("--minutes must be positive, got %d", minutes)
			}
			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, stop := signalContext()
			defer stop()

			code := strings.ToUpper(strings.TrimSpace(args[0]))
			tracker := ticksusecase.NewTracker(c.Market, c.Recorder, console.NewLineInput(os.Stdin), os.Stdout)
			sum, err := tracker.Run(ctx, code, minutes)
			if err != nil {
				return err
			}
			slog.Info("tracking finished", "symbol", code, "session", c.Recorder.Session(),
				"cycles", sum.Cycles, "recorded", sum.Recorded, "reason", sum.Reason)
			return nil
		},
	}
	cmd.Flags().IntVarP(&minutes, "minutes", "n", 1, "Tracking duration in minutes")
	return cmd
}

func ingestCmd() *cobra.Command {
	var (
		period  string
		refresh bool
	)
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Fetch and append daily history for every watchlist symbol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := market.Period(period)
			if !p.Valid() {
				return fmt.Errorf("invalid --period %q", period)
			}
			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.Close()
			if c.Degraded() {
				slog.Warn("store unavailable; history is fetched but not persisted")
			}

			ctx, stop := signalContext()
			defer stop()

			if refresh {
				for _, s := range c.Watchlist.Symbols {
					if err := c.Market.Invalidate(ctx, s); err != nil {
						slog.Warn("cache invalidation failed", "symbol", s, "error", err)
					}
				}
			}

			report := c.Ingest.IngestAll(ctx, c.Watchlist.Symbols, p)
			slog.Info("ingest finished", "symbols", report.Symbols, "rows", report.Rows, "failed", report.Failed)
			if len(report.Failed) > 0 && len(report.Failed) == report.Symbols {
				return errors.New("ingest failed for every symbol")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", string(market.PeriodOneYear), "Lookback period (1d, 5d, 1mo, 6mo, 1y, 5y, max)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Drop cached history before fetching")
	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only query API over stored records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, stop := signalContext()
			defer stop()

			srv := &http.Server{
				Addr:              c.Config.HTTPAddr,
				Handler:           router.NewRouter(c.Handlers()),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				slog.Info("http server listening", "addr", srv.Addr, "degraded", c.Degraded())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			slog.Info("shutting down http server")
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and indexes, then exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := db.LoadConfigFromEnv()
			gdb, err := db.OpenDB(cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := gdb.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := db.Provision(gdb); err != nil {
				return err
			}
			slog.Info("schema is up to date", "driver", cfg.Driver)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var (
		kind    string
		symbol  string
		session string
		format  string
		out     string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write stored prices or ticks of one symbol to csv, json or parquet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol = strings.ToUpper(strings.TrimSpace(symbol))
			if symbol == "" {
				return errors.New("--symbol is required")
			}
			if out == "" {
				out = strings.ReplaceAll(symbol, "^", "") + "_" + kind
			}
			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.Close()
			ctx := cmd.Context()

			var path string
			switch kind {
			case "prices":
				bars, err := c.Prices.ExportPrices(ctx, symbol)
				if err != nil {
					return err
				}
				path, err = export.WriteFile(out, format, export.PriceRows(bars))
				if err != nil {
					return err
				}
			case "ticks":
				ticks, err := c.Ticks.ExportTicks(ctx, symbol, session)
				if err != nil {
					return err
				}
				path, err = export.WriteFile(out, format, export.TickRows(ticks))
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("invalid --kind %q (use: prices, ticks)", kind)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "prices", "Record kind: prices or ticks")
	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "Symbol code, e.g. THYAO.IS")
	cmd.Flags().StringVar(&session, "session", "", "Only ticks of this tracking session")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv, json or parquet")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (extension added when missing)")
	return cmd
}
