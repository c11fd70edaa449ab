// Package console は対話メニュー（銘柄一覧・チャート・指数・ポートフォリオ・ライブ追跡）を提供します。
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	portfolioentity "stock_tracker/internal/feature/portfolio/domain/entity"
	portfoliousecase "stock_tracker/internal/feature/portfolio/usecase"
	ticksusecase "stock_tracker/internal/feature/ticks/usecase"
	"stock_tracker/internal/platform/config"
	"stock_tracker/internal/platform/render"
	"stock_tracker/internal/shared/market"
)

// chartChoices is how many watchlist symbols the chart action offers.
const chartChoices = 10

// QuoteLookup fetches a quote and catalogs the symbol.
type QuoteLookup interface {
	Lookup(ctx context.Context, code string) (market.Quote, bool)
}

// HistoryFetcher fetches a series and appends it to the store.
type HistoryFetcher interface {
	FetchAndStore(ctx context.Context, code string, period market.Period) ([]market.Bar, error)
}

// PortfolioValuator prices holdings and writes a snapshot.
type PortfolioValuator interface {
	Valuate(ctx context.Context, holdings []portfolioentity.Holding) portfoliousecase.Valuation
}

// SessionRecorder hands out a tick recorder bound to one tracking session.
type SessionRecorder interface {
	WithSession(id string) *ticksusecase.Recorder
}

// Deps are the collaborators behind the menu actions.
type Deps struct {
	Watchlist config.Watchlist
	Currency  string
	Catalog   QuoteLookup
	History   HistoryFetcher
	Valuator  PortfolioValuator
	Quotes    ticksusecase.QuoteFetcher
	Recorder  SessionRecorder
	Renderer  render.Renderer
}

// Console runs the interactive menu on one input and one output.
type Console struct {
	deps        Deps
	in          *LineInput
	out         io.Writer
	newSession  func() string
	interrupt   func(ctx context.Context) (context.Context, context.CancelFunc)
	trackerOpts []ticksusecase.Option
}

// Option customizes a Console.
type Option func(*Console)

// WithSessionIDs replaces the session id generator.
func WithSessionIDs(f func() string) Option {
	return func(c *Console) { c.newSession = f }
}

// WithInterrupt replaces how live tracking scopes its cancellation.
// By default SIGINT/SIGTERM end the tracking session and return to the menu.
func WithInterrupt(f func(ctx context.Context) (context.Context, context.CancelFunc)) Option {
	return func(c *Console) { c.interrupt = f }
}

// WithTrackerOptions passes options to every Tracker the console creates.
func WithTrackerOptions(opts ...ticksusecase.Option) Option {
	return func(c *Console) { c.trackerOpts = append(c.trackerOpts, opts...) }
}

// New creates a Console reading operator input from in.
func New(deps Deps, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		deps:       deps,
		in:         NewLineInput(in),
		out:        out,
		newSession: newSessionID,
		interrupt: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

const menu = `
=== Borsa Istanbul Tracker ===
1) List symbols
2) Chart a symbol (1y)
3) Index quote
4) Portfolio valuation
5) Live tracking
6) Exit
`

// Run shows the menu until the operator picks exit or input ends.
// It returns nil on exit or EOF and ctx.Err() when ctx is done.
func (c *Console) Run(ctx context.Context) error {
	for {
		fmt.Fprint(c.out, menu)
		choice, err := c.prompt(ctx, "Choice: ")
		if err != nil {
			return c.finish(err)
		}
		switch strings.TrimSpace(choice) {
		case "1":
			c.listSymbols(ctx)
		case "2":
			err = c.chart(ctx)
		case "3":
			c.indexQuote(ctx)
		case "4":
			err = c.portfolio(ctx)
		case "5":
			err = c.track(ctx)
		case "6":
			fmt.Fprintln(c.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintf(c.out, "invalid choice %q\n", strings.TrimSpace(choice))
		}
		if err != nil {
			return c.finish(err)
		}
	}
}

func (c *Console) finish(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out, "\nGoodbye.")
		return nil
	}
	return err
}

func (c *Console) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
