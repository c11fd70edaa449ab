package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	portfoliousecase "stock_tracker/internal/feature/portfolio/usecase"
	ticksusecase "stock_tracker/internal/feature/ticks/usecase"
	"stock_tracker/internal/platform/render"
	"stock_tracker/internal/shared/market"

	"github.com/google/uuid"
)

func newSessionID() string { return uuid.NewString() }

// listSymbols prints name, sector, price and change of every watchlist symbol.
// Each lookup also refreshes the symbol catalog.
func (c *Console) listSymbols(ctx context.Context) {
	for _, code := range c.deps.Watchlist.Symbols {
		q, ok := c.deps.Catalog.Lookup(ctx, code)
		if !ok {
			fmt.Fprintf(c.out, "%-10s no data for %s\n", code, code)
			continue
		}
		fmt.Fprintf(c.out, "%-10s %-32s %-20s %12s %9s\n",
			code, truncate(q.NameOr(code), 32), truncate(q.SectorOr("-"), 20), c.price(q.Price), q.FormatChange())
	}
}

func (c *Console) chart(ctx context.Context) error {
	choices := c.deps.Watchlist.Symbols
	if len(choices) > chartChoices {
		choices = choices[:chartChoices]
	}
	for i, code := range choices {
		fmt.Fprintf(c.out, "%2d) %s\n", i+1, code)
	}
	answer, err := c.prompt(ctx, fmt.Sprintf("Select symbol (1-%d): ", len(choices)))
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(choices) {
		fmt.Fprintf(c.out, "invalid selection %q\n", answer)
		return nil
	}
	code := choices[n-1]

	series, err := c.deps.History.FetchAndStore(ctx, code, market.PeriodOneYear)
	if err != nil || len(series) == 0 {
		fmt.Fprintf(c.out, "no data for %s\n", code)
		return nil
	}
	if err := c.deps.Renderer.Render(c.out, code, series); err != nil {
		if errors.Is(err, render.ErrEmptySeries) {
			fmt.Fprintf(c.out, "no data for %s\n", code)
			return nil
		}
		return err
	}
	return nil
}

func (c *Console) indexQuote(ctx context.Context) {
	code := c.deps.Watchlist.Index
	q, ok := c.deps.Catalog.Lookup(ctx, code)
	if !ok || q.Price == nil || q.ChangePercent == nil {
		fmt.Fprintln(c.out, "index data unavailable")
		return
	}
	fmt.Fprintf(c.out, "%s (%s): %s (%s)\n", q.NameOr(code), code, q.FormatPrice(), q.FormatChange())
}

func (c *Console) portfolio(ctx context.Context) error {
	answer, err := c.prompt(ctx, "Holdings (code:lot,code:lot): ")
	if err != nil {
		return err
	}
	holdings, errs := portfoliousecase.ParseHoldings(answer)
	for _, e := range errs {
		fmt.Fprintf(c.out, "skipped: %v\n", e)
	}
	if len(holdings) == 0 {
		fmt.Fprintln(c.out, "no valid holdings")
		return nil
	}

	val := c.deps.Valuator.Valuate(ctx, holdings)
	for _, code := range val.Unresolved {
		fmt.Fprintf(c.out, "no price for %s, excluded\n", code)
	}
	for _, l := range val.Snapshot.Lines {
		fmt.Fprintf(c.out, "%-10s %8d x %12s = %16s\n", l.Symbol, l.Lot,
			render.Money(l.Price, c.deps.Currency), render.Money(l.Value, c.deps.Currency))
	}
	fmt.Fprintf(c.out, "Total: %s\n", render.Money(val.Snapshot.Total, c.deps.Currency))

	val.Write.Log(ctx)
	if val.Write.OK() {
		fmt.Fprintf(c.out, "Snapshot #%d saved.\n", val.Snapshot.ID)
	}
	return nil
}

func (c *Console) track(ctx context.Context) error {
	code, err := c.prompt(ctx, "Symbol: ")
	if err != nil {
		return err
	}
	code = strings.ToUpper(code)
	if code == "" {
		fmt.Fprintln(c.out, "no symbol given")
		return nil
	}
	answer, err := c.prompt(ctx, "Minutes: ")
	if err != nil {
		return err
	}
	minutes, err := strconv.Atoi(answer)
	if err != nil || minutes <= 0 {
		fmt.Fprintf(c.out, "invalid minutes %q\n", answer)
		return nil
	}

	tctx, stop := c.interrupt(ctx)
	defer stop()

	recorder := c.deps.Recorder.WithSession(c.newSession())
	tracker := ticksusecase.NewTracker(c.deps.Quotes, recorder, c.in, c.out, c.trackerOpts...)
	sum, err := tracker.Run(tctx, code, minutes)
	if err != nil {
		return err
	}
	if sum.Reason == ticksusecase.ReasonInputClosed {
		return fmt.Errorf("tracking %s: %w", code, io.EOF)
	}
	return nil
}

// price renders a provider price in the display currency.
func (c *Console) price(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return render.MoneyFromFloat(*p, c.deps.Currency)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
