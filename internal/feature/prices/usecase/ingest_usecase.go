package usecase

import (
	"context"
	"log/slog"

	"stock_tracker/internal/shared/market"
	"stock_tracker/internal/shared/ratelimiter"
)

// IngestReport summarizes one IngestAll run.
type IngestReport struct {
	Symbols int
	Rows    int
	Failed  []string
}

// IngestUsecase は外部APIからウォッチリスト全銘柄の履歴を取得し、データベースに追記するユースケースです。
type IngestUsecase struct {
	market      HistoryProvider
	writer      *HistoryWriter
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(market HistoryProvider, writer *HistoryWriter, rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{market: market, writer: writer, rateLimiter: rateLimiter}
}

// IngestAll fetches period of history for every symbol and appends it.
// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の銘柄を続ける。
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string, period market.Period) IngestReport {
	report := IngestReport{}
	for _, s := range symbols {
		if ctx.Err() != nil {
			slog.WarnContext(ctx, "ingest interrupted", "remaining_from", s, "error", ctx.Err())
			break
		}
		report.Symbols++
		iu.rateLimiter.WaitIfNeeded()

		series, err := iu.market.FetchHistory(ctx, s, period)
		if err != nil {
			slog.ErrorContext(ctx, "failed to fetch history", "symbol", s, "period", period, "error", err)
			report.Failed = append(report.Failed, s)
			continue
		}
		res := iu.writer.AppendPriceHistory(ctx, s, series)
		res.Log(ctx)
		if res.Failed() {
			report.Failed = append(report.Failed, s)
			continue
		}
		report.Rows += res.Rows
	}
	return report
}
