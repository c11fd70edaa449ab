package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
	// 取引所のタイムゾーン名を解決するため、OSのzoneinfoに依存しない
	_ "time/tzdata"

	pricesusecase "stock_tracker/internal/feature/prices/usecase"
	symbolsusecase "stock_tracker/internal/feature/symbols/usecase"
	"stock_tracker/internal/shared/market"

	"github.com/PaesslerAG/jsonpath"
)

// ErrNoData is returned when the provider answered but had nothing for the symbol.
var ErrNoData = errors.New("no data")

// YahooMarket はYahoo Financeから履歴と現在値を取得するプロバイダ実装です。
// レスポンスのスキーマは固定されていないため、any にデコードしてJSONPathで読み取る。
type YahooMarket struct {
	cfg    Config
	client *http.Client
}

var (
	_ pricesusecase.HistoryProvider = (*YahooMarket)(nil)
	_ symbolsusecase.QuoteProvider  = (*YahooMarket)(nil)
)

// NewYahooMarket は指定された設定とHTTPクライアントでYahooMarketの新しいインスタンスを生成します。
func NewYahooMarket(cfg Config, client *http.Client) *YahooMarket {
	return &YahooMarket{cfg: cfg, client: client}
}

// FetchHistory returns the daily bars of code over period, oldest first.
// Bar times are in the exchange's time zone.
func (y *YahooMarket) FetchHistory(ctx context.Context, code string, period market.Period) ([]market.Bar, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("invalid period %q", period)
	}
	obj, err := y.chart(ctx, code, string(period), "1d")
	if err != nil {
		return nil, err
	}

	loc := exchangeLocation(obj)
	timestamps, _ := get(obj, "$.chart.result[0].timestamp").([]any)
	if len(timestamps) == 0 {
		return nil, fmt.Errorf("%s: %w", code, ErrNoData)
	}
	quote := get(obj, "$.chart.result[0].indicators.quote[0]")
	opens := column(quote, "open")
	highs := column(quote, "high")
	lows := column(quote, "low")
	closes := column(quote, "close")
	volumes := column(quote, "volume")

	bars := make([]market.Bar, 0, len(timestamps))
	for i, ts := range timestamps {
		sec, ok := ts.(float64)
		if !ok {
			continue
		}
		bars = append(bars, market.Bar{
			Time:   time.Unix(int64(sec), 0).In(loc),
			Open:   at(opens, i),
			High:   at(highs, i),
			Low:    at(lows, i),
			Close:  at(closes, i),
			Volume: at(volumes, i),
		})
	}
	return bars, nil
}

// FetchQuote returns the current quote of code. Price and change come from the chart
// endpoint; name, sector and market cap are filled in from quoteSummary when available.
// Any field may be absent.
func (y *YahooMarket) FetchQuote(ctx context.Context, code string) (market.Quote, error) {
	q := market.Quote{Symbol: code}
	md := &market.Metadata{}

	chartObj, chartErr := y.chart(ctx, code, string(market.PeriodOneDay), "1d")
	if chartErr == nil {
		q.Price = floatAt(chartObj, "$.chart.result[0].meta.regularMarketPrice")
		prev := floatAt(chartObj, "$.chart.result[0].meta.chartPreviousClose")
		if prev == nil {
			prev = floatAt(chartObj, "$.chart.result[0].meta.previousClose")
		}
		if q.Price != nil && prev != nil && *prev != 0 {
			q.ChangePercent = market.Float((*q.Price - *prev) / *prev * 100)
		}
		md.Name = stringAt(chartObj, "$.chart.result[0].meta.longName")
		if md.Name == nil {
			md.Name = stringAt(chartObj, "$.chart.result[0].meta.shortName")
		}
	}

	summary, summaryErr := y.quoteSummary(ctx, code)
	if summaryErr == nil {
		if name := stringAt(summary, "$.quoteSummary.result[0].price.longName"); name != nil {
			md.Name = name
		}
		md.Sector = stringAt(summary, "$.quoteSummary.result[0].assetProfile.sector")
		if mc := floatAt(summary, "$.quoteSummary.result[0].price.marketCap.raw"); mc != nil {
			md.MarketCap = market.Int(int64(*mc))
		}
		if q.Price == nil {
			q.Price = floatAt(summary, "$.quoteSummary.result[0].price.regularMarketPrice.raw")
		}
		if q.ChangePercent == nil {
			// quoteSummary reports the change as a fraction
			if pct := floatAt(summary, "$.quoteSummary.result[0].price.regularMarketChangePercent.raw"); pct != nil {
				q.ChangePercent = market.Float(*pct * 100)
			}
		}
	} else {
		slog.DebugContext(ctx, "quoteSummary unavailable", "symbol", code, "error", summaryErr)
	}

	if chartErr != nil && summaryErr != nil {
		return market.Quote{Symbol: code}, chartErr
	}
	if !md.IsEmpty() {
		q.Metadata = md
	}
	return q, nil
}

func (y *YahooMarket) chart(ctx context.Context, code, rng, interval string) (any, error) {
	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", interval)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(code), q.Encode())

	obj, err := y.getJSON(ctx, u)
	if err != nil {
		return nil, err
	}
	if desc := stringAt(obj, "$.chart.error.description"); desc != nil {
		return nil, fmt.Errorf("yahoo chart %s: %s", code, *desc)
	}
	if get(obj, "$.chart.result[0]") == nil {
		return nil, fmt.Errorf("%s: %w", code, ErrNoData)
	}
	return obj, nil
}

func (y *YahooMarket) quoteSummary(ctx context.Context, code string) (any, error) {
	q := url.Values{}
	q.Set("modules", "price,assetProfile")
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", y.cfg.BaseURL, url.PathEscape(code), q.Encode())

	obj, err := y.getJSON(ctx, u)
	if err != nil {
		return nil, err
	}
	if desc := stringAt(obj, "$.quoteSummary.error.description"); desc != nil {
		return nil, fmt.Errorf("yahoo quoteSummary %s: %s", code, *desc)
	}
	if get(obj, "$.quoteSummary.result[0]") == nil {
		return nil, fmt.Errorf("%s: %w", code, ErrNoData)
	}
	return obj, nil
}

func (y *YahooMarket) getJSON(ctx context.Context, u string) (any, error) {
	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", y.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	// リクエストを実行
	res, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("yahoo http %d", res.StatusCode)
	}

	var obj any
	if err := json.NewDecoder(res.Body).Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// exchangeLocation resolves the exchange time zone from the chart meta,
// by name first, then by fixed offset, then UTC.
func exchangeLocation(obj any) *time.Location {
	if name := stringAt(obj, "$.chart.result[0].meta.exchangeTimezoneName"); name != nil {
		if loc, err := time.LoadLocation(*name); err == nil {
			return loc
		}
	}
	if off := floatAt(obj, "$.chart.result[0].meta.gmtoffset"); off != nil {
		tz := ""
		if abbr := stringAt(obj, "$.chart.result[0].meta.timezone"); abbr != nil {
			tz = *abbr
		}
		return time.FixedZone(tz, int(*off))
	}
	return time.UTC
}

// get evaluates path against obj; a missing path yields nil.
func get(obj any, path string) any {
	if obj == nil {
		return nil
	}
	// plain key/index paths yield the value itself, not a list of answers
	v, err := jsonpath.Get(path, obj)
	if err != nil {
		return nil
	}
	return v
}

func floatAt(obj any, path string) *float64 {
	if f, ok := get(obj, path).(float64); ok {
		return &f
	}
	return nil
}

func stringAt(obj any, path string) *string {
	if s, ok := get(obj, path).(string); ok && s != "" {
		return &s
	}
	return nil
}

func column(quote any, name string) []any {
	m, ok := quote.(map[string]any)
	if !ok {
		return nil
	}
	col, _ := m[name].([]any)
	return col
}

// at returns the i-th value of col, or nil when it is missing or null.
func at(col []any, i int) *float64 {
	if i >= len(col) {
		return nil
	}
	if f, ok := col[i].(float64); ok {
		return &f
	}
	return nil
}
