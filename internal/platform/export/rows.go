// Package export writes stored records to csv, json or parquet files.
package export

import (
	"strconv"
	"time"

	priceentity "stock_tracker/internal/feature/prices/domain/entity"
	tickentity "stock_tracker/internal/feature/ticks/domain/entity"
)

// Row is a record type that can be exported.
type Row interface {
	CSVHeader() []string
	CSVRecord() []string
}

// PriceRow is the export shape of a stored OHLCV bar. Ts is the stored naive wall clock.
type PriceRow struct {
	Symbol string    `json:"symbol" parquet:"symbol"`
	Ts     time.Time `json:"ts" parquet:"ts,timestamp(millisecond)"`
	Open   *float64  `json:"open" parquet:"open,optional"`
	High   *float64  `json:"high" parquet:"high,optional"`
	Low    *float64  `json:"low" parquet:"low,optional"`
	Close  *float64  `json:"close" parquet:"close,optional"`
	Volume *float64  `json:"volume" parquet:"volume,optional"`
}

func (PriceRow) CSVHeader() []string {
	return []string{"symbol", "ts", "open", "high", "low", "close", "volume"}
}

func (r PriceRow) CSVRecord() []string {
	return []string{r.Symbol, r.Ts.Format(time.DateTime), floatStr(r.Open), floatStr(r.High), floatStr(r.Low), floatStr(r.Close), floatStr(r.Volume)}
}

// TickRow is the export shape of a recorded live tick.
type TickRow struct {
	Symbol        string    `json:"symbol" parquet:"symbol"`
	Ts            time.Time `json:"ts" parquet:"ts,timestamp(millisecond)"`
	Price         *float64  `json:"price" parquet:"price,optional"`
	ChangePercent *float64  `json:"change_percent" parquet:"change_percent,optional"`
	SessionID     string    `json:"session_id" parquet:"session_id"`
}

func (TickRow) CSVHeader() []string {
	return []string{"symbol", "ts", "price", "change_percent", "session_id"}
}

func (r TickRow) CSVRecord() []string {
	return []string{r.Symbol, r.Ts.Format(time.DateTime), floatStr(r.Price), floatStr(r.ChangePercent), r.SessionID}
}

// PriceRows converts stored bars to export rows.
func PriceRows(bars []priceentity.PriceBar) []PriceRow {
	out := make([]PriceRow, 0, len(bars))
	for _, b := range bars {
		out = append(out, PriceRow{Symbol: b.Symbol, Ts: b.Time, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume})
	}
	return out
}

// TickRows converts stored ticks to export rows.
func TickRows(ticks []tickentity.Tick) []TickRow {
	out := make([]TickRow, 0, len(ticks))
	for _, t := range ticks {
		out = append(out, TickRow{Symbol: t.Symbol, Ts: t.Time, Price: t.Price, ChangePercent: t.ChangePercent, SessionID: t.SessionID})
	}
	return out
}

// floatStr renders an absent value as an empty cell.
func floatStr(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
