// Package adapters はpricesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"stock_tracker/internal/feature/prices/domain/entity"
	"stock_tracker/internal/feature/prices/usecase"

	"gorm.io/gorm"
)

// insertBatchSize bounds the number of rows per INSERT statement.
const insertBatchSize = 500

// PriceModel is the row shape of the prices table. Rows are append-only;
// (symbol, ts) is indexed but deliberately not unique.
type PriceModel struct {
	ID     uint64    `gorm:"primaryKey;autoIncrement"`
	Symbol string    `gorm:"size:32;index:idx_symbol_ts,priority:1"`
	Ts     time.Time `gorm:"column:ts;index:idx_symbol_ts,priority:2"`
	Open   *float64  `gorm:"column:open_price"`
	High   *float64  `gorm:"column:high_price"`
	Low    *float64  `gorm:"column:low_price"`
	Close  *float64  `gorm:"column:close_price"`
	Volume *float64  `gorm:"column:volume"`
}

func (PriceModel) TableName() string {
	return "prices"
}

type priceMySQL struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*priceMySQL)(nil)

func NewPriceRepository(db *gorm.DB) *priceMySQL {
	return &priceMySQL{db: db}
}

func toModel(e entity.PriceBar) PriceModel {
	return PriceModel{
		Symbol: e.Symbol,
		Ts:     e.Time,
		Open:   e.Open,
		High:   e.High,
		Low:    e.Low,
		Close:  e.Close,
		Volume: e.Volume,
	}
}

// InsertBatch appends bars in one transaction. It never updates existing rows.
func (r *priceMySQL) InsertBatch(ctx context.Context, bars []entity.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}
	ms := make([]PriceModel, 0, len(bars))
	for _, e := range bars {
		ms = append(ms, toModel(e))
	}
	return r.db.WithContext(ctx).CreateInBatches(&ms, insertBatchSize).Error
}

// Find returns the newest bars of symbol first. limit <= 0 returns all rows.
func (r *priceMySQL) Find(ctx context.Context, symbol string, limit int) ([]entity.PriceBar, error) {
	var rows []PriceModel
	q := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("ts DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.PriceBar, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.PriceBar{
			Symbol: m.Symbol,
			Time:   m.Ts,
			Open:   m.Open,
			High:   m.High,
			Low:    m.Low,
			Close:  m.Close,
			Volume: m.Volume,
		})
	}
	return out, nil
}
