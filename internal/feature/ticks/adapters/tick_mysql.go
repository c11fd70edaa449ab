// Package adapters はticksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"stock_tracker/internal/feature/ticks/domain/entity"
	"stock_tracker/internal/feature/ticks/usecase"

	"gorm.io/gorm"
)

// TickModel is the row shape of the live_ticks table (append-only).
type TickModel struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	Symbol        string    `gorm:"size:32;index:idx_live_symbol_ts,priority:1"`
	Ts            time.Time `gorm:"column:ts;index:idx_live_symbol_ts,priority:2"`
	Price         *float64  `gorm:"column:price"`
	ChangePercent *float64  `gorm:"column:change_percent"`
	SessionID     string    `gorm:"column:session_id;size:36;index:idx_live_session"`
}

func (TickModel) TableName() string {
	return "live_ticks"
}

type tickMySQL struct {
	db *gorm.DB
}

var _ usecase.TickRepository = (*tickMySQL)(nil)

func NewTickRepository(db *gorm.DB) *tickMySQL {
	return &tickMySQL{db: db}
}

// Insert appends one tick.
func (r *tickMySQL) Insert(ctx context.Context, t entity.Tick) error {
	m := TickModel{
		Symbol:        t.Symbol,
		Ts:            t.Time,
		Price:         t.Price,
		ChangePercent: t.ChangePercent,
		SessionID:     t.SessionID,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// Find returns the newest ticks of symbol first, optionally restricted to one session.
// limit <= 0 returns all rows.
func (r *tickMySQL) Find(ctx context.Context, symbol, session string, limit int) ([]entity.Tick, error) {
	var rows []TickModel
	q := r.db.WithContext(ctx).Where("symbol = ?", symbol)
	if session != "" {
		q = q.Where("session_id = ?", session)
	}
	q = q.Order("ts DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Tick, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Tick{
			Symbol:        m.Symbol,
			Time:          m.Ts,
			Price:         m.Price,
			ChangePercent: m.ChangePercent,
			SessionID:     m.SessionID,
		})
	}
	return out, nil
}
