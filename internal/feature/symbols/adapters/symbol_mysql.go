// Package adapters はsymbolsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"stock_tracker/internal/feature/symbols/domain/entity"
	"stock_tracker/internal/feature/symbols/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SymbolModel is the row shape of the symbols table.
type SymbolModel struct {
	Code      string    `gorm:"column:symbol;primaryKey;size:32"`
	Name      *string   `gorm:"size:255"`
	Sector    *string   `gorm:"size:255"`
	MarketCap *int64    `gorm:"column:market_cap"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (SymbolModel) TableName() string {
	return "symbols"
}

// symbolMySQL はSymbolRepositoryインターフェースのgorm実装です。
type symbolMySQL struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolMySQL)(nil)

// NewSymbolRepository は指定されたDB接続でリポジトリを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolMySQL {
	return &symbolMySQL{db: db}
}

// Upsert inserts the symbol or overwrites name, sector and market cap of the existing row.
func (r *symbolMySQL) Upsert(ctx context.Context, s entity.Symbol) error {
	m := SymbolModel{
		Code:      s.Code,
		Name:      s.Name,
		Sector:    s.Sector,
		MarketCap: s.MarketCap,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "sector", "market_cap", "updated_at"}),
	}).Create(&m).Error
}

// List returns every cataloged symbol ordered by code.
func (r *symbolMySQL) List(ctx context.Context) ([]entity.Symbol, error) {
	var rows []SymbolModel
	if err := r.db.WithContext(ctx).Order("symbol ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Symbol, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Symbol{
			Code:      m.Code,
			Name:      m.Name,
			Sector:    m.Sector,
			MarketCap: m.MarketCap,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return out, nil
}
