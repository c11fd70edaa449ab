// Package adapters はportfolioフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"stock_tracker/internal/feature/portfolio/domain/entity"
	"stock_tracker/internal/feature/portfolio/usecase"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SnapshotModel is the row shape of portfolio_snapshots. Rows are never updated.
type SnapshotModel struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	TotalValue decimal.Decimal `gorm:"column:total_value;type:decimal(20,4)"`
	Lines      []LineModel     `gorm:"foreignKey:SnapshotID"`
}

func (SnapshotModel) TableName() string {
	return "portfolio_snapshots"
}

// LineModel is the row shape of portfolio_lines, owned by one snapshot.
type LineModel struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement"`
	SnapshotID uint64          `gorm:"column:snapshot_id;index:idx_snapshot"`
	Symbol     string          `gorm:"size:32"`
	Lot        int64           `gorm:"column:lot"`
	Price      decimal.Decimal `gorm:"column:price;type:decimal(20,4)"`
	Value      decimal.Decimal `gorm:"column:value;type:decimal(20,4)"`
}

func (LineModel) TableName() string {
	return "portfolio_lines"
}

type snapshotMySQL struct {
	db *gorm.DB
}

var _ usecase.SnapshotRepository = (*snapshotMySQL)(nil)

func NewSnapshotRepository(db *gorm.DB) *snapshotMySQL {
	return &snapshotMySQL{db: db}
}

// Save writes the header and its lines in one transaction.
// Either both become visible or neither does.
func (r *snapshotMySQL) Save(ctx context.Context, s *entity.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		head := SnapshotModel{CreatedAt: s.CreatedAt, TotalValue: s.Total}
		if err := tx.Omit("Lines").Create(&head).Error; err != nil {
			return err
		}
		if len(s.Lines) > 0 {
			lines := make([]LineModel, 0, len(s.Lines))
			for _, l := range s.Lines {
				lines = append(lines, LineModel{
					SnapshotID: head.ID,
					Symbol:     l.Symbol,
					Lot:        l.Lot,
					Price:      l.Price,
					Value:      l.Value,
				})
			}
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		s.ID = head.ID
		return nil
	})
}

// List returns the newest snapshots first, each with its lines in input order.
func (r *snapshotMySQL) List(ctx context.Context, limit int) ([]entity.Snapshot, error) {
	var rows []SnapshotModel
	q := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Snapshot, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// Get returns one snapshot with its lines.
func (r *snapshotMySQL) Get(ctx context.Context, id uint64) (entity.Snapshot, error) {
	var m SnapshotModel
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Snapshot{}, usecase.ErrSnapshotNotFound
	}
	if err != nil {
		return entity.Snapshot{}, err
	}
	return toEntity(m), nil
}

func toEntity(m SnapshotModel) entity.Snapshot {
	s := entity.Snapshot{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		Total:     m.TotalValue,
		Lines:     make([]entity.Line, 0, len(m.Lines)),
	}
	for _, l := range m.Lines {
		s.Lines = append(s.Lines, entity.Line{
			Symbol: l.Symbol,
			Lot:    l.Lot,
			Price:  l.Price,
			Value:  l.Value,
		})
	}
	return s
}
