package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/c-gorringe/moxie-app/internal/domain/sales"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByUserBetween returns the user's sales within [start, end], newest
// first. A nil end means "through now".
func (r *GormSaleRepository) FindByUserBetween(ctx context.Context, userID uuid.UUID, start time.Time, end *time.Time) ([]sales.Sale, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND occurred_at >= ?", userID, start)
	if end != nil {
		query = query.Where("occurred_at <= ?", *end)
	}

	var rows []sales.Sale
	if err := query.Order("occurred_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SaveBatch inserts sales in chunks
func (r *GormSaleRepository) SaveBatch(ctx context.Context, rows []*sales.Sale) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, 500).Error
}

// DeleteAll removes every sale row. Used only by the administrative reseed.
func (r *GormSaleRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&sales.Sale{}).Error
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)
