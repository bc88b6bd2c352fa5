package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/c-gorringe/moxie-app/internal/domain/sales"
	"github.com/c-gorringe/moxie-app/internal/domain/shared"
)

// GormWithholdingLimitRepository implements sales.WithholdingLimitRepository
// using GORM
type GormWithholdingLimitRepository struct {
	db *gorm.DB
}

// NewGormWithholdingLimitRepository creates a new GormWithholdingLimitRepository
func NewGormWithholdingLimitRepository(db *gorm.DB) *GormWithholdingLimitRepository {
	return &GormWithholdingLimitRepository{db: db}
}

// FindCurrentByUser returns the most recently updated limit row for the
// user; when duplicates exist the latest wins.
func (r *GormWithholdingLimitRepository) FindCurrentByUser(ctx context.Context, userID uuid.UUID) (*sales.WithholdingLimit, error) {
	var limit sales.WithholdingLimit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&limit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &limit, nil
}

// SaveBatch inserts limit rows in chunks
func (r *GormWithholdingLimitRepository) SaveBatch(ctx context.Context, rows []*sales.WithholdingLimit) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, 500).Error
}

// DeleteAll removes every limit row. Used only by the administrative reseed.
func (r *GormWithholdingLimitRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&sales.WithholdingLimit{}).Error
}

var _ sales.WithholdingLimitRepository = (*GormWithholdingLimitRepository)(nil)
