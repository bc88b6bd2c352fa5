package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/c-gorringe/moxie-app/internal/domain/sales"
)

// GormCommissionRepository implements sales.CommissionRepository using GORM
type GormCommissionRepository struct {
	db *gorm.DB
}

// NewGormCommissionRepository creates a new GormCommissionRepository
func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

// FindByUserBetween returns commission rows within [start, end] ordered by
// date descending. A nil end means "through now".
func (r *GormCommissionRepository) FindByUserBetween(ctx context.Context, userID uuid.UUID, start time.Time, end *time.Time) ([]sales.Commission, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, start)
	if end != nil {
		query = query.Where("date <= ?", *end)
	}

	var rows []sales.Commission
	if err := query.Order("date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindRecentByUser returns the newest rows for the user, most recent first
func (r *GormCommissionRepository) FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]sales.Commission, error) {
	var rows []sales.Commission
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SumByUserBetween aggregates accountsSold/earned/withheld/paid over the range
func (r *GormCommissionRepository) SumByUserBetween(ctx context.Context, userID uuid.UUID, start time.Time, end *time.Time) (*sales.CommissionSummary, error) {
	query := r.db.WithContext(ctx).
		Table("commissions").
		Select(`
			COALESCE(SUM(accounts_sold), 0) as accounts_sold,
			COALESCE(SUM(earned), 0) as earned,
			COALESCE(SUM(withheld), 0) as withheld,
			COALESCE(SUM(paid), 0) as paid
		`).
		Where("user_id = ? AND date >= ?", userID, start)
	if end != nil {
		query = query.Where("date <= ?", *end)
	}

	var summary sales.CommissionSummary
	if err := query.Scan(&summary).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}

// SaveBatch inserts commission rows in chunks
func (r *GormCommissionRepository) SaveBatch(ctx context.Context, rows []*sales.Commission) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, 500).Error
}

// DeleteAll removes every commission row. Used only by the administrative
// reseed.
func (r *GormCommissionRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&sales.Commission{}).Error
}

var _ sales.CommissionRepository = (*GormCommissionRepository)(nil)
