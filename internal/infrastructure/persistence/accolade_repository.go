package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/c-gorringe/moxie-app/internal/domain/identity"
)

// GormAccoladeRepository implements identity.AccoladeRepository using GORM
type GormAccoladeRepository struct {
	db *gorm.DB
}

// NewGormAccoladeRepository creates a new GormAccoladeRepository
func NewGormAccoladeRepository(db *gorm.DB) *GormAccoladeRepository {
	return &GormAccoladeRepository{db: db}
}

// FindByUser returns the user's accolades ordered by year descending
func (r *GormAccoladeRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]identity.Accolade, error) {
	var accolades []identity.Accolade
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("year DESC").
		Find(&accolades).Error; err != nil {
		return nil, err
	}
	return accolades, nil
}

// Save creates or updates an accolade
func (r *GormAccoladeRepository) Save(ctx context.Context, accolade *identity.Accolade) error {
	return r.db.WithContext(ctx).Save(accolade).Error
}

var _ identity.AccoladeRepository = (*GormAccoladeRepository)(nil)
