package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/c-gorringe/moxie-app/internal/domain/shared"
	"github.com/c-gorringe/moxie-app/internal/domain/watchlist"
)

// GormWatchlistRepository implements watchlist.Repository using GORM
type GormWatchlistRepository struct {
	db *gorm.DB
}

// NewGormWatchlistRepository creates a new GormWatchlistRepository
func NewGormWatchlistRepository(db *gorm.DB) *GormWatchlistRepository {
	return &GormWatchlistRepository{db: db}
}

// FindByWatcher returns entries ordered by added-at descending
func (r *GormWatchlistRepository) FindByWatcher(ctx context.Context, watcherID uuid.UUID) ([]watchlist.Entry, error) {
	var entries []watchlist.Entry
	if err := r.db.WithContext(ctx).
		Where("watcher_id = ?", watcherID).
		Order("added_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Exists checks whether the (watcher, watched) pair is present
func (r *GormWatchlistRepository) Exists(ctx context.Context, watcherID, watchedID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&watchlist.Entry{}).
		Where("watcher_id = ? AND watched_id = ?", watcherID, watchedID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates a watchlist entry
func (r *GormWatchlistRepository) Save(ctx context.Context, entry *watchlist.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// DeleteByPair removes the unique pair, returning shared.ErrNotFound when it
// does not exist.
func (r *GormWatchlistRepository) DeleteByPair(ctx context.Context, watcherID, watchedID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("watcher_id = ? AND watched_id = ?", watcherID, watchedID).
		Delete(&watchlist.Entry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ watchlist.Repository = (*GormWatchlistRepository)(nil)
