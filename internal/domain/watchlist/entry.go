package watchlist

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/c-gorringe/moxie-app/internal/domain/shared"
)

// Entry is a directed "watcher follows watched" relation. The pair is unique
// and one-directional; a user cannot watch themselves.
type Entry struct {
	shared.BaseEntity
	WatcherID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_watchlist_pair;not null" json:"watcherId"`
	WatchedID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_watchlist_pair;not null" json:"watchedId"`
	AddedAt   time.Time `gorm:"not null" json:"addedAt"`
}

// TableName specifies the database table name
func (Entry) TableName() string {
	return "watchlist_entries"
}

// NewEntry validates and builds a watchlist entry.
func NewEntry(watcherID, watchedID uuid.UUID, now time.Time) (*Entry, error) {
	if watcherID == watchedID {
		return nil, shared.NewDomainError("INVALID_INPUT", "You cannot watch yourself")
	}
	return &Entry{WatcherID: watcherID, WatchedID: watchedID, AddedAt: now}, nil
}

// Repository defines persistence operations for watchlist entries.
type Repository interface {
	// FindByWatcher returns entries ordered by added-at descending.
	FindByWatcher(ctx context.Context, watcherID uuid.UUID) ([]Entry, error)
	Exists(ctx context.Context, watcherID, watchedID uuid.UUID) (bool, error)
	Save(ctx context.Context, entry *Entry) error
	// DeleteByPair removes the unique pair, returning shared.ErrNotFound
	// when it does not exist.
	DeleteByPair(ctx context.Context, watcherID, watchedID uuid.UUID) error
}
