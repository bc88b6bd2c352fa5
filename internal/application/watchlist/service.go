package watchlist

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/c-gorringe/moxie-app/internal/domain/identity"
	"github.com/c-gorringe/moxie-app/internal/domain/report"
	"github.com/c-gorringe/moxie-app/internal/domain/shared"
	"github.com/c-gorringe/moxie-app/internal/domain/watchlist"
)

// WatchedUser is one watched user with their current-day stats.
type WatchedUser struct {
	UserID  uuid.UUID         `json:"userId"`
	Name    string            `json:"name"`
	Team    string            `json:"team"`
	Region  string            `json:"region"`
	AddedAt time.Time         `json:"addedAt"`
	Today   report.WatchStats `json:"today"`
}

// ListResponse is the assembled watchlist view.
type ListResponse struct {
	Entries []WatchedUser `json:"entries"`
}

// Service manages the directed "watcher follows watched" relation.
type Service struct {
	watchRepo  watchlist.Repository
	userRepo   identity.UserRepository
	reportRepo report.Repository
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates a watchlist Service
func NewService(
	watchRepo watchlist.Repository,
	userRepo identity.UserRepository,
	reportRepo report.Repository,
	logger *zap.Logger,
) *Service {
	return &Service{
		watchRepo:  watchRepo,
		userRepo:   userRepo,
		reportRepo: reportRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns the watcher's entries, most recently added first, each with
// the watched user's today stats.
func (s *Service) List(ctx context.Context, watcherID uuid.UUID) (*ListResponse, error) {
	entries, err := s.watchRepo.FindByWatcher(ctx, watcherID)
	if err != nil {
		s.logger.Error("watchlist lookup failed", zap.Error(err))
		return nil, err
	}

	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.WatchedID
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	usersByID := make(map[uuid.UUID]identity.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	today := report.Resolve(report.PeriodToday, s.now())
	stats, err := s.reportRepo.DailyWatchStats(ctx, ids, today)
	if err != nil {
		return nil, err
	}

	resp := &ListResponse{Entries: make([]WatchedUser, 0, len(entries))}
	for _, e := range entries {
		user, ok := usersByID[e.WatchedID]
		if !ok {
			// watched user was removed; skip the dangling entry
			continue
		}
		resp.Entries = append(resp.Entries, WatchedUser{
			UserID:  user.ID,
			Name:    user.Name,
			Team:    user.Team,
			Region:  user.Region,
			AddedAt: e.AddedAt,
			Today:   stats[user.ID],
		})
	}
	return resp, nil
}

// Add creates a watchlist entry. Watching yourself is invalid input and an
// existing pair is a conflict.
func (s *Service) Add(ctx context.Context, watcherID, watchedID uuid.UUID) (*watchlist.Entry, error) {
	entry, err := watchlist.NewEntry(watcherID, watchedID, s.now())
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(ctx, watchedID); err != nil {
		return nil, err
	}

	exists, err := s.watchRepo.Exists(ctx, watcherID, watchedID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User is already on your watchlist")
	}

	if err := s.watchRepo.Save(ctx, entry); err != nil {
		s.logger.Error("watchlist save failed", zap.Error(err))
		return nil, err
	}
	return entry, nil
}

// Remove deletes the pair, surfacing not-found when it does not exist.
func (s *Service) Remove(ctx context.Context, watcherID, watchedID uuid.UUID) error {
	err := s.watchRepo.DeleteByPair(ctx, watcherID, watchedID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("watchlist delete failed", zap.Error(err))
	}
	return err
}
