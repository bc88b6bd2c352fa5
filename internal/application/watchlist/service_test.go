package watchlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/c-gorringe/moxie-app/internal/domain/identity"
	"github.com/c-gorringe/moxie-app/internal/domain/report"
	"github.com/c-gorringe/moxie-app/internal/domain/shared"
	"github.com/c-gorringe/moxie-app/internal/domain/watchlist"
)

// MockWatchlistRepository is a mock implementation of watchlist.Repository
type MockWatchlistRepository struct {
	mock.Mock
}

func (m *MockWatchlistRepository) FindByWatcher(ctx context.Context, watcherID uuid.UUID) ([]watchlist.Entry, error) {
	args := m.Called(ctx, watcherID)
	return args.Get(0).([]watchlist.Entry), args.Error(1)
}

func (m *MockWatchlistRepository) Exists(ctx context.Context, watcherID, watchedID uuid.UUID) (bool, error) {
	args := m.Called(ctx, watcherID, watchedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWatchlistRepository) Save(ctx context.Context, entry *watchlist.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWatchlistRepository) DeleteByPair(ctx context.Context, watcherID, watchedID uuid.UUID) error {
	args := m.Called(ctx, watcherID, watchedID)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllActive(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockReportRepository is a mock implementation of report.Repository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) LeaderboardStats(ctx context.Context, filter report.LeaderboardFilter) ([]report.LeaderboardEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]report.LeaderboardEntry), args.Error(1)
}

func (m *MockReportRepository) UserMetrics(ctx context.Context, userID uuid.UUID, rng report.DateRange) (*report.Metrics, error) {
	args := m.Called(ctx, userID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Metrics), args.Error(1)
}

func (m *MockReportRepository) DailyWatchStats(ctx context.Context, userIDs []uuid.UUID, rng report.DateRange) (map[uuid.UUID]report.WatchStats, error) {
	args := m.Called(ctx, userIDs, rng)
	return args.Get(0).(map[uuid.UUID]report.WatchStats), args.Error(1)
}

func (m *MockReportRepository) ProfileBests(ctx context.Context, userID uuid.UUID, now time.Time) (*report.ProfileBests, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.ProfileBests), args.Error(1)
}

func newWatchlistService() (*Service, *MockWatchlistRepository, *MockUserRepository, *MockReportRepository) {
	watchRepo := new(MockWatchlistRepository)
	userRepo := new(MockUserRepository)
	reportRepo := new(MockReportRepository)
	svc := NewService(watchRepo, userRepo, reportRepo, zap.NewNop())
	return svc, watchRepo, userRepo, reportRepo
}

func TestWatchlistService_Add_Success(t *testing.T) {
	svc, watchRepo, userRepo, _ := newWatchlistService()
	ctx := context.Background()
	watcherID := uuid.New()
	watchedID := uuid.New()

	watched := &identity.User{Name: "Dana"}
	watched.ID = watchedID

	userRepo.On("FindByID", ctx, watchedID).Return(watched, nil)
	watchRepo.On("Exists", ctx, watcherID, watchedID).Return(false, nil)
	watchRepo.On("Save", ctx, mock.AnythingOfType("*watchlist.Entry")).Return(nil)

	entry, err := svc.Add(ctx, watcherID, watchedID)

	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.Equal(t, watcherID, entry.WatcherID)
	assert.Equal(t, watchedID, entry.WatchedID)
	watchRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestWatchlistService_Add_SelfWatch(t *testing.T) {
	svc, watchRepo, _, _ := newWatchlistService()
	ctx := context.Background()
	id := uuid.New()

	entry, err := svc.Add(ctx, id, id)

	assert.Nil(t, entry)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	watchRepo.AssertNotCalled(t, "Save")
}

func TestWatchlistService_Add_WatchedUserMissing(t *testing.T) {
	svc, watchRepo, userRepo, _ := newWatchlistService()
	ctx := context.Background()
	watcherID := uuid.New()
	watchedID := uuid.New()

	userRepo.On("FindByID", ctx, watchedID).Return(nil, shared.ErrNotFound)

	entry, err := svc.Add(ctx, watcherID, watchedID)

	assert.Nil(t, entry)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	watchRepo.AssertNotCalled(t, "Save")
}

func TestWatchlistService_Add_Duplicate(t *testing.T) {
	svc, watchRepo, userRepo, _ := newWatchlistService()
	ctx := context.Background()
	watcherID := uuid.New()
	watchedID := uuid.New()

	watched := &identity.User{Name: "Dana"}
	watched.ID = watchedID

	userRepo.On("FindByID", ctx, watchedID).Return(watched, nil)
	watchRepo.On("Exists", ctx, watcherID, watchedID).Return(true, nil)

	entry, err := svc.Add(ctx, watcherID, watchedID)

	assert.Nil(t, entry)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	watchRepo.AssertNotCalled(t, "Save")
}

func TestWatchlistService_Remove_NotFound(t *testing.T) {
	svc, watchRepo, _, _ := newWatchlistService()
	ctx := context.Background()
	watcherID := uuid.New()
	watchedID := uuid.New()

	watchRepo.On("DeleteByPair", ctx, watcherID, watchedID).Return(shared.ErrNotFound)

	err := svc.Remove(ctx, watcherID, watchedID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	watchRepo.AssertExpectations(t)
}

func TestWatchlistService_Remove_Success(t *testing.T) {
	svc, watchRepo, _, _ := newWatchlistService()
	ctx := context.Background()
	watcherID := uuid.New()
	watchedID := uuid.New()

	watchRepo.On("DeleteByPair", ctx, watcherID, watchedID).Return(nil)

	err := svc.Remove(ctx, watcherID, watchedID)

	assert.NoError(t, err)
	watchRepo.AssertExpectations(t)
}

func TestWatchlistService_List_WithStats(t *testing.T) {
	svc, watchRepo, userRepo, reportRepo := newWatchlistService()
	ctx := context.Background()
	watcherID := uuid.New()
	firstID := uuid.New()
	secondID := uuid.New()

	entries := []watchlist.Entry{
		{WatcherID: watcherID, WatchedID: firstID, AddedAt: time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)},
		{WatcherID: watcherID, WatchedID: secondID, AddedAt: time.Date(2026, 1, 19, 10, 0, 0, 0, time.UTC)},
	}

	first := identity.User{Name: "Alex", Team: "North", Region: "CO"}
	first.ID = firstID
	second := identity.User{Name: "Blake", Team: "South", Region: "TX"}
	second.ID = secondID

	stats := map[uuid.UUID]report.WatchStats{
		firstID: {
			Sales:      3,
			Revenue:    decimal.NewFromInt(900),
			Commission: decimal.NewFromInt(225),
		},
	}

	watchRepo.On("FindByWatcher", ctx, watcherID).Return(entries, nil)
	userRepo.On("FindByIDs", ctx, []uuid.UUID{firstID, secondID}).Return([]identity.User{first, second}, nil)
	reportRepo.On("DailyWatchStats", ctx, []uuid.UUID{firstID, secondID}, mock.AnythingOfType("report.DateRange")).Return(stats, nil)

	resp, err := svc.List(ctx, watcherID)

	assert.NoError(t, err)
	assert.Len(t, resp.Entries, 2)
	assert.Equal(t, "Alex", resp.Entries[0].Name)
	assert.Equal(t, 3, resp.Entries[0].Today.Sales)
	assert.True(t, resp.Entries[0].Today.Revenue.Equal(decimal.NewFromInt(900)))
	// second user has no stats row and reports zeros
	assert.Equal(t, 0, resp.Entries[1].Today.Sales)
	watchRepo.AssertExpectations(t)
	reportRepo.AssertExpectations(t)
}

func TestWatchlistService_List_SkipsDanglingEntries(t *testing.T) {
	svc, watchRepo, userRepo, reportRepo := newWatchlistService()
	ctx := context.Background()
	watcherID := uuid.New()
	goneID := uuid.New()

	entries := []watchlist.Entry{
		{WatcherID: watcherID, WatchedID: goneID, AddedAt: time.Now()},
	}

	watchRepo.On("FindByWatcher", ctx, watcherID).Return(entries, nil)
	userRepo.On("FindByIDs", ctx, []uuid.UUID{goneID}).Return([]identity.User{}, nil)
	reportRepo.On("DailyWatchStats", ctx, []uuid.UUID{goneID}, mock.AnythingOfType("report.DateRange")).Return(map[uuid.UUID]report.WatchStats{}, nil)

	resp, err := svc.List(ctx, watcherID)

	assert.NoError(t, err)
	assert.Empty(t, resp.Entries)
}

func TestWatchlistService_List_RepoError(t *testing.T) {
	svc, watchRepo, _, _ := newWatchlistService()
	ctx := context.Background()
	watcherID := uuid.New()

	watchRepo.On("FindByWatcher", ctx, watcherID).Return([]watchlist.Entry(nil), errors.New("connection refused"))

	resp, err := svc.List(ctx, watcherID)

	assert.Nil(t, resp)
	assert.Error(t, err)
}
