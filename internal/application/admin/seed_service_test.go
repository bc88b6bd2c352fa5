package admin

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/c-gorringe/moxie-app/internal/domain/identity"
	"github.com/c-gorringe/moxie-app/internal/domain/sales"
	"github.com/c-gorringe/moxie-app/internal/infrastructure/config"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllActive(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByUserBetween(ctx context.Context, userID uuid.UUID, start time.Time, end *time.Time) ([]sales.Sale, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) SaveBatch(ctx context.Context, rows []*sales.Sale) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) FindByUserBetween(ctx context.Context, userID uuid.UUID, start time.Time, end *time.Time) ([]sales.Commission, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]sales.Commission, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Commission), args.Error(1)
}

func (m *MockCommissionRepository) SumByUserBetween(ctx context.Context, userID uuid.UUID, start time.Time, end *time.Time) (*sales.CommissionSummary, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.CommissionSummary), args.Error(1)
}

func (m *MockCommissionRepository) SaveBatch(ctx context.Context, rows []*sales.Commission) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockCommissionRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockWithholdingLimitRepository struct {
	mock.Mock
}

func (m *MockWithholdingLimitRepository) FindCurrentByUser(ctx context.Context, userID uuid.UUID) (*sales.WithholdingLimit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.WithholdingLimit), args.Error(1)
}

func (m *MockWithholdingLimitRepository) SaveBatch(ctx context.Context, rows []*sales.WithholdingLimit) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockWithholdingLimitRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func testSeedConfig() config.SeedConfig {
	return config.SeedConfig{
		CommissionRate:   0.25,
		WithholdingRate:  0.20,
		WithholdingLimit: 3000.0,
		PaidLagDays:      7,
		HistoryDays:      30,
	}
}

func seedTestUsers() []identity.User {
	u1 := identity.User{Name: "Blake Carter", IsActive: true}
	u1.ID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	u2 := identity.User{Name: "Jordan Reyes", IsActive: true}
	u2.ID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	return []identity.User{u1, u2}
}

func TestSeedService_Reseed_RegeneratesAllDerivedData(t *testing.T) {
	userRepo := new(MockUserRepository)
	saleRepo := new(MockSaleRepository)
	commissionRepo := new(MockCommissionRepository)
	withholdingRepo := new(MockWithholdingLimitRepository)

	users := seedTestUsers()
	userRepo.On("FindAllActive", mock.Anything).Return(users, nil)
	userRepo.On("Count", mock.Anything).Return(int64(2), nil)
	saleRepo.On("DeleteAll", mock.Anything).Return(nil)
	commissionRepo.On("DeleteAll", mock.Anything).Return(nil)
	withholdingRepo.On("DeleteAll", mock.Anything).Return(nil)

	var savedSales []*sales.Sale
	saleRepo.On("SaveBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { savedSales = args.Get(1).([]*sales.Sale) }).
		Return(nil)

	var savedCommissions []*sales.Commission
	commissionRepo.On("SaveBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { savedCommissions = args.Get(1).([]*sales.Commission) }).
		Return(nil)

	var savedLimits []*sales.WithholdingLimit
	withholdingRepo.On("SaveBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { savedLimits = args.Get(1).([]*sales.WithholdingLimit) }).
		Return(nil)

	svc := NewSeedService(userRepo, saleRepo, commissionRepo, withholdingRepo, nil, testSeedConfig(), zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	}

	result, err := svc.Reseed(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Users)
	assert.Equal(t, len(savedSales), result.Sales)
	assert.Equal(t, len(savedCommissions), result.Commissions)
	assert.Equal(t, len(savedLimits), result.WithholdingLimits)
	userRepo.AssertCalled(t, "Count", mock.Anything)
	userRepo.AssertExpectations(t)
	saleRepo.AssertExpectations(t)
	commissionRepo.AssertExpectations(t)
	withholdingRepo.AssertExpectations(t)
}

func TestSeedService_Reseed_CountFailureAborts(t *testing.T) {
	userRepo := new(MockUserRepository)
	saleRepo := new(MockSaleRepository)
	commissionRepo := new(MockCommissionRepository)
	withholdingRepo := new(MockWithholdingLimitRepository)

	userRepo.On("FindAllActive", mock.Anything).Return(seedTestUsers(), nil)
	userRepo.On("Count", mock.Anything).Return(int64(0), assert.AnError)

	svc := NewSeedService(userRepo, saleRepo, commissionRepo, withholdingRepo, nil, testSeedConfig(), zap.NewNop())

	_, err := svc.Reseed(context.Background())

	require.ErrorIs(t, err, assert.AnError)
	saleRepo.AssertNotCalled(t, "DeleteAll", mock.Anything)
}
