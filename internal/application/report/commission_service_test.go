package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/c-gorringe/moxie-app/internal/domain/sales"
)

// MockCommissionRepository is a mock implementation of sales.CommissionRepository
type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) FindByUserBetween(ctx context.Context, userID uuid.UUID, start time.Time, end *time.Time) ([]sales.Commission, error) {
	args := m.Called(ctx, userID, start, end)
	return args.Get(0).([]sales.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]sales.Commission, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]sales.Commission), args.Error(1)
}

func (m *MockCommissionRepository) SumByUserBetween(ctx context.Context, userID uuid.UUID, start time.Time, end *time.Time) (*sales.CommissionSummary, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.CommissionSummary), args.Error(1)
}

func (m *MockCommissionRepository) SaveBatch(ctx context.Context, commissions []*sales.Commission) error {
	args := m.Called(ctx, commissions)
	return args.Error(0)
}

func (m *MockCommissionRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSaleRepository is a mock implementation of sales.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByUserBetween(ctx context.Context, userID uuid.UUID, start time.Time, end *time.Time) ([]sales.Sale, error) {
	args := m.Called(ctx, userID, start, end)
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

func TestCommissionService_GetCommission_NoPeriodUsesRecent(t *testing.T) {
	commissionRepo := new(MockCommissionRepository)
	saleRepo := new(MockSaleRepository)
	svc := NewCommissionService(commissionRepo, saleRepo, zap.NewNop())

	now := time.Date(2026, 1, 20, 14, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	ctx := context.Background()
	userID := uuid.New()
	payStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	summary := &sales.CommissionSummary{
		AccountsSold: 12,
		Earned:       decimal.NewFromFloat(450.25),
		Withheld:     decimal.NewFromFloat(90.05),
		Paid:         decimal.NewFromFloat(360.20),
	}
	recent := []sales.Commission{
		{UserID: userID, Date: time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC)},
	}

	commissionRepo.On("SumByUserBetween", ctx, userID, payStart, (*time.Time)(nil)).Return(summary, nil)
	commissionRepo.On("FindRecentByUser", ctx, userID, 10).Return(recent, nil)

	resp, err := svc.GetCommission(ctx, userID, "")

	assert.NoError(t, err)
	assert.Equal(t, int64(12), resp.Summary.AccountsSold)
	assert.Equal(t, "January 2026", resp.PayPeriod.Label)
	assert.Equal(t, payStart, resp.PayPeriod.Start)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), resp.PayPeriod.End)
	assert.Len(t, resp.Transactions, 1)
	commissionRepo.AssertExpectations(t)
	commissionRepo.AssertNotCalled(t, "FindByUserBetween")
}

func TestCommissionService_GetCommission_ExplicitPeriodFilters(t *testing.T) {
	commissionRepo := new(MockCommissionRepository)
	saleRepo := new(MockSaleRepository)
	svc := NewCommissionService(commissionRepo, saleRepo, zap.NewNop())

	now := time.Date(2026, 1, 20, 14, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	ctx := context.Background()
	userID := uuid.New()
	weekStart := now.AddDate(0, 0, -7)

	commissionRepo.On("SumByUserBetween", ctx, userID, weekStart, (*time.Time)(nil)).Return(&sales.CommissionSummary{}, nil)
	commissionRepo.On("FindByUserBetween", ctx, userID, weekStart, (*time.Time)(nil)).Return([]sales.Commission{}, nil)

	_, err := svc.GetCommission(ctx, userID, "week")

	assert.NoError(t, err)
	commissionRepo.AssertExpectations(t)
	commissionRepo.AssertNotCalled(t, "FindRecentByUser")
}

func TestCommissionService_GetSalesForDay_Totals(t *testing.T) {
	commissionRepo := new(MockCommissionRepository)
	saleRepo := new(MockSaleRepository)
	svc := NewCommissionService(commissionRepo, saleRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	dayEnd := day.AddDate(0, 0, 1).Add(-time.Millisecond)

	rows := []sales.Sale{
		{UserID: userID, OccurredAt: day.Add(9 * time.Hour), Revenue: decimal.NewFromInt(250)},
		{UserID: userID, OccurredAt: day.Add(11 * time.Hour), Revenue: decimal.NewFromInt(400), IsCanceled: true},
		{UserID: userID, OccurredAt: day.Add(16 * time.Hour), Revenue: decimal.NewFromInt(150)},
	}

	saleRepo.On("FindByUserBetween", ctx, userID, day, &dayEnd).Return(rows, nil)

	resp, err := svc.GetSalesForDay(ctx, userID, day.Add(10*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, "2026-01-15", resp.Date)
	// canceled rows stay visible but are excluded from totals
	assert.Len(t, resp.Sales, 3)
	assert.Equal(t, 2, resp.Count)
	assert.True(t, resp.Revenue.Equal(decimal.NewFromInt(400)))
	saleRepo.AssertExpectations(t)
}
