package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/c-gorringe/moxie-app/internal/domain/report"
	"github.com/c-gorringe/moxie-app/internal/domain/sales"
)

const recentTransactionCount = 10

// PayPeriodInfo labels the calendar-month accounting boundary.
type PayPeriodInfo struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CommissionResponse is the commission view for one user.
type CommissionResponse struct {
	Summary      sales.CommissionSummary `json:"summary"`
	PayPeriod    PayPeriodInfo           `json:"payPeriod"`
	Transactions []sales.Commission      `json:"transactions"`
}

// SalesDetailResponse lists one user's sales for a single day.
type SalesDetailResponse struct {
	Date    string          `json:"date"`
	Sales   []sales.Sale    `json:"sales"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// CommissionService assembles commission summaries and daily sale detail.
type CommissionService struct {
	commissionRepo sales.CommissionRepository
	saleRepo       sales.SaleRepository
	logger         *zap.Logger
	now            func() time.Time
}

// NewCommissionService creates a CommissionService
func NewCommissionService(commissionRepo sales.CommissionRepository, saleRepo sales.SaleRepository, logger *zap.Logger) *CommissionService {
	return &CommissionService{
		commissionRepo: commissionRepo,
		saleRepo:       saleRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// GetCommission returns the period's summary totals plus transaction rows.
// Without an explicit period the transactions are the last 10 rollups.
func (s *CommissionService) GetCommission(ctx context.Context, userID uuid.UUID, rawPeriod string) (*CommissionResponse, error) {
	now := s.now()
	period := report.ParsePeriod(rawPeriod)
	rng := report.Resolve(period, now)

	summary, err := s.commissionRepo.SumByUserBetween(ctx, userID, rng.Start, rng.End)
	if err != nil {
		s.logger.Error("commission summary failed", zap.Error(err))
		return nil, err
	}

	var transactions []sales.Commission
	if rawPeriod == "" {
		transactions, err = s.commissionRepo.FindRecentByUser(ctx, userID, recentTransactionCount)
	} else {
		transactions, err = s.commissionRepo.FindByUserBetween(ctx, userID, rng.Start, rng.End)
	}
	if err != nil {
		return nil, err
	}

	payStart, payEnd := report.PayPeriodBounds(now)
	return &CommissionResponse{
		Summary: *summary,
		PayPeriod: PayPeriodInfo{
			Label: payStart.Format("January 2006"),
			Start: payStart,
			End:   payEnd,
		},
		Transactions: transactions,
	}, nil
}

// GetSalesForDay returns every sale row the user logged on the given day,
// with non-canceled count and revenue totals.
func (s *CommissionService) GetSalesForDay(ctx context.Context, userID uuid.UUID, day time.Time) (*SalesDetailResponse, error) {
	dayStart := report.StartOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Millisecond)

	rows, err := s.saleRepo.FindByUserBetween(ctx, userID, dayStart, &dayEnd)
	if err != nil {
		s.logger.Error("sales detail lookup failed", zap.Error(err))
		return nil, err
	}

	resp := &SalesDetailResponse{
		Date:    dayStart.Format("2006-01-02"),
		Sales:   rows,
		Revenue: decimal.Zero,
	}
	for _, sale := range rows {
		if sale.CountsTowardRevenue() {
			resp.Count++
			resp.Revenue = resp.Revenue.Add(sale.Revenue)
		}
	}
	return resp, nil
}
