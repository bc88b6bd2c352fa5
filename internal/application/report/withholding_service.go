package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/c-gorringe/moxie-app/internal/domain/report"
	"github.com/c-gorringe/moxie-app/internal/domain/sales"
	"github.com/c-gorringe/moxie-app/internal/domain/shared"
)

// LimitInfo describes the withholding ceiling and how much of it is used.
type LimitInfo struct {
	Amount     decimal.Decimal `json:"amount"`
	Current    decimal.Decimal `json:"current"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
}

// WithholdingTransaction is one commission rollup reduced to its withheld
// portion.
type WithholdingTransaction struct {
	ID       uuid.UUID       `json:"id"`
	Date     time.Time       `json:"date"`
	Withheld decimal.Decimal `json:"withheld"`
	IsPaid   bool            `json:"isPaid"`
}

// WithholdingResponse is the withholding view for one user.
type WithholdingResponse struct {
	Limit        LimitInfo                `json:"limit"`
	Summary      sales.CommissionSummary  `json:"summary"`
	Transactions []WithholdingTransaction `json:"transactions"`
}

// WithholdingService assembles the withholding view.
type WithholdingService struct {
	withholdingRepo sales.WithholdingLimitRepository
	commissionRepo  sales.CommissionRepository
	defaultLimit    decimal.Decimal
	logger          *zap.Logger
	now             func() time.Time
}

// NewWithholdingService creates a WithholdingService. defaultLimit is used
// when a user has no limit row yet.
func NewWithholdingService(
	withholdingRepo sales.WithholdingLimitRepository,
	commissionRepo sales.CommissionRepository,
	defaultLimit decimal.Decimal,
	logger *zap.Logger,
) *WithholdingService {
	return &WithholdingService{
		withholdingRepo: withholdingRepo,
		commissionRepo:  commissionRepo,
		defaultLimit:    defaultLimit,
		logger:          logger,
		now:             time.Now,
	}
}

// GetWithholding returns the user's ceiling, the period's summary totals and
// the withheld portion of each commission row in the period.
func (s *WithholdingService) GetWithholding(ctx context.Context, userID uuid.UUID, rawPeriod string) (*WithholdingResponse, error) {
	now := s.now()
	rng := report.Resolve(report.ParsePeriod(rawPeriod), now)

	limit, err := s.withholdingRepo.FindCurrentByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("withholding limit lookup failed", zap.Error(err))
			return nil, err
		}
		// No row yet: an untouched ceiling
		limit = &sales.WithholdingLimit{
			UserID:        userID,
			CurrentAmount: decimal.Zero,
			LimitAmount:   s.defaultLimit,
		}
	}

	summary, err := s.commissionRepo.SumByUserBetween(ctx, userID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	rows, err := s.commissionRepo.FindByUserBetween(ctx, userID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	transactions := make([]WithholdingTransaction, len(rows))
	for i, row := range rows {
		transactions[i] = WithholdingTransaction{
			ID:       row.ID,
			Date:     row.Date,
			Withheld: row.Withheld,
			IsPaid:   row.IsPaid,
		}
	}

	return &WithholdingResponse{
		Limit: LimitInfo{
			Amount:     limit.LimitAmount,
			Current:    limit.CurrentAmount,
			Remaining:  limit.Remaining(),
			Percentage: limit.PercentUsed(),
		},
		Summary:      *summary,
		Transactions: transactions,
	}, nil
}
