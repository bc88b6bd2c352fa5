package admin

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/c-gorringe/moxie-app/internal/domain/identity"
	"github.com/c-gorringe/moxie-app/internal/domain/sales"
	"github.com/c-gorringe/moxie-app/internal/infrastructure/cache"
	"github.com/c-gorringe/moxie-app/internal/infrastructure/config"
)

// ReseedResult reports what the reseed produced.
type ReseedResult struct {
	Users             int `json:"users"`
	Sales             int `json:"sales"`
	Commissions       int `json:"commissions"`
	WithholdingLimits int `json:"withholdingLimits"`
}

// SeedService performs the destructive reseed: it deletes all sale,
// commission and withholding rows and regenerates them deterministically
// from the existing users. The job is a single sequential batch with no
// rollback; an error aborts the remainder.
type SeedService struct {
	userRepo        identity.UserRepository
	saleRepo        sales.SaleRepository
	commissionRepo  sales.CommissionRepository
	withholdingRepo sales.WithholdingLimitRepository
	leaderboard     *cache.LeaderboardCache
	cfg             config.SeedConfig
	logger          *zap.Logger
	now             func() time.Time
}

// NewSeedService creates a SeedService
func NewSeedService(
	userRepo identity.UserRepository,
	saleRepo sales.SaleRepository,
	commissionRepo sales.CommissionRepository,
	withholdingRepo sales.WithholdingLimitRepository,
	leaderboard *cache.LeaderboardCache,
	cfg config.SeedConfig,
	logger *zap.Logger,
) *SeedService {
	return &SeedService{
		userRepo:        userRepo,
		saleRepo:        saleRepo,
		commissionRepo:  commissionRepo,
		withholdingRepo: withholdingRepo,
		leaderboard:     leaderboard,
		cfg:             cfg,
		logger:          logger,
		now:             time.Now,
	}
}

// Reseed wipes and regenerates all derived data.
func (s *SeedService) Reseed(ctx context.Context) (*ReseedResult, error) {
	now := s.now()

	users, err := s.userRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("reseed started",
		zap.Int("active_users", len(users)),
		zap.Int64("total_users", total),
	)

	if err := s.saleRepo.DeleteAll(ctx); err != nil {
		return nil, err
	}
	if err := s.commissionRepo.DeleteAll(ctx); err != nil {
		return nil, err
	}
	if err := s.withholdingRepo.DeleteAll(ctx); err != nil {
		return nil, err
	}

	var allSales []*sales.Sale
	for i := range users {
		allSales = append(allSales, GenerateSales(&users[i], now, s.cfg.HistoryDays)...)
	}
	if err := s.saleRepo.SaveBatch(ctx, allSales); err != nil {
		return nil, err
	}

	rates := RollupRates{
		CommissionRate:  decimal.NewFromFloat(s.cfg.CommissionRate),
		WithholdingRate: decimal.NewFromFloat(s.cfg.WithholdingRate),
		PaidLagDays:     s.cfg.PaidLagDays,
	}
	commissions := RollupCommissions(allSales, now, rates)
	if err := s.commissionRepo.SaveBatch(ctx, commissions); err != nil {
		return nil, err
	}

	// The ceiling resets on the first of the month after next
	resetDate := time.Date(now.Year(), now.Month()+2, 1, 0, 0, 0, 0, now.Location())
	limits := ComputeWithholdingLimits(commissions, decimal.NewFromFloat(s.cfg.WithholdingLimit), resetDate)
	if err := s.withholdingRepo.SaveBatch(ctx, limits); err != nil {
		return nil, err
	}

	// Rankings computed from the old data are now stale
	s.leaderboard.Purge(ctx, "leaderboard:")

	result := &ReseedResult{
		Users:             len(users),
		Sales:             len(allSales),
		Commissions:       len(commissions),
		WithholdingLimits: len(limits),
	}
	s.logger.Info("reseed finished",
		zap.Int("sales", result.Sales),
		zap.Int("commissions", result.Commissions),
		zap.Int("withholding_limits", result.WithholdingLimits),
	)
	return result, nil
}
