package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/c-gorringe/moxie-app/internal/domain/report"
)

// TrendSet holds the percent deltas of each metric vs the previous period.
type TrendSet struct {
	Sales    int `json:"sales"`
	Cancels  int `json:"cancels"`
	Revenue  int `json:"revenue"`
	Installs int `json:"installs"`
}

// PerformanceResponse is one user's metrics, trends and standing.
type PerformanceResponse struct {
	Period    string                    `json:"period"`
	Metrics   report.Metrics            `json:"metrics"`
	Trends    TrendSet                  `json:"trends"`
	Rank      int                       `json:"rank"`
	TotalReps int                       `json:"totalReps"`
	Top       []report.LeaderboardEntry `json:"leaderboard"`
}

// PerformanceService assembles the performance view for one user.
type PerformanceService struct {
	reportRepo report.Repository
	logger     *zap.Logger
	now        func() time.Time
}

// NewPerformanceService creates a PerformanceService
func NewPerformanceService(reportRepo report.Repository, logger *zap.Logger) *PerformanceService {
	return &PerformanceService{reportRepo: reportRepo, logger: logger, now: time.Now}
}

// GetPerformance computes current metrics, trend deltas against the previous
// period of equal length, the user's rank and the top slice.
func (s *PerformanceService) GetPerformance(ctx context.Context, userID uuid.UUID, rawPeriod string) (*PerformanceResponse, error) {
	period := report.ParsePeriod(rawPeriod)
	now := s.now()
	cur := report.Resolve(period, now)
	prev := report.Previous(period, now)

	current, err := s.reportRepo.UserMetrics(ctx, userID, cur)
	if err != nil {
		s.logger.Error("current metrics aggregation failed", zap.Error(err))
		return nil, err
	}
	previous, err := s.reportRepo.UserMetrics(ctx, userID, prev)
	if err != nil {
		s.logger.Error("previous metrics aggregation failed", zap.Error(err))
		return nil, err
	}

	entries, err := s.reportRepo.LeaderboardStats(ctx, report.LeaderboardFilter{Range: cur})
	if err != nil {
		return nil, err
	}
	ranked := report.RankBySales(entries)

	return &PerformanceResponse{
		Period:  string(period),
		Metrics: *current,
		Trends: TrendSet{
			Sales:    report.Trend(float64(current.Sales), float64(previous.Sales)),
			Cancels:  report.Trend(float64(current.Cancels), float64(previous.Cancels)),
			Revenue:  report.Trend(current.Revenue.InexactFloat64(), previous.Revenue.InexactFloat64()),
			Installs: report.Trend(float64(current.Installs), float64(previous.Installs)),
		},
		Rank:      report.RankOf(ranked, userID),
		TotalReps: len(ranked),
		Top:       report.TopK(ranked, leaderboardTopSize),
	}, nil
}
