package report

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/c-gorringe/moxie-app/internal/domain/report"
	"github.com/c-gorringe/moxie-app/internal/infrastructure/cache"
)

const leaderboardTopSize = 4

// LeaderboardQuery carries the leaderboard filter inputs.
type LeaderboardQuery struct {
	Period    string
	Region    string
	TeamQuery string
}

// LeaderboardResponse is the assembled leaderboard payload.
type LeaderboardResponse struct {
	Period       string                    `json:"period"`
	Entries      []report.LeaderboardEntry `json:"entries"`
	Top          []report.LeaderboardEntry `json:"top"`
	TopPerformer *report.LeaderboardEntry  `json:"topPerformer"`
}

// LeaderboardService ranks users by non-canceled sales over a date range.
type LeaderboardService struct {
	reportRepo report.Repository
	cache      *cache.LeaderboardCache
	logger     *zap.Logger
	now        func() time.Time
}

// NewLeaderboardService creates a LeaderboardService. The cache may be nil.
func NewLeaderboardService(reportRepo report.Repository, c *cache.LeaderboardCache, logger *zap.Logger) *LeaderboardService {
	return &LeaderboardService{
		reportRepo: reportRepo,
		cache:      c,
		logger:     logger,
		now:        time.Now,
	}
}

// GetLeaderboard resolves the period, aggregates per-user stats and assigns
// dense ranks. Results are cached briefly per filter combination.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, q LeaderboardQuery) (*LeaderboardResponse, error) {
	period := report.ParsePeriod(q.Period)
	cacheKey := fmt.Sprintf("leaderboard:%s:%s:%s", period, q.Region, q.TeamQuery)

	var cached LeaderboardResponse
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	rng := report.Resolve(period, s.now())
	entries, err := s.reportRepo.LeaderboardStats(ctx, report.LeaderboardFilter{
		Range:     rng,
		Region:    q.Region,
		TeamQuery: q.TeamQuery,
	})
	if err != nil {
		s.logger.Error("leaderboard aggregation failed", zap.Error(err))
		return nil, err
	}

	ranked := report.RankBySales(entries)
	resp := &LeaderboardResponse{
		Period:  string(period),
		Entries: ranked,
		Top:     report.TopK(ranked, leaderboardTopSize),
	}
	if len(ranked) > 0 {
		top := ranked[0]
		resp.TopPerformer = &top
	}

	s.cache.Set(ctx, cacheKey, resp)
	return resp, nil
}
