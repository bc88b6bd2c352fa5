package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaderboardEntry is the per-user read model behind the leaderboard view.
type LeaderboardEntry struct {
	UserID   uuid.UUID       `json:"userId"`
	Name     string          `json:"name"`
	Team     string          `json:"team"`
	Region   string          `json:"region"`
	Sales    int             `json:"sales"`
	Cancels  int             `json:"cancels"`
	Revenue  decimal.Decimal `json:"revenue"`
	Installs int             `json:"installs"`
	Rank     int             `json:"rank"`
}

// LeaderboardFilter narrows leaderboard aggregation.
type LeaderboardFilter struct {
	Range     DateRange
	Region    string
	TeamQuery string
}

// Metrics holds one user's aggregated sale counts for a date range.
type Metrics struct {
	Sales    int             `json:"sales"`
	Cancels  int             `json:"cancels"`
	Revenue  decimal.Decimal `json:"revenue"`
	Installs int             `json:"installs"`
}

// WatchStats is the current-day summary shown for each watched user.
type WatchStats struct {
	Sales      int             `json:"sales"`
	Revenue    decimal.Decimal `json:"revenue"`
	Commission decimal.Decimal `json:"commission"`
}

// ProfileBests holds a user's historical best sale counts.
type ProfileBests struct {
	BestDay     int `json:"bestDay"`
	BestQuarter int `json:"bestQuarter"`
	BestYear    int `json:"bestYear"`
}

// Repository computes read-model aggregates directly in the store. Canceled
// sales are excluded from sales/revenue, installs additionally require the
// install flag.
type Repository interface {
	// LeaderboardStats returns one unranked entry per active user matching
	// the filter.
	LeaderboardStats(ctx context.Context, filter LeaderboardFilter) ([]LeaderboardEntry, error)
	// UserMetrics aggregates one user's sales over the range.
	UserMetrics(ctx context.Context, userID uuid.UUID, rng DateRange) (*Metrics, error)
	// DailyWatchStats aggregates today's sales and commission for a set of
	// users.
	DailyWatchStats(ctx context.Context, userIDs []uuid.UUID, rng DateRange) (map[uuid.UUID]WatchStats, error)
	// ProfileBests computes best day (any single calendar day), best
	// quarter (trailing 90 days) and best year (current calendar year).
	ProfileBests(ctx context.Context, userID uuid.UUID, now time.Time) (*ProfileBests, error)
}
