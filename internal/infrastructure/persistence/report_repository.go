package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/c-gorringe/moxie-app/internal/domain/report"
)

// GormReportRepository implements report.Repository with SQL aggregation
// pushed into the store. Canceled sales are excluded in every aggregate.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// LeaderboardStats returns one unranked entry per active user matching the
// filter, aggregated over the date range.
func (r *GormReportRepository) LeaderboardStats(ctx context.Context, filter report.LeaderboardFilter) ([]report.LeaderboardEntry, error) {
	joinClause := "LEFT JOIN sales s ON s.user_id = u.id AND s.occurred_at >= ?"
	joinArgs := []any{filter.Range.Start}
	if filter.Range.End != nil {
		joinClause += " AND s.occurred_at <= ?"
		joinArgs = append(joinArgs, *filter.Range.End)
	}

	query := r.db.WithContext(ctx).
		Table("users u").
		Select(`
			u.id as user_id,
			u.name,
			u.team,
			u.region,
			COALESCE(SUM(CASE WHEN s.id IS NOT NULL AND s.is_canceled = false THEN 1 ELSE 0 END), 0) as sales,
			COALESCE(SUM(CASE WHEN s.is_canceled = true THEN 1 ELSE 0 END), 0) as cancels,
			COALESCE(SUM(CASE WHEN s.is_canceled = false THEN s.revenue ELSE 0 END), 0) as revenue,
			COALESCE(SUM(CASE WHEN s.is_install = true AND s.is_canceled = false THEN 1 ELSE 0 END), 0) as installs
		`).
		Joins(joinClause, joinArgs...).
		Where("u.is_active = ?", true)

	if filter.Region != "" {
		query = query.Where("u.region = ?", filter.Region)
	}
	if filter.TeamQuery != "" {
		query = query.Where("u.team ILIKE ?", "%"+filter.TeamQuery+"%")
	}

	var entries []report.LeaderboardEntry
	if err := query.
		Group("u.id, u.name, u.team, u.region").
		Order("u.name ASC").
		Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// UserMetrics aggregates one user's sale counts over the range.
func (r *GormReportRepository) UserMetrics(ctx context.Context, userID uuid.UUID, rng report.DateRange) (*report.Metrics, error) {
	query := r.db.WithContext(ctx).
		Table("sales").
		Select(`
			COALESCE(SUM(CASE WHEN is_canceled = false THEN 1 ELSE 0 END), 0) as sales,
			COALESCE(SUM(CASE WHEN is_canceled = true THEN 1 ELSE 0 END), 0) as cancels,
			COALESCE(SUM(CASE WHEN is_canceled = false THEN revenue ELSE 0 END), 0) as revenue,
			COALESCE(SUM(CASE WHEN is_install = true AND is_canceled = false THEN 1 ELSE 0 END), 0) as installs
		`).
		Where("user_id = ? AND occurred_at >= ?", userID, rng.Start)
	if rng.End != nil {
		query = query.Where("occurred_at <= ?", *rng.End)
	}

	var metrics report.Metrics
	if err := query.Scan(&metrics).Error; err != nil {
		return nil, err
	}
	return &metrics, nil
}

type watchSalesRow struct {
	UserID  uuid.UUID
	Sales   int
	Revenue decimal.Decimal
}

type watchCommissionRow struct {
	UserID uuid.UUID
	Earned decimal.Decimal
}

// DailyWatchStats aggregates the range's sales, revenue and commission
// earned for a set of users.
func (r *GormReportRepository) DailyWatchStats(ctx context.Context, userIDs []uuid.UUID, rng report.DateRange) (map[uuid.UUID]report.WatchStats, error) {
	stats := make(map[uuid.UUID]report.WatchStats, len(userIDs))
	if len(userIDs) == 0 {
		return stats, nil
	}

	salesQuery := r.db.WithContext(ctx).
		Table("sales").
		Select(`
			user_id,
			COALESCE(SUM(CASE WHEN is_canceled = false THEN 1 ELSE 0 END), 0) as sales,
			COALESCE(SUM(CASE WHEN is_canceled = false THEN revenue ELSE 0 END), 0) as revenue
		`).
		Where("user_id IN ? AND occurred_at >= ?", userIDs, rng.Start)
	if rng.End != nil {
		salesQuery = salesQuery.Where("occurred_at <= ?", *rng.End)
	}

	var salesRows []watchSalesRow
	if err := salesQuery.Group("user_id").Scan(&salesRows).Error; err != nil {
		return nil, err
	}
	for _, row := range salesRows {
		stats[row.UserID] = report.WatchStats{Sales: row.Sales, Revenue: row.Revenue}
	}

	commissionQuery := r.db.WithContext(ctx).
		Table("commissions").
		Select(`user_id, COALESCE(SUM(earned), 0) as earned`).
		Where("user_id IN ? AND date >= ?", userIDs, rng.Start)
	if rng.End != nil {
		commissionQuery = commissionQuery.Where("date <= ?", *rng.End)
	}

	var commissionRows []watchCommissionRow
	if err := commissionQuery.Group("user_id").Scan(&commissionRows).Error; err != nil {
		return nil, err
	}
	for _, row := range commissionRows {
		entry := stats[row.UserID]
		entry.Commission = row.Earned
		stats[row.UserID] = entry
	}

	return stats, nil
}

// ProfileBests computes the user's historical best sale counts: best single
// calendar day, trailing 90 days, and the current calendar year.
func (r *GormReportRepository) ProfileBests(ctx context.Context, userID uuid.UUID, now time.Time) (*report.ProfileBests, error) {
	bests := &report.ProfileBests{}

	var bestDay *int
	if err := r.db.WithContext(ctx).
		Raw(`
			SELECT MAX(cnt) FROM (
				SELECT COUNT(*) AS cnt
				FROM sales
				WHERE user_id = ? AND is_canceled = false
				GROUP BY DATE(occurred_at)
			) daily
		`, userID).Scan(&bestDay).Error; err != nil {
		return nil, err
	}
	if bestDay != nil {
		bests.BestDay = *bestDay
	}

	quarterStart := now.AddDate(0, 0, -90)
	if err := r.db.WithContext(ctx).
		Table("sales").
		Select("COUNT(*)").
		Where("user_id = ? AND is_canceled = false AND occurred_at >= ?", userID, quarterStart).
		Scan(&bests.BestQuarter).Error; err != nil {
		return nil, err
	}

	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	if err := r.db.WithContext(ctx).
		Table("sales").
		Select("COUNT(*)").
		Where("user_id = ? AND is_canceled = false AND occurred_at >= ?", userID, yearStart).
		Scan(&bests.BestYear).Error; err != nil {
		return nil, err
	}

	return bests, nil
}

var _ report.Repository = (*GormReportRepository)(nil)
