package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/c-gorringe/moxie-app/internal/domain/shared"
)

// Commission is the daily rollup of a user's non-canceled sales. At most one
// row exists per (user, date); recomputation deletes and regenerates.
type Commission struct {
	shared.BaseEntity
	UserID         uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_commissions_user_date;not null" json:"userId"`
	Date           time.Time       `gorm:"uniqueIndex:idx_commissions_user_date;not null" json:"date"`
	AccountsSold   int             `gorm:"default:0" json:"accountsSold"`
	Earned         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"earned"`
	Withheld       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"withheld"`
	Paid           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"paid"`
	PayPeriodStart time.Time       `gorm:"not null" json:"payPeriodStart"`
	PayPeriodEnd   time.Time       `gorm:"not null" json:"payPeriodEnd"`
	IsPaid         bool            `gorm:"default:false" json:"isPaid"`
}

// TableName specifies the database table name
func (Commission) TableName() string {
	return "commissions"
}

// CommissionSummary holds the aggregate totals over a set of commission rows.
type CommissionSummary struct {
	AccountsSold int64           `json:"accountsSold"`
	Earned       decimal.Decimal `json:"earned"`
	Withheld     decimal.Decimal `json:"withheld"`
	Paid         decimal.Decimal `json:"paid"`
}

// CommissionRepository defines persistence operations for commission rollups.
type CommissionRepository interface {
	// FindByUserBetween returns rows ordered by date descending. A nil end
	// means "through now".
	FindByUserBetween(ctx context.Context, userID uuid.UUID, start time.Time, end *time.Time) ([]Commission, error)
	// FindRecentByUser returns the most recent rows, newest first.
	FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Commission, error)
	SumByUserBetween(ctx context.Context, userID uuid.UUID, start time.Time, end *time.Time) (*CommissionSummary, error)
	SaveBatch(ctx context.Context, commissions []*Commission) error
	DeleteAll(ctx context.Context) error
}
