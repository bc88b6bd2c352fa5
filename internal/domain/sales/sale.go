package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/c-gorringe/moxie-app/internal/domain/shared"
)

// Sale is a single sales event recorded for a user. Canceled sales stay in
// the store but are excluded from every revenue and count aggregation.
type Sale struct {
	shared.BaseEntity
	UserID       uuid.UUID       `gorm:"type:uuid;index:idx_sales_user_time;not null" json:"userId"`
	OccurredAt   time.Time       `gorm:"index:idx_sales_user_time;not null" json:"occurredAt"`
	Revenue      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"revenue"`
	AccountsSold int             `gorm:"default:1" json:"accountsSold"`
	IsCanceled   bool            `gorm:"default:false" json:"isCanceled"`
	IsInstall    bool            `gorm:"default:false" json:"isInstall"`
}

// TableName specifies the database table name
func (Sale) TableName() string {
	return "sales"
}

// CountsTowardRevenue reports whether the sale participates in aggregates.
func (s *Sale) CountsTowardRevenue() bool {
	return !s.IsCanceled
}

// CountsAsInstall reports whether the sale counts as an install.
func (s *Sale) CountsAsInstall() bool {
	return s.IsInstall && !s.IsCanceled
}

// SaleRepository defines persistence operations for sales.
// A nil end means "through now".
type SaleRepository interface {
	FindByUserBetween(ctx context.Context, userID uuid.UUID, start time.Time, end *time.Time) ([]Sale, error)
	SaveBatch(ctx context.Context, sales []*Sale) error
	DeleteAll(ctx context.Context) error
}
