package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/c-gorringe/moxie-app/internal/domain/shared"
)

// WithholdingLimit tracks how much commission has been held back for a user
// against a fixed ceiling. One row per user is active; when duplicates exist
// the most recently updated one wins.
type WithholdingLimit struct {
	shared.BaseEntity
	UserID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"userId"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"currentAmount"`
	LimitAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"limitAmount"`
	ResetDate     time.Time       `gorm:"not null" json:"resetDate"`
}

// TableName specifies the database table name
func (WithholdingLimit) TableName() string {
	return "withholding_limits"
}

// Remaining returns how much headroom is left under the ceiling.
func (w *WithholdingLimit) Remaining() decimal.Decimal {
	return w.LimitAmount.Sub(w.CurrentAmount)
}

// PercentUsed returns current/limit as a 0-100 percentage.
func (w *WithholdingLimit) PercentUsed() decimal.Decimal {
	if w.LimitAmount.IsZero() {
		return decimal.Zero
	}
	return w.CurrentAmount.Div(w.LimitAmount).Mul(decimal.NewFromInt(100))
}

// ClampWithheld applies the ceiling to a total withheld sum.
func ClampWithheld(total, limit decimal.Decimal) decimal.Decimal {
	if total.GreaterThan(limit) {
		return limit
	}
	return total
}

// WithholdingLimitRepository defines persistence operations for limits.
type WithholdingLimitRepository interface {
	// FindCurrentByUser returns the most recently updated row for the user.
	FindCurrentByUser(ctx context.Context, userID uuid.UUID) (*WithholdingLimit, error)
	SaveBatch(ctx context.Context, limits []*WithholdingLimit) error
	DeleteAll(ctx context.Context) error
}
