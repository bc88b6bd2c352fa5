package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/c-gorringe/moxie-app/internal/domain/shared"
)

// Accolade is a display-only award attached to a user's profile.
type Accolade struct {
	shared.BaseEntity
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Title  string    `gorm:"not null" json:"title"`
	Year   int       `gorm:"not null" json:"year"`
}

// TableName specifies the database table name
func (Accolade) TableName() string {
	return "accolades"
}

// AccoladeRepository defines persistence operations for accolades.
type AccoladeRepository interface {
	// FindByUser returns the user's accolades ordered by year descending.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Accolade, error)
	Save(ctx context.Context, accolade *Accolade) error
}
