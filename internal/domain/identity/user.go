package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/c-gorringe/moxie-app/internal/domain/shared"
)

// Role controls access to administrative operations.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// User is a sales rep (or admin) on the dashboard.
type User struct {
	shared.BaseEntity
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Name         string     `gorm:"not null" json:"name"`
	Tagline      string     `json:"tagline"`
	Team         string     `json:"team"`
	Region       string     `gorm:"index" json:"region"`
	Role         Role       `gorm:"type:varchar(16);default:member" json:"role"`
	PasswordHash string     `gorm:"not null" json:"-"`
	JoinedAt     time.Time  `json:"joinedAt"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	LastActiveAt *time.Time `json:"lastActiveAt"`
}

// TableName specifies the database table name
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may run administrative operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TouchActivity records that the user was just seen.
func (u *User) TouchActivity(now time.Time) {
	u.LastActiveAt = &now
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
	FindAllActive(ctx context.Context) ([]User, error)
	Save(ctx context.Context, user *User) error
	Count(ctx context.Context) (int64, error)
}
