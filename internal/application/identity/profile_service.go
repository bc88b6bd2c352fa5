package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/c-gorringe/moxie-app/internal/domain/identity"
	"github.com/c-gorringe/moxie-app/internal/domain/report"
)

// ProfileResponse combines a user's profile fields with their historical
// bests and accolades.
type ProfileResponse struct {
	ID           uuid.UUID           `json:"id"`
	Email        string              `json:"email"`
	Name         string              `json:"name"`
	Tagline      string              `json:"tagline"`
	Team         string              `json:"team"`
	Region       string              `json:"region"`
	JoinedAt     time.Time           `json:"joinedAt"`
	IsActive     bool                `json:"isActive"`
	LastActiveAt *time.Time          `json:"lastActiveAt"`
	Bests        report.ProfileBests `json:"bests"`
	Accolades    []identity.Accolade `json:"accolades"`
}

// ProfileService assembles the user profile view.
type ProfileService struct {
	userRepo     identity.UserRepository
	accoladeRepo identity.AccoladeRepository
	reportRepo   report.Repository
	logger       *zap.Logger
	now          func() time.Time
}

// NewProfileService creates a ProfileService
func NewProfileService(
	userRepo identity.UserRepository,
	accoladeRepo identity.AccoladeRepository,
	reportRepo report.Repository,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		userRepo:     userRepo,
		accoladeRepo: accoladeRepo,
		reportRepo:   reportRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// GetProfile returns the profile, best day/quarter/year sale counts, and
// accolades ordered by year descending.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	bests, err := s.reportRepo.ProfileBests(ctx, userID, s.now())
	if err != nil {
		s.logger.Error("profile bests aggregation failed", zap.Error(err))
		return nil, err
	}

	accolades, err := s.accoladeRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Tagline:      user.Tagline,
		Team:         user.Team,
		Region:       user.Region,
		JoinedAt:     user.JoinedAt,
		IsActive:     user.IsActive,
		LastActiveAt: user.LastActiveAt,
		Bests:        *bests,
		Accolades:    accolades,
	}, nil
}
