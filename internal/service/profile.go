package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/calorix/backend/internal/fasting"
	"github.com/pageza/calorix/backend/internal/model"
	"github.com/pageza/calorix/backend/internal/models"
	"github.com/pageza/calorix/backend/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db    *gorm.DB
	clock fasting.Clock
	cache Invalidator
	log   *zap.Logger
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB, clock fasting.Clock, cache Invalidator, log *zap.Logger) *ProfileService {
	return &ProfileService{
		db:    db,
		clock: clock,
		cache: cache,
		log:   log,
	}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	return findProfile(s.db.WithContext(ctx), userID)
}

// UpdateProfile updates a user's profile
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	_, err := mutateProfile(ctx, s.db, userID, func(p *model.Profile) error {
		p.Name = strings.TrimSpace(req.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// UpdateGoals applies the non-nil fields of req and records every change.
func (s *ProfileService) UpdateGoals(ctx context.Context, userID uuid.UUID, req *types.UpdateGoalsRequest) (model.Goals, error) {
	var changes []models.GoalHistory
	p, err := mutateProfile(ctx, s.db, userID, func(p *model.Profile) error {
		now := s.clock.Now().UTC()
		set := func(field string, dst *float64, v *float64) {
			if v == nil || *v == *dst {
				return
			}
			changes = append(changes, models.GoalHistory{
				ID:        uuid.New(),
				UserID:    userID,
				Field:     field,
				OldValue:  *dst,
				NewValue:  *v,
				ChangedAt: now,
			})
			*dst = *v
		}
		set("calories", &p.Goals.Calories, req.Calories)
		set("protein", &p.Goals.Protein, req.Protein)
		set("carbs", &p.Goals.Carbs, req.Carbs)
		set("fat", &p.Goals.Fat, req.Fat)
		set("water", &p.Goals.Water, req.Water)
		return nil
	})
	if err != nil {
		return model.Goals{}, err
	}
	if len(changes) > 0 {
		if err := s.db.WithContext(ctx).Create(&changes).Error; err != nil {
			s.log.Warn("failed to record goal history", zap.Error(err))
		}
	}
	return p.Goals, nil
}

// GoalHistory lists goal changes, newest first.
func (s *ProfileService) GoalHistory(ctx context.Context, userID uuid.UUID) ([]models.GoalHistory, error) {
	var out []models.GoalHistory
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("changed_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("load goal history: %w", err)
	}
	return out, nil
}

// ResetLogs deletes every daily log of the user.
func (s *ProfileService) ResetLogs(ctx context.Context, userID uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.DailyLog{})
	if res.Error != nil {
		return fmt.Errorf("reset logs: %w", res.Error)
	}
	s.log.Info("daily logs reset", zap.String("user_id", userID.String()), zap.Int64("deleted", res.RowsAffected))
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			s.log.Warn("summary cache invalidation failed", zap.Error(err))
		}
	}
	return nil
}
