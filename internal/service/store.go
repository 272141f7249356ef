package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/calorix/backend/internal/model"
	"github.com/pageza/calorix/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidDate          = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvalidMonth         = errors.New("month must be between 1 and 12")
	ErrFoodNotFound         = errors.New("food not found")
	ErrNotFasting           = errors.New("no fast is running")
	ErrNoActiveChallenge    = errors.New("no active challenge")
	ErrNotificationNotFound = errors.New("notification not found")
)

func findProfile(db *gorm.DB, userID uuid.UUID) (*models.UserProfile, error) {
	var rec models.UserProfile
	if err := db.Where("user_id = ?", userID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &rec, nil
}

// mutateProfile runs fn on the user's profile inside a transaction holding a
// row lock and saves the result when fn succeeds.
func mutateProfile(ctx context.Context, db *gorm.DB, userID uuid.UUID, fn func(p *model.Profile) error) (model.Profile, error) {
	var out model.Profile
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := findProfile(tx.Clauses(clause.Locking{Strength: "UPDATE"}), userID)
		if err != nil {
			return err
		}
		p := rec.Domain()
		if err := fn(&p); err != nil {
			return err
		}
		rec.Apply(p)
		if err := tx.Save(rec).Error; err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		out = p
		return nil
	})
	return out, err
}

func findLog(db *gorm.DB, userID uuid.UUID, date string) (*models.DailyLog, error) {
	var rec models.DailyLog
	err := db.Where("user_id = ? AND date = ?", userID, date).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load log %s: %w", date, err)
	}
	return &rec, nil
}

func validDate(date string) error {
	if _, err := model.ParseDate(date); err != nil {
		return ErrInvalidDate
	}
	return nil
}
