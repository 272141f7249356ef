package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/calorix/backend/internal/challenge"
	"github.com/pageza/calorix/backend/internal/fasting"
	"github.com/pageza/calorix/backend/internal/model"
	"github.com/pageza/calorix/backend/internal/models"
	"github.com/pageza/calorix/backend/internal/nutrition"
	"github.com/pageza/calorix/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error)
	UpdateGoals(ctx context.Context, userID uuid.UUID, req *types.UpdateGoalsRequest) (model.Goals, error)
	GoalHistory(ctx context.Context, userID uuid.UUID) ([]models.GoalHistory, error)
	ResetLogs(ctx context.Context, userID uuid.UUID) error
}

// ILogService defines the interface for daily log operations
type ILogService interface {
	GetLog(ctx context.Context, userID uuid.UUID, date string) (model.DailyLog, error)
	AddFoods(ctx context.Context, userID uuid.UUID, date, meal string, foods []types.FoodInput) (model.DailyLog, error)
	DeleteFood(ctx context.Context, userID uuid.UUID, date, meal, foodID string) (model.DailyLog, error)
	AddWater(ctx context.Context, userID uuid.UUID, date string, amount float64) (model.DailyLog, error)
	LogsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[string]model.DailyLog, error)
}

// ISummaryService defines the interface for derived period views
type ISummaryService interface {
	Summary(ctx context.Context, userID uuid.UUID, anchor time.Time, window int) (nutrition.Summary, error)
	Calendar(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]nutrition.CalendarDay, error)
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// IFastingService defines the interface for the fasting timer
type IFastingService interface {
	Status(ctx context.Context, userID uuid.UUID) (model.FastingState, fasting.Reading, error)
	Start(ctx context.Context, userID uuid.UUID, hours float64) (model.FastingState, fasting.Reading, error)
	Stop(ctx context.Context, userID uuid.UUID) (model.FastingState, error)
	Update(ctx context.Context, userID uuid.UUID, upd fasting.TimeUpdate) (model.FastingState, bool, error)
}

// IChallengeService defines the interface for challenge operations
type IChallengeService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Challenge, *model.UserChallengeProgress, error)
	Select(ctx context.Context, userID uuid.UUID, challengeID string) (*model.UserChallengeProgress, error)
	Disable(ctx context.Context, userID uuid.UUID) error
	CreateCustom(ctx context.Context, userID uuid.UUID, in challenge.Input) (model.Challenge, error)
	EvaluateToday(ctx context.Context, userID uuid.UUID) (*challenge.Event, error)
	Completed(ctx context.Context, userID uuid.UUID) ([]model.CompletedChallenge, error)
}

// INotificationService defines the interface for in-app notifications
type INotificationService interface {
	Notifier
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}

// IExportService defines the interface for day exports
type IExportService interface {
	Export(ctx context.Context, userID uuid.UUID, date string) (*ExportResult, error)
}

// IEstimatorService defines the interface for nutrition estimates
type IEstimatorService interface {
	Estimate(ctx context.Context, description string) ([]types.FoodInput, error)
}

// Notifier delivers a message to a user.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind, title, body string) error
}

// Invalidator drops derived values cached for a user.
type Invalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// ChallengeEvaluator re-checks today's slot of the active challenge.
type ChallengeEvaluator interface {
	EvaluateToday(ctx context.Context, userID uuid.UUID) (*challenge.Event, error)
}

// ObjectStore keeps exported files.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}
