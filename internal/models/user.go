package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pageza/calorix/backend/internal/model"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

// UserProfile stores goals, fasting state and challenge state of one user.
// Challenge state is kept as JSON columns.
type UserProfile struct {
	ID     uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Name   string    `gorm:"size:100" json:"name"`

	GoalCalories float64 `gorm:"not null;default:2000" json:"goal_calories"`
	GoalProtein  float64 `gorm:"not null;default:150" json:"goal_protein"`
	GoalCarbs    float64 `gorm:"not null;default:200" json:"goal_carbs"`
	GoalFat      float64 `gorm:"not null;default:65" json:"goal_fat"`
	GoalWater    float64 `gorm:"not null;default:2500" json:"goal_water"`

	IsFasting         bool    `gorm:"not null;default:false" json:"is_fasting"`
	FastStart         *int64  `json:"fast_start"`
	FastEnd           *int64  `json:"fast_end"`
	FastDurationHours float64 `json:"fast_duration_hours"`
	FastNotified      bool    `gorm:"not null;default:false" json:"fast_notified"`

	ChallengeProgress   *model.UserChallengeProgress `gorm:"serializer:json" json:"challenge_progress"`
	CustomChallenges    []model.Challenge            `gorm:"serializer:json" json:"custom_challenges"`
	CompletedChallenges []model.CompletedChallenge   `gorm:"serializer:json" json:"completed_challenges"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// NewUserProfile returns a profile with default goals for userID.
func NewUserProfile(userID uuid.UUID, name string) *UserProfile {
	p := &UserProfile{ID: uuid.New(), UserID: userID}
	p.Apply(model.Profile{Name: name, Goals: model.DefaultGoals, Fasting: model.IdleFasting()})
	return p
}

// Domain converts the record to the core profile.
func (p *UserProfile) Domain() model.Profile {
	return model.Profile{
		Name: p.Name,
		Goals: model.Goals{
			Calories: p.GoalCalories,
			Protein:  p.GoalProtein,
			Carbs:    p.GoalCarbs,
			Fat:      p.GoalFat,
			Water:    p.GoalWater,
		},
		Fasting: model.FastingState{
			IsFasting:          p.IsFasting,
			StartTime:          p.FastStart,
			EndTime:            p.FastEnd,
			DurationHours:      p.FastDurationHours,
			CompletionNotified: p.FastNotified,
		},
		ChallengeProgress:   p.ChallengeProgress,
		CustomChallenges:    p.CustomChallenges,
		CompletedChallenges: p.CompletedChallenges,
	}
}

// Apply copies a core profile into the record.
func (p *UserProfile) Apply(d model.Profile) {
	p.Name = d.Name
	p.GoalCalories = d.Goals.Calories
	p.GoalProtein = d.Goals.Protein
	p.GoalCarbs = d.Goals.Carbs
	p.GoalFat = d.Goals.Fat
	p.GoalWater = d.Goals.Water
	p.IsFasting = d.Fasting.IsFasting
	p.FastStart = d.Fasting.StartTime
	p.FastEnd = d.Fasting.EndTime
	p.FastDurationHours = d.Fasting.DurationHours
	p.FastNotified = d.Fasting.CompletionNotified
	p.ChallengeProgress = d.ChallengeProgress
	p.CustomChallenges = d.CustomChallenges
	p.CompletedChallenges = d.CompletedChallenges
}
