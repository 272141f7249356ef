package models

import (
	"time"

	"github.com/google/uuid"
)

// GoalHistory represents a record of a goal change
type GoalHistory struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Field     string    `gorm:"not null" json:"field"` // calories, protein, carbs, fat or water
	OldValue  float64   `json:"old_value"`
	NewValue  float64   `json:"new_value"`
	ChangedAt time.Time `gorm:"not null" json:"changed_at"`
}

// TableName specifies the table name for GoalHistory
func (GoalHistory) TableName() string {
	return "goal_history"
}
