package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification kinds.
const (
	NotificationFastingCompleted   = "fasting_completed"
	NotificationChallengeCompleted = "challenge_completed"
)

// Notification is an in-app message for a user.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Kind      string     `gorm:"size:50;not null" json:"kind"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	Body      string     `gorm:"type:text" json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
