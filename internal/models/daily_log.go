package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pageza/calorix/backend/internal/model"
)

// DailyLog is one user's log for one calendar day.
type DailyLog struct {
	ID          uuid.UUID    `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID    `gorm:"type:varchar(36);not null;uniqueIndex:idx_daily_logs_user_date" json:"user_id"`
	Date        string       `gorm:"size:10;not null;uniqueIndex:idx_daily_logs_user_date" json:"date"`
	Meals       []model.Meal `gorm:"serializer:json" json:"meals"`
	WaterIntake float64      `gorm:"not null;default:0" json:"water_intake"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TableName specifies the table name for DailyLog
func (DailyLog) TableName() string {
	return "daily_logs"
}

// Domain converts the record to the core log.
func (l *DailyLog) Domain() model.DailyLog {
	meals := l.Meals
	if meals == nil {
		meals = []model.Meal{}
	}
	return model.DailyLog{Meals: meals, WaterIntake: l.WaterIntake}
}

// LogMap indexes records by date.
func LogMap(records []DailyLog) map[string]model.DailyLog {
	out := make(map[string]model.DailyLog, len(records))
	for i := range records {
		out[records[i].Date] = records[i].Domain()
	}
	return out
}
